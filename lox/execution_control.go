package lox

import "errors"

func (exec *Execution) execIf(stmt *IfStmt) error {
	condition, err := exec.evalExpression(stmt.Condition)
	if err != nil {
		return err
	}
	if condition.Truthy() {
		return exec.execStatement(stmt.Then)
	}
	if stmt.Else != nil {
		return exec.execStatement(stmt.Else)
	}
	return nil
}

// execFor runs a loop in its own scope, so a variable declared by the
// initializer is visible to the condition, body and increment but not after
// the loop. The condition is checked before every iteration.
func (exec *Execution) execFor(stmt *ForStmt) error {
	handle := exec.env.push()
	defer exec.env.popTo(handle)

	if stmt.Initializer != nil {
		if err := exec.execStatement(stmt.Initializer); err != nil {
			return err
		}
	}

	for {
		if err := exec.step(stmt.Line()); err != nil {
			return err
		}
		condition, err := exec.evalExpression(stmt.Condition)
		if err != nil {
			return err
		}
		if !condition.Truthy() {
			return nil
		}
		if err := exec.execStatement(stmt.Body); err != nil {
			if errors.Is(err, errLoopBreak) {
				return nil
			}
			if !errors.Is(err, errLoopNext) {
				return err
			}
		}
		if stmt.Increment != nil {
			if err := exec.execStatement(stmt.Increment); err != nil {
				return err
			}
		}
	}
}
