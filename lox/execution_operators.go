package lox

import "fmt"

func (exec *Execution) evalExpression(expr Expression) (Value, error) {
	switch e := expr.(type) {
	case *LiteralExpr:
		return e.Value, nil
	case *GroupingExpr:
		return exec.evalExpression(e.Expr)
	case *UnaryExpr:
		return exec.evalUnary(e)
	case *BinaryExpr:
		return exec.evalBinary(e)
	case *LogicalExpr:
		return exec.evalLogical(e)
	case *VariableExpr:
		val, ok := exec.env.Get(e.Name.Lexeme)
		if !ok {
			return NewNil(), exec.errorAt(ErrUndefinedVariable, e.Name.Line, "undefined variable '%s'", e.Name.Lexeme)
		}
		return val, nil
	case *AssignExpr:
		val, err := exec.evalExpression(e.Value)
		if err != nil {
			return NewNil(), err
		}
		if !exec.env.Assign(e.Name.Lexeme, val) {
			return NewNil(), exec.errorAt(ErrUndefinedVariable, e.Name.Line, "undefined variable '%s'", e.Name.Lexeme)
		}
		return val, nil
	default:
		return NewNil(), exec.errorAt(ErrTypeMismatch, expr.Line(), "unsupported expression %T", expr)
	}
}

func (exec *Execution) evalUnary(expr *UnaryExpr) (Value, error) {
	right, err := exec.evalExpression(expr.Right)
	if err != nil {
		return NewNil(), err
	}
	switch expr.Operator.Type {
	case tokenMinus:
		if right.Kind() != KindNumber {
			return NewNil(), exec.errorAt(ErrTypeMismatch, expr.Line(), "operand of '-' must be a number, got %s", right.Kind())
		}
		return NewNumber(-right.Number()), nil
	case tokenBang:
		return NewBool(!right.Truthy()), nil
	default:
		return NewNil(), exec.errorAt(ErrTypeMismatch, expr.Line(), "unsupported unary operator %s", expr.Operator.Lexeme)
	}
}

// evalLogical returns the left operand itself when it decides the result;
// the right operand is not evaluated in that case.
func (exec *Execution) evalLogical(expr *LogicalExpr) (Value, error) {
	left, err := exec.evalExpression(expr.Left)
	if err != nil {
		return NewNil(), err
	}
	switch expr.Operator.Type {
	case tokenOr:
		if left.Truthy() {
			return left, nil
		}
	case tokenAnd:
		if !left.Truthy() {
			return left, nil
		}
	}
	return exec.evalExpression(expr.Right)
}

func (exec *Execution) evalBinary(expr *BinaryExpr) (Value, error) {
	left, err := exec.evalExpression(expr.Left)
	if err != nil {
		return NewNil(), err
	}
	right, err := exec.evalExpression(expr.Right)
	if err != nil {
		return NewNil(), err
	}

	var result Value
	switch expr.Operator.Type {
	case tokenPlus:
		result, err = addValues(left, right)
	case tokenMinus:
		result, err = subtractValues(left, right)
	case tokenAsterisk:
		result, err = multiplyValues(left, right)
	case tokenSlash:
		result, err = divideValues(left, right)
	case tokenLT, tokenLTE, tokenGT, tokenGTE:
		result, err = compareValues(expr.Operator.Type, left, right)
	case tokenEQ:
		result = NewBool(left.Equal(right))
	case tokenNotEQ:
		result = NewBool(!left.Equal(right))
	default:
		err = fmt.Errorf("%w: unsupported binary operator %s", ErrTypeMismatch, expr.Operator.Lexeme)
	}
	if err != nil {
		return NewNil(), exec.wrapError(err, expr.Line())
	}
	return result, nil
}

func addValues(left, right Value) (Value, error) {
	switch {
	case left.Kind() == KindNumber && right.Kind() == KindNumber:
		return NewNumber(left.Number() + right.Number()), nil
	case left.Kind() == KindString || right.Kind() == KindString:
		return NewString(left.String() + right.String()), nil
	default:
		return NewNil(), operandError("add", left, right)
	}
}

func subtractValues(left, right Value) (Value, error) {
	if left.Kind() != KindNumber || right.Kind() != KindNumber {
		return NewNil(), operandError("subtract", left, right)
	}
	return NewNumber(left.Number() - right.Number()), nil
}

func multiplyValues(left, right Value) (Value, error) {
	if left.Kind() != KindNumber || right.Kind() != KindNumber {
		return NewNil(), operandError("multiply", left, right)
	}
	return NewNumber(left.Number() * right.Number()), nil
}

func divideValues(left, right Value) (Value, error) {
	if left.Kind() != KindNumber || right.Kind() != KindNumber {
		return NewNil(), operandError("divide", left, right)
	}
	if right.Number() == 0 {
		return NewNil(), ErrDivisionByZero
	}
	return NewNumber(left.Number() / right.Number()), nil
}

func compareValues(op TokenType, left, right Value) (Value, error) {
	if left.Kind() != KindNumber || right.Kind() != KindNumber {
		return NewNil(), fmt.Errorf("%w: cannot compare %s with %s", ErrTypeMismatch, left.Kind(), right.Kind())
	}
	l, r := left.Number(), right.Number()
	switch op {
	case tokenLT:
		return NewBool(l < r), nil
	case tokenLTE:
		return NewBool(l <= r), nil
	case tokenGT:
		return NewBool(l > r), nil
	case tokenGTE:
		return NewBool(l >= r), nil
	default:
		return NewNil(), fmt.Errorf("%w: unsupported comparison %s", ErrTypeMismatch, op)
	}
}

func operandError(verb string, left, right Value) error {
	return fmt.Errorf("%w: cannot %s %s and %s", ErrTypeMismatch, verb, left.Kind(), right.Kind())
}
