package main

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mgomes/lox/lox"
)

func newTestREPL(t *testing.T) replModel {
	t.Helper()
	return newREPLModel(lox.DefaultFileConfig())
}

func submit(t *testing.T, m replModel, input string) (replModel, tea.Cmd) {
	t.Helper()
	m.textInput.SetValue(input)
	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	rm, ok := model.(replModel)
	if !ok {
		t.Fatalf("unexpected model type %T", model)
	}
	return rm, cmd
}

func TestUpdateQuitCommandReturnsQuit(t *testing.T) {
	rm, cmd := submit(t, newTestREPL(t), ":quit")

	if !rm.quitting {
		t.Fatalf("quitting flag not set")
	}
	if rm.textInput.Value() != "" {
		t.Fatalf("input not cleared after quit command")
	}
	if cmd == nil {
		t.Fatalf("expected tea.Quit command")
	}
	if msg := cmd(); msg != nil {
		if _, ok := msg.(tea.QuitMsg); !ok {
			t.Fatalf("expected QuitMsg, got %T", msg)
		}
	}
}

func TestUpdateNonQuitCommandDoesNotReturnCmd(t *testing.T) {
	rm, cmd := submit(t, newTestREPL(t), ":help")

	if cmd != nil {
		t.Fatalf("expected no command for non-quit input")
	}
	if rm.quitting {
		t.Fatalf("quitting should remain false")
	}
	if !rm.showHelp {
		t.Fatalf("help toggle should be enabled")
	}
	if rm.textInput.Value() != "" {
		t.Fatalf("input not cleared after command")
	}
}

func TestEvaluateEchoesExpressionValue(t *testing.T) {
	m := newTestREPL(t)

	entry := m.evaluate("2 + 3 * 4")
	if entry.isErr || entry.output != "14" {
		t.Fatalf("unexpected entry %+v", entry)
	}
}

func TestEnvironmentPersistsBetweenInputs(t *testing.T) {
	m := newTestREPL(t)

	m, _ = submit(t, m, "var score = 40;")
	m, _ = submit(t, m, "score = score + 2")
	m, _ = submit(t, m, "print score;")

	if len(m.history) != 3 {
		t.Fatalf("expected 3 history entries, got %d", len(m.history))
	}
	if got := m.history[1].output; got != "42" {
		t.Fatalf("assignment should echo its value, got %q", got)
	}
	if got := m.history[2].printed; got != "42" {
		t.Fatalf("print output not captured, got %q", got)
	}

	score, ok := m.env.Get("score")
	if !ok || !score.Equal(lox.NewNumber(42)) {
		t.Fatalf("unexpected score binding %v (%v)", score, ok)
	}
}

func TestRuntimeErrorKeepsSession(t *testing.T) {
	m := newTestREPL(t)

	m, _ = submit(t, m, "var a = 1; print a; print a / 0;")
	entry := m.history[0]
	if !entry.isErr || !strings.Contains(entry.output, "division by zero") {
		t.Fatalf("expected division error, got %+v", entry)
	}
	if entry.printed != "1" {
		t.Fatalf("output before the error should be kept, got %q", entry.printed)
	}

	m, _ = submit(t, m, "a + 1")
	if got := m.history[1]; got.isErr || got.output != "2" {
		t.Fatalf("session should continue after an error, got %+v", got)
	}
}

func TestSyntaxErrorIsReported(t *testing.T) {
	m := newTestREPL(t)
	entry := m.evaluate("var = ;")
	if !entry.isErr || !strings.Contains(entry.output, "parse error") {
		t.Fatalf("expected parse error, got %+v", entry)
	}
}

func TestResetClearsBindings(t *testing.T) {
	m := newTestREPL(t)
	m, _ = submit(t, m, "var x = 1;")
	m, _ = submit(t, m, ":reset")

	if _, ok := m.env.Get("x"); ok {
		t.Fatalf("reset should drop bindings")
	}
	entry := m.evaluate("x")
	if !entry.isErr || !strings.Contains(entry.output, "undefined variable 'x'") {
		t.Fatalf("expected undefined variable after reset, got %+v", entry)
	}
}

func TestAutocompleteUsesKeywordsAndGlobals(t *testing.T) {
	m := newTestREPL(t)
	m, _ = submit(t, m, "var counter = 0;")

	m.textInput.SetValue("print coun")
	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = model.(replModel)
	if got := m.textInput.Value(); got != "print counter" {
		t.Fatalf("expected variable completion, got %q", got)
	}

	m.textInput.SetValue("whi")
	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = model.(replModel)
	if got := m.textInput.Value(); got != "while" {
		t.Fatalf("expected keyword completion, got %q", got)
	}

	m.textInput.SetValue("f")
	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = model.(replModel)
	last := m.history[len(m.history)-1]
	if !strings.Contains(last.output, "false") || !strings.Contains(last.output, "for") {
		t.Fatalf("expected completion list, got %q", last.output)
	}
}

func TestHistoryNavigationAndLimit(t *testing.T) {
	cfg := lox.DefaultFileConfig()
	cfg.REPL.HistoryLimit = 2
	m := newREPLModel(cfg)

	m, _ = submit(t, m, "1")
	m, _ = submit(t, m, "2")
	m, _ = submit(t, m, "3")
	if len(m.cmdHistory) != 2 || m.cmdHistory[0] != "2" {
		t.Fatalf("history should keep the last 2 inputs, got %v", m.cmdHistory)
	}

	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = model.(replModel)
	if m.textInput.Value() != "3" {
		t.Fatalf("up should recall the last input, got %q", m.textInput.Value())
	}
	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = model.(replModel)
	if m.textInput.Value() != "2" {
		t.Fatalf("second up should recall the previous input, got %q", m.textInput.Value())
	}
	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = model.(replModel)
	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = model.(replModel)
	if m.textInput.Value() != "" {
		t.Fatalf("down past the newest entry should clear input, got %q", m.textInput.Value())
	}
}

func TestViewRendersVariablesPanel(t *testing.T) {
	m := newTestREPL(t)
	model, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	m = model.(replModel)
	m, _ = submit(t, m, "var name = \"lox\";")
	m, _ = submit(t, m, ":vars")

	view := m.View()
	if !strings.Contains(view, "Variables") || !strings.Contains(view, "name") {
		t.Fatalf("variables panel missing from view:\n%s", view)
	}
}
