package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mgomes/lox/lox"
)

type replTheme struct {
	prompt  lipgloss.Style
	value   lipgloss.Style
	failure lipgloss.Style
	muted   lipgloss.Style
	title   lipgloss.Style
	name    lipgloss.Style
	panel   lipgloss.Style
}

func newTheme() replTheme {
	accent := lipgloss.Color("#3B82F6")
	highlight := lipgloss.Color("#F59E0B")
	muted := lipgloss.Color("#6B7280")

	return replTheme{
		prompt:  lipgloss.NewStyle().Foreground(accent).Bold(true),
		value:   lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")),
		failure: lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")),
		muted:   lipgloss.NewStyle().Foreground(muted),
		title:   lipgloss.NewStyle().Foreground(accent).Bold(true),
		name:    lipgloss.NewStyle().Foreground(highlight),
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1),
	}
}

var theme = newTheme()

// replKeys implements help.KeyMap so the footer is generated from the same
// bindings Update matches against.
type replKeys struct {
	Prev       key.Binding
	Next       key.Binding
	Submit     key.Binding
	Complete   key.Binding
	ToggleVars key.Binding
	ToggleHelp key.Binding
	Clear      key.Binding
	Quit       key.Binding
}

func (k replKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.ToggleHelp, k.ToggleVars, k.Clear, k.Quit}
}

func (k replKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.Submit, k.Complete},
		{k.ToggleHelp, k.ToggleVars, k.Clear, k.Quit},
	}
}

var keys = replKeys{
	Prev:       key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "previous input")),
	Next:       key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "next input")),
	Submit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "evaluate")),
	Complete:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "complete")),
	ToggleVars: key.NewBinding(key.WithKeys("ctrl+v"), key.WithHelp("ctrl+v", "vars")),
	ToggleHelp: key.NewBinding(key.WithKeys("ctrl+k"), key.WithHelp("ctrl+k", "help")),
	Clear:      key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "clear")),
	Quit:       key.NewBinding(key.WithKeys("ctrl+c", "ctrl+d"), key.WithHelp("ctrl+c", "quit")),
}

// historyEntry is one submitted line. printed holds what print statements
// wrote; output is the echoed value or the error.
type historyEntry struct {
	input   string
	printed string
	output  string
	isErr   bool
}

type replModel struct {
	textInput textinput.Model
	help      help.Model

	engine *lox.Engine
	env    *lox.Environment
	out    *bytes.Buffer

	history      []historyEntry
	cmdHistory   []string
	historyIdx   int
	historyLimit int

	width       int
	height      int
	showHelp    bool
	showVars    bool
	quitting    bool
	initialized bool
}

func newREPLModel(cfg lox.FileConfig) replModel {
	ti := textinput.New()
	ti.Placeholder = "expression or statement"
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60
	ti.PromptStyle = theme.prompt
	ti.Prompt = cfg.REPL.Prompt

	out := new(bytes.Buffer)

	return replModel{
		textInput:    ti,
		help:         help.New(),
		engine:       lox.MustNewEngine(cfg.EngineConfig(out)),
		env:          lox.NewEnvironment(),
		out:          out,
		historyIdx:   -1,
		historyLimit: cfg.REPL.HistoryLimit,
	}
}

func (m replModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tea.EnterAltScreen)
}

func (m replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.textInput.Width = msg.Width - 10
		m.help.Width = msg.Width
		m.initialized = true
		return m, nil
	case tea.KeyMsg:
		if next, cmd, handled := m.handleKey(msg); handled {
			return next, cmd
		}
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// handleKey reports handled=false for keys that belong to the text input.
func (m replModel) handleKey(msg tea.KeyMsg) (replModel, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return m, tea.Quit, true
	case key.Matches(msg, keys.Clear):
		m.history = nil
	case key.Matches(msg, keys.ToggleVars):
		m.showVars = !m.showVars
	case key.Matches(msg, keys.ToggleHelp):
		m.showHelp = !m.showHelp
	case key.Matches(msg, keys.Prev):
		m = m.recall(-1)
	case key.Matches(msg, keys.Next):
		m = m.recall(1)
	case key.Matches(msg, keys.Complete):
		m = m.handleAutocomplete()
	case key.Matches(msg, keys.Submit):
		return m.submit()
	default:
		return m, nil, false
	}
	return m, nil, true
}

func (m replModel) submit() (replModel, tea.Cmd, bool) {
	input := strings.TrimSpace(m.textInput.Value())
	if input == "" {
		return m, nil, true
	}

	var cmd tea.Cmd
	if strings.HasPrefix(input, ":") {
		m, cmd = m.handleCommand(input)
	} else {
		m.history = append(m.history, m.evaluate(input))
		m = m.rememberCommand(input)
	}
	m.textInput.SetValue("")
	m.historyIdx = -1
	return m, cmd, true
}

// recall moves through previous inputs. Stepping forward past the newest
// input clears the line.
func (m replModel) recall(delta int) replModel {
	if len(m.cmdHistory) == 0 {
		return m
	}
	switch {
	case delta < 0 && m.historyIdx == -1:
		m.historyIdx = len(m.cmdHistory) - 1
	case delta < 0:
		m.historyIdx = max(m.historyIdx-1, 0)
	case m.historyIdx == -1:
		return m
	case m.historyIdx+1 >= len(m.cmdHistory):
		m.historyIdx = -1
		m.textInput.SetValue("")
		return m
	default:
		m.historyIdx++
	}
	m.textInput.SetValue(m.cmdHistory[m.historyIdx])
	m.textInput.CursorEnd()
	return m
}

// rememberCommand appends input to the navigable history, dropping the
// oldest entries past the configured limit.
func (m replModel) rememberCommand(input string) replModel {
	m.cmdHistory = append(m.cmdHistory, input)
	if m.historyLimit > 0 && len(m.cmdHistory) > m.historyLimit {
		m.cmdHistory = append([]string(nil), m.cmdHistory[len(m.cmdHistory)-m.historyLimit:]...)
	}
	return m
}

func (m replModel) handleCommand(input string) (replModel, tea.Cmd) {
	name := strings.Fields(input)[0]

	switch name {
	case ":help", ":h":
		m.showHelp = !m.showHelp
	case ":clear", ":c":
		m.history = nil
	case ":vars", ":v":
		m.showVars = !m.showVars
	case ":reset", ":r":
		m.env.Reset()
		m.history = append(m.history, historyEntry{input: input, output: "environment reset"})
	case ":quit", ":q":
		m.quitting = true
		return m, tea.Quit
	default:
		m.history = append(m.history, historyEntry{
			input:  input,
			output: fmt.Sprintf("unknown command %s (try :help)", name),
			isErr:  true,
		})
	}
	return m, nil
}

// handleAutocomplete completes the word under the cursor from the keyword
// list and the global bindings. Several candidates are listed instead.
func (m replModel) handleAutocomplete() replModel {
	input := m.textInput.Value()
	start := len(input)
	for start > 0 && isWordByte(input[start-1]) {
		start--
	}
	partial := input[start:]
	if partial == "" {
		return m
	}

	var candidates []string
	for _, word := range lox.Keywords() {
		if strings.HasPrefix(word, partial) {
			candidates = append(candidates, word)
		}
	}
	for _, binding := range m.env.Globals() {
		if strings.HasPrefix(binding.Name, partial) {
			candidates = append(candidates, binding.Name)
		}
	}

	switch len(candidates) {
	case 0:
	case 1:
		m.textInput.SetValue(input[:start] + candidates[0])
		m.textInput.CursorEnd()
	default:
		m.history = append(m.history, historyEntry{output: "completions: " + strings.Join(candidates, ", ")})
	}
	return m
}

func isWordByte(b byte) bool {
	return ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z') || ('0' <= b && b <= '9') || b >= 0x80
}

// evaluate echoes the value of a bare expression. Anything that does not
// parse as one expression runs as a program, so declarations and print
// statements work as typed. Bindings persist in m.env either way.
func (m replModel) evaluate(input string) historyEntry {
	ctx := context.Background()
	entry := historyEntry{input: input}
	m.out.Reset()

	val, err := m.engine.Evaluate(ctx, m.env, input)
	if err == nil {
		entry.output = val.String()
		return entry
	}
	var diags lox.Diagnostics
	if !errors.As(err, &diags) {
		entry.output = err.Error()
		entry.isErr = true
		return entry
	}

	err = m.engine.Run(ctx, m.env, input)
	entry.printed = strings.TrimSuffix(m.out.String(), "\n")
	if err != nil {
		entry.output = err.Error()
		entry.isErr = true
	}
	return entry
}

func (m replModel) View() string {
	if !m.initialized {
		return "Loading..."
	}
	if m.quitting {
		return theme.muted.Render("bye\n")
	}

	globals := m.env.Globals()

	var b strings.Builder
	b.WriteString(theme.title.Padding(0, 1).Render("lox") + "\n")
	b.WriteString(theme.muted.Render(strings.Repeat("─", max(min(m.width-2, 60), 0))) + "\n\n")

	reserved := 8
	if m.showHelp {
		reserved += 6
	}
	if m.showVars {
		reserved += len(globals) + 3
	}
	visible := m.history
	if limit := max(m.height-reserved, 0); len(visible) > limit {
		visible = visible[len(visible)-limit:]
	}
	for _, entry := range visible {
		b.WriteString(renderEntry(entry))
	}

	if m.showVars {
		b.WriteString(renderVarsPanel(globals) + "\n")
	}
	if m.showHelp {
		b.WriteString(m.renderHelpPanel() + "\n")
	}

	b.WriteString(m.textInput.View() + "\n\n")
	b.WriteString(m.help.ShortHelpView(keys.ShortHelp()))
	return b.String()
}

func renderEntry(entry historyEntry) string {
	var b strings.Builder
	if entry.input != "" {
		b.WriteString(theme.muted.Render("  › ") + entry.input + "\n")
	}
	if entry.printed != "" {
		for _, line := range strings.Split(entry.printed, "\n") {
			b.WriteString("    " + line + "\n")
		}
	}
	switch {
	case entry.isErr:
		b.WriteString("  " + theme.failure.Render("✗ "+entry.output) + "\n")
	case entry.output != "":
		b.WriteString("  " + theme.value.Render("→ "+entry.output) + "\n")
	}
	b.WriteString("\n")
	return b.String()
}

func renderVarsPanel(globals []lox.Binding) string {
	if len(globals) == 0 {
		return theme.panel.Render(theme.muted.Render("no variables defined"))
	}
	lines := []string{theme.title.Render("Variables")}
	for _, binding := range globals {
		lines = append(lines, fmt.Sprintf("  %s = %s", theme.name.Render(binding.Name), binding.Value))
	}
	return theme.panel.Render(strings.Join(lines, "\n"))
}

func (m replModel) renderHelpPanel() string {
	commands := theme.muted.Render(":help  :vars  :clear  :reset  :quit")
	return theme.panel.Render(theme.title.Render("Help") + "\n" + m.help.FullHelpView(keys.FullHelp()) + "\n" + commands)
}

func runREPL(cfg lox.FileConfig) error {
	p := tea.NewProgram(newREPLModel(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
