// Copyright (c) 2026 NBEConnect Team
// NBEConnect - NBE boiler integration setup
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/svj/nbeconnect/internal/flow"
	"github.com/svj/nbeconnect/internal/i18n"
)

// Driver advances a flow. *flow.Manager implements it.
type Driver interface {
	Configure(ctx context.Context, flowID string, input map[string]string) (flow.Result, error)
	Abort(flowID string) bool
}

var _ Driver = (*flow.Manager)(nil)

// resultMsg carries the outcome of a submission back into the model.
type resultMsg struct {
	res flow.Result
	err error
}

// formModel renders the form of the current flow step and submits it.
type formModel struct {
	ctx    context.Context
	driver Driver

	res        flow.Result
	inputs     []textinput.Model
	focusIndex int // len(inputs) is the submit button
	submitting bool
	err        error

	done      bool
	cancelled bool

	keys keyMap
	help help.Model
}

func newFormModel(ctx context.Context, d Driver, res flow.Result) formModel {
	m := formModel{
		ctx:    ctx,
		driver: d,
		keys:   defaultKeyMap,
		help:   help.New(),
	}
	m.applyResult(res)
	return m
}

// applyResult takes over a step result. Inputs are rebuilt only when the
// step changes so a re-shown form keeps what the user typed.
func (m *formModel) applyResult(res flow.Result) {
	sameStep := m.inputs != nil && m.res.Type == flow.ResultForm && m.res.StepID == res.StepID
	m.res = res
	if res.Terminal() {
		m.done = true
		return
	}
	if sameStep {
		return
	}

	m.inputs = make([]textinput.Model, len(res.Schema))
	for i, f := range res.Schema {
		t := textinput.New()
		t.Cursor.Style = focusedStyle
		t.CharLimit = 128
		t.Width = 40
		t.Prompt = "> "
		if f.Selector.Type == flow.SelectorPassword {
			t.EchoMode = textinput.EchoPassword
			t.EchoCharacter = '•'
		}
		if f.HasDefault {
			t.SetValue(f.Default)
		}
		m.inputs[i] = t
	}
	m.focusIndex = 0
	if len(m.inputs) > 0 {
		m.inputs[0].Focus()
		m.inputs[0].TextStyle = focusedStyle
	}
}

// values returns the current input of every field keyed by field key.
func (m formModel) values() map[string]string {
	out := make(map[string]string, len(m.inputs))
	for i, f := range m.res.Schema {
		out[f.Key] = m.inputs[i].Value()
	}
	return out
}

func (m formModel) submitCmd() tea.Cmd {
	ctx, d, flowID, input := m.ctx, m.driver, m.res.FlowID, m.values()
	return func() tea.Msg {
		res, err := d.Configure(ctx, flowID, input)
		return resultMsg{res: res, err: err}
	}
}

func (m formModel) Init() tea.Cmd {
	if m.done {
		return nil
	}
	return textinput.Blink
}

func (m formModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case resultMsg:
		m.submitting = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.applyResult(msg.res)
		return m, nil

	case tea.KeyMsg:
		if m.done || m.cancelled {
			switch msg.String() {
			case "enter", "q", "esc", "ctrl+c":
				return m, tea.Quit
			}
			return m, nil
		}

		switch {
		case key.Matches(msg, m.keys.Cancel):
			m.driver.Abort(m.res.FlowID)
			m.cancelled = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Submit) && m.focusIndex == len(m.inputs):
			if m.submitting {
				return m, nil
			}
			m.submitting = true
			return m, m.submitCmd()

		case key.Matches(msg, m.keys.Next), key.Matches(msg, m.keys.Submit):
			return m, m.moveFocus(1)

		case key.Matches(msg, m.keys.Prev):
			return m, m.moveFocus(-1)
		}
	}

	cmds := make([]tea.Cmd, len(m.inputs))
	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}
	return m, tea.Batch(cmds...)
}

func (m *formModel) moveFocus(delta int) tea.Cmd {
	m.focusIndex += delta
	if m.focusIndex > len(m.inputs) {
		m.focusIndex = 0
	} else if m.focusIndex < 0 {
		m.focusIndex = len(m.inputs)
	}

	cmds := make([]tea.Cmd, len(m.inputs))
	for i := range m.inputs {
		if i == m.focusIndex {
			cmds[i] = m.inputs[i].Focus()
			m.inputs[i].TextStyle = focusedStyle
			continue
		}
		m.inputs[i].Blur()
		m.inputs[i].TextStyle = lipgloss.NewStyle()
	}
	return tea.Batch(cmds...)
}

func (m formModel) View() string {
	if m.cancelled {
		return docStyle.Render(specialStyle.Render(i18n.T("flow.result.cancelled")))
	}
	if m.done {
		return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			outcomeStyle(m.res).Render(Outcome(m.res)),
			"",
			helpStyle.Render(i18n.T("form.done_help")),
		))
	}

	items := []string{titleStyle.Render(i18n.T("flow.title." + m.res.StepID))}
	for i, f := range m.res.Schema {
		label := labelStyle
		if i == m.focusIndex {
			label = focusedLabelStyle
		}
		items = append(items,
			label.Render(i18n.TOr("field."+f.Key+".label", f.Label)),
			m.inputs[i].View(),
			hintStyle.Render(i18n.TOr("field."+f.Key+".hint", f.Hint)),
			"",
		)
	}

	button := buttonStyle.Render(i18n.T("form.submit"))
	if m.focusIndex == len(m.inputs) {
		button = activeButtonStyle.Render(i18n.T("form.submit"))
	}
	items = append(items, button)

	if code := m.res.BaseError(); code != "" {
		items = append(items, "", errorStyle.Render(i18n.TOr("flow.error."+code, code)))
	}
	if m.err != nil {
		items = append(items, "", errorStyle.Render(i18n.T("form.error", m.err.Error())))
	}

	items = append(items, "", m.help.ShortHelpView(m.keys.ShortHelp()))
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, items...))
}

func outcomeStyle(res flow.Result) lipgloss.Style {
	if res.Type == flow.ResultAbort {
		return specialStyle
	}
	return successStyle
}

// Outcome returns the localized one-line summary of a terminal result.
func Outcome(res flow.Result) string {
	switch res.Type {
	case flow.ResultAbort:
		return i18n.TOr("flow.abort."+res.Reason, res.Reason)
	case flow.ResultCreateEntry:
		if res.Title == "" {
			return i18n.T("flow.result.updated", res.Handler)
		}
		id := ""
		if res.Entry != nil {
			id = res.Entry.ID
		}
		return i18n.T("flow.result.created", id, res.Data.Serial)
	}
	return ""
}
