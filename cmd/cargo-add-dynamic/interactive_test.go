package main

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestInputModel_enterValidates(t *testing.T) {
	m := newInputModel("Dependency", "serde", validateCrateName)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	got := next.(inputModel)
	if got.done {
		t.Fatal("empty input should not be accepted")
	}
	if got.errMsg == "" {
		t.Error("expected a validation message")
	}
	if cmd != nil {
		t.Error("expected no command while input is invalid")
	}

	got.textInput.SetValue("serde")
	next, cmd = got.Update(tea.KeyMsg{Type: tea.KeyEnter})
	got = next.(inputModel)
	if !got.done {
		t.Error("valid input should finish the prompt")
	}
	if cmd == nil {
		t.Error("expected quit command")
	}
	if got.View() != "" {
		t.Errorf("finished prompt should render nothing, got %q", got.View())
	}
}

func TestInputModel_typingClearsError(t *testing.T) {
	m := newInputModel("Dependency", "serde", validateCrateName)
	m.errMsg = "dependency name is required"

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	got := next.(inputModel)
	if got.errMsg != "" {
		t.Errorf("errMsg = %q, want cleared", got.errMsg)
	}
	if got.textInput.Value() != "s" {
		t.Errorf("value = %q, want s", got.textInput.Value())
	}
}

func TestInputModel_escAborts(t *testing.T) {
	m := newInputModel("Dependency", "serde", nil)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(inputModel).aborted {
		t.Error("esc should abort the prompt")
	}
}
