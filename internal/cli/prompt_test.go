package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/scenesvg/pkg/scale"
)

func press(m ScalePromptModel, msgs ...tea.KeyMsg) (ScalePromptModel, tea.Cmd) {
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(ScalePromptModel)
	}
	return m, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestScalePromptPrefill(t *testing.T) {
	m := NewScalePromptModel(scale.Parse("1:50"))
	if m.Input != "1:50" {
		t.Errorf("Input = %q, want 1:50", m.Input)
	}
	if m := NewScalePromptModel(scale.Parse("")); m.Input != "" {
		t.Errorf("Input = %q, want empty for an invalid default", m.Input)
	}
}

func TestScalePromptTyping(t *testing.T) {
	m := NewScalePromptModel(scale.Scale{})
	m, _ = press(m, runes("1"), runes("cm"), tea.KeyMsg{Type: tea.KeySpace}, runes("="), tea.KeyMsg{Type: tea.KeySpace}, runes("1m"))
	if m.Input != "1cm = 1m" {
		t.Fatalf("Input = %q, want %q", m.Input, "1cm = 1m")
	}

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyBackspace})
	if m.Input != "1cm = 1" {
		t.Errorf("Input after backspace = %q", m.Input)
	}

	m, cmd := press(m, runes("m"), tea.KeyMsg{Type: tea.KeyEnter})
	if m.Selected == nil {
		t.Fatal("Enter on a valid scale should select it")
	}
	if f := m.Selected.MustFactor(); f != 0.01 {
		t.Errorf("factor = %v, want 0.01", f)
	}
	if cmd == nil {
		t.Error("Enter should quit the prompt")
	}
}

func TestScalePromptInvalid(t *testing.T) {
	m := NewScalePromptModel(scale.Scale{})
	m, cmd := press(m, runes("1:0"), tea.KeyMsg{Type: tea.KeyEnter})
	if m.Selected != nil {
		t.Error("invalid scale should not be selected")
	}
	if m.Err == "" {
		t.Error("invalid scale should show an error")
	}
	if cmd != nil {
		t.Error("invalid scale should keep the prompt open")
	}
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyBackspace})
	if m.Err != "" {
		t.Error("editing should clear the error")
	}
}

func TestScalePromptSuggestions(t *testing.T) {
	m := NewScalePromptModel(scale.Scale{})
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown})
	if m.Cursor != 1 || m.Input != scaleSuggestions[1] {
		t.Errorf("Cursor = %d, Input = %q, want 1 and %q", m.Cursor, m.Input, scaleSuggestions[1])
	}
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeyUp})
	if m.Cursor != 0 {
		t.Errorf("Cursor = %d, want 0", m.Cursor)
	}
	if !strings.Contains(m.View(), "1:1000") {
		t.Error("View should list the suggestions")
	}
}

func TestScalePromptCancel(t *testing.T) {
	m := NewScalePromptModel(scale.Parse("1:50"))
	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.Selected != nil || cmd == nil {
		t.Error("Esc should quit without a selection")
	}
}
