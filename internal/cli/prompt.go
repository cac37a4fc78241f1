package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/scenesvg/pkg/scale"
)

// errPromptCancelled is returned when the user leaves the scale prompt.
var errPromptCancelled = errors.New("scale prompt cancelled")

// Prompt styles
var (
	promptInputStyle = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
	promptErrorStyle = lipgloss.NewStyle().Foreground(colorRed)
	promptDimStyle   = lipgloss.NewStyle().Foreground(colorDim)
)

// scaleSuggestions are offered below the input.
var scaleSuggestions = []string{"1:1", "1:5", "1:10", "1:20", "1:50", "1:100", "1:200", "1:500", "1:1000"}

// =============================================================================
// ScalePromptModel - Interactive scale entry
// =============================================================================

// ScalePromptModel is the bubbletea model for entering a drawing scale.
// The input starts with the remembered scale; arrow keys pick a suggestion.
type ScalePromptModel struct {
	Input    string
	Cursor   int // index into scaleSuggestions, -1 while typing
	Selected *scale.Scale
	Err      string
}

// NewScalePromptModel creates a prompt prefilled with def.
func NewScalePromptModel(def scale.Scale) ScalePromptModel {
	m := ScalePromptModel{Cursor: -1}
	if def.Valid() {
		m.Input = def.String()
	}
	return m
}

func (m ScalePromptModel) Init() tea.Cmd {
	return nil
}

func (m ScalePromptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyEnter:
		parsed := scale.Parse(m.Input)
		if !parsed.Valid() {
			m.Err = fmt.Sprintf("%q is not a valid scale", m.Input)
			return m, nil
		}
		m.Selected = &parsed
		return m, tea.Quit
	case tea.KeyUp:
		if m.Cursor > 0 {
			m.Cursor--
			m.Input = scaleSuggestions[m.Cursor]
		}
	case tea.KeyDown:
		if m.Cursor < len(scaleSuggestions)-1 {
			m.Cursor++
			m.Input = scaleSuggestions[m.Cursor]
		}
	case tea.KeyBackspace:
		if r := []rune(m.Input); len(r) > 0 {
			m.Input = string(r[:len(r)-1])
		}
		m.Cursor, m.Err = -1, ""
	case tea.KeySpace:
		m.Input += " "
		m.Cursor, m.Err = -1, ""
	case tea.KeyRunes:
		m.Input += string(key.Runes)
		m.Cursor, m.Err = -1, ""
	}
	return m, nil
}

func (m ScalePromptModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Drawing Scale"))
	b.WriteString("\n")
	b.WriteString(promptDimStyle.Render("type 1:50, 2%, 1 cm = 1 m  ↑/↓ suggestions  ⏎ accept  esc cancel"))
	b.WriteString("\n\n")

	b.WriteString(StyleHighlight.Render(iconInfo) + " " + promptInputStyle.Render(m.Input) + "█")
	b.WriteString("  ")
	b.WriteString(describeScale(scale.Parse(m.Input)))
	b.WriteString("\n")
	if m.Err != "" {
		b.WriteString(promptErrorStyle.Render(m.Err))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	rows := make([][]string, len(scaleSuggestions))
	for i, s := range scaleSuggestions {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows[i] = []string{cursor, s, fmt.Sprintf("%g", scale.Parse(s).MustFactor())}
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Scale", "Factor").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case row == m.Cursor:
				return lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
			default:
				return lipgloss.NewStyle().Foreground(colorDim)
			}
		})
	b.WriteString(t.Render())
	b.WriteString("\n")

	return b.String()
}

// describeScale renders a short preview of a parsed scale.
func describeScale(s scale.Scale) string {
	f, ok := s.Factor()
	if !ok {
		return promptErrorStyle.Render("invalid scale")
	}
	formatted, _ := s.Format()
	return promptDimStyle.Render(fmt.Sprintf("= %s (%g)", formatted, f))
}

// promptScale asks for a scale on the terminal, prefilled with def.
func promptScale(ctx context.Context, def scale.Scale) (scale.Scale, error) {
	p := tea.NewProgram(NewScalePromptModel(def), tea.WithContext(ctx), tea.WithOutput(os.Stderr))
	final, err := p.Run()
	if err != nil {
		return scale.Scale{}, fmt.Errorf("scale prompt: %w", err)
	}
	m := final.(ScalePromptModel)
	if m.Selected == nil {
		return scale.Scale{}, errPromptCancelled
	}
	return *m.Selected, nil
}
