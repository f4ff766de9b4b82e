package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Makepad-fr/tada/internal/model"
)

// Theme bundles palette, symbols and box borders. It never touches todo
// data; renderers take it as an argument.
type Theme struct {
	Name string

	Title, Muted, Accent, Success, Pending, Error lipgloss.Style
	Done, Selected, Overdue, Help                 lipgloss.Style
	Categories                                    map[model.Category]lipgloss.Style

	Border      lipgloss.Border
	BorderColor lipgloss.TerminalColor

	BoxUnchecked, BoxChecked string
	SymDone, SymPending      string
	SymOK, SymFail           string
}

const (
	Light = "light"
	Dark  = "dark"
	Mono  = "mono"
)

// Names lists the selectable themes.
func Names() []string { return []string{Light, Dark, Mono} }

// Lookup returns the named theme, dark for anything unknown.
func Lookup(name string) Theme {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case Light:
		return light()
	case Mono:
		return mono()
	default:
		return dark()
	}
}

// Toggle switches between light and dark. Mono goes to dark.
func (t Theme) Toggle() Theme {
	if t.Name == Dark {
		return light()
	}
	return dark()
}

func base() Theme {
	return Theme{
		Border:       lipgloss.RoundedBorder(),
		BoxUnchecked: "☐",
		BoxChecked:   "☑",
		SymDone:      "✔",
		SymPending:   "•",
		SymOK:        "✔",
		SymFail:      "✖",
	}
}

func dark() Theme {
	t := base()
	t.Name = Dark
	t.Title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F9FAFB"))
	t.Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))
	t.Accent = lipgloss.NewStyle().Foreground(lipgloss.Color("#60A5FA"))
	t.Success = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ADE80"))
	t.Pending = lipgloss.NewStyle().Foreground(lipgloss.Color("#FBBF24"))
	t.Error = lipgloss.NewStyle().Foreground(lipgloss.Color("#F87171")).Bold(true)
	t.Done = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF")).Strikethrough(true)
	t.Selected = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#60A5FA"))
	t.Overdue = lipgloss.NewStyle().Foreground(lipgloss.Color("#F87171")).Bold(true)
	t.Help = lipgloss.NewStyle().Faint(true)
	t.BorderColor = lipgloss.Color("#374151")
	t.Categories = map[model.Category]lipgloss.Style{
		model.Work:     lipgloss.NewStyle().Foreground(lipgloss.Color("#BFDBFE")).Background(lipgloss.Color("#1E3A8A")),
		model.Personal: lipgloss.NewStyle().Foreground(lipgloss.Color("#BBF7D0")).Background(lipgloss.Color("#14532D")),
		model.Shopping: lipgloss.NewStyle().Foreground(lipgloss.Color("#FDE68A")).Background(lipgloss.Color("#78350F")),
	}
	return t
}

func light() Theme {
	t := base()
	t.Name = Light
	t.Title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#111827"))
	t.Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	t.Accent = lipgloss.NewStyle().Foreground(lipgloss.Color("#2563EB"))
	t.Success = lipgloss.NewStyle().Foreground(lipgloss.Color("#16A34A"))
	t.Pending = lipgloss.NewStyle().Foreground(lipgloss.Color("#D97706"))
	t.Error = lipgloss.NewStyle().Foreground(lipgloss.Color("#DC2626")).Bold(true)
	t.Done = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")).Strikethrough(true)
	t.Selected = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2563EB"))
	t.Overdue = lipgloss.NewStyle().Foreground(lipgloss.Color("#DC2626")).Bold(true)
	t.Help = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	t.BorderColor = lipgloss.Color("#E5E7EB")
	t.Categories = map[model.Category]lipgloss.Style{
		model.Work:     lipgloss.NewStyle().Foreground(lipgloss.Color("#1E40AF")).Background(lipgloss.Color("#DBEAFE")),
		model.Personal: lipgloss.NewStyle().Foreground(lipgloss.Color("#166534")).Background(lipgloss.Color("#DCFCE7")),
		model.Shopping: lipgloss.NewStyle().Foreground(lipgloss.Color("#92400E")).Background(lipgloss.Color("#FEF3C7")),
	}
	return t
}

func mono() Theme {
	plain := lipgloss.NewStyle()
	t := Theme{
		Name:    Mono,
		Title:   plain.Bold(true),
		Muted:   plain,
		Accent:  plain,
		Success: plain,
		Pending: plain,
		Error:   plain,
		Done:    plain,
		// Reverse video is the only selection cue left without color.
		Selected: plain.Reverse(true),
		Overdue:  plain,
		Help:     plain,
		Border: lipgloss.Border{
			Top: "-", Bottom: "-", Left: "|", Right: "|",
			TopLeft: "+", TopRight: "+", BottomLeft: "+", BottomRight: "+",
		},
		BorderColor:  lipgloss.NoColor{},
		BoxUnchecked: "[ ]",
		BoxChecked:   "[x]",
		SymDone:      "x",
		SymPending:   "-",
		SymOK:        "ok",
		SymFail:      "error:",
	}
	t.Categories = map[model.Category]lipgloss.Style{}
	return t
}
