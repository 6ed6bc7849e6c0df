package game

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// DisplayStyles contains styling for narrated game output
type DisplayStyles struct {
	Header    lipgloss.Style
	Action    lipgloss.Style
	Overstore lipgloss.Style
	Played    lipgloss.Style
	Round     lipgloss.Style
	Winner    lipgloss.Style
	NoContest lipgloss.Style
}

// NewDisplayStyles creates styles bound to a renderer, so color support is
// detected for the writer the styles are used with
func NewDisplayStyles(r *lipgloss.Renderer) *DisplayStyles {
	return &DisplayStyles{
		Header: r.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true),
		Action: r.NewStyle().
			Foreground(lipgloss.Color("#74B9FF")),
		Overstore: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")),
		Played: r.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true),
		Round: r.NewStyle().
			Foreground(lipgloss.Color("#626262")),
		Winner: r.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),
		NoContest: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
	}
}

// Narrator is an EventSubscriber that writes each event as a styled line
type Narrator struct {
	out       io.Writer
	formatter *EventFormatter
	styles    *DisplayStyles
}

// NewNarrator creates a narrator writing to out. With color disabled, output
// is plain text regardless of the terminal.
func NewNarrator(out io.Writer, formatter *EventFormatter, color bool) *Narrator {
	renderer := lipgloss.NewRenderer(out)
	if !color {
		renderer.SetColorProfile(termenv.Ascii)
	}

	return &Narrator{
		out:       out,
		formatter: formatter,
		styles:    NewDisplayStyles(renderer),
	}
}

// OnEvent implements EventSubscriber
func (n *Narrator) OnEvent(event GameEvent) {
	line := n.formatter.Format(event)
	if line == "" {
		return
	}

	var style lipgloss.Style
	switch event.EventType() {
	case EventTypeGameStart:
		style = n.styles.Header
	case EventTypeCardOverstored:
		style = n.styles.Overstore
	case EventTypeCardPlayed:
		style = n.styles.Played
	case EventTypeRoundComplete:
		style = n.styles.Round
	case EventTypeGameWon:
		style = n.styles.Winner
	case EventTypePileExhausted:
		style = n.styles.NoContest
	default:
		style = n.styles.Action
	}

	fmt.Fprintln(n.out, style.Render(line))
}
