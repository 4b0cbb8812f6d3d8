package plan

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Terminal control sequences for in-place repainting.
const (
	cursorSave    = "\x1b[s"
	cursorRestore = "\x1b[u"
	clearToEnd    = "\x1b[J"
)

const maxContentWidth = 70

var (
	headerStyle      = lipgloss.NewStyle().Bold(true)
	explanationStyle = lipgloss.NewStyle().Faint(true)
	ruleStyle        = lipgloss.NewStyle().Faint(true)
)

// statusGlyph maps each status to its display glyph.
func statusGlyph(s Status) string {
	switch s {
	case StatusPending:
		return "⏳"
	case StatusInProgress:
		return "🔄"
	case StatusCompleted:
		return "✅"
	}
	return "❓"
}

// summaryOrder is the display order for the status count summary.
var summaryOrder = []Status{StatusInProgress, StatusPending, StatusCompleted}

// Renderer repaints a plan document in place. The first paint saves the
// cursor position as the anchor; every later paint restores it, clears to
// the end of the display, and rewrites the frame so the same screen region
// is overwritten rather than appended to.
type Renderer struct {
	w        io.Writer
	anchored bool
}

// NewRenderer creates a Renderer writing to w.
func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{w: w}
}

// Repaint draws doc over the previously rendered frame. Output for one
// frame is written in a single call so partial frames never flash.
func (r *Renderer) Repaint(doc *Document) error {
	var sb strings.Builder
	if r.anchored {
		sb.WriteString(cursorRestore)
		sb.WriteString(clearToEnd)
	} else {
		sb.WriteString(cursorSave)
		r.anchored = true
	}
	sb.WriteString(Frame(doc))

	_, err := io.WriteString(r.w, sb.String())
	return err
}

// Settle terminates the rendered region so subsequent output composes
// cleanly below it. Safe to call when nothing was ever rendered.
func (r *Renderer) Settle() {
	if !r.anchored {
		return
	}
	io.WriteString(r.w, "\n")
	r.anchored = false
}

// Frame formats doc as a fixed-layout frame: header with timestamp and
// explanation, status summary, and the ordered item list. It is a pure
// function of the document and carries no trailing newline, so repaints
// never shift the anchor.
func Frame(doc *Document) string {
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString(headerStyle.Render(fmt.Sprintf("📊 Progress: %d tasks — updated %s", len(doc.Todos), doc.UpdatedAt)))
	sb.WriteString("\n")
	if doc.Explanation != "" {
		sb.WriteString("   " + explanationStyle.Render(doc.Explanation) + "\n")
	}

	counts := doc.CountByStatus()
	for _, status := range summaryOrder {
		sb.WriteString(fmt.Sprintf("   %s %s: %d\n", statusGlyph(status), status, counts[status]))
	}

	sb.WriteString("\n📋 Current Plan:\n")
	for i, item := range doc.Todos {
		content := item.Content
		if runes := []rune(content); len(runes) > maxContentWidth {
			content = string(runes[:maxContentWidth-3]) + "..."
		}
		sb.WriteString(fmt.Sprintf("   %2d. %s [%-12s] %s\n", i+1, statusGlyph(item.Status), item.Status, content))
	}
	sb.WriteString(ruleStyle.Render(strings.Repeat("=", 60)))

	return sb.String()
}
