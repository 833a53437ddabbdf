package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/VoxDroid/lnchr/internal/sequencer"
	"github.com/VoxDroid/lnchr/internal/tui/sanitize"
)

// View implements tea.Model.
func (m *TuiModel) View() string {
	paneW := minPaneWidth
	if m.width > 0 {
		paneW = max(minPaneWidth, m.width/2-2)
	}
	paneH := minPaneHeight
	if m.height > 0 {
		paneH = max(minPaneHeight, m.height-8)
	}

	items := m.renderItems(paneW-4, paneH)
	records := m.renderRecords(paneW-4, paneH)
	left, right := paneStyle, paneStyle
	if m.focus == paneItems {
		left = focusedStyle
	} else {
		right = focusedStyle
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		left.Width(paneW).Height(paneH).Render(items),
		right.Width(paneW).Height(paneH).Render(records),
	)

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(body)
	b.WriteString("\n")
	if m.prompt != promptNone {
		b.WriteString(promptStyle.Render(sanitize.Display(m.prompt.label(m.pendingName))))
		if !m.prompt.yesNo() {
			b.WriteString(" " + m.input.View())
		}
	} else {
		b.WriteString(statusStyle.Render(sanitize.Display(m.status)))
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *TuiModel) renderHeader() string {
	h := titleStyle.Render("lnchr") + dimStyle.Render("  close after run: "+onOff(m.sess.CloseAfterRun()))
	if m.running {
		h += "  " + runningBadge.Render("RUNNING")
	}
	return h
}

func (m *TuiModel) renderItems(width, height int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Task list") + "\n")
	items := m.sess.Items()
	if len(items) == 0 {
		b.WriteString(dimStyle.Render("empty: press a to add an item"))
		return b.String()
	}
	for _, it := range window(len(items), m.itemCursor, height-1) {
		item := items[it]
		line := fmt.Sprintf("%d. %s", item.Order, truncate(sanitize.Display(filepath.Base(item.Path)), width-12))
		if item.Delay > 0 {
			line += dimStyle.Render(" +" + sequencer.Seconds(item.Delay).String())
		}
		b.WriteString(m.cursorLine(line, m.focus == paneItems && it == m.itemCursor) + "\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (m *TuiModel) renderRecords(width, height int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Saved records") + "\n")
	recs := m.sess.Registry().Records()
	if len(recs) == 0 {
		b.WriteString(dimStyle.Render("none yet: press s to save"))
		return b.String()
	}
	for _, i := range window(len(recs), m.recordCursor, height-1) {
		mark := "  "
		if i == m.sess.Selected() {
			mark = "* "
		}
		line := mark + truncate(sanitize.Display(recs[i].Name), width-14) + dimStyle.Render(fmt.Sprintf(" (%d)", len(recs[i].Items)))
		b.WriteString(m.cursorLine(line, m.focus == paneRecords && i == m.recordCursor) + "\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (m *TuiModel) cursorLine(line string, on bool) string {
	if on {
		return cursorStyle.Render(line)
	}
	return line
}

// window returns the indices of at most size entries out of n, scrolled so
// cursor stays visible.
func window(n, cursor, size int) []int {
	if size < 1 {
		size = 1
	}
	start := 0
	if cursor >= size {
		start = cursor - size + 1
	}
	end := min(n, start+size)
	out := make([]int, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, i)
	}
	return out
}

func truncate(s string, width int) string {
	r := []rune(s)
	if width < 4 || len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}
