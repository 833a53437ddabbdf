package ui

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/VoxDroid/lnchr/internal/errs"
	"github.com/VoxDroid/lnchr/internal/nameutil"
	"github.com/VoxDroid/lnchr/internal/registry"
)

type promptKind int

const (
	promptNone promptKind = iota
	promptPath
	promptDelay
	promptEditDelay
	promptSaveName
	promptConfirmReplace
	promptRename
	promptConfirmDelete
)

func (p promptKind) label(name string) string {
	switch p {
	case promptPath:
		return "Path to launch"
	case promptDelay, promptEditDelay:
		return "Delay in seconds"
	case promptSaveName:
		return "Save as"
	case promptConfirmReplace:
		return "Replace existing record " + quote(name) + "? (y/n)"
	case promptRename:
		return "New name"
	case promptConfirmDelete:
		return "Delete record " + quote(name) + "? (y/n)"
	default:
		return ""
	}
}

func (p promptKind) yesNo() bool { return p == promptConfirmReplace || p == promptConfirmDelete }

// ask opens a prompt. Text prompts start with value in the input.
func (m *TuiModel) ask(p promptKind, value string) {
	m.prompt = p
	m.input.Reset()
	if p.yesNo() {
		m.input.Blur()
		return
	}
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Focus()
}

func (m *TuiModel) closePrompt() {
	m.prompt = promptNone
	m.input.Blur()
	m.input.Reset()
}

func (m *TuiModel) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.prompt.yesNo() {
		switch strings.ToLower(msg.String()) {
		case "y":
			p := m.prompt
			m.closePrompt()
			m.confirmed(p)
		case "n", "esc":
			m.closePrompt()
			m.status = "cancelled"
		}
		return m, nil
	}
	switch msg.Type {
	case tea.KeyEsc:
		m.closePrompt()
		m.status = "cancelled"
		return m, nil
	case tea.KeyEnter:
		p, value := m.prompt, strings.TrimSpace(m.input.Value())
		m.closePrompt()
		m.submit(p, value)
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *TuiModel) submit(p promptKind, value string) {
	switch p {
	case promptPath:
		if value == "" {
			m.status = "path cannot be empty"
			return
		}
		m.pendingPath = value
		m.ask(promptDelay, "0")
	case promptDelay:
		d, err := parseDelay(value)
		if err == nil {
			err = m.sess.AddItem(m.pendingPath, d)
		}
		if err != nil {
			m.setErr(err)
			return
		}
		m.itemCursor = m.sess.Len() - 1
		m.status = "added " + m.pendingPath
	case promptEditDelay:
		d, err := parseDelay(value)
		if err == nil {
			err = m.sess.UpdateDelay(m.itemCursor, d)
		}
		if err != nil {
			m.setErr(err)
			return
		}
		m.status = "delay set to " + formatDelay(d) + "s"
	case promptSaveName:
		// the registry saves under the cleaned name, so collide on that
		m.pendingName = nameutil.OrDefault(value, registry.DefaultSaveName)
		if m.sess.Len() > 0 && m.sess.Registry().IndexOf(m.pendingName) >= 0 {
			m.ask(promptConfirmReplace, "")
			return
		}
		m.save(nil)
	case promptRename:
		if err := m.sess.RenameRecord(m.ctx, m.recordCursor, value); err != nil {
			m.setErr(err)
			return
		}
		m.status = "renamed to " + quote(value)
	}
}

func (m *TuiModel) confirmed(p promptKind) {
	switch p {
	case promptConfirmReplace:
		m.save(func(string) bool { return true })
	case promptConfirmDelete:
		removed, err := m.sess.DeleteRecord(m.ctx, m.recordCursor)
		if err != nil && removed.Name == "" {
			m.setErr(err)
			return
		}
		m.recordCursor = clamp(m.recordCursor, m.sess.Registry().Len())
		if err != nil {
			m.setErr(err)
			return
		}
		m.status = "deleted " + quote(removed.Name)
	}
}

func (m *TuiModel) save(confirm registry.ConfirmFunc) {
	res, err := m.sess.SaveCurrent(m.ctx, m.pendingName, confirm)
	if res.Name != "" {
		m.recordCursor = res.Index
	}
	if err != nil {
		m.setErr(err)
		return
	}
	if res.Replaced {
		m.status = "replaced " + quote(res.Name)
	} else {
		m.status = "saved " + quote(res.Name)
	}
}

func parseDelay(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	d, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errs.Validation("ui.delay", "invalid delay %q: expected seconds", s)
	}
	return d, nil
}

func formatDelay(d float64) string { return strconv.FormatFloat(d, 'f', -1, 64) }
