// Package ui is the interactive terminal front end: the current Task List
// and the saved records side by side, with a status line fed by the session
// and by run events.
package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/VoxDroid/lnchr/internal/sequencer"
	"github.com/VoxDroid/lnchr/internal/session"
)

type pane int

const (
	paneItems pane = iota
	paneRecords
)

// TuiModel is the Bubble Tea model used by cmd/tui.
type TuiModel struct {
	sess *session.Session
	ctx  context.Context
	keys keyMap
	help help.Model

	focus        pane
	itemCursor   int
	recordCursor int

	prompt      promptKind
	input       textinput.Model
	pendingPath string
	pendingName string

	status    string
	running   bool
	runEvents <-chan sequencer.Event
	runNote   string // shown after every run status, e.g. a failed bootstrap save

	width  int
	height int
}

// Messages
type runEventMsg sequencer.Event
type runDoneMsg struct{}

// NewModel builds the model over an already started session. status is the
// initial status line, usually the Startup message.
func NewModel(ctx context.Context, sess *session.Session, status string) *TuiModel {
	in := textinput.New()
	in.CharLimit = 4096
	m := &TuiModel{
		sess:   sess,
		ctx:    ctx,
		keys:   defaultKeys(),
		help:   help.New(),
		input:  in,
		status: status,
	}
	if sel := sess.Selected(); sel >= 0 {
		m.recordCursor = sel
	}
	return m
}

// NewProgram constructs the tea.Program for the TUI.
func NewProgram(ctx context.Context, sess *session.Session, status string) *tea.Program {
	return tea.NewProgram(NewModel(ctx, sess, status), tea.WithAltScreen(), tea.WithContext(ctx))
}

// Init implements tea.Model.
func (m *TuiModel) Init() tea.Cmd { return nil }

// readLoop returns a command that reads one event from the channel and
// returns it as a tea.Msg. The caller should return the readLoop command
// again from Update to continue the stream.
func readLoop(ch <-chan sequencer.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return runDoneMsg{}
		}
		return runEventMsg(ev)
	}
}

// Update implements tea.Model.
func (m *TuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil
	case runEventMsg:
		ev := sequencer.Event(msg)
		m.status = ev.String()
		if m.runNote != "" {
			m.status += "; " + m.runNote
		}
		if ev.Kind == sequencer.EventTerminating {
			return m, tea.Quit
		}
		return m, readLoop(m.runEvents)
	case runDoneMsg:
		m.running = false
		m.runEvents = nil
		return m, nil
	case tea.KeyMsg:
		if m.prompt != promptNone {
			return m.updatePrompt(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *TuiModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit
	case key.Matches(msg, k.Switch):
		if m.focus == paneItems {
			m.focus = paneRecords
		} else {
			m.focus = paneItems
		}
	case key.Matches(msg, k.Up):
		m.moveCursor(-1)
	case key.Matches(msg, k.Down):
		m.moveCursor(1)
	case key.Matches(msg, k.Add):
		m.focus = paneItems
		m.ask(promptPath, "")
	case key.Matches(msg, k.Remove):
		m.removeItem()
	case key.Matches(msg, k.Delay):
		if items := m.sess.Items(); m.itemCursor < len(items) {
			m.ask(promptEditDelay, formatDelay(items[m.itemCursor].Delay))
		}
	case key.Matches(msg, k.MoveUp):
		m.moveSelected(true)
	case key.Matches(msg, k.MoveDown):
		m.moveSelected(false)
	case key.Matches(msg, k.Save):
		m.ask(promptSaveName, m.selectedName())
	case key.Matches(msg, k.Delete):
		if rec, err := m.sess.Registry().Record(m.recordCursor); err == nil {
			m.pendingName = rec.Name
			m.ask(promptConfirmDelete, "")
		}
	case key.Matches(msg, k.Rename):
		if rec, err := m.sess.Registry().Record(m.recordCursor); err == nil {
			m.ask(promptRename, rec.Name)
		}
	case key.Matches(msg, k.Load):
		m.loadRecord()
	case key.Matches(msg, k.Toggle):
		m.status = "close after run: " + onOff(m.sess.ToggleCloseAfterRun())
	case key.Matches(msg, k.Run):
		return m, m.startRun()
	}
	return m, nil
}

func (m *TuiModel) moveCursor(delta int) {
	if m.focus == paneItems {
		m.itemCursor = clamp(m.itemCursor+delta, m.sess.Len())
		return
	}
	m.recordCursor = clamp(m.recordCursor+delta, m.sess.Registry().Len())
}

func (m *TuiModel) removeItem() {
	removed, err := m.sess.RemoveItem(m.itemCursor)
	if err != nil {
		m.setErr(err)
		return
	}
	m.itemCursor = clamp(m.itemCursor, m.sess.Len())
	m.status = "removed " + removed.Path
}

// moveSelected moves the cursor's entry in the focused pane and keeps the
// cursor on it.
func (m *TuiModel) moveSelected(up bool) {
	var (
		moved bool
		err   error
	)
	if m.focus == paneItems {
		if up {
			moved, err = m.sess.MoveItemUp(m.itemCursor)
		} else {
			moved, err = m.sess.MoveItemDown(m.itemCursor)
		}
		if moved {
			m.itemCursor += step(up)
		}
	} else {
		if up {
			moved, err = m.sess.MoveRecordUp(m.ctx, m.recordCursor)
		} else {
			moved, err = m.sess.MoveRecordDown(m.ctx, m.recordCursor)
		}
		if moved {
			m.recordCursor += step(up)
		}
	}
	if err != nil {
		m.setErr(err)
	}
}

func (m *TuiModel) loadRecord() {
	if m.focus != paneRecords {
		return
	}
	if err := m.sess.LoadRecord(m.recordCursor); err != nil {
		m.setErr(err)
		return
	}
	m.itemCursor = 0
	m.status = "loaded " + quote(m.selectedName())
}

func (m *TuiModel) startRun() tea.Cmd {
	if m.running {
		m.status = "a run is already in progress"
		return nil
	}
	run, err := m.sess.Run(m.ctx)
	if err != nil {
		m.setErr(err)
		return nil
	}
	m.running = true
	m.runEvents = run.Events()
	m.runNote = ""
	if run.BootstrapErr != nil {
		m.runNote = "could not save default record: " + run.BootstrapErr.Error()
		m.status = "error: " + m.runNote
	}
	if sel := m.sess.Selected(); sel >= 0 {
		m.recordCursor = sel
	}
	return readLoop(m.runEvents)
}

func (m *TuiModel) selectedName() string {
	rec, err := m.sess.Registry().Record(m.sess.Selected())
	if err != nil {
		return ""
	}
	return rec.Name
}

func (m *TuiModel) setErr(err error) { m.status = "error: " + err.Error() }

func clamp(i, n int) int {
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

func step(up bool) int {
	if up {
		return -1
	}
	return 1
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func quote(s string) string { return "'" + s + "'" }
