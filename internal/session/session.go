// Package session is the control layer shared by the CLI and the TUI. It
// owns the live Task List and its close-after-run flag, and mediates between
// the Record Registry and the Launch Sequencer.
package session

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jonboulle/clockwork"

	"github.com/VoxDroid/lnchr/internal/errs"
	"github.com/VoxDroid/lnchr/internal/registry"
	"github.com/VoxDroid/lnchr/internal/sequencer"
	"github.com/VoxDroid/lnchr/internal/tasklist"
)

// Session is single-writer: all methods are called from one control
// goroutine. Runs execute on their own goroutine and only ever see
// snapshots.
type Session struct {
	store registry.Store
	reg   *registry.Registry
	seq   *sequencer.Sequencer
	clock clockwork.Clock
	log   *slog.Logger

	list          *tasklist.List
	closeAfterRun bool
	selected      int
}

// Option configures a Session.
type Option func(*Session)

// WithClock sets the clock handed to the registry.
func WithClock(c clockwork.Clock) Option { return func(s *Session) { s.clock = c } }

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option { return func(s *Session) { s.log = l } }

// New builds a session over store and seq. Call Startup before use.
func New(store registry.Store, seq *sequencer.Sequencer, opts ...Option) *Session {
	s := &Session{
		store:    store,
		seq:      seq,
		clock:    clockwork.NewRealClock(),
		log:      slog.Default(),
		list:     tasklist.New(),
		selected: -1,
	}
	for _, o := range opts {
		o(s)
	}
	s.reg = registry.New(store, registry.WithClock(s.clock), registry.WithLogger(s.log))
	return s
}

// Startup loads the registry once. When it holds records, the first one
// becomes the current Task List. The returned message is meant for the
// status line and is set on failure too; a failed load leaves an empty,
// usable session.
func (s *Session) Startup(ctx context.Context) (string, error) {
	reg, err := registry.Open(ctx, s.store, registry.WithClock(s.clock), registry.WithLogger(s.log))
	s.reg = reg
	if err != nil {
		return fmt.Sprintf("could not load saved records: %v", err), err
	}
	if reg.Len() == 0 {
		return "no saved records", nil
	}
	if err := s.LoadRecord(0); err != nil {
		return err.Error(), err
	}
	rec, _ := reg.Record(0)
	return fmt.Sprintf("loaded record %q", rec.Name), nil
}

// Registry exposes the record registry for read access.
func (s *Session) Registry() *registry.Registry { return s.reg }

// Items returns a snapshot of the current Task List.
func (s *Session) Items() tasklist.Snapshot { return s.list.Snapshot() }

// Len returns the number of items in the current Task List.
func (s *Session) Len() int { return s.list.Len() }

// Selected returns the index of the record last loaded or saved, or -1.
func (s *Session) Selected() int { return s.selected }

// CloseAfterRun reports the current flag.
func (s *Session) CloseAfterRun() bool { return s.closeAfterRun }

// SetCloseAfterRun sets the flag for the current Task List.
func (s *Session) SetCloseAfterRun(v bool) { s.closeAfterRun = v }

// ToggleCloseAfterRun flips the flag and returns the new value.
func (s *Session) ToggleCloseAfterRun() bool {
	s.closeAfterRun = !s.closeAfterRun
	return s.closeAfterRun
}

// AddItem appends an item to the Task List.
func (s *Session) AddItem(path string, delay float64) error { return s.list.Add(path, delay) }

// RemoveItem removes the item at index.
func (s *Session) RemoveItem(index int) (tasklist.Item, error) { return s.list.RemoveAt(index) }

// UpdateDelay changes the delay of the item at index.
func (s *Session) UpdateDelay(index int, delay float64) error {
	return s.list.UpdateDelay(index, delay)
}

// MoveItemUp moves the item at index one place earlier.
func (s *Session) MoveItemUp(index int) (bool, error) { return s.list.MoveUp(index) }

// MoveItemDown moves the item at index one place later.
func (s *Session) MoveItemDown(index int) (bool, error) { return s.list.MoveDown(index) }

// LoadRecord installs a copy of the record at index as the Task List.
func (s *Session) LoadRecord(index int) error {
	items, car, err := s.reg.Load(index)
	if err != nil {
		return err
	}
	s.list = tasklist.FromItems(items)
	s.closeAfterRun = car
	s.selected = index
	return nil
}

// SaveCurrent saves the Task List under name. The registry refuses an empty
// Task List.
func (s *Session) SaveCurrent(ctx context.Context, name string, confirm registry.ConfirmFunc) (registry.SaveResult, error) {
	res, err := s.reg.Save(ctx, name, s.list.Snapshot().Items(), s.closeAfterRun, confirm)
	if res.Name != "" {
		s.selected = res.Index
	}
	return res, err
}

// DeleteRecord removes the record at index. The current Task List is kept.
func (s *Session) DeleteRecord(ctx context.Context, index int) (registry.HistoryRecord, error) {
	removed, err := s.reg.Delete(ctx, index)
	if removed.Name == "" {
		return removed, err
	}
	switch {
	case s.selected == index:
		s.selected = -1
	case s.selected > index:
		s.selected--
	}
	return removed, err
}

// RenameRecord renames the record at index.
func (s *Session) RenameRecord(ctx context.Context, index int, name string) error {
	return s.reg.Rename(ctx, index, name)
}

// MoveRecordUp moves the record at index one place earlier.
func (s *Session) MoveRecordUp(ctx context.Context, index int) (bool, error) {
	moved, err := s.reg.MoveUp(ctx, index)
	if moved {
		s.followSwap(index, index-1)
	}
	return moved, err
}

// MoveRecordDown moves the record at index one place later.
func (s *Session) MoveRecordDown(ctx context.Context, index int) (bool, error) {
	moved, err := s.reg.MoveDown(ctx, index)
	if moved {
		s.followSwap(index, index+1)
	}
	return moved, err
}

func (s *Session) followSwap(a, b int) {
	switch s.selected {
	case a:
		s.selected = b
	case b:
		s.selected = a
	}
}

// Running reports whether a run is in flight.
func (s *Session) Running() bool { return s.seq.Active() != nil }

// Started is a run begun by Session.Run. BootstrapErr is set when the
// registry was empty and saving the default record failed; the record then
// exists in memory only. The run itself started regardless.
type Started struct {
	*sequencer.Run
	Bootstrapped bool
	BootstrapErr error
}

// Run executes a snapshot of the Task List. When the registry is empty the
// list is first saved as the default record.
func (s *Session) Run(ctx context.Context) (Started, error) {
	if s.list.Len() == 0 {
		return Started{}, errs.Validation("session.run", "the task list is empty")
	}
	if s.Running() {
		return Started{}, sequencer.ErrRunInProgress
	}
	snap := s.list.Snapshot()
	created, bootErr := s.reg.BootstrapIfEmpty(ctx, snap.Items(), s.closeAfterRun)
	if created {
		s.selected = 0
	}
	if bootErr != nil {
		s.log.Warn("could not save default record", "err", bootErr)
	}
	run, err := s.seq.Start(ctx, snap, s.closeAfterRun)
	if err != nil {
		return Started{}, err
	}
	return Started{Run: run, Bootstrapped: created, BootstrapErr: bootErr}, nil
}

// Close releases the registry's store.
func (s *Session) Close() error { return s.reg.Close() }
