package registry

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jonboulle/clockwork"

	"github.com/VoxDroid/lnchr/internal/errs"
	"github.com/VoxDroid/lnchr/internal/nameutil"
	"github.com/VoxDroid/lnchr/internal/tasklist"
)

// Names given to records when the caller supplies none.
const (
	DefaultSaveName      = "Record"
	DefaultBootstrapName = "Default record"
)

// ErrDeclined is returned by Save when a name collision was not confirmed.
var ErrDeclined = errors.New("replace declined")

// ConfirmFunc is asked whether an existing record named name may be replaced.
type ConfirmFunc func(name string) bool

// SaveResult describes where Save put the record.
type SaveResult struct {
	Index    int
	Name     string
	Replaced bool
}

// Registry is the in-memory ordered collection of history records. Every
// mutation is followed by a full re-save through the Store. A Registry is a
// single-writer structure; callers serialise access.
type Registry struct {
	store   Store
	clock   clockwork.Clock
	log     *slog.Logger
	records []HistoryRecord
}

// Option configures a Registry.
type Option func(*Registry)

// WithClock sets the clock used for CreatedAt timestamps.
func WithClock(c clockwork.Clock) Option { return func(r *Registry) { r.clock = c } }

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option { return func(r *Registry) { r.log = l } }

// New returns an empty registry backed by store. Use Open to load existing
// records.
func New(store Store, opts ...Option) *Registry {
	r := &Registry{store: store, clock: clockwork.NewRealClock(), log: slog.Default()}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Open creates a registry and loads it once from store. A load failure is
// returned as a storage error together with a usable, empty registry.
func Open(ctx context.Context, store Store, opts ...Option) (*Registry, error) {
	r := New(store, opts...)
	recs, err := store.Load(ctx)
	if err != nil {
		r.log.Warn("registry load failed; starting empty", "err", err)
		return r, storageErr("registry.load", err)
	}
	r.records = CloneRecords(recs)
	for i := range r.records {
		r.records[i].Items = tasklist.FromItems(r.records[i].Items).Snapshot().Items()
	}
	r.log.Debug("registry loaded", "records", len(r.records))
	return r, nil
}

// Len returns the number of records.
func (r *Registry) Len() int { return len(r.records) }

// Records returns deep copies of all records in registry order.
func (r *Registry) Records() []HistoryRecord { return CloneRecords(r.records) }

// Record returns a deep copy of the record at index.
func (r *Registry) Record(index int) (HistoryRecord, error) {
	if err := r.check("registry.record", index); err != nil {
		return HistoryRecord{}, err
	}
	return r.records[index].Clone(), nil
}

// IndexOf returns the position of the record named name, or -1.
func (r *Registry) IndexOf(name string) int {
	for i := range r.records {
		if r.records[i].Name == name {
			return i
		}
	}
	return -1
}

// Selected returns the record designated at startup (the first), or -1 when
// the registry is empty.
func (r *Registry) Selected() int {
	if len(r.records) == 0 {
		return -1
	}
	return 0
}

// Save stores items under name. A blank name becomes DefaultSaveName. When a
// record with that name exists, confirm decides: declined leaves the registry
// untouched and returns ErrDeclined; accepted removes the old record and
// appends the new one at the end.
func (r *Registry) Save(ctx context.Context, name string, items []tasklist.Item, closeAfterRun bool, confirm ConfirmFunc) (SaveResult, error) {
	if len(items) == 0 {
		return SaveResult{}, errEmpty("registry.save")
	}
	name = nameutil.OrDefault(name, DefaultSaveName)
	if err := nameutil.ValidateName(name); err != nil {
		return SaveResult{}, err
	}
	res := SaveResult{Name: name}
	if i := r.IndexOf(name); i >= 0 {
		if confirm == nil || !confirm(name) {
			return SaveResult{}, ErrDeclined
		}
		r.records = append(r.records[:i:i], r.records[i+1:]...)
		res.Replaced = true
	}
	r.records = append(r.records, r.newRecord(name, items, closeAfterRun))
	res.Index = len(r.records) - 1
	r.log.Info("record saved", "name", name, "items", len(items), "replaced", res.Replaced)
	return res, r.persist(ctx, "registry.save")
}

// Delete removes the record at index and returns it.
func (r *Registry) Delete(ctx context.Context, index int) (HistoryRecord, error) {
	if err := r.check("registry.delete", index); err != nil {
		return HistoryRecord{}, err
	}
	removed := r.records[index]
	r.records = append(r.records[:index:index], r.records[index+1:]...)
	r.log.Info("record deleted", "name", removed.Name)
	return removed, r.persist(ctx, "registry.delete")
}

// Rename changes the name of the record at index. Renaming to the current
// name is a no-op; colliding with any other record is a validation error.
func (r *Registry) Rename(ctx context.Context, index int, newName string) error {
	if err := r.check("registry.rename", index); err != nil {
		return err
	}
	newName, _ = nameutil.Clean(newName)
	if err := nameutil.ValidateName(newName); err != nil {
		return err
	}
	old := r.records[index].Name
	if newName == old {
		return nil
	}
	if j := r.IndexOf(newName); j >= 0 && j != index {
		return errs.Validation("registry.rename", "name %q already exists", newName)
	}
	r.records[index].Name = newName
	r.log.Info("record renamed", "from", old, "to", newName)
	return r.persist(ctx, "registry.rename")
}

// MoveUp swaps the record at index with its predecessor. It reports false
// when the record is already first; nothing is persisted in that case.
func (r *Registry) MoveUp(ctx context.Context, index int) (bool, error) {
	if err := r.check("registry.up", index); err != nil {
		return false, err
	}
	if index == 0 {
		return false, nil
	}
	r.records[index-1], r.records[index] = r.records[index], r.records[index-1]
	return true, r.persist(ctx, "registry.up")
}

// MoveDown swaps the record at index with its successor. It reports false
// when the record is already last.
func (r *Registry) MoveDown(ctx context.Context, index int) (bool, error) {
	if err := r.check("registry.down", index); err != nil {
		return false, err
	}
	if index == len(r.records)-1 {
		return false, nil
	}
	r.records[index+1], r.records[index] = r.records[index], r.records[index+1]
	return true, r.persist(ctx, "registry.down")
}

// Load returns a deep copy of a record's items and close-after-run flag for
// installation as the current Task List. The registry is not modified.
func (r *Registry) Load(index int) ([]tasklist.Item, bool, error) {
	if err := r.check("registry.load", index); err != nil {
		return nil, false, err
	}
	rec := r.records[index]
	return tasklist.Clone(rec.Items), rec.CloseAfterRun, nil
}

// BootstrapIfEmpty saves items under DefaultBootstrapName when the registry
// has no records and items is non-empty. It reports whether a record was
// created.
func (r *Registry) BootstrapIfEmpty(ctx context.Context, items []tasklist.Item, closeAfterRun bool) (bool, error) {
	if len(r.records) > 0 || len(items) == 0 {
		return false, nil
	}
	r.records = append(r.records, r.newRecord(DefaultBootstrapName, items, closeAfterRun))
	r.log.Info("bootstrapped default record", "items", len(items))
	return true, r.persist(ctx, "registry.bootstrap")
}

// UpdateItems replaces the items and flag of the record at index in place,
// keeping its name, position and CreatedAt.
func (r *Registry) UpdateItems(ctx context.Context, index int, items []tasklist.Item, closeAfterRun bool) error {
	if err := r.check("registry.update", index); err != nil {
		return err
	}
	if len(items) == 0 {
		return errEmpty("registry.update")
	}
	r.records[index].Items = tasklist.FromItems(items).Snapshot().Items()
	r.records[index].CloseAfterRun = closeAfterRun
	return r.persist(ctx, "registry.update")
}

// Append adds already-built records (e.g. from an import) at the end. All
// names must be valid and unique, both among themselves and against the
// registry; otherwise nothing is added.
func (r *Registry) Append(ctx context.Context, recs ...HistoryRecord) error {
	seen := make(map[string]bool, len(r.records)+len(recs))
	for _, h := range r.records {
		seen[h.Name] = true
	}
	for _, h := range recs {
		if err := nameutil.ValidateName(h.Name); err != nil {
			return err
		}
		if seen[h.Name] {
			return errs.Validation("registry.append", "name %q already exists", h.Name)
		}
		seen[h.Name] = true
	}
	for _, h := range recs {
		h = h.Clone()
		h.Items = tasklist.FromItems(h.Items).Snapshot().Items()
		if h.CreatedAt == "" {
			h.CreatedAt = r.now()
		}
		r.records = append(r.records, h)
	}
	return r.persist(ctx, "registry.append")
}

// ReplaceAll discards every record and installs recs instead.
func (r *Registry) ReplaceAll(ctx context.Context, recs []HistoryRecord) error {
	prev := r.records
	r.records = nil
	err := r.Append(ctx, recs...)
	if err != nil && errs.KindOf(err) != errs.KindStorage {
		r.records = prev
	}
	return err
}

func (r *Registry) newRecord(name string, items []tasklist.Item, closeAfterRun bool) HistoryRecord {
	return HistoryRecord{
		Name:          name,
		Items:         tasklist.FromItems(items).Snapshot().Items(),
		CloseAfterRun: closeAfterRun,
		CreatedAt:     r.now(),
	}
}

func (r *Registry) now() string { return r.clock.Now().Format(TimeLayout) }

func (r *Registry) check(op string, index int) error {
	if index < 0 || index >= len(r.records) {
		return errs.Index(op, index, len(r.records))
	}
	return nil
}

// persist writes the entire registry. The in-memory state has already
// changed by the time this runs; a failure is reported, not rolled back.
func (r *Registry) persist(ctx context.Context, op string) error {
	if r.store == nil {
		return nil
	}
	if err := r.store.Save(ctx, CloneRecords(r.records)); err != nil {
		r.log.Warn("persist failed; in-memory registry differs from store", "op", op, "err", err)
		return storageErr(op, err)
	}
	return nil
}

func errEmpty(op string) error { return errs.Validation(op, "the task list is empty") }

func storageErr(op string, err error) error {
	if errs.KindOf(err) == errs.KindStorage {
		return err
	}
	return errs.Storage(op, err)
}
