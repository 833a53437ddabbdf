package sequencer

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/VoxDroid/lnchr/internal/errs"
	"github.com/VoxDroid/lnchr/internal/tasklist"
)

// EventKind identifies a progress event.
type EventKind int

// Event kinds, in the order a run can emit them.
const (
	EventStarted EventKind = iota
	EventWaiting
	EventDispatching
	EventLaunched
	EventFailed
	EventComplete
	EventTerminating
)

func (k EventKind) String() string {
	switch k {
	case EventStarted:
		return "started"
	case EventWaiting:
		return "waiting"
	case EventDispatching:
		return "dispatching"
	case EventLaunched:
		return "launched"
	case EventFailed:
		return "failed"
	case EventComplete:
		return "complete"
	case EventTerminating:
		return "terminating"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event reports run progress. Index is the 0-based item position, or -1 for
// run-level events.
type Event struct {
	RunID     uuid.UUID
	Kind      EventKind
	Index     int
	Total     int
	Item      tasklist.Item
	Delay     time.Duration
	Err       error
	Launched  int
	Failed    int
	Cancelled bool
	At        time.Time
}

// String renders the event as status-line text.
func (e Event) String() string {
	name := filepath.Base(e.Item.Path)
	switch e.Kind {
	case EventStarted:
		return fmt.Sprintf("running %d items", e.Total)
	case EventWaiting:
		return fmt.Sprintf("waiting %s before item %d/%d: %s", e.Delay, e.Index+1, e.Total, name)
	case EventDispatching:
		return fmt.Sprintf("launching item %d/%d: %s", e.Index+1, e.Total, name)
	case EventLaunched:
		return fmt.Sprintf("launched item %d/%d: %s", e.Index+1, e.Total, name)
	case EventFailed:
		if errors.Is(e.Err, errs.ErrNotFound) {
			return fmt.Sprintf("item %d/%d skipped, file does not exist: %s", e.Index+1, e.Total, e.Item.Path)
		}
		return fmt.Sprintf("item %d/%d failed: %v", e.Index+1, e.Total, e.Err)
	case EventComplete:
		if e.Cancelled {
			return fmt.Sprintf("run cancelled after %d of %d items", e.Launched+e.Failed, e.Total)
		}
		if e.Failed == 0 {
			return "all items launched"
		}
		return fmt.Sprintf("run complete: %d launched, %d failed", e.Launched, e.Failed)
	case EventTerminating:
		return "closing after run"
	default:
		return e.Kind.String()
	}
}
