// Package ledger holds the in-memory view of one owner's logged sets and
// day comments. It is the single source of truth for read paths; all
// mutation primitives are synchronous, touch only the in-memory
// collections, and never call the persistence gateway. The coordinator
// applies a change, keeps the returned snapshot, and can undo it
// deterministically while a remote call is in flight.
package ledger

import (
	"sort"
	"sync"

	"github.com/devlarabar/fitnotes-v2/internal"
)

type Ledger struct {
	mu       sync.RWMutex
	ownerID  int64
	sets     []internal.WorkoutSet          // descending by (date, id)
	comments map[string]internal.DayComment // date -> comment
}

func New(ownerID int64) *Ledger {
	return &Ledger{
		ownerID:  ownerID,
		comments: make(map[string]internal.DayComment),
	}
}

func (l *Ledger) OwnerID() int64 { return l.ownerID }

// Load replaces the ledger contents with a fresh fetch for the owner.
func (l *Ledger) Load(sets []internal.WorkoutSet, comments []internal.DayComment) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sets = append([]internal.WorkoutSet(nil), sets...)
	sort.SliceStable(l.sets, func(i, j int) bool {
		return before(l.sets[i], l.sets[j])
	})
	l.comments = make(map[string]internal.DayComment, len(comments))
	for _, c := range comments {
		l.comments[c.Date] = c
	}
}

// before orders sets descending by date, then descending by id.
func before(a, b internal.WorkoutSet) bool {
	if a.Date != b.Date {
		return a.Date > b.Date
	}
	return a.ID > b.ID
}

// AddSet inserts a set at its ordered position.
func (l *Ledger) AddSet(s internal.WorkoutSet) {
	l.mu.Lock()
	defer l.mu.Unlock()
	i := sort.Search(len(l.sets), func(i int) bool {
		return before(s, l.sets[i])
	})
	l.sets = append(l.sets, internal.WorkoutSet{})
	copy(l.sets[i+1:], l.sets[i:])
	l.sets[i] = s
}

// PatchSet applies a partial update in place and returns the pre-patch
// snapshot. Unknown ids are reported, not failed: a concurrent deletion
// may already have removed the record.
func (l *Ledger) PatchSet(id int64, patch internal.SetPatch) (internal.WorkoutSet, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.sets {
		if l.sets[i].ID != id {
			continue
		}
		snapshot := l.sets[i]
		if patch.Measurement != nil {
			l.sets[i].Measurement = patch.Measurement
		}
		if patch.Comment != nil {
			l.sets[i].Comment = *patch.Comment
		}
		if patch.Date != nil && *patch.Date != l.sets[i].Date {
			s := l.sets[i]
			s.Date = *patch.Date
			l.removeAtLocked(i)
			l.addLocked(s)
		}
		return snapshot, true
	}
	return internal.WorkoutSet{}, false
}

// RestoreSet puts a snapshot back verbatim, replacing any record with the
// same id. Used for update rollback.
func (l *Ledger) RestoreSet(snapshot internal.WorkoutSet) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.sets {
		if l.sets[i].ID == snapshot.ID {
			if l.sets[i].Date != snapshot.Date {
				l.removeAtLocked(i)
				l.addLocked(snapshot)
			} else {
				l.sets[i] = snapshot
			}
			return true
		}
	}
	return false
}

// RemoveSet deletes by id and returns the removed record.
func (l *Ledger) RemoveSet(id int64) (internal.WorkoutSet, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.sets {
		if l.sets[i].ID == id {
			s := l.sets[i]
			l.removeAtLocked(i)
			return s, true
		}
	}
	return internal.WorkoutSet{}, false
}

func (l *Ledger) addLocked(s internal.WorkoutSet) {
	i := sort.Search(len(l.sets), func(i int) bool {
		return before(s, l.sets[i])
	})
	l.sets = append(l.sets, internal.WorkoutSet{})
	copy(l.sets[i+1:], l.sets[i:])
	l.sets[i] = s
}

func (l *Ledger) removeAtLocked(i int) {
	l.sets = append(l.sets[:i], l.sets[i+1:]...)
}

// SetsForDate returns all sets attributed to a calendar day, in ledger
// order.
func (l *Ledger) SetsForDate(date string) []internal.WorkoutSet {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []internal.WorkoutSet
	for _, s := range l.sets {
		if s.Date == date {
			out = append(out, s)
		}
	}
	return out
}

// HistoryForExercise returns the full history for one exercise, newest
// first (date descending, then id descending).
func (l *Ledger) HistoryForExercise(exerciseID int64) []internal.WorkoutSet {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []internal.WorkoutSet
	for _, s := range l.sets {
		if s.ExerciseID == exerciseID {
			out = append(out, s)
		}
	}
	return out
}

// ActiveDates returns every date with at least one set, ascending.
func (l *Ledger) ActiveDates() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	seen := make(map[string]struct{})
	var out []string
	for _, s := range l.sets {
		if _, ok := seen[s.Date]; !ok {
			seen[s.Date] = struct{}{}
			out = append(out, s.Date)
		}
	}
	sort.Strings(out)
	return out
}

// Snapshot copies out every set, in ledger order.
func (l *Ledger) Snapshot() []internal.WorkoutSet {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]internal.WorkoutSet(nil), l.sets...)
}

// --- Day comments ---

func (l *Ledger) Comment(date string) (internal.DayComment, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	c, ok := l.comments[date]
	return c, ok
}

// PutComment installs or replaces the note for its date. One note per
// date per owner.
func (l *Ledger) PutComment(c internal.DayComment) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.comments[c.Date] = c
}

// RemoveComment deletes by id and returns the removed note.
func (l *Ledger) RemoveComment(id int64) (internal.DayComment, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for date, c := range l.comments {
		if c.ID == id {
			delete(l.comments, date)
			return c, true
		}
	}
	return internal.DayComment{}, false
}
