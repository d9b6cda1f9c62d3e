package storage

import "sync"

// Table names published with each committed write. Subscribers use them to
// decide whether a commit can affect their query.
const (
	TableUsers             = "users"
	TableExercises         = "exercises"
	TableTemplates         = "templates"
	TableTemplateExercises = "template_exercises"
	TableWorkouts          = "workouts"
	TableWorkoutExercises  = "workout_exercises"
	TableWorkoutSets       = "workout_sets"
	TableAppFlags          = "app_flags"
)

// Notifier fans a per-commit "these tables changed" signal out to
// subscribers. Each subscriber gets a latch channel of capacity one: a
// pending signal is never duplicated, but a subscriber is always woken at
// least once after the last commit that touched its tables.
type Notifier struct {
	mu   sync.Mutex
	subs map[*subscriber]struct{}
}

type subscriber struct {
	tables map[string]struct{}
	ch     chan struct{}
}

func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[*subscriber]struct{})}
}

// Subscribe registers interest in the given tables; with no tables it
// matches every commit. The returned channel receives one wake-up per batch
// of relevant commits; cancel unregisters and closes it.
func (n *Notifier) Subscribe(tables ...string) (<-chan struct{}, func()) {
	sub := &subscriber{
		tables: make(map[string]struct{}, len(tables)),
		ch:     make(chan struct{}, 1),
	}
	for _, t := range tables {
		sub.tables[t] = struct{}{}
	}

	n.mu.Lock()
	n.subs[sub] = struct{}{}
	n.mu.Unlock()

	cancel := func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		if _, ok := n.subs[sub]; ok {
			delete(n.subs, sub)
			close(sub.ch)
		}
	}
	return sub.ch, cancel
}

// Publish signals every subscriber whose table set intersects the commit's.
func (n *Notifier) Publish(tables ...string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for sub := range n.subs {
		if !sub.matches(tables) {
			continue
		}
		select {
		case sub.ch <- struct{}{}:
		default: // already signalled, will be picked up
		}
	}
}

func (s *subscriber) matches(tables []string) bool {
	if len(s.tables) == 0 {
		return true
	}
	for _, t := range tables {
		if _, ok := s.tables[t]; ok {
			return true
		}
	}
	return false
}
