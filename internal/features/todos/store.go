package todos

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	apperrors "github.com/xyz-asif/imagetodo/pkg/errors"
)

// Repository persists the whole collection. Every committed change saves a
// full snapshot, so the last write wins.
type Repository interface {
	Load(ctx context.Context) ([]Todo, error)
	Save(ctx context.Context, todos []Todo) error
}

// Store owns the ordered todo collection. All writes go through Apply.
type Store struct {
	mu    sync.RWMutex
	todos []Todo
	repo  Repository
	ids   *IDSource
	log   *zap.Logger

	notifyMu sync.Mutex
	subMu    sync.Mutex
	subs     map[int]func([]Todo)
	nextSub  int
}

// NewStore loads the persisted collection from repo.
func NewStore(ctx context.Context, repo Repository, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}

	todos, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: load todos: %v", apperrors.ErrStorage, err)
	}
	if todos == nil {
		todos = []Todo{}
	}

	log.Info("todo store loaded", zap.Int("count", len(todos)))

	return &Store{
		todos: todos,
		repo:  repo,
		ids:   NewIDSource(maxID(todos)),
		log:   log,
		subs:  make(map[int]func([]Todo)),
	}, nil
}

// NextID returns a fresh id for a todo about to be added.
func (s *Store) NextID() int64 {
	return s.ids.Next()
}

// List returns a copy of the collection in insertion order.
func (s *Store) List() []Todo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.todos)
}

// Get returns the todo with the given id.
func (s *Store) Get(id int64) (Todo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := IndexOf(s.todos, id)
	if i < 0 {
		return Todo{}, false
	}
	return s.todos[i], true
}

func (s *Store) Add(ctx context.Context, todo Todo) error {
	return s.Apply(ctx, AddReducer(todo))
}

func (s *Store) Update(ctx context.Context, id int64, fields TextFields) (bool, error) {
	return s.applyExisting(ctx, id, UpdateReducer(id, fields))
}

func (s *Store) UpdateImage(ctx context.Context, id int64, image string) (bool, error) {
	return s.applyExisting(ctx, id, UpdateImageReducer(id, image))
}

func (s *Store) ToggleStatus(ctx context.Context, id int64) (bool, error) {
	return s.applyExisting(ctx, id, ToggleStatusReducer(id))
}

func (s *Store) Delete(ctx context.Context, id int64) (bool, error) {
	return s.applyExisting(ctx, id, DeleteReducer(id))
}

// Apply runs the reducers in order as one transition, persists the result
// and notifies subscribers. If no reducer changed anything nothing is saved.
// If saving fails the previous collection is kept.
func (s *Store) Apply(ctx context.Context, reducers ...Reducer) error {
	_, err := s.apply(ctx, reducers...)
	return err
}

func (s *Store) apply(ctx context.Context, reducers ...Reducer) (bool, error) {
	s.mu.Lock()
	next := s.todos
	for _, r := range reducers {
		next = r(next)
	}
	if unchanged(s.todos, next) {
		s.mu.Unlock()
		return false, nil
	}

	if err := s.repo.Save(ctx, next); err != nil {
		s.mu.Unlock()
		s.log.Error("failed to persist todos", zap.Error(err))
		return true, fmt.Errorf("%w: save todos: %v", apperrors.ErrStorage, err)
	}
	s.todos = next
	snapshot := clone(next)

	// notifyMu is taken before mu is released so that subscribers see
	// commits in order.
	s.notifyMu.Lock()
	s.mu.Unlock()
	s.notify(snapshot)
	s.notifyMu.Unlock()
	return true, nil
}

// applyExisting applies r and reports whether it touched a todo. A miss is a
// no-op and is not an error.
func (s *Store) applyExisting(ctx context.Context, id int64, r Reducer) (bool, error) {
	found, err := s.apply(ctx, r)
	if !found {
		s.log.Debug("todo not found, ignoring", zap.Int64("id", id))
	}
	return found, err
}

// Subscribe registers fn to receive the collection after every committed
// change, in commit order. fn must not write to the store. The returned func
// removes the subscription.
func (s *Store) Subscribe(fn func([]Todo)) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) notify(todos []Todo) {
	s.subMu.Lock()
	fns := make([]func([]Todo), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(clone(todos))
	}
}

// unchanged reports whether next is the very slice prev, which is what every
// reducer returns on a miss.
func unchanged(prev, next []Todo) bool {
	if len(prev) != len(next) {
		return false
	}
	if len(prev) == 0 {
		return true
	}
	return &prev[0] == &next[0]
}

func clone(todos []Todo) []Todo {
	out := make([]Todo, len(todos))
	copy(out, todos)
	return out
}
