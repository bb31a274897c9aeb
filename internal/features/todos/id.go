package todos

import (
	"sync"
	"time"
)

// IDSource hands out strictly increasing ids based on the wall clock in
// milliseconds.
type IDSource struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

// NewIDSource returns a source whose ids are greater than seed.
func NewIDSource(seed int64) *IDSource {
	return &IDSource{last: seed, now: time.Now}
}

// Next returns the next id.
func (s *IDSource) Next() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.now().UnixMilli()
	if id <= s.last {
		id = s.last + 1
	}
	s.last = id
	return id
}

// maxID returns the largest id in todos, or 0.
func maxID(todos []Todo) int64 {
	var highest int64
	for _, t := range todos {
		if t.ID > highest {
			highest = t.ID
		}
	}
	return highest
}
