package notify

import (
	"sync"

	"github.com/ankurdhir/BharatAutoBazaar-sub000/domain"
)

// Level classifies a toast
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelError
)

// String returns the level name
func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "success"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Toast is one queued notification
type Toast struct {
	Level   Level
	Message string
}

// Queue is a bounded FIFO of toasts. When full, the oldest entry is dropped
// so a burst of failures never blocks the flow that produced them.
type Queue struct {
	mu      sync.Mutex
	toasts  []Toast
	maxSize int
}

// NewQueue creates a toast queue holding at most maxSize entries
func NewQueue(maxSize int) *Queue {
	if maxSize <= 0 {
		maxSize = 5
	}
	return &Queue{maxSize: maxSize}
}

var _ domain.Notifier = (*Queue)(nil)

// Success enqueues a success toast
func (q *Queue) Success(message string) { q.push(LevelSuccess, message) }

// Error enqueues an error toast
func (q *Queue) Error(message string) { q.push(LevelError, message) }

// Info enqueues an informational toast
func (q *Queue) Info(message string) { q.push(LevelInfo, message) }

func (q *Queue) push(level Level, message string) {
	if message == "" {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.toasts) >= q.maxSize {
		q.toasts = q.toasts[1:]
	}
	q.toasts = append(q.toasts, Toast{Level: level, Message: message})
}

// Pop removes and returns the oldest toast
func (q *Queue) Pop() (Toast, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.toasts) == 0 {
		return Toast{}, false
	}
	toast := q.toasts[0]
	q.toasts = q.toasts[1:]
	return toast, true
}

// Pending returns a snapshot of queued toasts, oldest first
func (q *Queue) Pending() []Toast {
	q.mu.Lock()
	defer q.mu.Unlock()
	snapshot := make([]Toast, len(q.toasts))
	copy(snapshot, q.toasts)
	return snapshot
}
