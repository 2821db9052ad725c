package effects

import "sync"

const maxQueuedToasts = 32

type ToastVariant string

const (
	ToastDefault     ToastVariant = "default"
	ToastDestructive ToastVariant = "destructive"
)

type Toast struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Variant     ToastVariant `json:"variant"`
}

// ToastQueue buffers transient messages until a surface drains them. When
// nobody drains, the oldest toasts are dropped.
type ToastQueue struct {
	mu     sync.Mutex
	toasts []Toast
}

func NewToastQueue() *ToastQueue {
	return &ToastQueue{}
}

func (q *ToastQueue) Push(t Toast) {
	if t.Variant == "" {
		t.Variant = ToastDefault
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.toasts = append(q.toasts, t)
	if len(q.toasts) > maxQueuedToasts {
		q.toasts = append([]Toast(nil), q.toasts[len(q.toasts)-maxQueuedToasts:]...)
	}
}

func (q *ToastQueue) Error(title, description string) {
	q.Push(Toast{Title: title, Description: description, Variant: ToastDestructive})
}

func (q *ToastQueue) Drain() []Toast {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.toasts
	q.toasts = nil
	if out == nil {
		out = []Toast{}
	}
	return out
}
