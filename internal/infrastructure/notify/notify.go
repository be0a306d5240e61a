package notify

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"tripspot/pkg/errors"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelWarning Level = "warning"
	LevelInfo    Level = "info"
)

const (
	DefaultDuration = 5 * time.Second
	ErrorDuration   = 7 * time.Second

	NetworkErrorMessage = "네트워크 연결을 확인하고 다시 시도해주세요."
	UnknownErrorMessage = "알 수 없는 오류가 발생했습니다."
)

// Notice is a transient user-facing message.
type Notice struct {
	ID          string `json:"id"`
	Level       Level  `json:"level"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	DurationMs  int64  `json:"durationMs"`
}

type Notifier interface {
	Notify(n Notice)
}

// Queue collects notices for one request or live session.
type Queue struct {
	mu      sync.Mutex
	notices []Notice
	onPush  func(Notice)
}

func NewQueue() *Queue {
	return &Queue{}
}

// OnPush registers a callback invoked for every notice after it is queued.
func (q *Queue) OnPush(fn func(Notice)) {
	q.mu.Lock()
	q.onPush = fn
	q.mu.Unlock()
}

func (q *Queue) Notify(n Notice) {
	if n.ID == "" {
		n.ID = newID()
	}
	if n.DurationMs <= 0 {
		d := DefaultDuration
		if n.Level == LevelError {
			d = ErrorDuration
		}
		n.DurationMs = d.Milliseconds()
	}

	q.mu.Lock()
	q.notices = append(q.notices, n)
	push := q.onPush
	q.mu.Unlock()

	if push != nil {
		push(n)
	}
}

// Notices returns a copy of the queued notices.
func (q *Queue) Notices() []Notice {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]Notice, len(q.notices))
	copy(out, q.notices)
	return out
}

// Drain returns the queued notices and empties the queue.
func (q *Queue) Drain() []Notice {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.notices
	q.notices = nil
	return out
}

func (q *Queue) HasErrors() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, n := range q.notices {
		if n.Level == LevelError {
			return true
		}
	}
	return false
}

func newID() string {
	id, err := gonanoid.New()
	if err != nil {
		return uuid.New().String()
	}
	return id
}

type discard struct{}

func (discard) Notify(Notice) {}

// Discard drops every notice.
var Discard Notifier = discard{}

type ctxKey struct{}

func WithNotifier(ctx context.Context, n Notifier) context.Context {
	return context.WithValue(ctx, ctxKey{}, n)
}

// FromContext returns the notifier bound to ctx, or Discard.
func FromContext(ctx context.Context) Notifier {
	if n, ok := ctx.Value(ctxKey{}).(Notifier); ok && n != nil {
		return n
	}
	return Discard
}

func Success(ctx context.Context, title, description string) {
	FromContext(ctx).Notify(Notice{Level: LevelSuccess, Title: title, Description: description})
}

func Error(ctx context.Context, title, description string) {
	FromContext(ctx).Notify(Notice{Level: LevelError, Title: title, Description: description})
}

func Warning(ctx context.Context, title, description string) {
	FromContext(ctx).Notify(Notice{Level: LevelWarning, Title: title, Description: description})
}

func Info(ctx context.Context, title, description string) {
	FromContext(ctx).Notify(Notice{Level: LevelInfo, Title: title, Description: description})
}

// Failure reports err under title. Connectivity failures get the generic
// "check your connection" description.
func Failure(ctx context.Context, title string, err error) {
	description := UnknownErrorMessage
	if errors.IsNetwork(err) {
		description = NetworkErrorMessage
	}
	Error(ctx, title, description)
}
