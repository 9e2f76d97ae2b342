// Package notify holds the per-session toast feed and pending navigation.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type Kind string

const (
	KindLoading Kind = "loading"
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

type Toast struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// Notifier shows transient messages. Success and Error replace the toast
// with the given id, or open a new one when id is empty or unknown.
type Notifier interface {
	Loading(message string) string
	Success(id, message string) string
	Error(id, message string) string
}

// Navigator moves the client to another page.
type Navigator interface {
	Navigate(path string)
}

// Snapshot is what a client picks up when it polls the feed.
type Snapshot struct {
	Toasts     []Toast `json:"toasts"`
	NavigateTo string  `json:"navigateTo,omitempty"`
}

const defaultFeedLimit = 20

type Feed struct {
	mu         sync.Mutex
	toasts     []Toast
	navigateTo string
	limit      int
	log        *logrus.Entry
}

var (
	_ Notifier  = (*Feed)(nil)
	_ Navigator = (*Feed)(nil)
)

func NewFeed(limit int, log *logrus.Entry) *Feed {
	if limit <= 0 {
		limit = defaultFeedLimit
	}
	return &Feed{limit: limit, log: log}
}

func (f *Feed) Loading(message string) string {
	return f.put("", KindLoading, message)
}

func (f *Feed) Success(id, message string) string {
	return f.put(id, KindSuccess, message)
}

func (f *Feed) Error(id, message string) string {
	return f.put(id, KindError, message)
}

func (f *Feed) Navigate(path string) {
	f.mu.Lock()
	f.navigateTo = path
	f.mu.Unlock()
	f.log.WithField("path", path).Info("Navigation requested")
}

// Drain returns every toast and the pending navigation, then forgets all of
// them except loading toasts, which stay until they are replaced.
func (f *Feed) Drain() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	snap := Snapshot{
		Toasts:     append([]Toast(nil), f.toasts...),
		NavigateTo: f.navigateTo,
	}
	kept := f.toasts[:0]
	for _, t := range f.toasts {
		if t.Kind == KindLoading {
			kept = append(kept, t)
		}
	}
	f.toasts = kept
	f.navigateTo = ""
	return snap
}

func (f *Feed) put(id string, kind Kind, message string) string {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.log.WithFields(logrus.Fields{"toast_kind": kind, "toast_id": id}).Debug(message)

	if id != "" {
		for i := range f.toasts {
			if f.toasts[i].ID == id {
				f.toasts[i].Kind = kind
				f.toasts[i].Message = message
				return id
			}
		}
	} else {
		id = uuid.NewString()
	}

	f.toasts = append(f.toasts, Toast{ID: id, Kind: kind, Message: message, CreatedAt: time.Now()})
	if over := len(f.toasts) - f.limit; over > 0 {
		f.toasts = append([]Toast(nil), f.toasts[over:]...)
	}
	return id
}
