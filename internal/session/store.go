// Package session keeps the view controllers of each browser session in
// memory. Expiring a session unmounts its controllers.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"storefront/internal/clients"
	"storefront/internal/events"
	"storefront/internal/notify"
	"storefront/internal/usecase"
)

type Session struct {
	ID      string
	Listing *usecase.ListingFormController
	Orders  *usecase.OrderFilterController
	Feed    *notify.Feed

	lastSeen time.Time
}

func (s *Session) Close() {
	s.Listing.Close()
}

type Builder func(id string) *Session

func NewBuilder(client clients.MarketplaceClient, publisher events.Publisher, listingCfg usecase.ListingFormConfig, logger *logrus.Logger) Builder {
	return func(id string) *Session {
		feed := notify.NewFeed(0, logger.WithField("session_id", id))
		return &Session{
			ID:      id,
			Feed:    feed,
			Listing: usecase.NewListingFormController(id, client, feed, feed, publisher, listingCfg, logger),
			Orders:  usecase.NewOrderFilterController(id, client, feed, publisher, logger),
		}
	}
}

type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	build    Builder
	now      func() time.Time
	log      *logrus.Logger
}

func NewStore(ttl time.Duration, build Builder, logger *logrus.Logger) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		build:    build,
		now:      time.Now,
		log:      logger,
	}
}

// Acquire returns the live session with the given id, or a new session under
// a freshly minted id when there is none. created reports the latter.
func (s *Store) Acquire(id string) (sess *Session, created bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if existing, ok := s.sessions[id]; ok && !s.expired(existing, now) {
		existing.lastSeen = now
		return existing, false
	}

	sess = s.build(uuid.NewString())
	sess.lastSeen = now
	s.sessions[sess.ID] = sess
	s.log.WithField("session_id", sess.ID).Info("Session started")
	return sess, true
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep closes and forgets every session idle for longer than the TTL.
func (s *Store) Sweep() int {
	s.mu.Lock()
	now := s.now()
	var expired []*Session
	for id, sess := range s.sessions {
		if s.expired(sess, now) {
			expired = append(expired, sess)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for _, sess := range expired {
		sess.Close()
		s.log.WithField("session_id", sess.ID).Info("Session expired")
	}
	return len(expired)
}

// Run sweeps every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				s.log.Debugf("Session sweep removed %d sessions", n)
			}
		}
	}
}

// Close unmounts every session.
func (s *Store) Close() {
	s.mu.Lock()
	sessions := s.sessions
	s.sessions = make(map[string]*Session)
	s.mu.Unlock()

	for _, sess := range sessions {
		sess.Close()
	}
}

func (s *Store) expired(sess *Session, now time.Time) bool {
	return s.ttl > 0 && now.Sub(sess.lastSeen) > s.ttl
}
