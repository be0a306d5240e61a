package usecase

import (
	"context"
	"sync"
	"time"

	"tripspot/internal/domain/repository"
	"tripspot/pkg/errors"
	"tripspot/pkg/logger"
)

const compensationTimeout = 10 * time.Second

// WishlistSynchronizer keeps one user's liked set consistent between local
// state, the user document and the per-place like counters. A synchronizer
// with an empty uid is inert: Toggle never writes.
type WishlistSynchronizer struct {
	users repository.UserRepository
	likes LikeCounter
	uid   string

	mu       sync.RWMutex
	ids      []string
	loaded   bool
	onChange func([]string)

	wg sync.WaitGroup
}

func NewWishlistSynchronizer(users repository.UserRepository, likes LikeCounter, uid string) *WishlistSynchronizer {
	return &WishlistSynchronizer{
		users: users,
		likes: likes,
		uid:   uid,
		ids:   []string{},
	}
}

func (s *WishlistSynchronizer) UID() string {
	return s.uid
}

// Load performs the one-shot read of the wishlist.
func (s *WishlistSynchronizer) Load(ctx context.Context) error {
	if s.uid == "" {
		return nil
	}

	ids, err := s.users.GetWishlist(ctx, s.uid)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.loaded = true
	s.mu.Unlock()
	s.replace(ids)
	return nil
}

// Ready reports whether the wishlist has been read at least once. Toggles
// are refused until then.
func (s *WishlistSynchronizer) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Start loads the wishlist, then follows the user document until ctx is
// cancelled. onChange receives the full set after every local or remote change.
func (s *WishlistSynchronizer) Start(ctx context.Context, onChange func([]string)) error {
	s.mu.Lock()
	s.onChange = onChange
	s.mu.Unlock()

	if err := s.Load(ctx); err != nil {
		return err
	}
	if s.uid == "" {
		return nil
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		err := s.users.WatchWishlist(ctx, s.uid, s.replace)
		if err != nil {
			logger.Error("Wishlist subscription for %s ended: %v", s.uid, err)
		}
	}()
	return nil
}

// Wait blocks until the live subscription has stopped.
func (s *WishlistSynchronizer) Wait() {
	s.wg.Wait()
}

func (s *WishlistSynchronizer) Liked(placeID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return indexOf(s.ids, placeID) >= 0
}

func (s *WishlistSynchronizer) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

// Toggle brings placeID to the requested state. It is a no-op without a
// user or when the place is already in that state. Membership is decided by
// the store, not the local set, and the like counter moves only when
// membership actually changed. A failed counter write reverts membership
// and local state rolls back.
func (s *WishlistSynchronizer) Toggle(ctx context.Context, placeID string, liked bool) (bool, error) {
	if s.uid == "" {
		return false, nil
	}
	if placeID == "" {
		return false, errors.BadRequest("placeId is required", nil)
	}
	if !s.Ready() {
		return false, errors.Unavailable("Wishlist is not loaded yet", nil)
	}

	s.mu.Lock()
	if (indexOf(s.ids, placeID) >= 0) == liked {
		s.mu.Unlock()
		return false, nil
	}
	s.setLocked(placeID, liked)
	s.mu.Unlock()
	s.emit()

	changed, err := s.users.SetWishlistMember(ctx, s.uid, placeID, liked)
	if err != nil {
		s.rollback(placeID, liked)
		return false, errors.Internal("Failed to update wishlist", err)
	}
	if !changed {
		// Another request or device got there first; local state already matches.
		return false, nil
	}

	if err := s.adjustLikes(ctx, placeID, liked); err != nil {
		s.compensate(ctx, placeID, liked)
		s.rollback(placeID, liked)
		return false, errors.Internal("Failed to update wishlist", err)
	}
	return true, nil
}

func (s *WishlistSynchronizer) adjustLikes(ctx context.Context, placeID string, liked bool) error {
	if liked {
		return s.likes.IncrementLikes(ctx, placeID)
	}
	return s.likes.DecrementLikes(ctx, placeID)
}

// compensate reverts a membership change whose counter write failed.
func (s *WishlistSynchronizer) compensate(ctx context.Context, placeID string, liked bool) {
	cctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), compensationTimeout)
	defer cancel()

	if _, err := s.users.SetWishlistMember(cctx, s.uid, placeID, !liked); err != nil {
		logger.Error("Compensating wishlist write for %s/%s failed: %v", s.uid, placeID, err)
	}
}

func (s *WishlistSynchronizer) rollback(placeID string, liked bool) {
	s.mu.Lock()
	s.setLocked(placeID, !liked)
	s.mu.Unlock()
	s.emit()
}

func (s *WishlistSynchronizer) replace(ids []string) {
	s.mu.Lock()
	s.ids = append([]string{}, ids...)
	s.mu.Unlock()
	s.emit()
}

func (s *WishlistSynchronizer) setLocked(placeID string, liked bool) {
	i := indexOf(s.ids, placeID)
	switch {
	case liked && i < 0:
		s.ids = append(s.ids, placeID)
	case !liked && i >= 0:
		s.ids = append(s.ids[:i:i], s.ids[i+1:]...)
	}
}

func (s *WishlistSynchronizer) emit() {
	s.mu.RLock()
	fn := s.onChange
	s.mu.RUnlock()
	if fn != nil {
		fn(s.IDs())
	}
}

func indexOf(ids []string, id string) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}
