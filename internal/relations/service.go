package relations

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"socialnet/backend/internal/models"
)

var (
	ErrSelfRequest      = errors.New("cannot send friend request to yourself")
	ErrAlreadyRequested = errors.New("friend request already pending")
	ErrAlreadyFriends   = errors.New("users are already friends")
	ErrNoSuchRequest    = errors.New("no pending friend request from this user")
	ErrUserNotFound     = errors.New("user not found")
)

// Service validates and applies friend-request transitions against a Store.
//
// All transitions run under one subsystem mutex so that an accept touching
// two user records can never race a concurrent accept or decline on either
// side. Throughput is not a concern at this layer; correctness of the
// mutual-friendship writes is.
type Service struct {
	mu    sync.Mutex
	store Store
}

// NewService creates a Service over the given store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// SendRequest records a pending friend request from requester to target.
// It fails with ErrAlreadyRequested if one is already pending for this
// ordered pair, and with ErrAlreadyFriends if the friendship already exists.
// No partial mutation occurs on failure.
func (s *Service) SendRequest(ctx context.Context, requesterID, targetID uint) error {
	if requesterID == targetID {
		return ErrSelfRequest
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	exists, err := s.store.UserExists(ctx, targetID)
	if err != nil {
		return fmt.Errorf("checking target user: %w", err)
	}
	if !exists {
		return ErrUserNotFound
	}

	rel, err := s.store.Relation(ctx, requesterID, targetID)
	if err != nil && !errors.Is(err, ErrRelationNotFound) {
		return fmt.Errorf("checking existing relation: %w", err)
	}
	if rel != nil {
		if rel.Status == models.StatusPending {
			return ErrAlreadyRequested
		}
		return ErrAlreadyFriends
	}

	if err := s.store.CreatePending(ctx, requesterID, targetID); err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	return nil
}

// AcceptRequest resolves the pending request from requesterID by making the
// two users friends. Both halves of the friendship are written before this
// returns; the store applies them in one transaction so the relationship can
// never be left asymmetric.
func (s *Service) AcceptRequest(ctx context.Context, accepterID, requesterID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rel, err := s.store.Relation(ctx, requesterID, accepterID)
	if err != nil {
		if errors.Is(err, ErrRelationNotFound) {
			return ErrNoSuchRequest
		}
		return fmt.Errorf("looking up request: %w", err)
	}
	if rel.Status != models.StatusPending {
		return ErrNoSuchRequest
	}

	if err := s.store.AcceptPending(ctx, requesterID, accepterID); err != nil {
		if errors.Is(err, ErrRelationNotFound) {
			return ErrNoSuchRequest
		}
		return fmt.Errorf("accepting request: %w", err)
	}
	return nil
}

// DeclineRequest removes the pending request from requesterID without
// creating any friendship. Declining leaves no lingering state: a later
// request in either direction starts from scratch.
func (s *Service) DeclineRequest(ctx context.Context, declinerID, requesterID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed, err := s.store.DeletePending(ctx, requesterID, declinerID)
	if err != nil {
		return fmt.Errorf("declining request: %w", err)
	}
	if !removed {
		return ErrNoSuchRequest
	}
	return nil
}

// Friends lists userID's current friends.
func (s *Service) Friends(ctx context.Context, userID uint) ([]models.User, error) {
	return s.store.FriendsOf(ctx, userID)
}

// PendingRequests lists the users whose requests are awaiting userID's
// accept or decline.
func (s *Service) PendingRequests(ctx context.Context, userID uint) ([]models.User, error) {
	return s.store.PendingFor(ctx, userID)
}
