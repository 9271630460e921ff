package relations

import (
	"context"
	"sync"

	"socialnet/backend/internal/models"
)

// memoryStore is an in-memory Store used to exercise the state machine
// without a database. Failure hooks let tests inject write errors.
type memoryStore struct {
	mu    sync.Mutex
	users map[uint]models.User
	edges map[[2]uint]models.FriendshipStatus

	failCreate bool
	failAccept bool
}

func newMemoryStore(userIDs ...uint) *memoryStore {
	s := &memoryStore{
		users: make(map[uint]models.User),
		edges: make(map[[2]uint]models.FriendshipStatus),
	}
	for _, id := range userIDs {
		s.users[id] = models.User{}
	}
	return s
}

func (s *memoryStore) UserExists(_ context.Context, userID uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.users[userID]
	return ok, nil
}

func (s *memoryStore) Relation(_ context.Context, fromID, toID uint) (*models.UserRelation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	status, ok := s.edges[[2]uint{fromID, toID}]
	if !ok {
		return nil, ErrRelationNotFound
	}
	return &models.UserRelation{FromUserID: fromID, ToUserID: toID, Status: status}, nil
}

func (s *memoryStore) CreatePending(_ context.Context, requesterID, targetID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failCreate {
		return errWriteFailed
	}
	s.edges[[2]uint{requesterID, targetID}] = models.StatusPending
	return nil
}

func (s *memoryStore) AcceptPending(_ context.Context, requesterID, accepterID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAccept {
		return errWriteFailed
	}
	if s.edges[[2]uint{requesterID, accepterID}] != models.StatusPending {
		return ErrRelationNotFound
	}
	// Both halves or neither, like the transactional store.
	s.edges[[2]uint{requesterID, accepterID}] = models.StatusAccepted
	s.edges[[2]uint{accepterID, requesterID}] = models.StatusAccepted
	return nil
}

func (s *memoryStore) DeletePending(_ context.Context, requesterID, declinerID uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := [2]uint{requesterID, declinerID}
	if s.edges[key] != models.StatusPending {
		return false, nil
	}
	delete(s.edges, key)
	return true, nil
}

func (s *memoryStore) FriendsOf(_ context.Context, userID uint) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var friends []models.User
	for key, status := range s.edges {
		if key[0] == userID && status == models.StatusAccepted {
			u := s.users[key[1]]
			u.ID = key[1]
			friends = append(friends, u)
		}
	}
	return friends, nil
}

func (s *memoryStore) PendingFor(_ context.Context, userID uint) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var requesters []models.User
	for key, status := range s.edges {
		if key[1] == userID && status == models.StatusPending {
			u := s.users[key[0]]
			u.ID = key[0]
			requesters = append(requesters, u)
		}
	}
	return requesters, nil
}

func (s *memoryStore) status(fromID, toID uint) (models.FriendshipStatus, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	status, ok := s.edges[[2]uint{fromID, toID}]
	return status, ok
}
