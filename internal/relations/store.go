package relations

import (
	"context"
	"errors"

	"socialnet/backend/internal/models"
)

// ErrRelationNotFound is returned by Store implementations when no edge
// exists for the requested ordered pair.
var ErrRelationNotFound = errors.New("relation not found")

// Store is the persistence contract the friend-request state machine runs
// against. Implementations must provide atomic single-row updates; Accept
// must apply both halves of the friendship or neither.
type Store interface {
	// UserExists reports whether a user record exists.
	UserExists(ctx context.Context, userID uint) (bool, error)

	// Relation returns the directed edge from fromID to toID, or
	// ErrRelationNotFound.
	Relation(ctx context.Context, fromID, toID uint) (*models.UserRelation, error)

	// CreatePending inserts a pending request edge from requester to target.
	CreatePending(ctx context.Context, requesterID, targetID uint) error

	// AcceptPending flips the pending edge (requester -> accepter) to
	// accepted and writes the reverse accepted edge, atomically. Returns
	// ErrRelationNotFound if no pending edge exists.
	AcceptPending(ctx context.Context, requesterID, accepterID uint) error

	// DeletePending removes the pending edge (requester -> decliner).
	// Returns false if no such edge existed.
	DeletePending(ctx context.Context, requesterID, declinerID uint) (bool, error)

	// FriendsOf lists the users userID has an accepted edge to.
	FriendsOf(ctx context.Context, userID uint) ([]models.User, error)

	// PendingFor lists the users with an unresolved request aimed at userID.
	PendingFor(ctx context.Context, userID uint) ([]models.User, error)
}
