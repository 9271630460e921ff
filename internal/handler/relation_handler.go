package handler

import (
	"errors"
	"net/http"
	"strconv"

	"socialnet/backend/internal/models"
	"socialnet/backend/internal/relations"

	"github.com/gin-gonic/gin"
)

// RelationHandler exposes the friend-request state machine over HTTP. It
// translates the service's sentinel errors into user-facing responses and
// does nothing else: all invariant management lives in the service.
type RelationHandler struct {
	svc *relations.Service
}

// NewRelationHandler creates a RelationHandler.
func NewRelationHandler(svc *relations.Service) *RelationHandler {
	return &RelationHandler{svc: svc}
}

// SendRequest sends a friend request to the user identified by the path.
func (h *RelationHandler) SendRequest(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	targetUserID, ok := pathUserID(c)
	if !ok {
		return
	}

	err := h.svc.SendRequest(c.Request.Context(), viewerID.(uint), targetUserID)
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, gin.H{"message": "Friend request sent"})
	case errors.Is(err, relations.ErrSelfRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot send a friend request to yourself"})
	case errors.Is(err, relations.ErrAlreadyRequested):
		c.JSON(http.StatusConflict, gin.H{"error": "You have already sent a friend request to this user"})
	case errors.Is(err, relations.ErrAlreadyFriends):
		c.JSON(http.StatusConflict, gin.H{"error": "This user is already in your friends list"})
	case errors.Is(err, relations.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send friend request"})
	}
}

// AcceptRequest accepts a pending friend request from the user identified by
// the path.
func (h *RelationHandler) AcceptRequest(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	requesterID, ok := pathUserID(c)
	if !ok {
		return
	}

	err := h.svc.AcceptRequest(c.Request.Context(), viewerID.(uint), requesterID)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "Friend request accepted"})
	case errors.Is(err, relations.ErrNoSuchRequest):
		c.JSON(http.StatusNotFound, gin.H{"error": "Pending request not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to accept friend request"})
	}
}

// DeclineRequest declines a pending friend request from the user identified
// by the path.
func (h *RelationHandler) DeclineRequest(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	requesterID, ok := pathUserID(c)
	if !ok {
		return
	}

	err := h.svc.DeclineRequest(c.Request.Context(), viewerID.(uint), requesterID)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "Friend request declined"})
	case errors.Is(err, relations.ErrNoSuchRequest):
		c.JSON(http.StatusNotFound, gin.H{"error": "Pending request not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decline friend request"})
	}
}

// GetFriends lists the authenticated user's friends.
func (h *RelationHandler) GetFriends(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	friends, err := h.svc.Friends(c.Request.Context(), viewerID.(uint))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch friends"})
		return
	}

	c.JSON(http.StatusOK, usersToResponses(friends))
}

// GetPendingRequests lists the users waiting on the authenticated user's
// accept or decline.
func (h *RelationHandler) GetPendingRequests(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	requesters, err := h.svc.PendingRequests(c.Request.Context(), viewerID.(uint))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch friend requests"})
		return
	}

	c.JSON(http.StatusOK, usersToResponses(requesters))
}

func usersToResponses(users []models.User) []PublicUserResponse {
	responses := make([]PublicUserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, buildPublicUserResponse(user))
	}
	return responses
}

func pathUserID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return 0, false
	}
	return uint(id), true
}
