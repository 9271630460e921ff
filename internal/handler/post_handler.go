package handler

import (
	"net/http"
	"strconv"
	"time"

	"socialnet/backend/internal/database"
	"socialnet/backend/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// region --- DTOs ---

type PostInput struct {
	Content  string `json:"content" binding:"required"`
	ImageURL string `json:"image_url"`
}

type CommentInput struct {
	Content string `json:"content" binding:"required"`
}

type PostResponse struct {
	ID        uint              `json:"id"`
	AuthorID  uint              `json:"author_id"`
	Content   string            `json:"content"`
	ImageURL  string            `json:"image_url,omitempty"`
	Likes     int               `json:"likes"`
	CreatedAt time.Time         `json:"created_at"`
	Comments  []CommentResponse `json:"comments,omitempty"`
}

type CommentResponse struct {
	ID        uint      `json:"id"`
	AuthorID  uint      `json:"author_id"`
	Content   string    `json:"content"`
	Likes     int       `json:"likes"`
	CreatedAt time.Time `json:"created_at"`
}

func newPostResponse(post models.Post) PostResponse {
	comments := make([]CommentResponse, 0, len(post.Comments))
	for _, comment := range post.Comments {
		comments = append(comments, CommentResponse{
			ID:        comment.ID,
			AuthorID:  comment.AuthorID,
			Content:   comment.Content,
			Likes:     comment.Likes,
			CreatedAt: comment.CreatedAt,
		})
	}

	return PostResponse{
		ID:        post.ID,
		AuthorID:  post.AuthorID,
		Content:   post.Content,
		ImageURL:  post.ImageURL,
		Likes:     post.Likes,
		CreatedAt: post.CreatedAt,
		Comments:  comments,
	}
}

// endregion

// CreatePost creates a new post authored by the authenticated user.
func CreatePost(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	var input PostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post := models.Post{
		AuthorID: viewerID.(uint),
		Content:  input.Content,
		ImageURL: input.ImageURL,
	}
	if err := database.DB.Create(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	c.JSON(http.StatusCreated, newPostResponse(post))
}

// GetFeed returns the authenticated user's posts plus their friends' posts,
// newest first.
func GetFeed(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	// Feed authors are the viewer and everyone they have an accepted edge to.
	authorIDs := database.DB.Model(&models.UserRelation{}).
		Select("to_user_id").
		Where("from_user_id = ? AND status = ?", viewerID, models.StatusAccepted)

	var posts []models.Post
	err := database.DB.
		Where("author_id = ? OR author_id IN (?)", viewerID, authorIDs).
		Order("created_at DESC").
		Limit(100).
		Find(&posts).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch feed"})
		return
	}

	responses := make([]PostResponse, 0, len(posts))
	for _, post := range posts {
		responses = append(responses, newPostResponse(post))
	}

	c.JSON(http.StatusOK, responses)
}

// GetPostByID returns a single post with its comments.
func GetPostByID(c *gin.Context) {
	postID, ok := pathPostID(c)
	if !ok {
		return
	}

	var post models.Post
	if err := database.DB.Preload("Comments").First(&post, postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	c.JSON(http.StatusOK, newPostResponse(post))
}

// AddComment adds a comment to a post.
func AddComment(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	postID, ok := pathPostID(c)
	if !ok {
		return
	}

	var input CommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var post models.Post
	if err := database.DB.First(&post, postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	comment := models.Comment{
		PostID:   post.ID,
		AuthorID: viewerID.(uint),
		Content:  input.Content,
	}
	if err := database.DB.Create(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to post comment"})
		return
	}

	c.JSON(http.StatusCreated, CommentResponse{
		ID:        comment.ID,
		AuthorID:  comment.AuthorID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	})
}

// LikePost increments a post's like counter.
func LikePost(c *gin.Context) {
	postID, ok := pathPostID(c)
	if !ok {
		return
	}

	result := database.DB.Model(&models.Post{}).
		Where("id = ?", postID).
		UpdateColumn("likes", gorm.Expr("likes + 1"))
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to like post"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post liked"})
}

func pathPostID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return 0, false
	}
	return uint(id), true
}
