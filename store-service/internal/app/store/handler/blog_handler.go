package handler

import (
	"errors"
	"net/http"

	"smarttech/store-service/internal/app/store/entity"
	"smarttech/store-service/internal/app/store/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// BlogHandler обрабатывает HTTP запросы блога магазина
type BlogHandler struct {
	blogService service.BlogServiceInterface
	validator   *validator.Validate
}

// NewBlogHandler создает новый обработчик блога
func NewBlogHandler(blogService service.BlogServiceInterface) *BlogHandler {
	return &BlogHandler{
		blogService: blogService,
		validator:   validator.New(),
	}
}

// CreatePost обрабатывает POST /posts (только admin)
func (h *BlogHandler) CreatePost(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req entity.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	// Валидация
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	post, err := h.blogService.CreatePost(c.Request.Context(), actor.UserID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	c.JSON(http.StatusCreated, post)
}

// GetPost обрабатывает GET /posts/:id
func (h *BlogHandler) GetPost(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	post, err := h.blogService.GetPost(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get post"})
		return
	}

	c.JSON(http.StatusOK, post)
}

// GetPosts обрабатывает GET /posts
func (h *BlogHandler) GetPosts(c *gin.Context) {
	posts, err := h.blogService.GetPosts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get posts"})
		return
	}

	c.JSON(http.StatusOK, entity.PostListResponse{
		Posts: posts,
		Total: len(posts),
	})
}

// DeletePost обрабатывает DELETE /posts/:id (только admin)
func (h *BlogHandler) DeletePost(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	if err := h.blogService.DeletePost(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{Message: "Post deleted"})
}
