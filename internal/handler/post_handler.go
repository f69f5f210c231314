package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	apperrors "github.com/wayandway/moneylog-backend/internal/errors"
	"github.com/wayandway/moneylog-backend/internal/model"
	"github.com/wayandway/moneylog-backend/internal/service"
)

// PostHandler handles post endpoints.
type PostHandler struct {
	postService service.PostService
}

// NewPostHandler creates a new post handler.
func NewPostHandler(postService service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// CreatePostRequest represents a post creation request. The author is taken
// from the access token, never from the body.
type CreatePostRequest struct {
	Title     string   `json:"title" validate:"required,max=255"`
	Content   string   `json:"content" validate:"required"`
	Tags      []string `json:"tags" validate:"omitempty,dive,min=2,max=30"`
	IsPrivate bool     `json:"is_private"`
}

// UpdatePostRequest represents a partial post update. Absent fields are left
// unchanged; a present tags list replaces the post's tags.
type UpdatePostRequest struct {
	Title     *string  `json:"title" validate:"omitempty,max=255"`
	Content   *string  `json:"content"`
	Tags      []string `json:"tags" validate:"omitempty,dive,min=2,max=30"`
	IsPrivate *bool    `json:"is_private"`
}

// BlogResponse represents an author's blog page: the user plus their posts
// visible to the requester.
type BlogResponse struct {
	User  *model.User  `json:"user"`
	Posts []model.Post `json:"posts"`
}

// FindAll godoc
// @Summary List posts visible to the viewer
// @Tags posts
// @Produce json
// @Success 200 {array} model.Post
// @Failure 500 {object} errors.ErrorResponse
// @Router /posts [get]
func (h *PostHandler) FindAll(c echo.Context) error {
	posts, err := h.postService.FindAll(c.Request().Context(), viewerID(c))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, posts)
}

// FindByTags godoc
// @Summary List posts carrying any of the given tags
// @Tags posts
// @Produce json
// @Param tags query string true "Comma-separated tag names"
// @Success 200 {array} model.Post
// @Failure 400 {object} errors.ErrorResponse
// @Router /posts/tags [get]
func (h *PostHandler) FindByTags(c echo.Context) error {
	var tags []string
	for _, tag := range strings.Split(c.QueryParam("tags"), ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	if len(tags) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "tags query parameter must not be empty",
			Code:  "VALIDATION_FAILED",
		})
	}

	posts, err := h.postService.FindByTags(c.Request().Context(), tags, viewerID(c))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, posts)
}

// FindOne godoc
// @Summary Get one post by slug or numeric ID
// @Tags posts
// @Produce json
// @Param id path string true "Post slug or ID"
// @Success 200 {object} model.Post
// @Failure 404 {object} errors.ErrorResponse
// @Router /posts/{id} [get]
func (h *PostHandler) FindOne(c echo.Context) error {
	post, err := h.postService.FindOne(c.Request().Context(), c.Param("id"), viewerID(c))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, post)
}

// FindByAuthor godoc
// @Summary Get a user's blog: the user and their visible posts
// @Tags posts
// @Produce json
// @Param domain path string true "Blog domain key"
// @Success 200 {object} BlogResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /blog/{domain} [get]
func (h *PostHandler) FindByAuthor(c echo.Context) error {
	user, posts, err := h.postService.FindByAuthor(c.Request().Context(), c.Param("domain"), viewerID(c))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, BlogResponse{User: user, Posts: posts})
}

// Create godoc
// @Summary Create a post
// @Tags posts
// @Accept json
// @Produce json
// @Param request body CreatePostRequest true "Post data"
// @Success 201 {object} model.Post
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /posts [post]
func (h *PostHandler) Create(c echo.Context) error {
	userID, err := actorID(c)
	if err != nil {
		return err
	}

	var req CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.postService.Create(c.Request().Context(), service.CreatePostInput{
		Title:     req.Title,
		Content:   req.Content,
		Tags:      req.Tags,
		IsPrivate: req.IsPrivate,
	}, userID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, post)
}

// Update godoc
// @Summary Update own post
// @Tags posts
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Param request body UpdatePostRequest true "Fields to update"
// @Success 200 {object} model.Post
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /posts/{id} [patch]
func (h *PostHandler) Update(c echo.Context) error {
	userID, err := actorID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.postService.Update(c.Request().Context(), id, service.UpdatePostInput{
		Title:     req.Title,
		Content:   req.Content,
		Tags:      req.Tags,
		IsPrivate: req.IsPrivate,
	}, userID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, post)
}

// Delete godoc
// @Summary Delete own post
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /posts/{id} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	userID, err := actorID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.postService.Delete(c.Request().Context(), id, userID); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "post deleted successfully",
	})
}
