package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wayandway/moneylog-backend/internal/service"
)

// CommentHandler handles comment endpoints.
type CommentHandler struct {
	commentService service.CommentService
}

// NewCommentHandler creates a new comment handler.
func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// CreateCommentRequest represents a comment creation request. The author is
// the authenticated actor.
type CreateCommentRequest struct {
	PostID  uint   `json:"post_id" validate:"required"`
	Content string `json:"content" validate:"required"`
}

// UpdateCommentRequest represents a comment content update.
type UpdateCommentRequest struct {
	Content string `json:"content" validate:"required"`
}

// FindByPost godoc
// @Summary List comments on a post
// @Tags comments
// @Produce json
// @Param postId path int true "Post ID"
// @Success 200 {array} model.Comment
// @Failure 404 {object} errors.ErrorResponse
// @Router /comments/{postId} [get]
func (h *CommentHandler) FindByPost(c echo.Context) error {
	postID, err := pathID(c, "postId")
	if err != nil {
		return err
	}

	comments, err := h.commentService.FindByPost(c.Request().Context(), postID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, comments)
}

// Create godoc
// @Summary Comment on a post
// @Tags comments
// @Accept json
// @Produce json
// @Param request body CreateCommentRequest true "Comment data"
// @Success 201 {object} model.Comment
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /comments [post]
func (h *CommentHandler) Create(c echo.Context) error {
	userID, err := actorID(c)
	if err != nil {
		return err
	}

	var req CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.commentService.Create(c.Request().Context(), req.PostID, userID, req.Content)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, comment)
}

// Update godoc
// @Summary Update own comment
// @Tags comments
// @Accept json
// @Produce json
// @Param id path int true "Comment ID"
// @Param request body UpdateCommentRequest true "New content"
// @Success 200 {object} model.Comment
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /comments/{id} [patch]
func (h *CommentHandler) Update(c echo.Context) error {
	userID, err := actorID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req UpdateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.commentService.Update(c.Request().Context(), id, req.Content, userID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, comment)
}

// Delete godoc
// @Summary Delete own comment
// @Tags comments
// @Produce json
// @Param id path int true "Comment ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /comments/{id} [delete]
func (h *CommentHandler) Delete(c echo.Context) error {
	userID, err := actorID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.commentService.Delete(c.Request().Context(), id, userID); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "comment deleted successfully",
	})
}
