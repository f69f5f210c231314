package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wayandway/moneylog-backend/internal/errors"
	"github.com/wayandway/moneylog-backend/internal/service"
)

// TagHandler handles tag endpoints.
type TagHandler struct {
	tagService service.TagService
}

// NewTagHandler creates a new tag handler.
func NewTagHandler(tagService service.TagService) *TagHandler {
	return &TagHandler{tagService: tagService}
}

// CreateTagRequest represents an explicit tag creation request.
type CreateTagRequest struct {
	Name string `json:"name" validate:"required,min=2,max=30"`
}

// List godoc
// @Summary List tags
// @Tags tags
// @Produce json
// @Success 200 {array} model.Tag
// @Failure 500 {object} errors.ErrorResponse
// @Router /tags [get]
func (h *TagHandler) List(c echo.Context) error {
	tags, err := h.tagService.List(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, tags)
}

// Get godoc
// @Summary Get a tag by name
// @Tags tags
// @Produce json
// @Param name path string true "Tag name"
// @Success 200 {object} model.Tag
// @Failure 404 {object} errors.ErrorResponse
// @Router /tags/{name} [get]
func (h *TagHandler) Get(c echo.Context) error {
	tag, err := h.tagService.FindByName(c.Request().Context(), c.Param("name"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, tag)
}

// Create godoc
// @Summary Create a tag
// @Tags tags
// @Accept json
// @Produce json
// @Param request body CreateTagRequest true "Tag data"
// @Success 201 {object} model.Tag
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /tags [post]
func (h *TagHandler) Create(c echo.Context) error {
	if _, err := actorID(c); err != nil {
		return err
	}

	var req CreateTagRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tag, err := h.tagService.Create(c.Request().Context(), req.Name)
	if err != nil {
		if err == service.ErrTagAlreadyExists {
			return echo.NewHTTPError(http.StatusConflict, errors.ErrorResponse{
				Error: err.Error(),
				Code:  "TAG_ALREADY_EXISTS",
			})
		}
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, tag)
}

// Delete godoc
// @Summary Delete a tag by name
// @Tags tags
// @Produce json
// @Param name path string true "Tag name"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /tags/{name} [delete]
func (h *TagHandler) Delete(c echo.Context) error {
	if _, err := actorID(c); err != nil {
		return err
	}

	if err := h.tagService.Delete(c.Request().Context(), c.Param("name")); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "tag deleted successfully",
	})
}
