package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bizreel/directory-api/internal/core/domain"
	"github.com/bizreel/directory-api/internal/core/ports"
)

// CategoryHandler serves the public catalog and its admin CRUD.
type CategoryHandler struct {
	service ports.CategoryService
}

func NewCategoryHandler(service ports.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

type createCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type updateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

// List returns the active categories by name.
//
// @Summary      List active categories
// @Tags         categories
// @Produce      json
// @Success      200  {object}  envelope{data=[]domain.Category}
// @Router       /categories [get]
func (h *CategoryHandler) List(c echo.Context) error {
	cats, err := h.service.ListActive(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok("Categories fetched", cats))
}

// AdminList returns every category, newest first.
//
// @Summary      List all categories
// @Tags         categories
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope{data=[]domain.Category}
// @Failure      403  {object}  errorBody
// @Router       /categories/admin [get]
func (h *CategoryHandler) AdminList(c echo.Context) error {
	cats, err := h.service.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok("Categories fetched", cats))
}

// Create adds a category; its slug is derived from the name.
//
// @Summary      Create a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCategoryRequest  true  "Category"
// @Success      201   {object}  envelope{data=domain.Category}
// @Failure      400   {object}  errorBody
// @Failure      403   {object}  errorBody
// @Router       /categories/admin [post]
func (h *CategoryHandler) Create(c echo.Context) error {
	var req createCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid payload")
	}
	cat, err := h.service.Create(c.Request().Context(), ports.CreateCategoryInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, ok("Category created", cat))
}

// Update changes name, description or activity. The slug never changes.
//
// @Summary      Update a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Category ID"
// @Param        body  body      updateCategoryRequest  true  "Fields to change"
// @Success      200   {object}  envelope{data=domain.Category}
// @Failure      400   {object}  errorBody
// @Failure      404   {object}  errorBody
// @Router       /categories/admin/{id} [put]
func (h *CategoryHandler) Update(c echo.Context) error {
	var req updateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid payload")
	}
	cat, err := h.service.Update(c.Request().Context(), c.Param("id"), domain.CategoryPatch{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok("Category updated", cat))
}

// Delete removes a category. Videos and users keep their stored slug.
//
// @Summary      Delete a category
// @Tags         categories
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Category ID"
// @Success      200  {object}  envelope
// @Failure      404  {object}  errorBody
// @Router       /categories/admin/{id} [delete]
func (h *CategoryHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok("Category deleted", nil))
}
