package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bizreel/directory-api/internal/core/domain"
	"github.com/bizreel/directory-api/internal/core/ports"
)

// DashboardHandler serves the signed-in user's landing page and profile.
type DashboardHandler struct {
	service ports.ProfileService
}

func NewDashboardHandler(service ports.ProfileService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

type dashboardResponse struct {
	User         *domain.User         `json:"user"`
	Stats        ports.DashboardStats `json:"stats"`
	RecentVideos []ports.VideoSummary `json:"recentVideos"`
	RecentUsers  []ports.RecentUser   `json:"recentUsers"`
}

type updateProfileRequest struct {
	Name                *string `json:"name"`
	Phone               *string `json:"phone"`
	Address             *string `json:"address"`
	BusinessName        *string `json:"businessName"`
	BusinessDescription *string `json:"businessDescription"`
	Category            *string `json:"category"`
}

// Dashboard handles GET /dashboard.
//
// @Summary      Dashboard for the caller
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope{data=dashboardResponse}
// @Failure      401  {object}  errorBody
// @Failure      404  {object}  errorBody
// @Router       /dashboard [get]
func (h *DashboardHandler) Dashboard(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	d, err := h.service.Dashboard(c.Request().Context(), actor.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok("", dashboardResponse{
		User:         d.User,
		Stats:        d.Stats,
		RecentVideos: d.RecentVideos,
		RecentUsers:  d.RecentUsers,
	}))
}

// Profile handles GET /dashboard/profile.
//
// @Summary      The caller's profile
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope{data=domain.User}
// @Failure      404  {object}  errorBody
// @Router       /dashboard/profile [get]
func (h *DashboardHandler) Profile(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	user, err := h.service.Profile(c.Request().Context(), actor.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok("", user))
}

// UpdateProfile handles PUT /dashboard/profile.
//
// @Summary      Update the caller's profile
// @Tags         dashboard
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Fields to change"
// @Success      200   {object}  envelope{data=domain.User}
// @Failure      400   {object}  errorBody
// @Router       /dashboard/profile [put]
func (h *DashboardHandler) UpdateProfile(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid payload")
	}
	user, err := h.service.UpdateProfile(c.Request().Context(), actor.ID, domain.UserPatch{
		Name:                req.Name,
		Phone:               req.Phone,
		Address:             req.Address,
		BusinessName:        req.BusinessName,
		BusinessDescription: req.BusinessDescription,
		Category:            req.Category,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok("Profile updated", user))
}
