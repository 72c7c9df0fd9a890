package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bizreel/directory-api/internal/api/metrics"
	"github.com/bizreel/directory-api/internal/core/domain"
	"github.com/bizreel/directory-api/internal/core/ports"
)

// SetupTokenHeader carries the one-time admin bootstrap token.
const SetupTokenHeader = "X-Setup-Token"

type AuthHandler struct {
	authService ports.AuthService
	uploads     uploadIntake
}

func NewAuthHandler(authService ports.AuthService, files ports.FileStore, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		uploads:     uploadIntake{files: files, log: log},
	}
}

type registerRequest struct {
	Name                string `json:"name" form:"name" validate:"min=2" msg:"Name must be at least 2 characters"`
	BusinessName        string `json:"businessName" form:"businessName"`
	Email               string `json:"email" form:"email" validate:"required,email" msg:"Please provide a valid email"`
	Password            string `json:"password" form:"password" validate:"min=6" msg:"Password must be at least 6 characters"`
	Phone               string `json:"phone" form:"phone" validate:"required" msg:"Phone number is required"`
	Address             string `json:"address" form:"address"`
	BusinessDescription string `json:"businessDescription" form:"businessDescription"`
	Category            string `json:"category" form:"category" validate:"required" msg:"Business category is required"`
}

func (r *registerRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.BusinessName = strings.TrimSpace(r.BusinessName)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Address = strings.TrimSpace(r.Address)
	r.BusinessDescription = strings.TrimSpace(r.BusinessDescription)
	r.Category = strings.TrimSpace(r.Category)
}

type loginRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email" msg:"Please provide a valid email"`
	Password string `json:"password" form:"password" validate:"required" msg:"Password is required"`
}

type authResponse struct {
	Success bool         `json:"success" example:"true"`
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    *domain.User `json:"user"`
}

// Register creates a new business account, optionally with a logo.
//
// @Summary      Register a business
// @Tags         auth
// @Accept       json,mpfd
// @Produce      json
// @Param        body  body      registerRequest  true   "Registration details"
// @Param        logo  formData  file             false  "Business logo (image, max 2MB)"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorBody
// @Failure      500   {object}  errorBody
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid payload")
	}
	req.normalize()
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	fh, err := formFile(c, "logo")
	if err != nil {
		return err
	}
	var logo *domain.StoredFile
	if fh != nil {
		if logo, err = h.uploads.store(ctx, fh, domain.LogoPolicy); err != nil {
			return err
		}
	}

	res, err := h.authService.Register(ctx, ports.RegisterInput{
		Name:                req.Name,
		BusinessName:        req.BusinessName,
		Email:               req.Email,
		Password:            req.Password,
		Phone:               req.Phone,
		Address:             req.Address,
		BusinessDescription: req.BusinessDescription,
		Category:            req.Category,
		Logo:                logo,
	})
	if err != nil {
		h.uploads.discard(ctx, logo)
		return err
	}

	metrics.RegistrationsTotal.Inc()
	return c.JSON(http.StatusCreated, authResponse{
		Success: true,
		Message: "Registration successful",
		Token:   res.Token,
		User:    res.User,
	})
}

// Login authenticates a user and returns a JWT token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorBody
// @Failure      401   {object}  errorBody
// @Failure      403   {object}  errorBody
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid payload")
	}
	req.Email = strings.TrimSpace(req.Email)
	if err := c.Validate(&req); err != nil {
		return err
	}

	res, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(loginResult(err)).Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, authResponse{
		Success: true,
		Message: "Login successful",
		Token:   res.Token,
		User:    res.User,
	})
}

func loginResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrAccountDisabled):
		return "disabled"
	default:
		return "error"
	}
}

// CreateAdmin bootstraps the configured admin account once.
//
// @Summary      Bootstrap the admin account
// @Tags         auth
// @Produce      json
// @Param        X-Setup-Token  header    string  false  "One-time setup token"
// @Param        token          query     string  false  "One-time setup token"
// @Success      201            {object}  envelope{data=ports.AdminCredentials}
// @Failure      400            {object}  errorBody
// @Failure      403            {object}  errorBody
// @Router       /auth/create-admin [get]
func (h *AuthHandler) CreateAdmin(c echo.Context) error {
	token := c.Request().Header.Get(SetupTokenHeader)
	if token == "" {
		token = c.QueryParam("token")
	}

	creds, err := h.authService.CreateAdmin(c.Request().Context(), token)
	if errors.Is(err, domain.ErrAlreadyExists) {
		return &domain.DetailedError{Kind: domain.ErrAlreadyExists, Message: "Admin already exists"}
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, ok("Admin created successfully", creds))
}

// ListUsers returns every account, newest first.
//
// @Summary      List users
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope{data=[]domain.User}
// @Failure      401  {object}  errorBody
// @Failure      403  {object}  errorBody
// @Router       /auth/users [get]
func (h *AuthHandler) ListUsers(c echo.Context) error {
	users, err := h.authService.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok("Users retrieved successfully", users))
}

// UserStats returns account counts and the newest accounts.
//
// @Summary      User statistics
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope{data=ports.UserStats}
// @Failure      401  {object}  errorBody
// @Failure      403  {object}  errorBody
// @Router       /auth/user-stats [get]
func (h *AuthHandler) UserStats(c echo.Context) error {
	stats, err := h.authService.UserStats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok("User stats retrieved successfully", stats))
}

// DeleteUser removes an account together with its videos.
//
// @Summary      Delete a user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  envelope
// @Failure      401  {object}  errorBody
// @Failure      403  {object}  errorBody
// @Failure      404  {object}  errorBody
// @Router       /auth/users/{id} [delete]
func (h *AuthHandler) DeleteUser(c echo.Context) error {
	if err := h.authService.DeleteUser(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	metrics.UsersDeletedTotal.Inc()
	return c.JSON(http.StatusOK, ok("User deleted successfully", nil))
}
