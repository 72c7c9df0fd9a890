package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bizreel/directory-api/internal/api/metrics"
	"github.com/bizreel/directory-api/internal/core/domain"
	"github.com/bizreel/directory-api/internal/core/ports"
)

// VideoHandler handles HTTP requests for the video catalogue.
type VideoHandler struct {
	content ports.ContentService
	listing ports.ListingService
	uploads uploadIntake
}

func NewVideoHandler(content ports.ContentService, listing ports.ListingService, files ports.FileStore, log zerolog.Logger) *VideoHandler {
	return &VideoHandler{
		content: content,
		listing: listing,
		uploads: uploadIntake{files: files, log: log},
	}
}

// List handles GET /videos.
//
// @Summary      List all videos
// @Tags         videos
// @Produce      json
// @Success      200  {object}  envelope{data=[]videoResponse}
// @Router       /videos [get]
func (h *VideoHandler) List(c echo.Context) error {
	views, err := h.listing.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok("Videos fetched", toVideoListResponse(views)))
}

// Mine handles GET /videos/my.
//
// @Summary      List the caller's videos
// @Tags         videos
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope{data=[]videoResponse}
// @Failure      401  {object}  errorBody
// @Router       /videos/my [get]
func (h *VideoHandler) Mine(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	views, err := h.listing.ListByOwner(c.Request().Context(), actor.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok("Videos fetched", toVideoListResponse(views)))
}

// Get handles GET /videos/:id.
//
// @Summary      Get a video
// @Tags         videos
// @Produce      json
// @Param        id   path      string  true  "Video ID"
// @Success      200  {object}  envelope{data=videoResponse}
// @Failure      404  {object}  errorBody
// @Router       /videos/{id} [get]
func (h *VideoHandler) Get(c echo.Context) error {
	view, err := h.listing.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok("Video fetched", toVideoResponse(*view)))
}

// Stats handles GET /videos/stats.
//
// @Summary      Video counts by status
// @Tags         videos
// @Produce      json
// @Success      200  {object}  envelope{data=ports.VideoStats}
// @Router       /videos/stats [get]
func (h *VideoHandler) Stats(c echo.Context) error {
	stats, err := h.listing.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok("Video stats fetched", stats))
}

// Upload handles POST /videos/upload.
//
// @Summary      Upload a video
// @Tags         videos
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        video        formData  file    true   "Video file (max 100MB)"
// @Param        title        formData  string  false  "Title, defaults to the file name"
// @Param        description  formData  string  false  "Description"
// @Param        category     formData  string  false  "Category slug, defaults to general"
// @Param        tags         formData  string  false  "Tags, comma-separated or repeated"
// @Param        websiteUrl   formData  string  false  "Website link"
// @Param        whatsappUrl  formData  string  false  "WhatsApp link"
// @Success      201          {object}  envelope{data=videoResponse}
// @Failure      400          {object}  errorBody
// @Failure      401          {object}  errorBody
// @Router       /videos/upload [post]
func (h *VideoHandler) Upload(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req uploadVideoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid payload")
	}

	fh, err := formFile(c, "video")
	if err != nil {
		return err
	}
	if fh == nil {
		return h.uploads.reject(domain.VideoPolicy, "missing", "No video uploaded")
	}

	ctx := c.Request().Context()
	stored, err := h.uploads.store(ctx, fh, domain.VideoPolicy)
	if err != nil {
		return err
	}

	view, err := h.content.Upload(ctx, ports.UploadVideoInput{
		Uploader:    actor,
		File:        *stored,
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Category:    req.Category,
		Tags:        req.tags(),
		WebsiteURL:  strings.TrimSpace(req.WebsiteURL),
		WhatsappURL: strings.TrimSpace(req.WhatsappURL),
	})
	if err != nil {
		h.uploads.discard(ctx, stored)
		return err
	}

	metrics.VideosUploadedTotal.WithLabelValues(view.Video.Category).Inc()
	return c.JSON(http.StatusCreated, ok("Video uploaded successfully", toVideoResponse(*view)))
}

// Update handles PUT /videos/:id.
//
// @Summary      Update a video
// @Tags         videos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Video ID"
// @Param        body  body      updateVideoRequest  true  "Fields to change"
// @Success      200   {object}  envelope{data=videoResponse}
// @Failure      400   {object}  errorBody
// @Failure      403   {object}  errorBody
// @Failure      404   {object}  errorBody
// @Router       /videos/{id} [put]
func (h *VideoHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req updateVideoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid payload")
	}

	view, err := h.content.Update(c.Request().Context(), actor, c.Param("id"), toVideoPatch(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok("Video updated", toVideoResponse(*view)))
}

// Delete handles DELETE /videos/:id.
//
// @Summary      Delete a video
// @Tags         videos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Video ID"
// @Success      200  {object}  envelope
// @Failure      403  {object}  errorBody
// @Failure      404  {object}  errorBody
// @Router       /videos/{id} [delete]
func (h *VideoHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	if err := h.content.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	metrics.VideosDeletedTotal.Inc()
	return c.JSON(http.StatusOK, ok("Video deleted", nil))
}

// MyCategories handles GET /videos/user/categories.
//
// @Summary      Categories the caller has videos in
// @Tags         videos
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope{data=[]string}
// @Router       /videos/user/categories [get]
func (h *VideoHandler) MyCategories(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	cats, err := h.listing.OwnerCategories(c.Request().Context(), actor.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok("User categories fetched", cats))
}

// ByCategory handles GET /videos/category/:category.
//
// @Summary      The caller's videos in one category
// @Tags         videos
// @Produce      json
// @Security     BearerAuth
// @Param        category  path      string  true  "Category, either separator spelling"
// @Success      200       {object}  envelope{data=[]videoResponse}
// @Router       /videos/category/{category} [get]
func (h *VideoHandler) ByCategory(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	views, err := h.listing.ListByOwnerAndCategory(c.Request().Context(), actor.ID, c.Param("category"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok("Videos fetched", toVideoListResponse(views)))
}

// Grouped handles GET /videos/user/by-category.
//
// @Summary      The caller's videos grouped by category
// @Tags         videos
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope{data=map[string][]ports.VideoSummary}
// @Router       /videos/user/by-category [get]
func (h *VideoHandler) Grouped(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	grouped, err := h.listing.GroupByCategory(c.Request().Context(), actor.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok("Videos grouped by category", grouped))
}
