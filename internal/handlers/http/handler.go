package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/weather-widget/internal/models"
	"github.com/Nazarious-ucu/weather-widget/internal/widget"
)

const defaultTimeout = 10 * time.Second

type widgetRegistry interface {
	Mount(ctx context.Context) (*widget.Controller, error)
	Get(id string) (*widget.Controller, error)
	Unmount(id string) error
	Len() int
}

type recorder interface {
	SetSessions(n int)
	RecordAction(action string)
	RecordError(errorType string)
}

type Handler struct {
	widgets widgetRegistry
	metrics recorder
	logger  zerolog.Logger
	timeout time.Duration
}

func NewHandler(widgets widgetRegistry, metrics recorder, logger zerolog.Logger, timeout time.Duration) *Handler {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Handler{
		widgets: widgets,
		metrics: metrics,
		logger:  logger,
		timeout: timeout,
	}
}

// Register mounts the widget routes under group.
func (h *Handler) Register(group *gin.RouterGroup) {
	group.POST("/widgets", h.Mount)
	group.GET("/widgets/:id", h.Get)
	group.DELETE("/widgets/:id", h.Unmount)
	group.POST("/widgets/:id/search", h.Search)
	group.POST("/widgets/:id/geolocation", h.Geolocation)
	group.POST("/widgets/:id/unit", h.ToggleUnit)
	group.POST("/widgets/:id/dark-mode", h.ToggleDarkMode)
	group.POST("/widgets/:id/forecast-table", h.ToggleForecastTable)
	group.POST("/widgets/:id/share", h.Share)
	group.GET("/widgets/:id/events", h.Events)
}

type mountResponse struct {
	ID   string      `json:"id"`
	View widget.View `json:"view"`
}

func (h *Handler) Mount(c *gin.Context) {
	ctx, cancel := h.loadContext(c)
	defer cancel()

	ctrl, err := h.widgets.Mount(ctx)
	h.metrics.SetSessions(h.widgets.Len())
	if err != nil {
		h.recordFailure(err)
		h.logger.Warn().Err(err).Str("widget", ctrl.ID()).Msg("initial fetch failed")
	}

	c.JSON(http.StatusCreated, mountResponse{ID: ctrl.ID(), View: ctrl.Render()})
}

func (h *Handler) Get(c *gin.Context) {
	ctrl, ok := h.controller(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, ctrl.Render())
}

func (h *Handler) Unmount(c *gin.Context) {
	if err := h.widgets.Unmount(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	h.metrics.SetSessions(h.widgets.Len())
	c.Status(http.StatusNoContent)
}

type searchRequest struct {
	Location string `json:"location"`
}

func (h *Handler) Search(c *gin.Context) {
	ctrl, ok := h.controller(c)
	if !ok {
		return
	}

	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	h.metrics.RecordAction("search")

	ctx, cancel := h.loadContext(c)
	defer cancel()

	err := ctrl.Submit(ctx, req.Location)
	h.respondLoad(c, ctrl, err)
}

func (h *Handler) Geolocation(c *gin.Context) {
	ctrl, ok := h.controller(c)
	if !ok {
		return
	}

	var req geolocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	h.metrics.RecordAction("geolocation")

	ctx, cancel := h.loadContext(c)
	defer cancel()

	err := ctrl.UseGeolocation(ctx, req.locator())
	h.respondLoad(c, ctrl, err)
}

func (h *Handler) ToggleUnit(c *gin.Context) {
	h.toggle(c, "unit", func(ctrl *widget.Controller) { ctrl.ToggleUnit() })
}

func (h *Handler) ToggleDarkMode(c *gin.Context) {
	h.toggle(c, "dark_mode", func(ctrl *widget.Controller) { ctrl.ToggleDarkMode() })
}

func (h *Handler) ToggleForecastTable(c *gin.Context) {
	h.toggle(c, "forecast_table", func(ctrl *widget.Controller) { ctrl.ToggleForecastTable() })
}

func (h *Handler) toggle(c *gin.Context, action string, fn func(*widget.Controller)) {
	ctrl, ok := h.controller(c)
	if !ok {
		return
	}
	h.metrics.RecordAction(action)
	fn(ctrl)
	c.JSON(http.StatusOK, ctrl.Render())
}

type shareRequest struct {
	Supported bool `json:"supported"`
}

type shareResponse struct {
	Text   string `json:"text,omitempty"`
	Notice string `json:"notice,omitempty"`
}

func (h *Handler) Share(c *gin.Context) {
	ctrl, ok := h.controller(c)
	if !ok {
		return
	}

	var req shareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	h.metrics.RecordAction("share")

	var sharer widget.Sharer
	if req.Supported {
		sharer = hostSharer{}
	}

	text, err := ctrl.Share(c.Request.Context(), sharer)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, shareResponse{Text: text})
	case errors.Is(err, widget.ErrShareUnsupported):
		h.metrics.RecordError("share_unsupported")
		c.JSON(http.StatusOK, shareResponse{Text: text, Notice: widget.MsgShareUnsupported})
	case errors.Is(err, widget.ErrNothingToShare):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// loadContext bounds a load by the handler timeout only. Loads write shared
// widget state, so a caller that disconnects must not cancel them.
func (h *Handler) loadContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(c.Request.Context()), h.timeout)
}

func (h *Handler) controller(c *gin.Context) (*widget.Controller, bool) {
	ctrl, err := h.widgets.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return nil, false
	}
	return ctrl, true
}

// respondLoad answers a search or geolocation with the rendered view; the
// status reflects how the load ended.
func (h *Handler) respondLoad(c *gin.Context, ctrl *widget.Controller, err error) {
	if err != nil {
		h.recordFailure(err)
	}
	c.JSON(loadStatus(err), ctrl.Render())
}

func (h *Handler) recordFailure(err error) {
	switch {
	case errors.Is(err, widget.ErrValidation):
		h.metrics.RecordError("validation")
	case errors.Is(err, widget.ErrGeolocation):
		h.metrics.RecordError("geolocation")
	case errors.Is(err, models.ErrLocationNotFound):
		h.metrics.RecordError("city_not_found")
	case errors.Is(err, widget.ErrFetchFailed):
		h.metrics.RecordError("provider")
	}
}

func loadStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, widget.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, widget.ErrGeolocation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, widget.ErrSuperseded):
		return http.StatusConflict
	case errors.Is(err, models.ErrLocationNotFound):
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}
