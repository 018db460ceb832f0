package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"meetlink/internal/delivery/http/helpers"
	"meetlink/internal/delivery/http/middleware"
	"meetlink/internal/domain"
	"meetlink/internal/i18n"
)

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateEventRequest is the request body for POST /events.
type CreateEventRequest struct {
	Name                string     `json:"name"`
	Slug                string     `json:"slug"`
	Date                time.Time  `json:"date"`
	EndDate             *time.Time `json:"end_date"`
	Location            string     `json:"location"`
	Description         string     `json:"description"`
	CoverImageURL       string     `json:"cover_image_url"`
	DirectoryAccessDays *int       `json:"directory_access_days"`
	Language            string     `json:"language"`
}

// CreateEventSuccessResponse is the success response envelope for POST /events (201).
type CreateEventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// CreateEvent godoc
// @Summary Create a networking event
// @Description Creates an event reachable under its URL slug. The authenticated creator becomes the organizer and is auto-registered as an organizer participant when they already have a profile.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body controllers.CreateEventRequest true "Event to create"
// @Success 201 {object} controllers.CreateEventSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or a field code such as slug_invalid"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (slug already in use)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	lang := i18n.FromRequest(r)

	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, i18n.T(lang, "login_required"))
		return
	}

	in := &domain.CreateEventInput{
		Name:                req.Name,
		Slug:                req.Slug,
		Date:                req.Date,
		EndDate:             req.EndDate,
		Location:            req.Location,
		Description:         req.Description,
		CoverImageURL:       req.CoverImageURL,
		DirectoryAccessDays: req.DirectoryAccessDays,
		Language:            req.Language,
	}
	event, err := c.Service.CreateEvent(r.Context(), identity.ID, in)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			helpers.WriteJSONError(w, http.StatusBadRequest, verr.Code, i18n.T(lang, verr.Code))
			return
		}
		if errors.Is(err, domain.ErrSlugTaken) {
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, i18n.T(lang, "slug_taken"))
			return
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, i18n.T(lang, "bad_request"))
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, i18n.T(lang, "server_error"))
		return
	}

	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// GetEventSuccessResponse is the success response envelope for GET /events/{slug} (200).
type GetEventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// GetEvent godoc
// @Summary Get an event by its URL slug
// @Description Returns the public event page data. Inactive events are not found.
// @Tags events
// @Produce json
// @Param slug path string true "Event slug"
// @Success 200 {object} controllers.GetEventSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{slug} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	lang := i18n.FromRequest(r)

	event, err := c.Service.GetEventBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, i18n.T(lang, "event_not_found"))
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, i18n.T(lang, "server_error"))
		return
	}

	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}
