package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"meetlink/internal/delivery/http/helpers"
	"meetlink/internal/delivery/http/middleware"
	"meetlink/internal/domain"
	"meetlink/internal/i18n"
)

type DirectoryController struct {
	Logger  *slog.Logger
	Service domain.DirectoryService
}

func NewDirectoryController(logger *slog.Logger, svc domain.DirectoryService) *DirectoryController {
	return &DirectoryController{
		Logger:  logger,
		Service: svc,
	}
}

// DirectoryPage is the response body for GET /events/{slug}/directory.
type DirectoryPage struct {
	Event        *domain.Event             `json:"event"`
	Participants []*domain.ParticipantView `json:"participants"`
	TotalCount   int                       `json:"total_count"`
	Query        string                    `json:"query,omitempty"`
	View         string                    `json:"view"`
}

// GetDirectorySuccessResponse is the success response envelope for GET /events/{slug}/directory (200).
type GetDirectorySuccessResponse struct {
	Data  *DirectoryPage    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// GetDirectory godoc
// @Summary Browse the participant directory of an event
// @Description Returns public participants of the event, newest first, optionally filtered by a case-insensitive search over name, headline, and company. Access requires the caller to be a registered participant; the directory closes a configurable number of days after the event ends, except for organizers. total_count always reflects the unfiltered directory size.
// @Tags directory
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Event slug"
// @Param q query string false "Search query"
// @Param view query string false "Client view hint: grid or list" default(grid)
// @Success 200 {object} controllers.GetDirectorySuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: login_required"
// @Failure 403 {object} helpers.APIResponse "error.code: registration_required or directory_closed"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{slug}/directory [get]
func (c *DirectoryController) GetDirectory(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	lang := i18n.FromRequest(r)
	identity, _ := middleware.IdentityFromContext(r.Context())

	decision, event, err := c.Service.Authorize(r.Context(), slug, identity)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, i18n.T(lang, "event_not_found"))
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, i18n.T(lang, "server_error"))
		return
	}

	switch decision {
	case domain.DirectoryRequiresLogin:
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeLoginRequired, i18n.T(lang, "login_required"))
		return
	case domain.DirectoryRequiresRegistration:
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeRegistrationRequired, i18n.T(lang, "registration_required"))
		return
	case domain.DirectoryWindowClosed:
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeDirectoryClosed, i18n.T(lang, "directory_closed"))
		return
	}

	query := r.URL.Query().Get("q")
	view := r.URL.Query().Get("view")
	if view != "list" {
		view = "grid"
	}

	participants, err := c.Service.List(r.Context(), event.ID, query)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, i18n.T(lang, "server_error"))
		return
	}
	total, err := c.Service.Count(r.Context(), event.ID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, i18n.T(lang, "server_error"))
		return
	}

	helpers.WriteJSONSuccess(w, http.StatusOK, &DirectoryPage{
		Event:        event,
		Participants: participants,
		TotalCount:   total,
		Query:        query,
		View:         view,
	})
}
