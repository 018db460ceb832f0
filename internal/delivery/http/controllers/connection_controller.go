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

type ConnectionController struct {
	Logger  *slog.Logger
	Service domain.ConnectionService
}

func NewConnectionController(logger *slog.Logger, svc domain.ConnectionService) *ConnectionController {
	return &ConnectionController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateConnectionRequest is the request body for POST /events/{slug}/connections.
type CreateConnectionRequest struct {
	ParticipantID  string `json:"participant_id"`
	ConnectionType string `json:"connection_type"`
}

// Validate implements helpers.Validator.
func (r *CreateConnectionRequest) Validate() []string {
	if r.ParticipantID == "" {
		return []string{"participant_id is required"}
	}
	return nil
}

// CreateConnectionSuccessResponse is the success response envelope for POST /events/{slug}/connections (201).
type CreateConnectionSuccessResponse struct {
	Data  *domain.Connection `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// CreateConnection godoc
// @Summary Record a connection with another participant
// @Description Records that the caller's participant at the event connected with the given participant, typically after scanning their QR code. Both participants must belong to the event.
// @Tags connections
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Event slug"
// @Param body body controllers.CreateConnectionRequest true "Scanned participant and how the connection was made"
// @Success 201 {object} controllers.CreateConnectionSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (caller not registered for the event)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{slug}/connections [post]
func (c *ConnectionController) CreateConnection(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	lang := i18n.FromRequest(r)

	var req CreateConnectionRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, i18n.T(lang, "login_required"))
		return
	}

	conn, err := c.Service.Connect(r.Context(), identity.ID, slug, req.ParticipantID, domain.ConnectionType(req.ConnectionType))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, i18n.T(lang, "event_not_found"))
			return
		}
		if errors.Is(err, domain.ErrForbidden) {
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, i18n.T(lang, "forbidden"))
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

	helpers.WriteJSONSuccess(w, http.StatusCreated, conn)
}

// ListMyConnectionsSuccessResponse is the success response envelope for GET /me/connections (200).
type ListMyConnectionsSuccessResponse struct {
	Data  []*domain.ParticipantWithUser `json:"data"`
	Error *helpers.APIError             `json:"error"`
}

// ListMyConnections godoc
// @Summary List the caller's collected connections
// @Description Returns the participants the given participant has connected with, newest first. The participant must belong to the caller.
// @Tags connections
// @Produce json
// @Security BearerAuth
// @Param participant_id query string true "Caller's participant ID"
// @Success 200 {object} controllers.ListMyConnectionsSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /me/connections [get]
func (c *ConnectionController) ListMyConnections(w http.ResponseWriter, r *http.Request) {
	lang := i18n.FromRequest(r)

	participantID := r.URL.Query().Get("participant_id")
	if participantID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing participant_id")
		return
	}

	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, i18n.T(lang, "login_required"))
		return
	}

	rows, err := c.Service.ListMine(r.Context(), identity.ID, participantID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, i18n.T(lang, "event_not_found"))
			return
		}
		if errors.Is(err, domain.ErrForbidden) {
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, i18n.T(lang, "forbidden"))
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, i18n.T(lang, "server_error"))
		return
	}

	helpers.WriteJSONSuccess(w, http.StatusOK, rows)
}
