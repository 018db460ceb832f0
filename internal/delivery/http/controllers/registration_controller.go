package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"meetlink/internal/delivery/http/helpers"
	"meetlink/internal/delivery/http/middleware"
	"meetlink/internal/domain"
	"meetlink/internal/i18n"
	"meetlink/internal/services"
)

type RegistrationController struct {
	Logger  *slog.Logger
	Service domain.RegistrationService
}

func NewRegistrationController(logger *slog.Logger, svc domain.RegistrationService) *RegistrationController {
	return &RegistrationController{
		Logger:  logger,
		Service: svc,
	}
}

// ParticipationStatus is the response body for GET /events/{slug}/participation.
type ParticipationStatus struct {
	State        domain.RegistrationState `json:"state"`
	ProfileDraft *domain.ProfileDraft     `json:"profile_draft,omitempty"`
}

// CheckParticipationSuccessResponse is the success response envelope for GET /events/{slug}/participation (200).
type CheckParticipationSuccessResponse struct {
	Data  *ParticipationStatus `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// CheckParticipation godoc
// @Summary Get the caller's registration state for an event
// @Description Reports whether the caller is unauthenticated, authenticated but not yet registered, or registered for the event. For an authenticated unregistered caller the response includes a profile draft pre-filled from the login provider's claims.
// @Tags registration
// @Produce json
// @Param slug path string true "Event slug"
// @Success 200 {object} controllers.CheckParticipationSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{slug}/participation [get]
func (c *RegistrationController) CheckParticipation(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	lang := i18n.FromRequest(r)
	identity, _ := middleware.IdentityFromContext(r.Context())

	state, err := c.Service.Status(r.Context(), slug, identity)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, i18n.T(lang, "event_not_found"))
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, i18n.T(lang, "server_error"))
		return
	}

	status := &ParticipationStatus{State: state}
	if state == domain.StateAuthenticatedUnregistered {
		status.ProfileDraft = services.DraftFromIdentity(identity)
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, status)
}

// JoinRequest is the request body for POST /events/{slug}/join.
type JoinRequest struct {
	Name        string `json:"name"`
	Headline    string `json:"headline"`
	PhotoURL    string `json:"photo_url"`
	LinkedInURL string `json:"linkedin_url"`
	Company     string `json:"company"`
	CustomNote  string `json:"custom_note"`
	Visibility  string `json:"visibility"`
}

// JoinResult is the response body for POST /events/{slug}/join.
type JoinResult struct {
	Participant *domain.Participant `json:"participant"`
	Message     string              `json:"message"`
}

// JoinSuccessResponse is the success response envelope for POST /events/{slug}/join (200 or 201).
type JoinSuccessResponse struct {
	Data  *JoinResult       `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// Join godoc
// @Summary Register the caller for an event
// @Description Validates the submitted profile and registers the authenticated caller for the event. Idempotent: returns 201 when a new registration is created, 200 when the caller was already registered, including a double submission racing the first one.
// @Tags registration
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Event slug"
// @Param body body controllers.JoinRequest true "Profile to register"
// @Success 200 {object} controllers.JoinSuccessResponse "Already registered"
// @Success 201 {object} controllers.JoinSuccessResponse "New registration created"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{slug}/join [post]
func (c *RegistrationController) Join(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	lang := i18n.FromRequest(r)

	var req JoinRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, i18n.T(lang, "login_required"))
		return
	}

	in := &domain.JoinInput{
		Name:        req.Name,
		Headline:    req.Headline,
		PhotoURL:    req.PhotoURL,
		LinkedInURL: req.LinkedInURL,
		Company:     req.Company,
		CustomNote:  req.CustomNote,
		Visibility:  domain.Visibility(req.Visibility),
	}
	p, created, err := c.Service.Join(r.Context(), slug, identity, in)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			helpers.WriteJSONError(w, http.StatusBadRequest, verr.Code, i18n.T(lang, verr.Code))
			return
		}
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, i18n.T(lang, "event_not_found"))
			return
		}
		if errors.Is(err, domain.ErrForbidden) {
			helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, i18n.T(lang, "login_required"))
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, i18n.T(lang, "server_error"))
		return
	}

	if created {
		helpers.WriteJSONSuccess(w, http.StatusCreated, &JoinResult{Participant: p, Message: i18n.T(lang, "registration_complete")})
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, &JoinResult{Participant: p, Message: i18n.T(lang, "already_registered")})
}
