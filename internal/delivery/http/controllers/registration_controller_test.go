package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"meetlink/internal/delivery/http/middleware"
	"meetlink/internal/domain"
)

func withIdentity(r *http.Request, identity *domain.Identity) *http.Request {
	return r.WithContext(middleware.SetIdentity(r.Context(), identity))
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var envelope map[string]any
	if err := json.NewDecoder(w.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return envelope
}

func TestRegistrationController_CheckParticipation(t *testing.T) {
	tests := []struct {
		name      string
		service   *stubRegistrationService
		identity  *domain.Identity
		wantState string
		wantDraft bool
	}{
		{
			name:      "anonymous visitor",
			service:   &stubRegistrationService{state: domain.StateUnauthenticated},
			wantState: "unauthenticated",
		},
		{
			name:      "authenticated unregistered gets a draft",
			service:   &stubRegistrationService{state: domain.StateAuthenticatedUnregistered},
			identity:  &domain.Identity{ID: "auth-1", Name: "Kim Minji", ProfileLink: "linkedin.com/in/kim-minji"},
			wantState: "authenticated_unregistered",
			wantDraft: true,
		},
		{
			name:      "registered",
			service:   &stubRegistrationService{state: domain.StateRegistered},
			identity:  &domain.Identity{ID: "auth-1"},
			wantState: "registered",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewRegistrationController(testLogger(), tt.service)

			r := httptest.NewRequest("GET", "/events/seoul-tech/participation", nil)
			r.SetPathValue("slug", "seoul-tech")
			if tt.identity != nil {
				r = withIdentity(r, tt.identity)
			}
			w := httptest.NewRecorder()
			c.CheckParticipation(w, r)

			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
			}
			data := decodeEnvelope(t, w)["data"].(map[string]any)
			if data["state"] != tt.wantState {
				t.Errorf("state = %v, want %q", data["state"], tt.wantState)
			}
			_, hasDraft := data["profile_draft"]
			if hasDraft != tt.wantDraft {
				t.Errorf("profile_draft present = %v, want %v", hasDraft, tt.wantDraft)
			}
		})
	}
}

func TestRegistrationController_CheckParticipation_UnknownEvent(t *testing.T) {
	c := NewRegistrationController(testLogger(), &stubRegistrationService{statusErr: domain.ErrNotFound})

	r := httptest.NewRequest("GET", "/events/nope/participation", nil)
	r.SetPathValue("slug", "nope")
	w := httptest.NewRecorder()
	c.CheckParticipation(w, r)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestRegistrationController_Join(t *testing.T) {
	identity := &domain.Identity{ID: "auth-1"}
	body := `{"name":"Kim Minji","linkedin_url":"linkedin.com/in/kim-minji","headline":"Backend Engineer"}`

	t.Run("new registration returns 201", func(t *testing.T) {
		service := &stubRegistrationService{
			participant: &domain.Participant{ID: "p1", EventID: "e1"},
			created:     true,
		}
		c := NewRegistrationController(testLogger(), service)

		r := httptest.NewRequest("POST", "/events/seoul-tech/join", strings.NewReader(body))
		r.SetPathValue("slug", "seoul-tech")
		w := httptest.NewRecorder()
		c.Join(w, withIdentity(r, identity))

		if w.Code != http.StatusCreated {
			t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
		}
		if service.joinedWith.Headline != "Backend Engineer" {
			t.Errorf("service received %+v", service.joinedWith)
		}
	})

	t.Run("repeat submission returns 200", func(t *testing.T) {
		service := &stubRegistrationService{
			participant: &domain.Participant{ID: "p1", EventID: "e1"},
			created:     false,
		}
		c := NewRegistrationController(testLogger(), service)

		r := httptest.NewRequest("POST", "/events/seoul-tech/join", strings.NewReader(body))
		r.SetPathValue("slug", "seoul-tech")
		w := httptest.NewRecorder()
		c.Join(w, withIdentity(r, identity))

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
		}
	})

	t.Run("validation error is localized", func(t *testing.T) {
		service := &stubRegistrationService{
			joinErr: &domain.ValidationError{Field: "linkedin_url", Code: domain.CodeLinkInvalid},
		}
		c := NewRegistrationController(testLogger(), service)

		r := httptest.NewRequest("POST", "/events/seoul-tech/join", strings.NewReader(body))
		r.SetPathValue("slug", "seoul-tech")
		r.Header.Set("Accept-Language", "ko")
		w := httptest.NewRecorder()
		c.Join(w, withIdentity(r, identity))

		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
		}
		errObj := decodeEnvelope(t, w)["error"].(map[string]any)
		if errObj["code"] != domain.CodeLinkInvalid {
			t.Errorf("error code = %v", errObj["code"])
		}
		if !strings.Contains(errObj["message"].(string), "LinkedIn") {
			t.Errorf("message = %v", errObj["message"])
		}
	})

	t.Run("missing identity returns 401", func(t *testing.T) {
		c := NewRegistrationController(testLogger(), &stubRegistrationService{})

		r := httptest.NewRequest("POST", "/events/seoul-tech/join", strings.NewReader(body))
		r.SetPathValue("slug", "seoul-tech")
		w := httptest.NewRecorder()
		c.Join(w, r)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", w.Code)
		}
	})

	t.Run("unknown field in body returns 400", func(t *testing.T) {
		c := NewRegistrationController(testLogger(), &stubRegistrationService{})

		r := httptest.NewRequest("POST", "/events/seoul-tech/join", strings.NewReader(`{"nope":1}`))
		r.SetPathValue("slug", "seoul-tech")
		w := httptest.NewRecorder()
		c.Join(w, withIdentity(r, identity))

		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", w.Code)
		}
	})
}
