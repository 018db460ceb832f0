package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meetlink/internal/domain"
)

func TestTemplateRenderer_RegistrationConfirmation(t *testing.T) {
	renderer := NewTemplateRenderer()
	data := &domain.RegistrationConfirmationEmailData{
		Email:        "minji@example.com",
		Name:         "Kim Minji",
		EventName:    "Seoul Tech Meetup",
		DirectoryURL: "https://meetlink.example/e/seoul-tech/directory",
		Language:     "en",
	}

	subject, html, text, err := renderer.Render("registration_confirmation", data)
	require.NoError(t, err)
	assert.Equal(t, "You're registered for Seoul Tech Meetup", subject)
	assert.Contains(t, html, "Kim Minji")
	assert.Contains(t, html, "https://meetlink.example/e/seoul-tech/directory")
	assert.Contains(t, text, "Seoul Tech Meetup")
}

func TestTemplateRenderer_RegistrationConfirmation_Korean(t *testing.T) {
	renderer := NewTemplateRenderer()
	data := &domain.RegistrationConfirmationEmailData{
		Name:         "김민수",
		EventName:    "서울 테크 밋업",
		DirectoryURL: "https://meetlink.example/e/seoul-tech/directory",
		Language:     "ko",
	}

	subject, html, _, err := renderer.Render("registration_confirmation", data)
	require.NoError(t, err)
	assert.Contains(t, subject, "등록이 완료되었습니다")
	assert.Contains(t, html, "김민수")
}

func TestTemplateRenderer_UnknownTemplate(t *testing.T) {
	renderer := NewTemplateRenderer()
	_, _, _, err := renderer.Render("no_such_template", nil)
	require.Error(t, err)
}
