// Package i18n holds the localized user-facing messages. The error taxonomy
// itself is language-independent; only the text shown to people is localized.
package i18n

import (
	"net/http"
	"strings"
)

// Lang is a supported UI language.
type Lang string

const (
	En Lang = "en"
	Ko Lang = "ko"
)

// FromRequest picks the response language from the Accept-Language header.
// Korean is the only non-default language the rendering layer ships.
func FromRequest(r *http.Request) Lang {
	header := r.Header.Get("Accept-Language")
	for _, part := range strings.Split(header, ",") {
		tag := strings.ToLower(strings.TrimSpace(part))
		if i := strings.IndexAny(tag, ";-"); i >= 0 {
			tag = tag[:i]
		}
		switch tag {
		case "ko":
			return Ko
		case "en":
			return En
		}
	}
	return En
}

// T returns the message for key in the given language, falling back to
// English and finally to the key itself.
func T(lang Lang, key string) string {
	if m, ok := catalog[lang]; ok {
		if s, ok := m[key]; ok {
			return s
		}
	}
	if s, ok := catalog[En][key]; ok {
		return s
	}
	return key
}

var catalog = map[Lang]map[string]string{
	En: {
		"event_not_found":               "Event not found",
		"login_required":                "Sign in to continue",
		"registration_required":         "Join the event to view the directory",
		"directory_closed":              "The directory for this event is no longer available",
		"already_registered":            "You are already registered",
		"registration_complete":         "Registration complete",
		"event_created":                 "Event created",
		"server_error":                  "Something went wrong, please try again",
		"name_required":                 "Name is required",
		"linkedin_url_required":         "LinkedIn profile URL is required",
		"linkedin_url_invalid":          "Enter a valid LinkedIn profile URL (e.g. linkedin.com/in/your-name)",
		"slug_required":                 "URL slug is required",
		"slug_invalid":                  "Slug may only contain lowercase letters, digits, and hyphens",
		"slug_taken":                    "This URL is already in use",
		"event_name_required":           "Event name is required",
		"date_required":                 "Event date is required",
		"location_required":             "Location is required",
		"directory_access_days_invalid": "Directory access days must be zero or more",
		"visibility_invalid":            "Unknown visibility value",
		"unauthorized":                  "Sign in required",
		"bad_request":                   "Invalid request",
		"forbidden":                     "You do not have access to this resource",
	},
	Ko: {
		"event_not_found":               "이벤트를 찾을 수 없습니다",
		"login_required":                "로그인이 필요합니다",
		"registration_required":         "디렉토리를 보려면 이벤트에 참여해주세요",
		"directory_closed":              "이 이벤트의 디렉토리는 더 이상 열람할 수 없습니다",
		"already_registered":            "이미 등록된 사용자입니다",
		"registration_complete":         "등록 완료",
		"event_created":                 "이벤트가 생성되었습니다",
		"server_error":                  "서버 오류가 발생했습니다",
		"name_required":                 "이름을 입력해주세요",
		"linkedin_url_required":         "LinkedIn 프로필 URL을 입력해주세요",
		"linkedin_url_invalid":          "올바른 LinkedIn 프로필 URL을 입력해주세요 (예: linkedin.com/in/your-name)",
		"slug_required":                 "URL slug를 입력해주세요",
		"slug_invalid":                  "slug는 영문 소문자, 숫자, 하이픈만 사용 가능합니다",
		"slug_taken":                    "이미 사용 중인 URL입니다",
		"event_name_required":           "이벤트 이름을 입력해주세요",
		"date_required":                 "이벤트 날짜를 입력해주세요",
		"location_required":             "장소를 입력해주세요",
		"directory_access_days_invalid": "디렉토리 접근 기간은 0 이상이어야 합니다",
		"visibility_invalid":            "알 수 없는 공개 설정입니다",
		"unauthorized":                  "로그인이 필요합니다",
		"bad_request":                   "잘못된 요청입니다",
		"forbidden":                     "접근 권한이 없습니다",
	},
}
