// Package linkedin validates and canonicalizes LinkedIn profile URLs.
// All functions are pure: no I/O, same input always yields the same result.
package linkedin

import (
	"errors"
	"net/url"
	"regexp"
	"strings"
)

// ErrInvalidProfileURL is returned when a raw value cannot be normalized into
// a canonical profile URL.
var ErrInvalidProfileURL = errors.New("invalid linkedin profile url")

const (
	profileDomain = "linkedin.com"
	profileMarker = "/in/"
)

// trailing hash suffix appended by LinkedIn to some profile IDs, e.g.
// "john-doe-1a2b3c4d".
var idHashSuffix = regexp.MustCompile(`-[a-f0-9]{6,}$`)

// Normalize validates raw and returns the canonical form
// "https://www.linkedin.com/in/<id>". The scheme may be omitted in the input;
// https is assumed. Rejection cases: empty input, unparseable URL, host not on
// the linkedin.com domain, or a path without the /in/ profile segment.
func Normalize(raw string) (string, error) {
	id, err := profileID(raw)
	if err != nil {
		return "", err
	}
	return "https://www." + profileDomain + profileMarker + id, nil
}

// ExtractID returns the profile identifier from raw, or "" when raw is not a
// valid profile URL.
func ExtractID(raw string) string {
	id, err := profileID(raw)
	if err != nil {
		return ""
	}
	return id
}

// IsPresentable reports whether a stored link still passes the domain/path
// check. Links are validated at registration time, but rows edited directly
// in storage or imported without validation must not get a connect affordance.
func IsPresentable(stored string) bool {
	_, err := profileID(stored)
	return err == nil
}

// IDToName derives a display name from a profile ID as a best-effort draft,
// e.g. "john-doe-1a2b3c4d" -> "John Doe".
func IDToName(id string) string {
	base := idHashSuffix.ReplaceAllString(id, "")
	words := strings.Split(base, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.TrimSpace(strings.Join(words, " "))
}

func profileID(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrInvalidProfileURL
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", ErrInvalidProfileURL
	}
	if !strings.Contains(strings.ToLower(u.Hostname()), profileDomain) {
		return "", ErrInvalidProfileURL
	}
	idx := strings.Index(u.Path, profileMarker)
	if idx < 0 {
		return "", ErrInvalidProfileURL
	}
	rest := u.Path[idx+len(profileMarker):]
	id := rest
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		id = rest[:i]
	}
	if id == "" {
		return "", ErrInvalidProfileURL
	}
	return id, nil
}
