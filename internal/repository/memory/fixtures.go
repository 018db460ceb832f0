package memory

import (
	"context"
	"fmt"
	"time"

	"meetlink/internal/domain"
)

// LoadFixtures seeds a demo event with a handful of public participants so a
// fresh install has something to browse.
func LoadFixtures(s *Store) error {
	ctx := context.Background()
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	date := time.Date(2025, 1, 14, 14, 0, 0, 0, time.UTC)
	endDate := date.Add(150 * time.Minute)

	event := domain.NewEvent("vibe-coding-sf-2025", "창업자들이 꼭 알아야 할 바이브코딩 in SF", date, "300 Grant Ave Suite 500, San Francisco, CA 94108", created, created)
	event.EndDate = &endDate
	desc := "스타트업 창업자를 위한 네트워킹 이벤트"
	event.Description = &desc

	users := []struct {
		linkedInID string
		name       string
		headline   string
		company    string
	}{
		{"johndoe", "John Doe", "Founder & CEO at TechStartup", "TechStartup"},
		{"janesmith", "Jane Smith", "Product Manager at BigTech", "BigTech"},
		{"kimminsu", "김민수", "Software Engineer at Startup", "Startup Inc."},
		{"leejiyoung", "이지영", "Investor at VC Fund", "VC Fund"},
		{"parkhyunwoo", "박현우", "CTO at AI Company", "AI Company"},
	}

	joined := created.AddDate(0, 0, 9)
	for i, f := range users {
		u := domain.NewUser("", "https://www.linkedin.com/in/"+f.linkedInID, f.name, joined, joined)
		id := f.linkedInID
		headline := f.headline
		company := f.company
		u.LinkedInID = &id
		u.Headline = &headline
		u.Company = &company
		if err := s.Users().Create(ctx, u); err != nil {
			return fmt.Errorf("seed user %s: %w", f.linkedInID, err)
		}
		if i == 0 {
			event.OrganizerID = &u.ID
			if err := s.Events().Create(ctx, event); err != nil {
				return fmt.Errorf("seed event: %w", err)
			}
		}
		registeredAt := joined.Add(time.Duration(i) * time.Minute)
		p := domain.NewParticipant(event.ID, u.ID, domain.VisibilityPublic,
			fmt.Sprintf("meetlink:%s:%s:seed", event.ID, u.ID), i == 0, registeredAt, registeredAt)
		if err := s.Participants().Create(ctx, p); err != nil {
			return fmt.Errorf("seed participant %s: %w", f.linkedInID, err)
		}
	}
	return nil
}
