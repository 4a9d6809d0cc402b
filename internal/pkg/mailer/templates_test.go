package mailer

import (
	"strings"
	"testing"

	"ats-scheduler-be/internal/entity"
)

func TestGoogleCalendarLink(t *testing.T) {
	tests := []struct {
		name     string
		date     string
		clock    string
		duration string
		want     string
	}{
		{
			name:     "45 minute slot",
			date:     "15/09/2026",
			clock:    "14:30",
			duration: "45 minutes",
			want:     "dates=20260915T143000Z/20260915T151500Z",
		},
		{
			name:     "empty duration defaults to 30",
			date:     "01/10/2026",
			clock:    "09:00",
			duration: "",
			want:     "dates=20261001T090000Z/20261001T093000Z",
		},
		{
			name:     "non numeric duration defaults to 30",
			date:     "01/10/2026",
			clock:    "09:00",
			duration: "une heure",
			want:     "dates=20261001T090000Z/20261001T093000Z",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			link := GoogleCalendarLink("Entretien - Comptable", tt.date, tt.clock, tt.duration)
			if !strings.Contains(link, tt.want) {
				t.Errorf("link %q does not contain %q", link, tt.want)
			}
			if !strings.HasPrefix(link, "https://calendar.google.com/calendar/render?action=TEMPLATE") {
				t.Errorf("unexpected link prefix: %q", link)
			}
		})
	}
}

func TestGoogleCalendarLinkBadDate(t *testing.T) {
	if link := GoogleCalendarLink("Entretien", "pas une date", "14:30", "30 minutes"); link != "" {
		t.Errorf("expected empty link for unparseable date, got %q", link)
	}
}

func TestInvitationHTML(t *testing.T) {
	record := &entity.InvitationRecord{
		CandidateName:     "Marie Dupont",
		PostTitle:         "Développeuse Go",
		InterviewDate:     "15/09/2026",
		InterviewTime:     "14:30",
		InterviewDuration: "45 minutes",
		InterviewLocation: entity.LocationRemote,
	}

	html := InvitationHTML(record, "Bonjour Marie", "https://example.com/confirm", "https://calendar.google.com/x")

	for _, fragment := range []string{
		"Bonjour Marie",
		"Développeuse Go",
		"15/09/2026",
		"14:30",
		"45 minutes",
		entity.LocationRemote,
		`href="https://example.com/confirm"`,
		`href="https://calendar.google.com/x"`,
	} {
		if !strings.Contains(html, fragment) {
			t.Errorf("invitation html missing %q", fragment)
		}
	}
}

func TestInvitationHTMLWithoutCalendarLink(t *testing.T) {
	record := &entity.InvitationRecord{PostTitle: "Comptable"}

	html := InvitationHTML(record, "Bonjour", "https://example.com/confirm", "")

	if strings.Contains(html, "Google Agenda") {
		t.Error("calendar row should be omitted when the link is empty")
	}
}

func TestReminderHTML(t *testing.T) {
	outcome := &entity.DispatchOutcome{
		CandidateName:     "Luc Martin",
		PostTitle:         "Comptable",
		InterviewDate:     "01/10/2026",
		InterviewTime:     "09:00",
		InterviewDuration: "30 minutes",
		InterviewLocation: entity.LocationOnSite,
	}

	html := ReminderHTML(outcome, "https://example.com/confirm")

	for _, fragment := range []string{
		"Luc Martin",
		"Comptable",
		"01/10/2026",
		"09:00",
		entity.LocationOnSite,
		`href="https://example.com/confirm"`,
		"Rappel - Confirmation d'entretien",
	} {
		if !strings.Contains(html, fragment) {
			t.Errorf("reminder html missing %q", fragment)
		}
	}
}
