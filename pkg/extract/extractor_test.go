package extract

import (
	"reflect"
	"testing"

	"ats-scheduler-be/internal/entity"
)

func TestExtractComplete(t *testing.T) {
	transcript := "Le candidat s'appelle Marie Dupont, son email c'est marie.dupont@example.com, " +
		"elle postule pour devenir développeuse senior. L'entretien est le 15/09/2026 à 14h30 " +
		"en visioconférence et durera 45 minutes."

	record, missing := NewRegexExtractor().Extract(transcript)
	if missing != nil {
		t.Fatalf("expected no missing fields, got %v", missing)
	}

	want := &entity.InvitationRecord{
		CandidateName:     "Marie Dupont",
		CandidateEmail:    "marie.dupont@example.com",
		PostTitle:         "développeuse senior",
		InterviewDate:     "15/09/2026",
		InterviewTime:     "14:30",
		InterviewDuration: "45 minutes",
		InterviewLocation: entity.LocationRemote,
	}
	if !reflect.DeepEqual(record, want) {
		t.Errorf("got %+v, want %+v", record, want)
	}
}

func TestExtractFirstEmailWins(t *testing.T) {
	transcript := "Contacte rh@corp.fr pour le suivi. Le candidat s'appelle Jean Petit, " +
		"son email jean.petit@exemple.fr, poste de technicien, le 02/11/2026 à 9h5"

	record, missing := NewRegexExtractor().Extract(transcript)
	if missing != nil {
		t.Fatalf("expected no missing fields, got %v", missing)
	}
	if record.CandidateEmail != "rh@corp.fr" {
		t.Errorf("email = %q, want first match %q", record.CandidateEmail, "rh@corp.fr")
	}
	if record.InterviewTime != "09:05" {
		t.Errorf("time = %q, want %q", record.InterviewTime, "09:05")
	}
}

func TestExtractMissingFields(t *testing.T) {
	tests := []struct {
		name        string
		transcript  string
		wantMissing []string
	}{
		{
			name:        "empty transcript",
			transcript:  "",
			wantMissing: []string{FieldEmail, FieldName, FieldPostTitle, FieldDate, FieldTime},
		},
		{
			name:        "no cue before name",
			transcript:  "Je veux planifier un entretien avec Thomas demain",
			wantMissing: []string{FieldEmail, FieldName, FieldPostTitle, FieldDate, FieldTime},
		},
		{
			name:        "only email and date",
			transcript:  "Son email est jean@exemple.fr, entretien le 20/10/2026",
			wantMissing: []string{FieldName, FieldPostTitle, FieldTime},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record, missing := NewRegexExtractor().Extract(tt.transcript)
			if record != nil {
				t.Errorf("expected nil record, got %+v", record)
			}
			if !reflect.DeepEqual(missing, tt.wantMissing) {
				t.Errorf("missing = %v, want %v", missing, tt.wantMissing)
			}
		})
	}
}

func TestExtractTimeNormalization(t *testing.T) {
	tests := []struct {
		name       string
		transcript string
		wantTime   string
	}{
		{
			name:       "single digit hour and minute",
			transcript: "Le candidat s'appelle Luc Martin, email luc.martin@test.fr, poste de comptable, le 01/10/2026 à 9h5",
			wantTime:   "09:05",
		},
		{
			name:       "colon separator",
			transcript: "Le candidat s'appelle Luc Martin, email luc.martin@test.fr, poste de comptable, le 01/10/2026 à 14:00",
			wantTime:   "14:00",
		},
		{
			name:       "h separator",
			transcript: "Le candidat s'appelle Luc Martin, email luc.martin@test.fr, poste de comptable, le 01/10/2026 à 10h15",
			wantTime:   "10:15",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record, missing := NewRegexExtractor().Extract(tt.transcript)
			if missing != nil {
				t.Fatalf("expected no missing fields, got %v", missing)
			}
			if record.InterviewTime != tt.wantTime {
				t.Errorf("time = %q, want %q", record.InterviewTime, tt.wantTime)
			}
		})
	}
}

func TestExtractDuration(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"no mention defaults", "un entretien classique", "30 minutes"},
		{"durera", "l'entretien durera 45 minutes", "45 minutes"},
		{"pendant with min", "on discutera pendant 20 min", "20 minutes"},
		{"duree with colon", "durée : 60 minutes", "60 minutes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractDuration(tt.text); got != tt.want {
				t.Errorf("extractDuration(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestExtractLocation(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"no cue defaults", "un entretien avec le manager", entity.LocationDefault},
		{"en ligne", "l'entretien se fera en ligne", entity.LocationRemote},
		{"visio", "ce sera en visio", entity.LocationRemote},
		{"telephonique", "un entretien téléphonique", entity.LocationRemote},
		{"presentiel", "l'entretien sera en présentiel", entity.LocationOnSite},
		{"earliest cue wins", "en présentiel, pas en visioconférence", entity.LocationOnSite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractLocation(tt.text); got != tt.want {
				t.Errorf("extractLocation(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}
