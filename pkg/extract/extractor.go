package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"ats-scheduler-be/internal/entity"
)

// Required field names reported back to the caller when extraction is
// incomplete. The orchestrator echoes these to the user verbatim.
const (
	FieldEmail     = "email"
	FieldName      = "name"
	FieldPostTitle = "post_title"
	FieldDate      = "date"
	FieldTime      = "time"
)

// Extractor turns a conversation transcript into an InvitationRecord.
// An incomplete transcript is not an error: the second return lists the
// missing required fields so the caller can ask for exactly those.
// Kept as an interface so the regex strategy can be swapped for a
// structured-form flow without touching the orchestrator.
type Extractor interface {
	Extract(transcript string) (*entity.InvitationRecord, []string)
}

// RegexExtractor is the pattern-rule implementation. First match wins for
// every field; there is no semantic validation beyond the lexical pattern.
type RegexExtractor struct{}

var _ Extractor = &RegexExtractor{}

func NewRegexExtractor() *RegexExtractor {
	return &RegexExtractor{}
}

var (
	emailRe = regexp.MustCompile(`[a-zA-Z0-9._-]+@[a-zA-Z0-9._-]+\.[a-zA-Z0-9_-]+`)

	// One or two capitalized words, accented letters included.
	nameRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i:s'appelle)\s+(\p{Lu}[\p{L}'-]*(?:\s+\p{Lu}[\p{L}'-]*)?)`),
		regexp.MustCompile(`(?i:nom(?:\s+du\s+candidat)?,?\s+(?:c'est|est))\s+(\p{Lu}[\p{L}'-]*(?:\s+\p{Lu}[\p{L}'-]*)?)`),
		regexp.MustCompile(`(?i:candidat,?\s+c'est)\s+(\p{Lu}[\p{L}'-]*(?:\s+\p{Lu}[\p{L}'-]*)?)`),
	}

	postRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i:pour\s+devenir)\s+([\p{L}'-]+(?:\s+[\p{L}'-]+)?)`),
		regexp.MustCompile(`(?i:postule\s+pour(?:\s+devenir)?)\s+([\p{L}'-]+(?:\s+[\p{L}'-]+)?)`),
		regexp.MustCompile(`(?i:poste\s+de)\s+([\p{L}'-]+(?:\s+[\p{L}'-]+)?)`),
		regexp.MustCompile(`(?i:poste)\s*:\s*([\p{L}'-]+(?:\s+[\p{L}'-]+)?)`),
	}

	dateRe = regexp.MustCompile(`\b\d{2}/\d{2}/\d{4}\b`)

	timeRe = regexp.MustCompile(`\b(\d{1,2})[h:](\d{1,2})\b`)

	durationRe = regexp.MustCompile(`(?i)(?:durera|durée|pendant)\D{0,20}?(\d+)\s*(?:mn|min(?:utes)?)`)

	// Modality cues, checked by earliest position in the transcript.
	remoteCues = []string{"visioconférence", "visio", "ligne", "téléphonique"}
	onSiteCues = []string{"présentiel", "hybride"}
)

func (e *RegexExtractor) Extract(transcript string) (*entity.InvitationRecord, []string) {
	record := &entity.InvitationRecord{
		InterviewDuration: extractDuration(transcript),
		InterviewLocation: extractLocation(transcript),
	}

	var missing []string

	if m := emailRe.FindString(transcript); m != "" {
		record.CandidateEmail = m
	} else {
		missing = append(missing, FieldEmail)
	}

	if m := firstSubmatch(nameRes, transcript); m != "" {
		record.CandidateName = m
	} else {
		missing = append(missing, FieldName)
	}

	if m := firstSubmatch(postRes, transcript); m != "" {
		record.PostTitle = m
	} else {
		missing = append(missing, FieldPostTitle)
	}

	if m := dateRe.FindString(transcript); m != "" {
		record.InterviewDate = m
	} else {
		missing = append(missing, FieldDate)
	}

	if hm := timeRe.FindStringSubmatch(transcript); hm != nil {
		hour, _ := strconv.Atoi(hm[1])
		minute, _ := strconv.Atoi(hm[2])
		record.InterviewTime = fmt.Sprintf("%02d:%02d", hour, minute)
	} else {
		missing = append(missing, FieldTime)
	}

	if len(missing) > 0 {
		return nil, missing
	}
	return record, nil
}

func firstSubmatch(patterns []*regexp.Regexp, text string) string {
	// Earliest match in document order wins across all cue variants.
	best := -1
	found := ""
	for _, re := range patterns {
		loc := re.FindStringSubmatchIndex(text)
		if loc == nil {
			continue
		}
		if best == -1 || loc[0] < best {
			best = loc[0]
			found = strings.TrimSpace(text[loc[2]:loc[3]])
		}
	}
	return found
}

func extractDuration(text string) string {
	if m := durationRe.FindStringSubmatch(text); m != nil {
		return m[1] + " minutes"
	}
	return entity.DefaultDuration
}

func extractLocation(text string) string {
	lower := strings.ToLower(text)

	type hit struct {
		pos    int
		remote bool
	}
	best := hit{pos: -1}

	scan := func(cues []string, remote bool) {
		for _, cue := range cues {
			if idx := strings.Index(lower, cue); idx >= 0 {
				if best.pos == -1 || idx < best.pos {
					best = hit{pos: idx, remote: remote}
				}
			}
		}
	}
	scan(remoteCues, true)
	scan(onSiteCues, false)

	switch {
	case best.pos == -1:
		return entity.LocationDefault
	case best.remote:
		return entity.LocationRemote
	default:
		return entity.LocationOnSite
	}
}
