package entity

// Location categories produced by the extractor. Only two exist: remote
// (link sent by email) or on-site.
const (
	LocationRemote  = "Visioconférence (lien envoyé par email)"
	LocationOnSite  = "En présentiel"
	LocationDefault = "Visioconférence"
)

// DefaultDuration is assumed when a transcript never mentions one.
const DefaultDuration = "30 minutes"

// InvitationRecord describes one interview to be communicated. It is built
// transiently from a conversation transcript or a direct API payload and is
// immediately turned into a DispatchOutcome by the dispatch gateway.
type InvitationRecord struct {
	CandidateName     string
	CandidateEmail    string
	PostTitle         string
	InterviewDate     string // DD/MM/YYYY
	InterviewTime     string // HH:MM
	InterviewDuration string
	InterviewLocation string
}
