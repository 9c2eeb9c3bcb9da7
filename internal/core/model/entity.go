package model

// EntityType classifies what kind of real-world thing a mention refers to.
type EntityType string

const (
	TypePerson       EntityType = "person"
	TypeOrganization EntityType = "organization"
	TypeProfessional EntityType = "professional"
	TypeCourt        EntityType = "court"
	TypePlace        EntityType = "place"
)

// ParseEntityType maps arbitrary input to a known entity type.
// Unknown values default to person, matching the tagger's dominant label.
func ParseEntityType(s string) EntityType {
	switch EntityType(s) {
	case TypePerson, TypeOrganization, TypeProfessional, TypeCourt, TypePlace:
		return EntityType(s)
	default:
		return TypePerson
	}
}

// Position is a half-open [Start, End) byte span within a document's text.
type Position struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// RawMention is one literal occurrence of a name in a document.
type RawMention struct {
	Text           string   `json:"text"`
	NormalizedText string   `json:"normalized_text"`
	Position       Position `json:"position"`
	Context        string   `json:"context"`
	Confidence     float64  `json:"confidence"`
	DocumentID     string   `json:"document_id,omitempty"`
}

// ProfessionalRegistration records a regulatory-body registration detected
// near a professional's mentions (HCPC, GMC, SRA, NMC, ...).
type ProfessionalRegistration struct {
	Body   string `json:"body"`
	Number string `json:"number,omitempty"`
	Status string `json:"status,omitempty"`
}

// ExtractedEntity groups the mentions of one name within a scope (a document,
// or a whole case for cross-document extraction).
//
// Aliases is the deduplicated set of literal mention texts and always
// contains CanonicalName.
type ExtractedEntity struct {
	ID            string                    `json:"id"`
	CanonicalName string                    `json:"canonical_name"`
	Type          EntityType                `json:"type"`
	Role          string                    `json:"role,omitempty"`
	Registration  *ProfessionalRegistration `json:"registration,omitempty"`
	Mentions      []RawMention              `json:"mentions"`
	Aliases       []string                  `json:"aliases"`
	Confidence    float64                   `json:"confidence"`
}

// ResolvedEntity is the cross-document canonical record for an entity.
type ResolvedEntity struct {
	ExtractedEntity
	DocumentIDs  []string `json:"document_ids"`
	MentionCount int      `json:"mention_count"`
}

// Clamp bounds a confidence score to [0, 1].
func Clamp(confidence float64) float64 {
	if confidence < 0 {
		return 0
	}
	if confidence > 1 {
		return 1
	}
	return confidence
}
