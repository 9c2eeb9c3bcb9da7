package extraction

// Candidate is a raw surface-text span surfaced by the tagger, before any
// scoring or position recovery.
type Candidate struct {
	Text  string
	Label string // "person", "organization" or "place"
}

const (
	LabelPerson       = "person"
	LabelOrganization = "organization"
	LabelPlace        = "place"
)

// Tagger is the external NLP collaborator that surfaces candidate name
// strings. Implementations only need to return surface text; the extractor
// recovers positions, scores and types the mentions itself.
type Tagger interface {
	Tag(text string) ([]Candidate, error)
}

// TaggerFunc adapts a plain function to the Tagger interface.
type TaggerFunc func(text string) ([]Candidate, error)

func (f TaggerFunc) Tag(text string) ([]Candidate, error) {
	return f(text)
}
