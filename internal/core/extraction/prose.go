package extraction

import (
	"fmt"

	"github.com/jdkato/prose/v2"
)

// ProseTagger is the default Tagger, backed by the prose NLP library's
// named-entity chunker.
type ProseTagger struct{}

func NewProseTagger() *ProseTagger {
	return &ProseTagger{}
}

func (t *ProseTagger) Tag(text string) ([]Candidate, error) {
	if text == "" {
		return nil, nil
	}

	doc, err := prose.NewDocument(text, prose.WithSegmentation(false))
	if err != nil {
		return nil, fmt.Errorf("prose tagging failed: %w", err)
	}

	var candidates []Candidate
	for _, ent := range doc.Entities() {
		label := LabelPlace
		switch ent.Label {
		case "PERSON":
			label = LabelPerson
		case "ORG", "ORGANIZATION":
			label = LabelOrganization
		}
		candidates = append(candidates, Candidate{Text: ent.Text, Label: label})
	}
	return candidates, nil
}
