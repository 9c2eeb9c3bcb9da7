package names

// Vocabulary holds the immutable lookup tables the normalizer is built
// around. Tables are injected at construction so they can be extended per
// jurisdiction without code changes; DefaultVocabulary covers England & Wales
// family-court material.
type Vocabulary struct {
	// Honorifics are stripped during normalization and skipped during
	// positional token extraction (mr, mrs, dr, ...).
	Honorifics []string

	// ProfessionalTitles mark a name as belonging to a regulated
	// professional and map to a default role.
	ProfessionalTitles map[string]string

	// RoleKeywords map sentence-level keywords to proceeding roles.
	RoleKeywords map[string]string

	// CourtKeywords reclassify a mention as a court when present.
	CourtKeywords []string

	// OrganizationAliases groups equivalent organization names; a lookup
	// on any member returns the whole group.
	OrganizationAliases [][]string

	// OrganizationSuffixes are corporate forms stripped when normalizing
	// organization names (ltd, llp, ...).
	OrganizationSuffixes []string

	// RegistrationBodies are regulator acronyms scanned for near
	// professional mentions (hcpc, gmc, ...).
	RegistrationBodies []string
}

// DefaultVocabulary returns the compiled-in tables.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Honorifics: []string{
			"mr", "mrs", "ms", "miss", "mx", "master",
			"sir", "dame", "lord", "lady", "rev", "hon",
		},
		ProfessionalTitles: map[string]string{
			"dr":            "doctor",
			"prof":          "expert_witness",
			"professor":     "expert_witness",
			"sw":            "social_worker",
			"social worker": "social_worker",
			"cafcass":       "assessment_author",
			"dc":            "investigator",
			"ds":            "investigator",
			"pc":            "investigator",
			"qc":            "legal_representative",
			"kc":            "legal_representative",
		},
		RoleKeywords: map[string]string{
			"applicant":       "applicant",
			"respondent":      "respondent",
			"the child":       "subject",
			"judge":           "adjudicator",
			"magistrate":      "adjudicator",
			"district judge":  "adjudicator",
			"social worker":   "social_worker",
			"sw":              "social_worker",
			"guardian":        "litigation_friend",
			"solicitor":       "legal_representative",
			"barrister":       "legal_representative",
			"counsel":         "legal_representative",
			"psychologist":    "expert_witness",
			"psychiatrist":    "expert_witness",
			"expert":          "expert_witness",
			"witness":         "fact_witness",
			"officer":         "investigator",
			"police":          "investigator",
			"assessor":        "assessment_author",
		},
		CourtKeywords: []string{
			"court", "tribunal", "magistrates", "crown court",
			"county court", "family court", "high court", "court of appeal",
		},
		OrganizationAliases: [][]string{
			{"fbi", "federal bureau of investigation"},
			{"cafcass", "children and family court advisory and support service"},
			{"nhs", "national health service"},
			{"hcpc", "health and care professions council"},
			{"gmc", "general medical council"},
			{"sra", "solicitors regulation authority"},
			{"nmc", "nursing and midwifery council"},
			{"la", "local authority"},
			{"nspcc", "national society for the prevention of cruelty to children"},
		},
		OrganizationSuffixes: []string{
			"ltd", "limited", "llp", "llc", "plc", "inc", "incorporated",
			"co", "company", "corp", "corporation",
		},
		RegistrationBodies: []string{"hcpc", "gmc", "sra", "nmc", "swe"},
	}
}
