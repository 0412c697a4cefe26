package model

import "github.com/schemamark/schemamark/internal/weburl"

// Kind tags the entity variant. Every entity is validated at construction,
// not at serialization time.
type Kind string

const (
	KindDrug          Kind = "Drug"
	KindClinicalTrial Kind = "MedicalTrial"
)

// TrialStatus is the recruitment status of a clinical trial.
type TrialStatus string

const (
	StatusRecruiting TrialStatus = "Recruiting"
	StatusCompleted  TrialStatus = "Completed"
	StatusTerminated TrialStatus = "Terminated"
	StatusUnknown    TrialStatus = "Unknown"
)

// ParseTrialStatus maps free-form status text onto the known statuses.
// Anything unrecognized becomes StatusUnknown.
func ParseTrialStatus(s string) TrialStatus {
	switch s {
	case "Recruiting", "recruiting":
		return StatusRecruiting
	case "Completed", "completed":
		return StatusCompleted
	case "Terminated", "terminated":
		return StatusTerminated
	default:
		return StatusUnknown
	}
}

// Entity is the tagged-variant interface over DrugEntity and
// ClinicalTrialEntity.
type Entity interface {
	Kind() Kind
	// ID returns the entity's primary identifier (drug name or trial ID).
	ID() string
	// Validate re-checks construction invariants. The serializer calls this
	// defensively before encoding.
	Validate() error
}

// MedicalCode is a standardized code (RxNorm, WHO ATC, ICD-10, ...) attached
// to a drug or condition.
type MedicalCode struct {
	System string `json:"code_system"`
	Value  string `json:"code_value"`
}

// MedicalCondition names a condition a drug is indicated for.
type MedicalCondition struct {
	Name string       `json:"name"`
	Code *MedicalCode `json:"code,omitempty"`
}

// Publication references a scholarly article tied to a clinical trial.
type Publication struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

type DrugEntity struct {
	Name               string             `json:"name"`
	GenericName        string             `json:"generic_name,omitempty"`
	Description        string             `json:"description,omitempty"`
	Manufacturer       string             `json:"manufacturer,omitempty"`
	ActiveIngredient   string             `json:"active_ingredient,omitempty"`
	DrugClass          string             `json:"drug_class,omitempty"`
	PrescriptionStatus string             `json:"prescription_status,omitempty"`
	AlternateIDs       []string           `json:"alternate_ids,omitempty"`
	Codes              []MedicalCode      `json:"codes,omitempty"`
	Indications        []MedicalCondition `json:"indications,omitempty"`
	SameAs             []string           `json:"same_as,omitempty"`
}

func (d *DrugEntity) Kind() Kind { return KindDrug }
func (d *DrugEntity) ID() string { return d.Name }

func (d *DrugEntity) Validate() error {
	if d.Name == "" {
		return NewValidationError("name", "drug name is required")
	}
	for _, u := range d.SameAs {
		if err := weburl.ValidateAbsolute(u); err != nil {
			return NewValidationError("same_as", err.Error())
		}
	}
	return nil
}

type ClinicalTrialEntity struct {
	TrialID         string        `json:"trial_id"`
	Title           string        `json:"title,omitempty"`
	Description     string        `json:"description,omitempty"`
	Status          TrialStatus   `json:"status"`
	Phase           string        `json:"phase,omitempty"`
	Sponsor         string        `json:"sponsor,omitempty"`
	HealthCondition string        `json:"health_condition,omitempty"`
	StudyDrug       string        `json:"study_drug,omitempty"`
	Citations       []Publication `json:"citations,omitempty"`
	SameAs          []string      `json:"same_as,omitempty"`
}

func (t *ClinicalTrialEntity) Kind() Kind { return KindClinicalTrial }
func (t *ClinicalTrialEntity) ID() string { return t.TrialID }

func (t *ClinicalTrialEntity) Validate() error {
	if t.TrialID == "" {
		return NewValidationError("trial_id", "trial identifier is required")
	}
	if t.Status == "" {
		return NewValidationError("status", "trial status is required")
	}
	for _, u := range t.SameAs {
		if err := weburl.ValidateAbsolute(u); err != nil {
			return NewValidationError("same_as", err.Error())
		}
	}
	for _, p := range t.Citations {
		if p.URL != "" {
			if err := weburl.ValidateAbsolute(p.URL); err != nil {
				return NewValidationError("citations", err.Error())
			}
		}
	}
	return nil
}

// SameAsRelationship asserts that a subject entity describes the same
// real-world thing as the page at TargetURL.
type SameAsRelationship struct {
	SubjectKind Kind   `json:"subject_kind"`
	SubjectID   string `json:"subject_id"`
	TargetURL   string `json:"target_url"`
	Rationale   string `json:"rationale,omitempty"`
}
