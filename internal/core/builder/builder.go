// Package builder constructs validated schema entities from user-supplied
// field values. Construction is pure: no I/O, no shared state.
package builder

import (
	"github.com/schemamark/schemamark/internal/core/model"
	"github.com/schemamark/schemamark/internal/weburl"
)

// DrugInput carries the form fields for a drug entity. Name is required;
// everything else is optional.
type DrugInput struct {
	Name               string                   `json:"name"`
	GenericName        string                   `json:"generic_name"`
	Description        string                   `json:"description"`
	Manufacturer       string                   `json:"manufacturer"`
	ActiveIngredient   string                   `json:"active_ingredient"`
	DrugClass          string                   `json:"drug_class"`
	PrescriptionStatus string                   `json:"prescription_status"`
	AlternateIDs       []string                 `json:"alternate_ids"`
	Codes              []model.MedicalCode      `json:"codes"`
	Indications        []model.MedicalCondition `json:"indications"`
	SameAs             []string                 `json:"same_as"`
}

// TrialInput carries the form fields for a clinical trial entity.
// TrialID is required.
type TrialInput struct {
	TrialID         string              `json:"trial_id"`
	Title           string              `json:"title"`
	Description     string              `json:"description"`
	Status          string              `json:"status"`
	Phase           string              `json:"phase"`
	Sponsor         string              `json:"sponsor"`
	HealthCondition string              `json:"health_condition"`
	StudyDrug       string              `json:"study_drug"`
	Citations       []model.Publication `json:"citations"`
	SameAs          []string            `json:"same_as"`
}

// Drug builds a validated DrugEntity. Returns a *model.ValidationError when
// the name is empty or any sameAs URL is not a well-formed absolute URL.
func Drug(in DrugInput) (*model.DrugEntity, error) {
	d := &model.DrugEntity{
		Name:               in.Name,
		GenericName:        in.GenericName,
		Description:        in.Description,
		Manufacturer:       in.Manufacturer,
		ActiveIngredient:   in.ActiveIngredient,
		DrugClass:          in.DrugClass,
		PrescriptionStatus: in.PrescriptionStatus,
		AlternateIDs:       in.AlternateIDs,
		Codes:              filterCodes(in.Codes),
		Indications:        filterConditions(in.Indications),
		SameAs:             dedupeURLs(in.SameAs),
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// ClinicalTrial builds a validated ClinicalTrialEntity. Returns a
// *model.ValidationError when the trial ID is empty or a URL is malformed.
func ClinicalTrial(in TrialInput) (*model.ClinicalTrialEntity, error) {
	t := &model.ClinicalTrialEntity{
		TrialID:         in.TrialID,
		Title:           in.Title,
		Description:     in.Description,
		Status:          model.ParseTrialStatus(in.Status),
		Phase:           in.Phase,
		Sponsor:         in.Sponsor,
		HealthCondition: in.HealthCondition,
		StudyDrug:       in.StudyDrug,
		Citations:       filterCitations(in.Citations),
		SameAs:          dedupeURLs(in.SameAs),
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// SameAs builds a validated sameAs assertion for an already-constructed
// entity.
func SameAs(subject model.Entity, targetURL, rationale string) (*model.SameAsRelationship, error) {
	if subject == nil {
		return nil, model.NewValidationError("subject", "subject entity is required")
	}
	if err := weburl.ValidateAbsolute(targetURL); err != nil {
		return nil, model.NewValidationError("target_url", err.Error())
	}
	return &model.SameAsRelationship{
		SubjectKind: subject.Kind(),
		SubjectID:   subject.ID(),
		TargetURL:   targetURL,
		Rationale:   rationale,
	}, nil
}

// dedupeURLs drops duplicates while preserving first-seen order. sameAs is a
// set of URLs; form input frequently repeats the same target.
func dedupeURLs(urls []string) []string {
	if len(urls) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(urls))
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if u == "" || seen[u] {
			continue
		}
		seen[u] = true
		out = append(out, u)
	}
	return out
}

// filterCodes drops codes missing either half of the system/value pair,
// matching how partially filled form rows are treated.
func filterCodes(codes []model.MedicalCode) []model.MedicalCode {
	var out []model.MedicalCode
	for _, c := range codes {
		if c.System != "" && c.Value != "" {
			out = append(out, c)
		}
	}
	return out
}

func filterConditions(conds []model.MedicalCondition) []model.MedicalCondition {
	var out []model.MedicalCondition
	for _, c := range conds {
		if c.Name == "" {
			continue
		}
		if c.Code != nil && (c.Code.System == "" || c.Code.Value == "") {
			c.Code = nil
		}
		out = append(out, c)
	}
	return out
}

func filterCitations(pubs []model.Publication) []model.Publication {
	var out []model.Publication
	for _, p := range pubs {
		if p.URL != "" && p.Title != "" {
			out = append(out, p)
		}
	}
	return out
}
