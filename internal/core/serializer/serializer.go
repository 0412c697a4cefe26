// Package serializer renders validated entities as embeddable JSON-LD
// blocks and parses such blocks back into entities.
//
// Output is deterministic: field order follows the struct declarations
// below and the encoder is configured identically on every call, so the
// same entity always serializes to the same bytes.
package serializer

import (
	"encoding/json"
	"fmt"

	"github.com/schemamark/schemamark/internal/core/common"
	"github.com/schemamark/schemamark/internal/core/model"
)

const schemaContext = "https://schema.org"

// JSON-LD wire shapes. Field order here is the field order on the wire.

type organizationLD struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

type medicalCodeLD struct {
	Type       string `json:"@type"`
	CodeSystem string `json:"codeSystem"`
	CodeValue  string `json:"codeValue"`
}

type medicalConditionLD struct {
	Type string         `json:"@type"`
	Name string         `json:"name"`
	Code *medicalCodeLD `json:"code,omitempty"`
}

type scholarlyArticleLD struct {
	Type     string `json:"@type"`
	URL      string `json:"url"`
	Headline string `json:"headline"`
}

type drugSubjectLD struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

type drugLD struct {
	Context            string               `json:"@context"`
	Type               string               `json:"@type"`
	Name               string               `json:"name"`
	AlternateName      []string             `json:"alternateName,omitempty"`
	GenericName        string               `json:"genericName,omitempty"`
	Description        string               `json:"description,omitempty"`
	Manufacturer       *organizationLD      `json:"manufacturer,omitempty"`
	ActiveIngredient   string               `json:"activeIngredient,omitempty"`
	DrugClass          string               `json:"drugClass,omitempty"`
	PrescriptionStatus string               `json:"prescriptionStatus,omitempty"`
	Code               []medicalCodeLD      `json:"code,omitempty"`
	Indication         []medicalConditionLD `json:"indication,omitempty"`
	SameAs             []string             `json:"sameAs,omitempty"`
}

type trialLD struct {
	Context         string               `json:"@context"`
	Type            string               `json:"@type"`
	Identifier      string               `json:"identifier"`
	Name            string               `json:"name,omitempty"`
	Description     string               `json:"description,omitempty"`
	Sponsor         *organizationLD      `json:"sponsor,omitempty"`
	HealthCondition string               `json:"healthCondition,omitempty"`
	StudySubject    *drugSubjectLD       `json:"studySubject,omitempty"`
	Status          string               `json:"status"`
	Phase           string               `json:"phase,omitempty"`
	Citation        []scholarlyArticleLD `json:"citation,omitempty"`
	SameAs          []string             `json:"sameAs,omitempty"`
}

// Serialize renders one entity as an indented JSON-LD object. The entity's
// invariants are re-checked defensively; a violation is an encoding error.
func Serialize(e model.Entity) ([]byte, error) {
	if e == nil {
		return nil, fmt.Errorf("encode: nil entity")
	}
	if err := e.Validate(); err != nil {
		return nil, fmt.Errorf("encode %s: %w", e.Kind(), err)
	}

	var v any
	switch ent := e.(type) {
	case *model.DrugEntity:
		v = drugToLD(ent)
	case *model.ClinicalTrialEntity:
		v = trialToLD(ent)
	default:
		return nil, fmt.Errorf("encode: unsupported entity kind %q", e.Kind())
	}

	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", e.Kind(), err)
	}
	return out, nil
}

// SerializeDocument renders each entity of a document as its own block, in
// document order.
func SerializeDocument(doc *model.MarkupDocument) ([][]byte, error) {
	blocks := make([][]byte, 0, len(doc.Entities))
	for _, e := range doc.Entities {
		b, err := Serialize(e)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, b)
	}
	return blocks, nil
}

// ScriptTag wraps a serialized JSON-LD payload in the script element used to
// embed it in a page head.
func ScriptTag(jsonld []byte) string {
	return "<script type=\"application/ld+json\">\n" + string(jsonld) + "\n</script>"
}

// TypeOf peeks at the @type of a raw JSON-LD payload without interpreting
// the rest of it. Returns an empty string when the payload has no @type.
func TypeOf(raw string) string {
	probe, err := common.ParseJSON[struct {
		Type string `json:"@type"`
	}](raw)
	if err != nil {
		return ""
	}
	return probe.Type
}

// Decode parses a JSON-LD payload back into an entity. Only the two kinds
// this engine generates are supported.
func Decode(raw []byte) (model.Entity, error) {
	switch model.Kind(TypeOf(string(raw))) {
	case model.KindDrug:
		ld, err := common.ParseJSON[drugLD](string(raw))
		if err != nil {
			return nil, fmt.Errorf("decode drug block: %w", err)
		}
		return ldToDrug(ld), nil
	case model.KindClinicalTrial:
		ld, err := common.ParseJSON[trialLD](string(raw))
		if err != nil {
			return nil, fmt.Errorf("decode trial block: %w", err)
		}
		return ldToTrial(ld), nil
	default:
		return nil, fmt.Errorf("decode: unsupported or missing @type")
	}
}

func drugToLD(d *model.DrugEntity) drugLD {
	ld := drugLD{
		Context:            schemaContext,
		Type:               string(model.KindDrug),
		Name:               d.Name,
		AlternateName:      d.AlternateIDs,
		GenericName:        d.GenericName,
		Description:        d.Description,
		ActiveIngredient:   d.ActiveIngredient,
		DrugClass:          d.DrugClass,
		PrescriptionStatus: d.PrescriptionStatus,
		SameAs:             d.SameAs,
	}
	if d.Manufacturer != "" {
		ld.Manufacturer = &organizationLD{Type: "Organization", Name: d.Manufacturer}
	}
	for _, c := range d.Codes {
		ld.Code = append(ld.Code, medicalCodeLD{Type: "MedicalCode", CodeSystem: c.System, CodeValue: c.Value})
	}
	for _, cond := range d.Indications {
		cl := medicalConditionLD{Type: "MedicalCondition", Name: cond.Name}
		if cond.Code != nil {
			cl.Code = &medicalCodeLD{Type: "MedicalCode", CodeSystem: cond.Code.System, CodeValue: cond.Code.Value}
		}
		ld.Indication = append(ld.Indication, cl)
	}
	return ld
}

func ldToDrug(ld drugLD) *model.DrugEntity {
	d := &model.DrugEntity{
		Name:               ld.Name,
		GenericName:        ld.GenericName,
		Description:        ld.Description,
		ActiveIngredient:   ld.ActiveIngredient,
		DrugClass:          ld.DrugClass,
		PrescriptionStatus: ld.PrescriptionStatus,
		AlternateIDs:       ld.AlternateName,
		SameAs:             ld.SameAs,
	}
	if ld.Manufacturer != nil {
		d.Manufacturer = ld.Manufacturer.Name
	}
	for _, c := range ld.Code {
		d.Codes = append(d.Codes, model.MedicalCode{System: c.CodeSystem, Value: c.CodeValue})
	}
	for _, cond := range ld.Indication {
		mc := model.MedicalCondition{Name: cond.Name}
		if cond.Code != nil {
			mc.Code = &model.MedicalCode{System: cond.Code.CodeSystem, Value: cond.Code.CodeValue}
		}
		d.Indications = append(d.Indications, mc)
	}
	return d
}

func trialToLD(t *model.ClinicalTrialEntity) trialLD {
	ld := trialLD{
		Context:         schemaContext,
		Type:            string(model.KindClinicalTrial),
		Identifier:      t.TrialID,
		Name:            t.Title,
		Description:     t.Description,
		HealthCondition: t.HealthCondition,
		Status:          string(t.Status),
		Phase:           t.Phase,
		SameAs:          t.SameAs,
	}
	if t.Sponsor != "" {
		ld.Sponsor = &organizationLD{Type: "Organization", Name: t.Sponsor}
	}
	if t.StudyDrug != "" {
		ld.StudySubject = &drugSubjectLD{Type: "Drug", Name: t.StudyDrug}
	}
	for _, p := range t.Citations {
		ld.Citation = append(ld.Citation, scholarlyArticleLD{Type: "ScholarlyArticle", URL: p.URL, Headline: p.Title})
	}
	return ld
}

func ldToTrial(ld trialLD) *model.ClinicalTrialEntity {
	t := &model.ClinicalTrialEntity{
		TrialID:         ld.Identifier,
		Title:           ld.Name,
		Description:     ld.Description,
		Status:          model.ParseTrialStatus(ld.Status),
		Phase:           ld.Phase,
		HealthCondition: ld.HealthCondition,
		SameAs:          ld.SameAs,
	}
	if ld.Sponsor != nil {
		t.Sponsor = ld.Sponsor.Name
	}
	if ld.StudySubject != nil {
		t.StudyDrug = ld.StudySubject.Name
	}
	for _, c := range ld.Citation {
		t.Citations = append(t.Citations, model.Publication{URL: c.URL, Title: c.Headline})
	}
	return t
}
