// Package core wires the schema engine together: build, serialize, analyze,
// inject, find. The engine holds no request state; every method's inputs
// and outputs are local to one call.
package core

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/schemamark/schemamark/internal/core/analyzer"
	"github.com/schemamark/schemamark/internal/core/builder"
	"github.com/schemamark/schemamark/internal/core/finder"
	"github.com/schemamark/schemamark/internal/core/injector"
	"github.com/schemamark/schemamark/internal/core/model"
	"github.com/schemamark/schemamark/internal/core/serializer"
)

type Engine struct {
	Finder   *finder.Finder
	Injector *injector.Injector
}

func NewEngine(f *finder.Finder, policy injector.Policy) *Engine {
	return &Engine{
		Finder:   f,
		Injector: injector.New(policy),
	}
}

// NewDocument wraps already-built entities in a markup document.
func (e *Engine) NewDocument(entities ...model.Entity) *model.MarkupDocument {
	return &model.MarkupDocument{
		UUID:      uuid.New().String(),
		CreatedAt: time.Now().UTC(),
		Entities:  entities,
	}
}

// GenerateDrug builds a drug entity from form input and serializes it.
// Returns the session document and the JSON-LD block.
func (e *Engine) GenerateDrug(in builder.DrugInput) (*model.MarkupDocument, []byte, error) {
	d, err := builder.Drug(in)
	if err != nil {
		return nil, nil, err
	}
	block, err := serializer.Serialize(d)
	if err != nil {
		return nil, nil, err
	}
	return e.NewDocument(d), block, nil
}

// GenerateTrial builds a clinical trial entity and serializes it.
func (e *Engine) GenerateTrial(in builder.TrialInput) (*model.MarkupDocument, []byte, error) {
	t, err := builder.ClinicalTrial(in)
	if err != nil {
		return nil, nil, err
	}
	block, err := serializer.Serialize(t)
	if err != nil {
		return nil, nil, err
	}
	return e.NewDocument(t), block, nil
}

// AnalyzePage locates existing structured-data blocks in page text.
func (e *Engine) AnalyzePage(pageHTML string) (*model.PageDocument, error) {
	return analyzer.Analyze(pageHTML)
}

// InjectEntity serializes an entity and embeds it in the page, honoring the
// configured same-type policy.
func (e *Engine) InjectEntity(pageHTML string, ent model.Entity) (string, error) {
	block, err := serializer.Serialize(ent)
	if err != nil {
		return "", err
	}

	page, err := analyzer.Analyze(pageHTML)
	if err != nil {
		return "", fmt.Errorf("analyze page before injection: %w", err)
	}

	return e.Injector.Inject(page, block, ent.Kind())
}

// FindSources returns ranked sameAs candidates for a drug.
func (e *Engine) FindSources(ctx context.Context, q finder.Query) ([]model.SourceCandidate, error) {
	return e.Finder.Find(ctx, q)
}
