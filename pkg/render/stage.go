// Package render assembles the document rendering pipeline: an ordered list
// of text transformation stages applied to template HTML and a variable bag,
// plus the page chrome that wraps the result into a complete document.
package render

import (
	"context"

	"github.com/goliatone/go-docgen/pkg/vars"
)

// Stage is one transformation pass over the document.
type Stage interface {
	Name() string
	Apply(ctx context.Context, doc string, bag vars.Bag) (string, error)
}

// StageFunc adapts a function to the Stage interface.
type StageFunc struct {
	StageName string
	Fn        func(ctx context.Context, doc string, bag vars.Bag) (string, error)
}

func (s StageFunc) Name() string { return s.StageName }

func (s StageFunc) Apply(ctx context.Context, doc string, bag vars.Bag) (string, error) {
	return s.Fn(ctx, doc, bag)
}

// FailurePolicy decides what a stage error does to the render.
type FailurePolicy int

const (
	// Propagate fails the whole render.
	Propagate FailurePolicy = iota
	// Degrade logs the error, keeps the stage's input document, and
	// continues with the remaining stages.
	Degrade
)

func (p FailurePolicy) String() string {
	if p == Degrade {
		return "degrade"
	}
	return "propagate"
}

// StageConfig pairs a stage with its failure policy.
type StageConfig struct {
	Stage  Stage
	Policy FailurePolicy
}
