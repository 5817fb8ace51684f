package render

import (
	"context"
	"fmt"
	"log"

	"github.com/goliatone/go-docgen/pkg/vars"
)

// Logger receives stage degradation notices. The stdlib logger satisfies it.
type Logger interface {
	Printf(format string, args ...any)
}

// Pipeline runs stages in order. Each stage receives the previous stage's
// output; a failing stage either aborts the render or is skipped according
// to its policy.
type Pipeline struct {
	stages []StageConfig
	logger Logger
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithPipelineLogger overrides the default stdlib logger.
func WithPipelineLogger(logger Logger) PipelineOption {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewPipeline builds a pipeline over the given stages.
func NewPipeline(stages []StageConfig, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{stages: stages, logger: log.Default()}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// Run applies every stage to the document.
func (p *Pipeline) Run(ctx context.Context, doc string, bag vars.Bag) (string, error) {
	for _, cfg := range p.stages {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("render: pipeline canceled: %w", err)
		}

		out, err := cfg.Stage.Apply(ctx, doc, bag)
		if err != nil {
			if cfg.Policy == Degrade {
				p.logger.Printf("render: stage %q failed, keeping previous output: %v", cfg.Stage.Name(), err)
				continue
			}
			return "", fmt.Errorf("render: stage %q: %w", cfg.Stage.Name(), err)
		}
		doc = out
	}
	return doc, nil
}

// Stages lists the configured stage names in order.
func (p *Pipeline) Stages() []string {
	names := make([]string, 0, len(p.stages))
	for _, cfg := range p.stages {
		names = append(names, cfg.Stage.Name())
	}
	return names
}
