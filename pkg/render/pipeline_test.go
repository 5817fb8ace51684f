package render

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-docgen/pkg/vars"
)

type noopLogger struct{}

func (noopLogger) Printf(string, ...any) {}

func upperStage(name string) Stage {
	return StageFunc{
		StageName: name,
		Fn: func(_ context.Context, doc string, _ vars.Bag) (string, error) {
			return strings.ToUpper(doc), nil
		},
	}
}

func failingStage(name string) Stage {
	return StageFunc{
		StageName: name,
		Fn: func(context.Context, string, vars.Bag) (string, error) {
			return "", errors.New("boom")
		},
	}
}

func appendStage(name, suffix string) Stage {
	return StageFunc{
		StageName: name,
		Fn: func(_ context.Context, doc string, _ vars.Bag) (string, error) {
			return doc + suffix, nil
		},
	}
}

func TestPipelineRunsStagesInOrder(t *testing.T) {
	t.Parallel()

	p := NewPipeline([]StageConfig{
		{Stage: appendStage("first", "-a")},
		{Stage: appendStage("second", "-b")},
	})

	got, err := p.Run(context.Background(), "doc", vars.Bag{})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if got != "doc-a-b" {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestPipelinePropagateFailsRender(t *testing.T) {
	t.Parallel()

	p := NewPipeline([]StageConfig{
		{Stage: failingStage("broken"), Policy: Propagate},
		{Stage: upperStage("never")},
	})

	_, err := p.Run(context.Background(), "doc", vars.Bag{})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), `stage "broken"`) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPipelineDegradeKeepsPreviousOutput(t *testing.T) {
	t.Parallel()

	p := NewPipeline([]StageConfig{
		{Stage: appendStage("ok", "-a")},
		{Stage: failingStage("flaky"), Policy: Degrade},
		{Stage: appendStage("after", "-b")},
	}, WithPipelineLogger(noopLogger{}))

	got, err := p.Run(context.Background(), "doc", vars.Bag{})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if got != "doc-a-b" {
		t.Fatalf("expected degraded stage to be skipped: %q", got)
	}
}

func TestPipelineCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewPipeline([]StageConfig{{Stage: upperStage("any")}})
	if _, err := p.Run(ctx, "doc", vars.Bag{}); err == nil {
		t.Fatalf("expected cancellation error")
	}
}

func TestDefaultStagesEndToEnd(t *testing.T) {
	t.Parallel()

	p := NewPipeline([]StageConfig{
		{Stage: TemplateStage(nil)},
		{Stage: FormulaStage()},
		{Stage: HyperlinkStage()},
		{Stage: CleanupStage()},
	})

	doc := "Bonjour {name}, total {SUM items.total}. {EMAIL contact@ecole.fr} {unused}"
	bag := vars.Bag{
		"name": "Alice",
		"items": []any{
			map[string]any{"total": 100},
			map[string]any{"total": 20},
		},
	}

	got, err := p.Run(context.Background(), doc, bag)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	want := `Bonjour Alice, total 120. <a href="mailto:contact@ecole.fr">contact@ecole.fr</a> `
	if got != want {
		t.Fatalf("unexpected output:\n got %q\nwant %q", got, want)
	}
}
