package render

import (
	"context"
	"fmt"

	"github.com/goliatone/go-docgen/pkg/formfield"
	"github.com/goliatone/go-docgen/pkg/formula"
	"github.com/goliatone/go-docgen/pkg/signature"
	"github.com/goliatone/go-docgen/pkg/template"
	"github.com/goliatone/go-docgen/pkg/vars"
)

// Built-in stages in their default order. The orchestration layer assembles
// them per render so request-scoped inputs (document id, sanitizer keys)
// live in the stage closures, not in the bag.

// TemplateStage parses the document and resolves guards, conditionals,
// loops and variable substitution in one pass.
func TemplateStage(sanitizer *ValueSanitizer) Stage {
	return StageFunc{
		StageName: "template",
		Fn: func(_ context.Context, doc string, bag vars.Bag) (string, error) {
			tpl, err := template.Parse(doc)
			if err != nil {
				return "", fmt.Errorf("parse template: %w", err)
			}
			opts := template.RenderOptions{}
			if sanitizer != nil {
				opts.ValueFilter = sanitizer.Filter
			}
			return tpl.RenderWithOptions(bag, opts), nil
		},
	}
}

// FormulaStage resolves SUM/AVG/COUNT/CALC tags.
func FormulaStage() Stage {
	return StageFunc{
		StageName: "formula",
		Fn: func(_ context.Context, doc string, bag vars.Bag) (string, error) {
			return formula.ResolveTags(doc, bag), nil
		},
	}
}

// HyperlinkStage turns LINK/EMAIL/PHONE/SMS tags into anchors.
func HyperlinkStage() Stage {
	return StageFunc{
		StageName: "hyperlinks",
		Fn: func(_ context.Context, doc string, _ vars.Bag) (string, error) {
			return Hyperlinks(doc), nil
		},
	}
}

// BarcodeStage fills dynamic QR-code and barcode images.
func BarcodeStage() Stage {
	return StageFunc{
		StageName: "barcodes",
		Fn: func(_ context.Context, doc string, bag vars.Bag) (string, error) {
			return Barcodes(doc, bag), nil
		},
	}
}

// LogoStage resolves or drops logo images.
func LogoStage() Stage {
	return StageFunc{
		StageName: "logos",
		Fn: func(_ context.Context, doc string, bag vars.Bag) (string, error) {
			return Logos(doc, bag), nil
		},
	}
}

// CleanupStage removes unresolved placeholder tags.
func CleanupStage() Stage {
	return StageFunc{
		StageName: "cleanup",
		Fn: func(_ context.Context, doc string, _ vars.Bag) (string, error) {
			return Cleanup(doc), nil
		},
	}
}

// FormFieldStage wires interactive form fields.
func FormFieldStage() Stage {
	return StageFunc{
		StageName: "formfields",
		Fn: func(_ context.Context, doc string, bag vars.Bag) (string, error) {
			return formfield.Process(doc, bag), nil
		},
	}
}

// SignatureStage injects signature zones for the given document. The
// injector already degrades internally; running it under the Degrade policy
// as well keeps the render alive even if the stage itself misbehaves.
func SignatureStage(injector *signature.Injector, documentID string) Stage {
	return StageFunc{
		StageName: "signatures",
		Fn: func(ctx context.Context, doc string, bag vars.Bag) (string, error) {
			return injector.Process(ctx, doc, bag, documentID), nil
		},
	}
}
