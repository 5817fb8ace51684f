package signature

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/goliatone/go-docgen/internal/frdate"
	"github.com/goliatone/go-docgen/pkg/vars"
)

// Logger receives degradation notices. The stdlib logger satisfies it.
type Logger interface {
	Printf(format string, args ...any)
}

// Injector replaces signature-field tags in rendered documents.
type Injector struct {
	store  Store
	logger Logger
}

// Option configures an Injector.
type Option func(*Injector)

// WithStore wires the persisted signature lookup. Without a store every
// zone renders as empty or variable-filled.
func WithStore(store Store) Option {
	return func(in *Injector) {
		in.store = store
	}
}

// WithLogger overrides the default stdlib logger.
func WithLogger(logger Logger) Option {
	return func(in *Injector) {
		if logger != nil {
			in.logger = logger
		}
	}
}

// NewInjector builds an Injector.
func NewInjector(opts ...Option) *Injector {
	in := &Injector{logger: log.Default()}
	for _, opt := range opts {
		if opt != nil {
			opt(in)
		}
	}
	return in
}

var fieldTagPattern = regexp.MustCompile(`(?is)<signature-field\s+([^>]*?)/>`)

// Process replaces every signature-field tag in the document. The pass never
// fails a render: a store error is logged and treated as "no signatures",
// and any unexpected panic degrades to the input HTML.
func (in *Injector) Process(ctx context.Context, html string, bag vars.Bag, documentID string) (out string) {
	out = html
	defer func() {
		if r := recover(); r != nil {
			in.logger.Printf("signature: processing failed, keeping document unsigned: document=%s err=%v", documentID, r)
			out = html
		}
	}()

	matches := fieldTagPattern.FindAllStringSubmatchIndex(html, -1)
	if len(matches) == 0 {
		return html
	}

	var records []Record
	if in.store != nil && documentID != "" {
		loaded, err := in.store.SignedRecords(ctx, documentID)
		if err != nil {
			in.logger.Printf("signature: loading records failed: document=%s err=%v", documentID, err)
		} else {
			records = loaded
		}
	}

	var sb strings.Builder
	last := 0
	for ordinal, m := range matches {
		sb.WriteString(html[last:m[0]])
		field := ParseField(html[m[2]:m[3]], ordinal)

		if record, ok := matchRecord(records, field); ok {
			sb.WriteString(signedFieldHTML(record, field))
		} else {
			sb.WriteString(emptyFieldHTML(field, bag))
		}
		last = m[1]
	}
	sb.WriteString(html[last:])
	return sb.String()
}

func signedFieldHTML(record Record, field Field) string {
	label := labelHTML(field.Label, false)

	if field.Type == TypeDate {
		signedDate := ""
		if !record.SignedAt.IsZero() {
			signedDate = frdate.Long(record.SignedAt)
		}
		return fmt.Sprintf(`<div class="signature-field signed" style="display: inline-block; margin: 10px 0;">%s<div style="border: 1px solid #10b981; border-radius: 4px; padding: 8px 12px; background-color: #f0fdf4; display: inline-block;"><p style="margin: 0; font-size: 11pt; color: #047857; font-weight: 500;">%s</p></div></div>`,
			label, signedDate)
	}

	if field.Type == TypeText && record.Comment != "" {
		return fmt.Sprintf(`<div class="signature-field signed" style="display: inline-block; margin: 10px 0;">%s<div style="border: 1px solid #10b981; border-radius: 4px; padding: 8px 12px; background-color: #f0fdf4; display: inline-block; min-width: %dpx;"><p style="margin: 0; font-size: 11pt; color: #047857;">%s</p></div></div>`,
			label, field.Width, record.Comment)
	}

	signer := record.SignerName
	if signer == "" {
		signer = "utilisateur"
	}
	return fmt.Sprintf(`<div class="signature-field signed" style="display: inline-block; margin: 10px 0;">%s<div style="border: 1px solid #10b981; border-radius: 4px; padding: 8px; background-color: #f0fdf4; display: inline-block;"><img src="%s" alt="Signature de %s" style="max-width: %dpx; max-height: %dpx; display: block;" /><p style="margin: 8px 0 0 0; font-size: 9pt; color: #047857; text-align: center;">Signé par %s le %s</p></div></div>`,
		label, record.SignatureData, signer, field.Width, field.Height, signer, frdate.Short(record.SignedAt))
}

func emptyFieldHTML(field Field, bag vars.Bag) string {
	if value, ok := variableValue(field, bag); ok {
		return variableFieldHTML(field, value)
	}

	label := labelHTML(field.Label, field.Required)

	switch field.Type {
	case TypeDate:
		return fmt.Sprintf(`<div class="signature-field empty" style="display: inline-block; margin: 10px 0;">%s<div style="border: 2px dashed #d1d5db; border-radius: 4px; padding: 8px 12px; background-color: #f9fafb; display: inline-block; min-width: 150px;"><p style="margin: 0; font-size: 10pt; color: #9ca3af; text-align: center;">Date à remplir</p></div></div>`, label)
	case TypeText:
		return fmt.Sprintf(`<div class="signature-field empty" style="display: inline-block; margin: 10px 0; width: 100%%; max-width: 400px;">%s<div style="border: 2px dashed #d1d5db; border-radius: 4px; padding: 12px; background-color: #f9fafb; min-height: 60px;"><p style="margin: 0; font-size: 10pt; color: #9ca3af;">Texte à remplir</p></div></div>`, label)
	}

	signer := ""
	if who := firstNonEmpty(field.SignerRole, field.SignerEmail); who != "" {
		signer = fmt.Sprintf(`<p style="margin: 5px 0 0 0; font-size: 9pt; color: #6b7280;">%s</p>`, who)
	}
	return fmt.Sprintf(`<div class="signature-field empty" style="display: inline-block; margin: 10px 0;">%s<div style="border: 2px dashed #d1d5db; border-radius: 4px; padding: 12px; background-color: #f9fafb; width: %dpx; height: %dpx; display: flex; align-items: center; justify-content: center;">%s</div>%s</div>`,
		label, field.Width, field.Height, penIconSVG, signer)
}

func variableFieldHTML(field Field, value string) string {
	label := labelHTML(field.Label, false)

	if strings.HasPrefix(value, "data:image") || strings.HasPrefix(value, "http") {
		alt := field.Label
		if alt == "" {
			alt = "Signature"
		}
		return fmt.Sprintf(`<div class="signature-field filled-from-variable" style="display: inline-block; margin: 10px 0;">%s<div style="border: 1px solid #3b82f6; border-radius: 4px; padding: 8px; background-color: #eff6ff; display: inline-block;"><img src="%s" alt="%s" style="max-width: %dpx; max-height: %dpx; display: block;" /></div></div>`,
			label, value, alt, field.Width, field.Height)
	}
	return fmt.Sprintf(`<div class="signature-field filled-from-variable" style="display: inline-block; margin: 10px 0;">%s<div style="border: 1px solid #3b82f6; border-radius: 4px; padding: 8px 12px; background-color: #eff6ff; display: inline-block; min-width: %dpx;"><p style="margin: 0; font-size: 11pt; color: #1e40af;">%s</p></div></div>`,
		label, field.Width, value)
}

func variableValue(field Field, bag vars.Bag) (string, bool) {
	for _, key := range field.VariableKeys() {
		value, ok := vars.Lookup(bag, key)
		if !ok {
			continue
		}
		if text, ok := value.(string); ok && text != "" {
			return text, true
		}
	}
	return "", false
}

func labelHTML(label string, required bool) string {
	if label == "" {
		return ""
	}
	asterisk := ""
	if required {
		asterisk = ` <span style="color: #ef4444;">*</span>`
	}
	return fmt.Sprintf(`<p style="font-size: 10pt; color: #666; margin: 0 0 5px 0;">%s%s</p>`, label, asterisk)
}

const penIconSVG = `<svg width="48" height="48" viewBox="0 0 24 24" fill="none" stroke="#9ca3af" stroke-width="1.5" style="opacity: 0.5;"><path d="M16 3.13a4 4 0 0 1 0 7.75" /><path d="M3 20.05V5.5a2.5 2.5 0 0 1 5 0V20.05" /><path d="M7 13.5h9.5" /><path d="M20 20.5V10.5a2.5 2.5 0 0 0-5 0V20.5" /></svg>`
