// Package template defines the engine-agnostic contract used to render page
// chrome around generated documents, plus the pongo2-backed adapter under
// gotemplate. Chrome templates are ordinary template files; the document
// body is passed in as data, never re-parsed.
package template
