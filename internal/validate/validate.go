// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package validate

import (
	"context"
	"fmt"
	"strings"

	"github.com/matt-FFFFFF/flowls/internal/ctxlog"
	"github.com/matt-FFFFFF/flowls/internal/document"
	"github.com/matt-FFFFFF/flowls/internal/expression"
	"github.com/matt-FFFFFF/flowls/internal/providers"
	"github.com/matt-FFFFFF/flowls/internal/workflow"
)

// Severity follows the language server protocol numbering.
type Severity int

// Diagnostic severities.
const (
	SeverityError       Severity = 1
	SeverityWarning     Severity = 2
	SeverityInformation Severity = 3
	SeverityHint        Severity = 4
)

// Diagnostic is one position-anchored finding.
type Diagnostic struct {
	Message  string         `json:"message"`
	Range    document.Range `json:"range"`
	Severity Severity       `json:"severity"`
}

// Request carries one validation computation.
type Request struct {
	URI            string
	Text           string
	ValueProviders providers.ValueProviders
}

type findingKind int

const (
	findingRequired findingKind = iota
	findingUnknownKey
	findingValue
	findingFormat
)

type finding struct {
	kind  findingKind
	key   string
	value string
	diag  Diagnostic
}

// Validate returns the diagnostics for the document, in document order.
func Validate(ctx context.Context, req Request) []Diagnostic {
	doc := document.New(req.URI, req.Text)

	root, err := workflow.Parse(ctx, doc)
	if err != nil {
		ctxlog.Debug(ctx, "no diagnostics for unparseable document", "uri", req.URI, "error", err)

		return nil
	}

	w := &walker{}
	w.walk(root)

	wctx := workflow.NewContext(doc, root, nil)

	diags := make([]Diagnostic, 0, len(w.findings))

	for _, f := range w.findings {
		if f.kind == findingValue && suppressed(ctx, req, wctx, f) {
			continue
		}

		diags = append(diags, f.diag)
	}

	return diags
}

// suppressed re-checks an enumeration mismatch against the caller's dynamic
// provider for that key. A silent or permissive provider, a faulting one,
// and a provider listing the value all suppress the finding; only a
// provider returning a non-empty set excluding the value lets it stand.
func suppressed(ctx context.Context, req Request, wctx *workflow.Context, f finding) bool {
	fetch, ok := req.ValueProviders[f.key]
	if !ok {
		return false
	}

	values, err := fetch(ctx, wctx)
	if err != nil || len(values) == 0 {
		return true
	}

	for _, v := range values {
		if v.Label == f.value {
			return true
		}
	}

	return false
}

type walker struct {
	findings []finding
}

func (w *walker) walk(t *workflow.Token) {
	if t == nil {
		return
	}

	switch t.Kind {
	case workflow.KindMapping:
		w.mapping(t)
	case workflow.KindSequence:
		for _, item := range t.Items {
			w.walk(item)
		}
	case workflow.KindScalar:
		w.scalar(t)
	}
}

func (w *walker) mapping(t *workflow.Token) {
	def := t.Definition

	if def != nil {
		for _, required := range def.Required {
			if t.Entry(required) != nil {
				continue
			}

			w.add(finding{
				kind: findingRequired,
				key:  required,
				diag: Diagnostic{
					Message:  "Required property is missing: " + required,
					Range:    rangeOf(t),
					Severity: SeverityError,
				},
			})
		}
	}

	for _, e := range t.Entries {
		if e.Key == nil {
			continue
		}

		if def != nil && len(def.Properties) > 0 && def.Property(e.Key.Value) == nil {
			w.add(finding{
				kind: findingUnknownKey,
				key:  e.Key.Value,
				diag: Diagnostic{
					Message:  fmt.Sprintf("Unexpected property '%s'", e.Key.Value),
					Range:    rangeOf(e.Key),
					Severity: SeverityError,
				},
			})
		}

		w.walk(e.Value)
	}
}

func (w *walker) scalar(t *workflow.Token) {
	def := t.Definition
	if def == nil || t.Value == "" {
		return
	}

	// Values derived from an expression cannot be checked statically.
	if expression.Contains(t.Value) {
		return
	}

	if def.Format == "cron" {
		if !validCron(t.Value) {
			w.add(finding{
				kind: findingFormat,
				key:  def.Key,
				diag: Diagnostic{
					Message:  fmt.Sprintf("Invalid cron expression: '%s'", t.Value),
					Range:    rangeOf(t),
					Severity: SeverityError,
				},
			})
		}

		return
	}

	if !def.AllowsValue(t.Value) {
		w.add(finding{
			kind:  findingValue,
			key:   def.Key,
			value: t.Value,
			diag: Diagnostic{
				Message:  fmt.Sprintf("Unexpected value '%s'", t.Value),
				Range:    rangeOf(t),
				Severity: SeverityError,
			},
		})
	}
}

func (w *walker) add(f finding) {
	w.findings = append(w.findings, f)
}

func rangeOf(t *workflow.Token) document.Range {
	if t == nil || t.Range == nil {
		return document.Range{}
	}

	return *t.Range
}

// validCron accepts a five-field POSIX cron expression.
func validCron(v string) bool {
	return len(strings.Fields(v)) == 5
}
