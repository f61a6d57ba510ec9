// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package workflow

import "github.com/matt-FFFFFF/flowls/internal/document"

// Context is the read-only ambient view handed to value and context
// providers: the parsed document, its token tree, and the path from the
// root to the token being completed. It is rebuilt for every request.
type Context struct {
	Doc  *document.Document
	Root *Token
	Path Path
}

// NewContext creates the ambient context for one request.
func NewContext(doc *document.Document, root *Token, path Path) *Context {
	return &Context{Doc: doc, Root: root, Path: path}
}

// Jobs returns the jobs mapping token, or nil.
func (c *Context) Jobs() *Token {
	if c == nil || c.Root == nil {
		return nil
	}

	return c.Root.Entry("jobs")
}

// JobIDs returns the identifiers of all jobs declared in the document.
func (c *Context) JobIDs() []string {
	return c.Jobs().Keys()
}

// CurrentJob returns the job the resolved path runs through, or nil when
// the path does not descend into a job.
func (c *Context) CurrentJob() *Token {
	if c == nil || len(c.Path) < 2 || c.Path[0].IsIndex() || c.Path[0].Name != "jobs" || c.Path[1].IsIndex() {
		return nil
	}

	return c.Jobs().Entry(c.Path[1].Name)
}

// StepIDs returns the declared step identifiers of the current job.
func (c *Context) StepIDs() []string {
	steps := c.CurrentJob().Entry("steps")
	if steps == nil || steps.Kind != KindSequence {
		return nil
	}

	var ids []string

	for _, step := range steps.Items {
		if id := step.Entry("id"); id.IsScalar() && id.Value != "" {
			ids = append(ids, id.Value)
		}
	}

	return ids
}

// EnvNames returns the environment variable names visible at the resolved
// path: workflow-level env plus the current job's env.
func (c *Context) EnvNames() []string {
	var names []string

	if c != nil && c.Root != nil {
		names = append(names, c.Root.Entry("env").Keys()...)
	}

	names = append(names, c.CurrentJob().Entry("env").Keys()...)

	return names
}

// MatrixKeys returns the matrix variable names of the current job's strategy.
func (c *Context) MatrixKeys() []string {
	strategy := c.CurrentJob().Entry("strategy")
	if strategy == nil {
		return nil
	}

	return strategy.Entry("matrix").Keys()
}
