// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package schema

import "sort"

// Value is a single legal literal value for a field.
type Value struct {
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
}

// Definition describes the expected shape of one workflow field.
type Definition struct {
	// Key is the canonical key name the definition is bound to.
	Key string
	// Description is shown in completion and hover output.
	Description string
	// Expression marks a string field whose value may embed ${{ ... }} expressions.
	Expression bool
	// Values is the closed enumeration of legal scalar values, when the field has one.
	Values []Value
	// Properties lists the known child keys of a mapping field.
	Properties map[string]*Definition
	// Wildcard describes arbitrary child keys (job identifiers, env names).
	Wildcard *Definition
	// Items describes the entries of a sequence field.
	Items *Definition
	// Required lists child keys that must be present in a mapping field.
	Required []string
	// Format names a literal format validated outside the enum check, e.g. "cron".
	Format string
}

// Property returns the definition bound to the named child key, falling back
// to the wildcard definition. A nil receiver returns nil.
func (d *Definition) Property(name string) *Definition {
	if d == nil {
		return nil
	}

	if p, ok := d.Properties[name]; ok {
		return p
	}

	return d.Wildcard
}

// Keys returns the known child keys as completion values, sorted by name.
func (d *Definition) Keys() []Value {
	if d == nil || len(d.Properties) == 0 {
		return nil
	}

	names := make([]string, 0, len(d.Properties))
	for name := range d.Properties {
		names = append(names, name)
	}

	sort.Strings(names)

	values := make([]Value, 0, len(names))
	for _, name := range names {
		values = append(values, Value{Label: name, Description: d.Properties[name].Description})
	}

	return values
}

// Open reports whether the mapping accepts keys beyond those listed in Properties.
func (d *Definition) Open() bool {
	return d != nil && d.Wildcard != nil
}

// AllowsValue reports whether v is within the closed enumeration.
// Fields without an enumeration allow any value.
func (d *Definition) AllowsValue(v string) bool {
	if d == nil || len(d.Values) == 0 {
		return true
	}

	for _, val := range d.Values {
		if val.Label == v {
			return true
		}
	}

	return false
}
