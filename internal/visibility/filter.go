// Package visibility restricts which records an acting user may see on the
// appraisal screens. The rule set is pure configuration: a table mapping an
// identity key to the substrings its reporting-leader field may carry. The
// matching is deliberately lax (substring, not equality) because the source
// data carries inconsistent prefixes and titles.
package visibility

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"hrdesk/internal/domain"
)

// Table maps an identity key to the set of lowercase substrings that may
// appear in a visible record's owner field.
type Table map[string][]string

// normalize lowercases keys and substrings so matching stays case-insensitive
// regardless of how the table was authored.
func (t Table) normalize() Table {
	out := make(Table, len(t))
	for key, subs := range t {
		lowered := make([]string, 0, len(subs))
		for _, s := range subs {
			s = strings.ToLower(strings.TrimSpace(s))
			if s != "" {
				lowered = append(lowered, s)
			}
		}
		out[strings.ToLower(strings.TrimSpace(key))] = lowered
	}
	return out
}

// LoadTable reads a JSON rule table from disk.
func LoadTable(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading visibility table: %w", err)
	}
	var t Table
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing visibility table: %w", err)
	}
	return t, nil
}

// Visible returns the records actor may see, preserving relative order.
// When the actor's identity has a table entry, a record is visible if its
// owner field contains (case-insensitively) any of the entry's substrings.
// Unmapped identities fall back to own records only: the record's employee
// field must equal actor.EmployeeID exactly.
func Visible(records []domain.Record, table Table, actor domain.ActingUser, ownerField, employeeField string) []domain.Record {
	needles, mapped := table[strings.ToLower(strings.TrimSpace(actor.IdentityKey))]
	out := make([]domain.Record, 0, len(records))
	for _, rec := range records {
		if mapped {
			owner := strings.ToLower(strings.TrimSpace(rec.Str(ownerField)))
			for _, needle := range needles {
				if strings.Contains(owner, needle) {
					out = append(out, rec)
					break
				}
			}
			continue
		}
		if rec.Str(employeeField) == actor.EmployeeID {
			out = append(out, rec)
		}
	}
	return out
}

// Filter binds a rule table to the owner and employee field names of a
// record domain. The table may be replaced at runtime.
type Filter struct {
	mu            sync.RWMutex
	table         Table
	ownerField    string
	employeeField string
}

// New creates a Filter over the given table.
func New(table Table, ownerField, employeeField string) *Filter {
	return &Filter{
		table:         table.normalize(),
		ownerField:    ownerField,
		employeeField: employeeField,
	}
}

// SetTable replaces the rule table.
func (f *Filter) SetTable(table Table) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.table = table.normalize()
}

// Visible applies the current table to records for actor.
func (f *Filter) Visible(records []domain.Record, actor domain.ActingUser) []domain.Record {
	f.mu.RLock()
	table, ownerField, employeeField := f.table, f.ownerField, f.employeeField
	f.mu.RUnlock()
	return Visible(records, table, actor, ownerField, employeeField)
}
