package domain

import (
	"sort"
	"strconv"
	"time"
)

// Condition is a column bound to a value, used both as an exact-match
// filter and as an update assignment.
type Condition struct {
	Column string
	Value  any
}

// IssueFilter is a conjunction of exact-match conditions within one project.
type IssueFilter struct {
	Project    string
	Conditions []Condition
}

type fieldKind int

const (
	kindString fieldKind = iota
	kindID
	kindBool
	kindTime
)

var filterFields = map[string]struct {
	column string
	kind   fieldKind
}{
	"_id":         {"id", kindID},
	"id":          {"id", kindID},
	"project":     {"project", kindString},
	"issue_title": {"issue_title", kindString},
	"issue_text":  {"issue_text", kindString},
	"created_by":  {"created_by", kindString},
	"assigned_to": {"assigned_to", kindString},
	"status_text": {"status_text", kindString},
	"open":        {"open", kindBool},
	"created_on":  {"created_on", kindTime},
	"updated_on":  {"updated_on", kindTime},
}

// ParseFilter builds a filter for project from query parameters. It reports
// false when a parameter can never match a stored issue: an unknown field
// name, a malformed id, or a value that does not parse as the field's type.
func ParseFilter(project string, params map[string][]string) (IssueFilter, bool) {
	f := IssueFilter{Project: project}

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		field, ok := filterFields[key]
		if !ok {
			return f, false
		}
		for _, raw := range params[key] {
			v, ok := parseValue(field.kind, raw)
			if !ok {
				return f, false
			}
			f.Conditions = append(f.Conditions, Condition{Column: field.column, Value: v})
		}
	}
	return f, true
}

func parseValue(kind fieldKind, raw string) (any, bool) {
	switch kind {
	case kindID:
		id, err := ParseID(raw)
		return id, err == nil
	case kindBool:
		b, err := strconv.ParseBool(raw)
		return b, err == nil
	case kindTime:
		t, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return nil, false
		}
		return Timestamp(t), true
	default:
		return raw, true
	}
}
