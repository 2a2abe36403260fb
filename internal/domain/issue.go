package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
)

// Issue is a tracked work item scoped to a project.
type Issue struct {
	ID         string    `json:"_id" yaml:"_id" db:"id"`
	Project    string    `json:"-" yaml:"project" db:"project"`
	IssueTitle string    `json:"issue_title" yaml:"issue_title" db:"issue_title"`
	IssueText  string    `json:"issue_text" yaml:"issue_text" db:"issue_text"`
	CreatedOn  time.Time `json:"created_on" yaml:"created_on" db:"created_on"`
	UpdatedOn  time.Time `json:"updated_on" yaml:"updated_on" db:"updated_on"`
	CreatedBy  string    `json:"created_by" yaml:"created_by" db:"created_by"`
	AssignedTo string    `json:"assigned_to" yaml:"assigned_to" db:"assigned_to"`
	Open       bool      `json:"open" yaml:"open" db:"open"`
	StatusText string    `json:"status_text" yaml:"status_text" db:"status_text"`
}

// TimeLayout is the wire format of issue timestamps: UTC with exactly three
// fractional digits.
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

// MarshalJSON writes the timestamps in TimeLayout.
func (i Issue) MarshalJSON() ([]byte, error) {
	type plain Issue
	return json.Marshal(struct {
		plain
		CreatedOn string `json:"created_on"`
		UpdatedOn string `json:"updated_on"`
	}{
		plain:     plain(i),
		CreatedOn: i.CreatedOn.UTC().Format(TimeLayout),
		UpdatedOn: i.UpdatedOn.UTC().Format(TimeLayout),
	})
}

// NewIssue holds the client supplied fields of an issue being created.
type NewIssue struct {
	Project    string
	IssueTitle string `validate:"required"`
	IssueText  string `validate:"required"`
	CreatedBy  string `validate:"required"`
	AssignedTo string
	StatusText string
}

// Build returns the issue to be stored: a fresh id, both timestamps set to
// now and the issue open.
func (n NewIssue) Build(now time.Time) Issue {
	now = Timestamp(now)
	return Issue{
		ID:         NewID(now),
		Project:    n.Project,
		IssueTitle: n.IssueTitle,
		IssueText:  n.IssueText,
		CreatedOn:  now,
		UpdatedOn:  now,
		CreatedBy:  n.CreatedBy,
		AssignedTo: n.AssignedTo,
		Open:       true,
		StatusText: n.StatusText,
	}
}

// IssuePatch lists the fields of a partial update. Nil fields are left unchanged.
type IssuePatch struct {
	IssueTitle *string
	IssueText  *string
	CreatedBy  *string
	AssignedTo *string
	StatusText *string
	Open       *bool
}

// IsEmpty reports whether the patch would change nothing.
func (p IssuePatch) IsEmpty() bool {
	return p.IssueTitle == nil && p.IssueText == nil && p.CreatedBy == nil &&
		p.AssignedTo == nil && p.StatusText == nil && p.Open == nil
}

// Columns returns the column assignments of the patch in a stable order.
func (p IssuePatch) Columns() []Condition {
	var cols []Condition
	add := func(name string, v *string) {
		if v != nil {
			cols = append(cols, Condition{Column: name, Value: *v})
		}
	}
	add("issue_title", p.IssueTitle)
	add("issue_text", p.IssueText)
	add("created_by", p.CreatedBy)
	add("assigned_to", p.AssignedTo)
	add("status_text", p.StatusText)
	if p.Open != nil {
		cols = append(cols, Condition{Column: "open", Value: *p.Open})
	}
	return cols
}

// NewID returns a new lexically sortable issue id.
func NewID(t time.Time) string {
	return ulid.MustNew(ulid.Timestamp(t), ulid.DefaultEntropy()).String()
}

// ParseID checks that s is a well formed issue id.
func ParseID(s string) (string, error) {
	id, err := ulid.ParseStrict(s)
	if err != nil {
		return "", fmt.Errorf("%w %q: %v", ErrInvalidID, s, err)
	}
	return id.String(), nil
}

// Timestamp normalizes t to the precision and zone issues are stored with.
func Timestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}
