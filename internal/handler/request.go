package handler

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/sumire/issuetracker/internal/domain"
)

// OptionalBool is a boolean request field that remembers whether it was sent.
// It accepts JSON booleans as well as "true"/"false" strings from forms.
type OptionalBool struct {
	Value bool
	Set   bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (b *OptionalBool) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case nil:
		*b = OptionalBool{}
	case bool:
		*b = OptionalBool{Value: t, Set: true}
	case string:
		return b.UnmarshalParam(t)
	default:
		return fmt.Errorf("expected boolean, got %s", data)
	}
	return nil
}

// UnmarshalParam implements echo.BindUnmarshaler for form and query values.
func (b *OptionalBool) UnmarshalParam(param string) error {
	if param == "" {
		*b = OptionalBool{}
		return nil
	}
	v, err := strconv.ParseBool(param)
	if err != nil {
		return fmt.Errorf("expected boolean, got %q", param)
	}
	*b = OptionalBool{Value: v, Set: true}
	return nil
}

// Text is a string request field that also accepts JSON numbers and
// booleans, keeping their literal text. null reads as empty.
type Text string

// UnmarshalJSON implements json.Unmarshaler.
func (t *Text) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch x := v.(type) {
	case nil:
		*t = ""
	case string:
		*t = Text(x)
	case float64, bool:
		*t = Text(strings.TrimSpace(string(data)))
	default:
		return fmt.Errorf("expected string, got %s", data)
	}
	return nil
}

// UnmarshalParam implements echo.BindUnmarshaler for form and query values.
func (t *Text) UnmarshalParam(param string) error {
	*t = Text(param)
	return nil
}

type createIssueRequest struct {
	Project    string `param:"project" json:"-"`
	IssueTitle Text   `json:"issue_title" form:"issue_title"`
	IssueText  Text   `json:"issue_text" form:"issue_text"`
	CreatedBy  Text   `json:"created_by" form:"created_by"`
	AssignedTo Text   `json:"assigned_to" form:"assigned_to"`
	StatusText Text   `json:"status_text" form:"status_text"`
}

func (r createIssueRequest) toNewIssue() domain.NewIssue {
	return domain.NewIssue{
		Project:    r.Project,
		IssueTitle: string(r.IssueTitle),
		IssueText:  string(r.IssueText),
		CreatedBy:  string(r.CreatedBy),
		AssignedTo: string(r.AssignedTo),
		StatusText: string(r.StatusText),
	}
}

type updateIssueRequest struct {
	Project    string       `param:"project" json:"-"`
	ID         Text         `json:"_id" form:"_id" query:"_id"`
	IssueTitle Text         `json:"issue_title" form:"issue_title"`
	IssueText  Text         `json:"issue_text" form:"issue_text"`
	CreatedBy  Text         `json:"created_by" form:"created_by"`
	AssignedTo Text         `json:"assigned_to" form:"assigned_to"`
	StatusText Text         `json:"status_text" form:"status_text"`
	Open       OptionalBool `json:"open" form:"open"`
}

// An empty string counts as not sent.
func (r updateIssueRequest) toPatch() domain.IssuePatch {
	p := domain.IssuePatch{
		IssueTitle: optional(r.IssueTitle),
		IssueText:  optional(r.IssueText),
		CreatedBy:  optional(r.CreatedBy),
		AssignedTo: optional(r.AssignedTo),
		StatusText: optional(r.StatusText),
	}
	if r.Open.Set {
		open := r.Open.Value
		p.Open = &open
	}
	return p
}

type deleteIssueRequest struct {
	Project string `param:"project" json:"-"`
	ID      Text   `json:"_id" form:"_id" query:"_id"`
}

func optional(t Text) *string {
	if t == "" {
		return nil
	}
	s := string(t)
	return &s
}
