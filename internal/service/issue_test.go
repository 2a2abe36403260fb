package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sumire/issuetracker/internal/domain"
)

// memoryStore is an IssueStore kept in insertion order.
type memoryStore struct {
	issues []domain.Issue
	err    error
}

func (m *memoryStore) Insert(_ context.Context, issue domain.Issue) error {
	if m.err != nil {
		return m.err
	}
	m.issues = append(m.issues, issue)
	return nil
}

func (m *memoryStore) Find(_ context.Context, f domain.IssueFilter) ([]domain.Issue, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := []domain.Issue{}
	for _, issue := range m.issues {
		if issue.Project != f.Project {
			continue
		}
		match := true
		for _, c := range f.Conditions {
			if c.Column == "issue_title" && issue.IssueTitle != c.Value {
				match = false
			}
			if c.Column == "id" && issue.ID != c.Value {
				match = false
			}
		}
		if match {
			out = append(out, issue)
		}
	}
	return out, nil
}

func (m *memoryStore) FindByID(_ context.Context, id string) (*domain.Issue, error) {
	i, err := m.index(id)
	if err != nil {
		return nil, err
	}
	issue := m.issues[i]
	return &issue, nil
}

func (m *memoryStore) UpdateByID(_ context.Context, id string, patch domain.IssuePatch, now time.Time) error {
	i, err := m.index(id)
	if err != nil {
		return err
	}
	issue := &m.issues[i]
	if patch.IssueTitle != nil {
		issue.IssueTitle = *patch.IssueTitle
	}
	if patch.StatusText != nil {
		issue.StatusText = *patch.StatusText
	}
	if patch.Open != nil {
		issue.Open = *patch.Open
	}
	issue.UpdatedOn = domain.Timestamp(now)
	return nil
}

func (m *memoryStore) DeleteByID(_ context.Context, id string) error {
	i, err := m.index(id)
	if err != nil {
		return err
	}
	m.issues = slices.Delete(m.issues, i, i+1)
	return nil
}

func (m *memoryStore) index(id string) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	if _, err := domain.ParseID(id); err != nil {
		return 0, err
	}
	for i, issue := range m.issues {
		if issue.ID == id {
			return i, nil
		}
	}
	return 0, fmt.Errorf("issue %s: %w", id, domain.ErrNotFound)
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

func newTestService() (*IssueService, *memoryStore) {
	store := &memoryStore{}
	svc := NewIssueService(store)
	clock := &fakeClock{t: time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)}
	svc.now = clock.now
	return svc, store
}

func requireIssueError(t *testing.T, err error, want error, id string) {
	t.Helper()
	var issueErr *domain.IssueError
	require.ErrorAs(t, err, &issueErr)
	assert.Equal(t, want, issueErr.Err)
	assert.Equal(t, id, issueErr.ID)
}

func TestCreate(t *testing.T) {
	svc, store := newTestService()

	issue, err := svc.Create(context.Background(), domain.NewIssue{
		Project:    "apitest",
		IssueTitle: "Issue",
		IssueText:  "Functional Test",
		CreatedBy:  "joe",
		AssignedTo: "ann",
		StatusText: "Not done",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, issue.ID)
	assert.Equal(t, "Issue", issue.IssueTitle)
	assert.Equal(t, "Functional Test", issue.IssueText)
	assert.Equal(t, "joe", issue.CreatedBy)
	assert.Equal(t, "ann", issue.AssignedTo)
	assert.Equal(t, "Not done", issue.StatusText)
	assert.True(t, issue.Open)
	require.Len(t, store.issues, 1)
	assert.Equal(t, *issue, store.issues[0])
}

func TestCreate_MissingRequiredFields(t *testing.T) {
	tests := map[string]domain.NewIssue{
		"all empty":     {Project: "apitest", AssignedTo: "ann", StatusText: "hehe"},
		"no title":      {Project: "apitest", IssueText: "x", CreatedBy: "joe"},
		"no text":       {Project: "apitest", IssueTitle: "x", CreatedBy: "joe"},
		"no created_by": {Project: "apitest", IssueTitle: "x", IssueText: "y"},
	}

	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			svc, store := newTestService()

			_, err := svc.Create(context.Background(), in)
			requireIssueError(t, err, domain.ErrMissingRequiredFields, "")
			assert.Empty(t, store.issues)
		})
	}
}

func TestCreate_StoreFailure(t *testing.T) {
	svc, store := newTestService()
	store.err = errors.New("connection refused")

	_, err := svc.Create(context.Background(), domain.NewIssue{IssueTitle: "a", IssueText: "b", CreatedBy: "c"})
	require.Error(t, err)

	var issueErr *domain.IssueError
	assert.False(t, errors.As(err, &issueErr))
}

func TestList(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	a, err := svc.Create(ctx, domain.NewIssue{Project: "apitest", IssueTitle: "a", IssueText: "x", CreatedBy: "joe"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, domain.NewIssue{Project: "apitest", IssueTitle: "b", IssueText: "x", CreatedBy: "joe"})
	require.NoError(t, err)

	issues, err := svc.List(ctx, "apitest", nil)
	require.NoError(t, err)
	assert.Len(t, issues, 2)

	issues, err = svc.List(ctx, "apitest", map[string][]string{"_id": {a.ID}})
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, *a, issues[0])

	issues, err = svc.List(ctx, "apitest", map[string][]string{"priority": {"high"}})
	require.NoError(t, err)
	assert.NotNil(t, issues)
	assert.Empty(t, issues)
}

func TestUpdate(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.NewIssue{Project: "apitest", IssueTitle: "a", IssueText: "x", CreatedBy: "joe"})
	require.NoError(t, err)

	title := "renamed"
	require.NoError(t, svc.Update(ctx, created.ID, domain.IssuePatch{IssueTitle: &title}))

	got := store.issues[0]
	assert.Equal(t, "renamed", got.IssueTitle)
	assert.Equal(t, created.IssueText, got.IssueText)
	assert.Equal(t, created.CreatedOn, got.CreatedOn)
	assert.True(t, got.UpdatedOn.After(created.UpdatedOn))
}

func TestUpdate_Rejections(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()
	title := "renamed"
	patch := domain.IssuePatch{IssueTitle: &title}

	created, err := svc.Create(ctx, domain.NewIssue{Project: "apitest", IssueTitle: "a", IssueText: "x", CreatedBy: "joe"})
	require.NoError(t, err)

	t.Run("missing id", func(t *testing.T) {
		requireIssueError(t, svc.Update(ctx, "", patch), domain.ErrMissingID, "")
		assert.Equal(t, "a", store.issues[0].IssueTitle)
	})

	t.Run("no fields", func(t *testing.T) {
		requireIssueError(t, svc.Update(ctx, created.ID, domain.IssuePatch{}), domain.ErrNoUpdateFields, created.ID)
	})

	t.Run("malformed id", func(t *testing.T) {
		requireIssueError(t, svc.Update(ctx, "123", patch), domain.ErrUpdateFailed, "123")
	})

	t.Run("unknown id", func(t *testing.T) {
		id := domain.NewID(time.Now())
		requireIssueError(t, svc.Update(ctx, id, patch), domain.ErrUpdateFailed, id)
	})

	t.Run("store failure", func(t *testing.T) {
		store.err = errors.New("connection reset")
		defer func() { store.err = nil }()
		requireIssueError(t, svc.Update(ctx, created.ID, patch), domain.ErrUpdateFailed, created.ID)
	})
}

func TestDelete(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.NewIssue{Project: "apitest", IssueTitle: "a", IssueText: "x", CreatedBy: "joe"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.Empty(t, store.issues)

	_, err = svc.Get(ctx, created.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	// Repeating the delete reports the same failure.
	requireIssueError(t, svc.Delete(ctx, created.ID), domain.ErrDeleteFailed, created.ID)
	requireIssueError(t, svc.Delete(ctx, created.ID), domain.ErrDeleteFailed, created.ID)
	requireIssueError(t, svc.Delete(ctx, "123"), domain.ErrDeleteFailed, "123")
	requireIssueError(t, svc.Delete(ctx, ""), domain.ErrMissingID, "")
}

func TestGet(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Get(ctx, "")
	requireIssueError(t, err, domain.ErrMissingID, "")

	created, err := svc.Create(ctx, domain.NewIssue{Project: "apitest", IssueTitle: "a", IssueText: "x", CreatedBy: "joe"})
	require.NoError(t, err)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, *created, *got)
}
