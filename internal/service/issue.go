package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sumire/issuetracker/internal/domain"
)

// IssueStore defines the issue data access interface consumed by IssueService.
type IssueStore interface {
	Insert(ctx context.Context, issue domain.Issue) error
	Find(ctx context.Context, f domain.IssueFilter) ([]domain.Issue, error)
	FindByID(ctx context.Context, id string) (*domain.Issue, error)
	UpdateByID(ctx context.Context, id string, patch domain.IssuePatch, now time.Time) error
	DeleteByID(ctx context.Context, id string) error
}

// IssueService applies the issue request rules on top of an IssueStore.
// Rejected requests are returned as *domain.IssueError.
type IssueService struct {
	issues IssueStore
	now    func() time.Time
}

// NewIssueService creates a new IssueService.
func NewIssueService(issues IssueStore) *IssueService {
	return &IssueService{issues: issues, now: time.Now}
}

// Create validates and stores a new open issue.
func (s *IssueService) Create(ctx context.Context, in domain.NewIssue) (*domain.Issue, error) {
	if err := domain.Validate(in); err != nil {
		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) {
			return nil, &domain.IssueError{Err: domain.ErrMissingRequiredFields}
		}
		return nil, err
	}

	issue := in.Build(s.now())
	if err := s.issues.Insert(ctx, issue); err != nil {
		return nil, fmt.Errorf("create issue in project %q: %w", in.Project, err)
	}
	return &issue, nil
}

// List returns the issues of a project that match every filter parameter.
// Parameters that can never match yield an empty list.
func (s *IssueService) List(ctx context.Context, project string, params map[string][]string) ([]domain.Issue, error) {
	filter, ok := domain.ParseFilter(project, params)
	if !ok {
		return []domain.Issue{}, nil
	}
	return s.issues.Find(ctx, filter)
}

// Get returns one issue by id.
func (s *IssueService) Get(ctx context.Context, id string) (*domain.Issue, error) {
	if id == "" {
		return nil, &domain.IssueError{Err: domain.ErrMissingID}
	}
	return s.issues.FindByID(ctx, id)
}

// Update applies a partial update to the issue with the given id.
func (s *IssueService) Update(ctx context.Context, id string, patch domain.IssuePatch) error {
	if id == "" {
		return &domain.IssueError{Err: domain.ErrMissingID}
	}
	if patch.IsEmpty() {
		return &domain.IssueError{Err: domain.ErrNoUpdateFields, ID: id}
	}
	if err := s.issues.UpdateByID(ctx, id, patch, s.now()); err != nil {
		return &domain.IssueError{Err: domain.ErrUpdateFailed, ID: id, Cause: err}
	}
	return nil
}

// Delete permanently removes the issue with the given id.
func (s *IssueService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return &domain.IssueError{Err: domain.ErrMissingID}
	}
	if err := s.issues.DeleteByID(ctx, id); err != nil {
		return &domain.IssueError{Err: domain.ErrDeleteFailed, ID: id, Cause: err}
	}
	return nil
}
