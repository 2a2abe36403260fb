package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/sumire/issuetracker/internal/domain"
)

const issueColumns = `id, project, issue_title, issue_text, created_by, assigned_to, status_text, open, created_on, updated_on`

// IssueRepository handles issue data access operations.
type IssueRepository struct {
	db *sqlx.DB
}

// NewIssueRepository creates a new IssueRepository.
func NewIssueRepository(db *sqlx.DB) *IssueRepository {
	return &IssueRepository{db: db}
}

// Insert stores a new issue.
func (r *IssueRepository) Insert(ctx context.Context, issue domain.Issue) error {
	_, err := r.db.NamedExecContext(ctx,
		`INSERT INTO issues (`+issueColumns+`)
		 VALUES (:id, :project, :issue_title, :issue_text, :created_by, :assigned_to, :status_text, :open, :created_on, :updated_on)`,
		issue)
	if err != nil {
		return fmt.Errorf("insert issue: %w", err)
	}
	return nil
}

// Find returns the issues of a project matching every condition of the
// filter, oldest first.
func (r *IssueRepository) Find(ctx context.Context, f domain.IssueFilter) ([]domain.Issue, error) {
	where := []string{"project = ?"}
	args := []any{f.Project}
	for _, c := range f.Conditions {
		where = append(where, c.Column+" = ?")
		args = append(args, c.Value)
	}

	query := r.db.Rebind(`SELECT ` + issueColumns + ` FROM issues WHERE ` +
		strings.Join(where, " AND ") + ` ORDER BY created_on, id`)

	issues := []domain.Issue{}
	if err := r.db.SelectContext(ctx, &issues, query, args...); err != nil {
		return nil, fmt.Errorf("find issues in project %q: %w", f.Project, err)
	}
	for i := range issues {
		normalize(&issues[i])
	}
	return issues, nil
}

// FindByID retrieves an issue by its id regardless of project.
func (r *IssueRepository) FindByID(ctx context.Context, id string) (*domain.Issue, error) {
	id, err := domain.ParseID(id)
	if err != nil {
		return nil, err
	}

	var issue domain.Issue
	err = r.db.GetContext(ctx, &issue,
		r.db.Rebind(`SELECT `+issueColumns+` FROM issues WHERE id = ?`), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find issue by id %s: %w", id, err)
	}
	normalize(&issue)
	return &issue, nil
}

// UpdateByID overwrites the patched fields of an issue and sets its
// updated_on to now.
func (r *IssueRepository) UpdateByID(ctx context.Context, id string, patch domain.IssuePatch, now time.Time) error {
	id, err := domain.ParseID(id)
	if err != nil {
		return err
	}
	if patch.IsEmpty() {
		return fmt.Errorf("%w: empty patch", domain.ErrInvalidInput)
	}

	var (
		set  []string
		args []any
	)
	for _, c := range patch.Columns() {
		set = append(set, c.Column+" = ?")
		args = append(args, c.Value)
	}
	set = append(set, "updated_on = ?")
	args = append(args, domain.Timestamp(now), id)

	res, err := r.db.ExecContext(ctx,
		r.db.Rebind(`UPDATE issues SET `+strings.Join(set, ", ")+` WHERE id = ?`), args...)
	if err != nil {
		return fmt.Errorf("update issue %s: %w", id, err)
	}
	return expectOne(res, id)
}

// DeleteByID permanently removes an issue.
func (r *IssueRepository) DeleteByID(ctx context.Context, id string) error {
	id, err := domain.ParseID(id)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM issues WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete issue %s: %w", id, err)
	}
	return expectOne(res, id)
}

// Ping checks that the database is reachable.
func (r *IssueRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func expectOne(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for issue %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("issue %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// Drivers hand timestamps back in the session zone.
func normalize(issue *domain.Issue) {
	issue.CreatedOn = domain.Timestamp(issue.CreatedOn)
	issue.UpdatedOn = domain.Timestamp(issue.UpdatedOn)
}
