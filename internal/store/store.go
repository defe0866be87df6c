package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mattjoyce/kiegate/internal/model"
)

// DefaultPageSize applies when a caller passes pageSize <= 0.
const DefaultPageSize = 10

var ErrNotFound = errors.New("not found")

// Store is the SQLite-backed read model behind the query endpoints.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) PutContainer(ctx context.Context, c model.Container) error {
	if c.ID == "" {
		return fmt.Errorf("container id is empty")
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.db.ExecContext(ctx, `
INSERT INTO containers(id, alias, group_id, artifact_id, version, status, updated_at)
VALUES(?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  alias = excluded.alias,
  group_id = excluded.group_id,
  artifact_id = excluded.artifact_id,
  version = excluded.version,
  status = excluded.status,
  updated_at = excluded.updated_at;
`, c.ID, c.Alias, c.ReleaseID.GroupID, c.ReleaseID.ArtifactID, c.ReleaseID.Version, string(c.Status), now)
	if err != nil {
		return fmt.Errorf("upsert container: %w", err)
	}
	return nil
}

// Container returns ErrNotFound when id is unknown.
func (s *Store) Container(ctx context.Context, id string) (*model.Container, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT id, alias, group_id, artifact_id, version, status
FROM containers WHERE id = ?;`, id)
	c, err := scanContainer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read container: %w", err)
	}
	return c, nil
}

// ListContainers returns nil (not an empty slice) when there are no containers.
func (s *Store) ListContainers(ctx context.Context) ([]model.Container, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, alias, group_id, artifact_id, version, status
FROM containers ORDER BY id ASC;`)
	if err != nil {
		return nil, fmt.Errorf("list containers: %w", err)
	}
	defer rows.Close()

	var out []model.Container
	for rows.Next() {
		c, err := scanContainer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan container: %w", err)
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (s *Store) PutCaseDefinition(ctx context.Context, d model.CaseDefinition) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO case_definitions(id, container_id, name, version)
VALUES(?, ?, ?, ?)
ON CONFLICT(id, container_id) DO UPDATE SET
  name = excluded.name,
  version = excluded.version;
`, d.ID, d.ContainerID, d.Name, d.Version)
	if err != nil {
		return fmt.Errorf("upsert case definition: %w", err)
	}
	return nil
}

// CaseDefinitions matches filter as a substring of the definition id or name.
func (s *Store) CaseDefinitions(ctx context.Context, filter string, page, pageSize int) ([]model.CaseDefinition, error) {
	limit, offset := paging(page, pageSize)
	like := "%" + filter + "%"
	rows, err := s.db.QueryContext(ctx, `
SELECT id, container_id, name, version
FROM case_definitions
WHERE ? = '' OR id LIKE ? OR name LIKE ?
ORDER BY id ASC, container_id ASC
LIMIT ? OFFSET ?;`, filter, like, like, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query case definitions: %w", err)
	}
	defer rows.Close()

	out := []model.CaseDefinition{}
	for rows.Next() {
		var d model.CaseDefinition
		var version sql.NullString
		if err := rows.Scan(&d.ID, &d.ContainerID, &d.Name, &version); err != nil {
			return nil, fmt.Errorf("scan case definition: %w", err)
		}
		d.Version = version.String
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *Store) PutCaseInstance(ctx context.Context, ci model.CaseInstance) error {
	if ci.CaseID == "" {
		return fmt.Errorf("case id is empty")
	}
	started := ci.StartedAt
	if started.IsZero() {
		started = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO case_instances(case_id, description, owner, status, definition_id, container_id, started_at, completed_at)
VALUES(?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(case_id) DO UPDATE SET
  description = excluded.description,
  owner = excluded.owner,
  status = excluded.status,
  completed_at = excluded.completed_at;
`, ci.CaseID, ci.Description, ci.Owner, ci.Status, ci.DefinitionID, ci.ContainerID,
		started.UTC().Format(time.RFC3339Nano), formatOptionalTime(ci.CompletedAt))
	if err != nil {
		return fmt.Errorf("upsert case instance: %w", err)
	}
	return nil
}

// CaseInstances returns case instances in any of statuses.
func (s *Store) CaseInstances(ctx context.Context, statuses []int, page, pageSize int) ([]model.CaseInstance, error) {
	return s.queryCaseInstances(ctx, "", statuses, page, pageSize)
}

// CaseInstancesOwnedBy narrows CaseInstances to one owner.
func (s *Store) CaseInstancesOwnedBy(ctx context.Context, owner string, statuses []int, page, pageSize int) ([]model.CaseInstance, error) {
	if owner == "" {
		return nil, fmt.Errorf("owner is empty")
	}
	return s.queryCaseInstances(ctx, owner, statuses, page, pageSize)
}

func (s *Store) queryCaseInstances(ctx context.Context, owner string, statuses []int, page, pageSize int) ([]model.CaseInstance, error) {
	limit, offset := paging(page, pageSize)

	var (
		where []string
		args  []any
	)
	if owner != "" {
		where = append(where, "owner = ?")
		args = append(args, owner)
	}
	if len(statuses) > 0 {
		marks := make([]string, len(statuses))
		for i, st := range statuses {
			marks[i] = "?"
			args = append(args, st)
		}
		where = append(where, "status IN ("+strings.Join(marks, ", ")+")")
	}

	q := `SELECT case_id, description, owner, status, definition_id, container_id, started_at, completed_at FROM case_instances`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY started_at ASC, case_id ASC LIMIT ? OFFSET ?;"
	args = append(args, limit, offset)

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query case instances: %w", err)
	}
	defer rows.Close()

	out := []model.CaseInstance{}
	for rows.Next() {
		ci, err := scanCaseInstance(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *ci)
	}
	return out, rows.Err()
}

// CaseInstance returns ErrNotFound when caseID is unknown.
func (s *Store) CaseInstance(ctx context.Context, caseID string) (*model.CaseInstance, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT case_id, description, owner, status, definition_id, container_id, started_at, completed_at
FROM case_instances WHERE case_id = ?;`, caseID)
	ci, err := scanCaseInstance(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return ci, nil
}

func (s *Store) PutProcessInstance(ctx context.Context, pi model.ProcessInstance) error {
	started := pi.StartedAt
	if started.IsZero() {
		started = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO process_instances(id, process_id, process_name, state, container_id, initiator, started_at)
VALUES(?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  state = excluded.state,
  process_name = excluded.process_name;
`, pi.ID, pi.ProcessID, pi.ProcessName, pi.State, pi.ContainerID, pi.Initiator, started.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("upsert process instance: %w", err)
	}
	return nil
}

// ProcessInstance returns ErrNotFound when no instance with id lives in containerID.
func (s *Store) ProcessInstance(ctx context.Context, containerID string, id int64) (*model.ProcessInstance, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT id, process_id, process_name, state, container_id, initiator, started_at
FROM process_instances WHERE id = ? AND container_id = ?;`, id, containerID)
	pi, err := scanProcessInstance(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return pi, nil
}

func (s *Store) ProcessInstances(ctx context.Context, page, pageSize int) ([]model.ProcessInstance, error) {
	limit, offset := paging(page, pageSize)
	rows, err := s.db.QueryContext(ctx, `
SELECT id, process_id, process_name, state, container_id, initiator, started_at
FROM process_instances ORDER BY id ASC LIMIT ? OFFSET ?;`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query process instances: %w", err)
	}
	defer rows.Close()

	out := []model.ProcessInstance{}
	for rows.Next() {
		pi, err := scanProcessInstance(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *pi)
	}
	return out, rows.Err()
}

func (s *Store) PutJobRequest(ctx context.Context, j model.JobRequest) error {
	scheduled := j.ScheduledDate
	if scheduled.IsZero() {
		scheduled = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO job_requests(id, status, command, business_key, retries, container_id, scheduled_date)
VALUES(?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  status = excluded.status,
  retries = excluded.retries;
`, j.ID, string(j.Status), j.Command, j.BusinessKey, j.Retries, j.ContainerID, scheduled.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("upsert job request: %w", err)
	}
	return nil
}

// JobRequest returns ErrNotFound when id is unknown.
func (s *Store) JobRequest(ctx context.Context, id int64) (*model.JobRequest, error) {
	var (
		j         model.JobRequest
		status    string
		key       sql.NullString
		container sql.NullString
		scheduled string
	)
	err := s.db.QueryRowContext(ctx, `
SELECT id, status, command, business_key, retries, container_id, scheduled_date
FROM job_requests WHERE id = ?;`, id).Scan(&j.ID, &status, &j.Command, &key, &j.Retries, &container, &scheduled)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read job request: %w", err)
	}
	j.Status = model.JobStatus(status)
	j.BusinessKey = key.String
	j.ContainerID = container.String
	if j.ScheduledDate, err = time.Parse(time.RFC3339Nano, scheduled); err != nil {
		return nil, fmt.Errorf("parse scheduled_date: %w", err)
	}
	return &j, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanContainer(sc scanner) (*model.Container, error) {
	var (
		c      model.Container
		alias  sql.NullString
		status string
	)
	if err := sc.Scan(&c.ID, &alias, &c.ReleaseID.GroupID, &c.ReleaseID.ArtifactID, &c.ReleaseID.Version, &status); err != nil {
		return nil, err
	}
	c.Alias = alias.String
	c.Status = model.ContainerStatus(status)
	return &c, nil
}

func scanCaseInstance(sc scanner) (*model.CaseInstance, error) {
	var (
		ci        model.CaseInstance
		desc      sql.NullString
		started   string
		completed sql.NullString
	)
	if err := sc.Scan(&ci.CaseID, &desc, &ci.Owner, &ci.Status, &ci.DefinitionID, &ci.ContainerID, &started, &completed); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan case instance: %w", err)
	}
	ci.Description = desc.String

	var err error
	if ci.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
		return nil, fmt.Errorf("parse started_at: %w", err)
	}
	if completed.Valid {
		t, err := time.Parse(time.RFC3339Nano, completed.String)
		if err != nil {
			return nil, fmt.Errorf("parse completed_at: %w", err)
		}
		ci.CompletedAt = &t
	}
	return &ci, nil
}

func scanProcessInstance(sc scanner) (*model.ProcessInstance, error) {
	var (
		pi        model.ProcessInstance
		initiator sql.NullString
		started   string
	)
	if err := sc.Scan(&pi.ID, &pi.ProcessID, &pi.ProcessName, &pi.State, &pi.ContainerID, &initiator, &started); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan process instance: %w", err)
	}
	pi.Initiator = initiator.String

	var err error
	if pi.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
		return nil, fmt.Errorf("parse started_at: %w", err)
	}
	return &pi, nil
}

func paging(page, pageSize int) (limit, offset int) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if page < 0 {
		page = 0
	}
	return pageSize, page * pageSize
}

func formatOptionalTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339Nano)
}
