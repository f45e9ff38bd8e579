package repo

import (
	"context"
	"database/sql"
	"time"
)

// Project groups the beams of one job, owned by a user.
type Project struct {
	ID            int       `json:"id"`
	UserID        int       `json:"user_id"`
	Name          string    `json:"name"`
	Region        string    `json:"region"`
	Address       string    `json:"address,omitempty"`
	Client        string    `json:"client,omitempty"`
	Engineer      string    `json:"engineer,omitempty"`
	ProjectNumber string    `json:"project_number,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type ProjectRepository interface {
	CreateProject(ctx context.Context, p Project) (int, error)
	GetProject(ctx context.Context, id int) (Project, error)
	ListProjectsByUser(ctx context.Context, userID int) ([]Project, error)
	DeleteProject(ctx context.Context, id int) error
}

type PostgresProjectRepository struct {
	db *sql.DB
}

func NewPostgresProjectDB(db *sql.DB) *PostgresProjectRepository {
	return &PostgresProjectRepository{db: db}
}

func (r *PostgresProjectRepository) CreateProject(ctx context.Context, p Project) (int, error) {
	var id int
	query := `INSERT INTO projects (user_id, name, region, address, client, engineer, project_number)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	err := r.db.QueryRowContext(ctx, query,
		p.UserID, p.Name, p.Region, p.Address, p.Client, p.Engineer, p.ProjectNumber).Scan(&id)
	return id, err
}

func (r *PostgresProjectRepository) GetProject(ctx context.Context, id int) (Project, error) {
	var p Project
	query := `SELECT id, user_id, name, region,
		COALESCE(address,''), COALESCE(client,''), COALESCE(engineer,''), COALESCE(project_number,''),
		created_at, updated_at
		FROM projects WHERE id=$1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.UserID, &p.Name, &p.Region,
		&p.Address, &p.Client, &p.Engineer, &p.ProjectNumber,
		&p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *PostgresProjectRepository) ListProjectsByUser(ctx context.Context, userID int) ([]Project, error) {
	query := `SELECT id, user_id, name, region,
		COALESCE(address,''), COALESCE(client,''), COALESCE(engineer,''), COALESCE(project_number,''),
		created_at, updated_at
		FROM projects WHERE user_id=$1 ORDER BY updated_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []Project
	for rows.Next() {
		var p Project
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.Region,
			&p.Address, &p.Client, &p.Engineer, &p.ProjectNumber,
			&p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (r *PostgresProjectRepository) DeleteProject(ctx context.Context, id int) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM projects WHERE id=$1", id)
	return err
}
