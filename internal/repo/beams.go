package repo

import (
	"context"
	"database/sql"
	"time"
)

// Beam is a stored member design: the input parameters and, once the
// engine has run, the last certified calculation result. Up to two point
// loads are stored as columns.
type Beam struct {
	ID        int    `json:"id"`
	ProjectID int    `json:"project_id"`
	Name      string `json:"name"`
	Reference string `json:"reference,omitempty"`

	MemberType string  `json:"member_type"`
	SpanM      float64 `json:"span_m"`
	SpacingM   float64 `json:"spacing_m,omitempty"`

	DeadLoad           float64 `json:"dead_load"`
	LiveLoad           float64 `json:"live_load"`
	PointLoad1KN       float64 `json:"point_load_1_kn,omitempty"`
	PointLoad1Position float64 `json:"point_load_1_position_m,omitempty"`
	PointLoad2KN       float64 `json:"point_load_2_kn,omitempty"`
	PointLoad2Position float64 `json:"point_load_2_position_m,omitempty"`

	SelectedProductCode string `json:"selected_product_code,omitempty"`

	// Calculation results; nil until the engine has run.
	DemandMomentKNM       *float64   `json:"demand_moment_knm,omitempty"`
	DemandShearKN         *float64   `json:"demand_shear_kn,omitempty"`
	DemandDeflectionMM    *float64   `json:"demand_deflection_mm,omitempty"`
	CapacityMomentKNM     *float64   `json:"capacity_moment_knm,omitempty"`
	CapacityShearKN       *float64   `json:"capacity_shear_kn,omitempty"`
	DeflectionLimitMM     *float64   `json:"deflection_limit_mm,omitempty"`
	UtilizationMoment     *float64   `json:"utilization_moment,omitempty"`
	UtilizationShear      *float64   `json:"utilization_shear,omitempty"`
	UtilizationDeflection *float64   `json:"utilization_deflection,omitempty"`
	CalcStatus            string     `json:"calc_status,omitempty"`
	CalcVersion           string     `json:"calc_version,omitempty"`
	CalcDate              *time.Time `json:"calc_date,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeamResults is the slice of result columns written after a calculation.
type BeamResults struct {
	DemandMomentKNM       float64
	DemandShearKN         float64
	DemandDeflectionMM    float64
	CapacityMomentKNM     float64
	CapacityShearKN       float64
	DeflectionLimitMM     float64
	UtilizationMoment     float64
	UtilizationShear      float64
	UtilizationDeflection float64
	CalcStatus            string
	CalcVersion           string
	CalcDate              time.Time
}

type BeamRepository interface {
	CreateBeam(ctx context.Context, b Beam) (int, error)
	GetBeam(ctx context.Context, id int) (Beam, error)
	ListBeamsByProject(ctx context.Context, projectID int) ([]Beam, error)
	UpdateBeam(ctx context.Context, b Beam) error
	SaveResults(ctx context.Context, beamID int, res BeamResults) error
	DeleteBeam(ctx context.Context, id int) error
}

type PostgresBeamRepository struct {
	db *sql.DB
}

func NewPostgresBeamDB(db *sql.DB) *PostgresBeamRepository {
	return &PostgresBeamRepository{db: db}
}

const beamColumns = `id, project_id, name, COALESCE(reference,''), member_type, span_m,
	COALESCE(spacing_m,0), COALESCE(dead_load,0), COALESCE(live_load,0),
	COALESCE(point_load_1_kn,0), COALESCE(point_load_1_position_m,0),
	COALESCE(point_load_2_kn,0), COALESCE(point_load_2_position_m,0),
	COALESCE(selected_product_code,''),
	demand_moment_knm, demand_shear_kn, demand_deflection_mm,
	capacity_moment_knm, capacity_shear_kn, deflection_limit_mm,
	utilization_moment, utilization_shear, utilization_deflection,
	COALESCE(calc_status,''), COALESCE(calc_version,''), calc_date,
	created_at, updated_at`

func scanBeam(row interface{ Scan(...any) error }) (Beam, error) {
	var b Beam
	err := row.Scan(&b.ID, &b.ProjectID, &b.Name, &b.Reference, &b.MemberType, &b.SpanM,
		&b.SpacingM, &b.DeadLoad, &b.LiveLoad,
		&b.PointLoad1KN, &b.PointLoad1Position,
		&b.PointLoad2KN, &b.PointLoad2Position,
		&b.SelectedProductCode,
		&b.DemandMomentKNM, &b.DemandShearKN, &b.DemandDeflectionMM,
		&b.CapacityMomentKNM, &b.CapacityShearKN, &b.DeflectionLimitMM,
		&b.UtilizationMoment, &b.UtilizationShear, &b.UtilizationDeflection,
		&b.CalcStatus, &b.CalcVersion, &b.CalcDate,
		&b.CreatedAt, &b.UpdatedAt)
	return b, err
}

func (r *PostgresBeamRepository) CreateBeam(ctx context.Context, b Beam) (int, error) {
	var id int
	query := `INSERT INTO beams (project_id, name, reference, member_type, span_m, spacing_m,
		dead_load, live_load,
		point_load_1_kn, point_load_1_position_m, point_load_2_kn, point_load_2_position_m,
		selected_product_code)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13) RETURNING id`
	err := r.db.QueryRowContext(ctx, query,
		b.ProjectID, b.Name, b.Reference, b.MemberType, b.SpanM, b.SpacingM,
		b.DeadLoad, b.LiveLoad,
		b.PointLoad1KN, b.PointLoad1Position, b.PointLoad2KN, b.PointLoad2Position,
		b.SelectedProductCode).Scan(&id)
	return id, err
}

func (r *PostgresBeamRepository) GetBeam(ctx context.Context, id int) (Beam, error) {
	return scanBeam(r.db.QueryRowContext(ctx, "SELECT "+beamColumns+" FROM beams WHERE id=$1", id))
}

func (r *PostgresBeamRepository) ListBeamsByProject(ctx context.Context, projectID int) ([]Beam, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+beamColumns+" FROM beams WHERE project_id=$1 ORDER BY id", projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var beams []Beam
	for rows.Next() {
		b, err := scanBeam(rows)
		if err != nil {
			return nil, err
		}
		beams = append(beams, b)
	}
	return beams, rows.Err()
}

func (r *PostgresBeamRepository) UpdateBeam(ctx context.Context, b Beam) error {
	query := `UPDATE beams SET name=$2, reference=$3, member_type=$4, span_m=$5, spacing_m=$6,
		dead_load=$7, live_load=$8,
		point_load_1_kn=$9, point_load_1_position_m=$10,
		point_load_2_kn=$11, point_load_2_position_m=$12,
		selected_product_code=$13, updated_at=now()
		WHERE id=$1`
	_, err := r.db.ExecContext(ctx, query,
		b.ID, b.Name, b.Reference, b.MemberType, b.SpanM, b.SpacingM,
		b.DeadLoad, b.LiveLoad,
		b.PointLoad1KN, b.PointLoad1Position, b.PointLoad2KN, b.PointLoad2Position,
		b.SelectedProductCode)
	return err
}

func (r *PostgresBeamRepository) SaveResults(ctx context.Context, beamID int, res BeamResults) error {
	query := `UPDATE beams SET
		demand_moment_knm=$2, demand_shear_kn=$3, demand_deflection_mm=$4,
		capacity_moment_knm=$5, capacity_shear_kn=$6, deflection_limit_mm=$7,
		utilization_moment=$8, utilization_shear=$9, utilization_deflection=$10,
		calc_status=$11, calc_version=$12, calc_date=$13, updated_at=now()
		WHERE id=$1`
	_, err := r.db.ExecContext(ctx, query, beamID,
		res.DemandMomentKNM, res.DemandShearKN, res.DemandDeflectionMM,
		res.CapacityMomentKNM, res.CapacityShearKN, res.DeflectionLimitMM,
		res.UtilizationMoment, res.UtilizationShear, res.UtilizationDeflection,
		res.CalcStatus, res.CalcVersion, res.CalcDate)
	return err
}

func (r *PostgresBeamRepository) DeleteBeam(ctx context.Context, id int) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM beams WHERE id=$1", id)
	return err
}
