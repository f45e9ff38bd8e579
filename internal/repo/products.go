package repo

import (
	"context"
	"database/sql"
	"time"
)

// Product types in the catalog.
const (
	ProductIBeam       = "I_BEAM"
	ProductSolidTimber = "SOLID_TIMBER"
	ProductLVL         = "LVL"
	ProductGlulam      = "GLULAM"
)

// Product is one catalog entry: raw dimensions, the derived section
// properties (recomputed on import, never trusted from the source file)
// and characteristic material values.
type Product struct {
	ID           int    `json:"id"`
	ProductCode  string `json:"product_code"`
	Description  string `json:"description"`
	Manufacturer string `json:"manufacturer,omitempty"`
	ProductType  string `json:"product_type"`

	DepthMM           float64 `json:"depth_mm"`
	WidthMM           float64 `json:"width_mm,omitempty"`
	WidthTopMM        float64 `json:"width_top_mm,omitempty"`
	WidthBottomMM     float64 `json:"width_bottom_mm,omitempty"`
	FlangeThicknessMM float64 `json:"flange_thickness_mm,omitempty"`
	WebThicknessMM    float64 `json:"web_thickness_mm,omitempty"`

	IxxMM4    float64 `json:"ixx_mm4"`
	IyyMM4    float64 `json:"iyy_mm4,omitempty"`
	ZxxMM3    float64 `json:"zxx_mm3"`
	ZyyMM3    float64 `json:"zyy_mm3,omitempty"`
	AGrossMM2 float64 `json:"a_gross_mm2"`
	AShearMM2 float64 `json:"a_shear_mm2"`

	EMPa  float64 `json:"e_mpa"`
	FbMPa float64 `json:"f_b_mpa"`
	FsMPa float64 `json:"f_s_mpa"`
	FtMPa float64 `json:"f_t_mpa,omitempty"`
	FcMPa float64 `json:"f_c_mpa,omitempty"`

	DurabilityClass string    `json:"durability_class,omitempty"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type ProductRepository interface {
	CreateProduct(ctx context.Context, p Product) (int, error)
	GetByCode(ctx context.Context, code string) (Product, error)
	ListActive(ctx context.Context, productType string) ([]Product, error)
}

type PostgresProductRepository struct {
	db *sql.DB
}

func NewPostgresProductDB(db *sql.DB) *PostgresProductRepository {
	return &PostgresProductRepository{db: db}
}

func (r *PostgresProductRepository) CreateProduct(ctx context.Context, p Product) (int, error) {
	var id int
	query := `INSERT INTO products (product_code, description, manufacturer, product_type,
		depth_mm, width_mm, width_top_mm, width_bottom_mm, flange_thickness_mm, web_thickness_mm,
		ixx_mm4, iyy_mm4, zxx_mm3, zyy_mm3, a_gross_mm2, a_shear_mm2,
		e_mpa, f_b_mpa, f_s_mpa, f_t_mpa, f_c_mpa, durability_class, is_active)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23)
		RETURNING id`
	err := r.db.QueryRowContext(ctx, query,
		p.ProductCode, p.Description, p.Manufacturer, p.ProductType,
		p.DepthMM, p.WidthMM, p.WidthTopMM, p.WidthBottomMM, p.FlangeThicknessMM, p.WebThicknessMM,
		p.IxxMM4, p.IyyMM4, p.ZxxMM3, p.ZyyMM3, p.AGrossMM2, p.AShearMM2,
		p.EMPa, p.FbMPa, p.FsMPa, p.FtMPa, p.FcMPa, p.DurabilityClass, p.IsActive).Scan(&id)
	return id, err
}

const productColumns = `id, product_code, description, COALESCE(manufacturer,''), product_type,
	depth_mm, COALESCE(width_mm,0), COALESCE(width_top_mm,0), COALESCE(width_bottom_mm,0),
	COALESCE(flange_thickness_mm,0), COALESCE(web_thickness_mm,0),
	ixx_mm4, COALESCE(iyy_mm4,0), zxx_mm3, COALESCE(zyy_mm3,0), a_gross_mm2, a_shear_mm2,
	e_mpa, f_b_mpa, f_s_mpa, COALESCE(f_t_mpa,0), COALESCE(f_c_mpa,0),
	COALESCE(durability_class,''), is_active, created_at, updated_at`

func scanProduct(row interface{ Scan(...any) error }) (Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.ProductCode, &p.Description, &p.Manufacturer, &p.ProductType,
		&p.DepthMM, &p.WidthMM, &p.WidthTopMM, &p.WidthBottomMM,
		&p.FlangeThicknessMM, &p.WebThicknessMM,
		&p.IxxMM4, &p.IyyMM4, &p.ZxxMM3, &p.ZyyMM3, &p.AGrossMM2, &p.AShearMM2,
		&p.EMPa, &p.FbMPa, &p.FsMPa, &p.FtMPa, &p.FcMPa,
		&p.DurabilityClass, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *PostgresProductRepository) GetByCode(ctx context.Context, code string) (Product, error) {
	return scanProduct(r.db.QueryRowContext(ctx,
		"SELECT "+productColumns+" FROM products WHERE product_code=$1", code))
}

// ListActive returns active products, optionally filtered by type.
func (r *PostgresProductRepository) ListActive(ctx context.Context, productType string) ([]Product, error) {
	query := "SELECT " + productColumns + " FROM products WHERE is_active"
	args := []any{}
	if productType != "" {
		query += " AND product_type=$1"
		args = append(args, productType)
	}
	query += " ORDER BY a_gross_mm2"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
