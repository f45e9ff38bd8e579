package importer

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stevepenney/LBDesign/internal/repo"
)

type memProductRepo struct {
	products []repo.Product
}

func (m *memProductRepo) CreateProduct(ctx context.Context, p repo.Product) (int, error) {
	m.products = append(m.products, p)
	return len(m.products), nil
}

func (m *memProductRepo) GetByCode(ctx context.Context, code string) (repo.Product, error) {
	return repo.Product{}, nil
}

func (m *memProductRepo) ListActive(ctx context.Context, productType string) ([]repo.Product, error) {
	return m.products, nil
}

func TestParseRowRectangular(t *testing.T) {
	row := []string{"90x45-SG8", "90x45 SG8 Timber", "Generic", "SOLID_TIMBER",
		"90", "45", "", "", "", "", "10000", "16", "2", "H3.2"}
	p, err := ParseRow(row)
	require.NoError(t, err)

	assert.Equal(t, "90x45-SG8", p.ProductCode)
	assert.Equal(t, repo.ProductSolidTimber, p.ProductType)
	assert.InDelta(t, 4050, p.AGrossMM2, 0.01)
	assert.InDelta(t, 2700, p.AShearMM2, 0.01)
	assert.InDelta(t, 45*90*90*90/12.0, p.IxxMM4, 0.01)
	assert.InDelta(t, 45*90*90/6.0, p.ZxxMM3, 0.01)
	assert.Equal(t, "H3.2", p.DurabilityClass)
	assert.True(t, p.IsActive)
}

func TestParseRowIBeam(t *testing.T) {
	row := []string{"LW300", "Lumberworx LW300 I-beam", "Lumberbank", "I_BEAM",
		"300", "", "63", "63", "45", "11", "13800", "48", "5.5", "H1.2"}
	p, err := ParseRow(row)
	require.NoError(t, err)

	assert.InDelta(t, 7980, p.AGrossMM2, 0.01)
	assert.InDelta(t, 2310, p.AShearMM2, 0.01)
	assert.InDelta(t, 101_619_000, p.IxxMM4, 0.5)
}

func TestParseRowInvalidGeometry(t *testing.T) {
	// Flanges thicker than half the depth.
	row := []string{"BAD", "Bad I-beam", "", "I_BEAM",
		"300", "", "63", "63", "200", "11", "13800", "48", "5.5", ""}
	_, err := ParseRow(row)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "flange thickness too large")
}

func TestParseRowMissingStrength(t *testing.T) {
	row := []string{"X", "No f_b", "", "LVL", "300", "45", "", "", "", "", "13800", "", "5.5", ""}
	_, err := ParseRow(row)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "f_b is required")
}

func TestImportCSVSkipsBadRows(t *testing.T) {
	csvData := strings.Join([]string{
		"product_code,description,manufacturer,product_type,depth,width,width_top,width_bottom,flange_thickness,web_thickness,E,f_b,f_s,durability_class",
		`90x45-SG8,"90x45 SG8 Timber",Generic,SOLID_TIMBER,90,45,,,,,10000,16,2,H3.2`,
		`BAD,"Bad row",Generic,SOLID_TIMBER,-90,45,,,,,10000,16,2,H3.2`,
		`LW300,"Lumberworx LW300 I-beam",Lumberbank,I_BEAM,300,,63,63,45,11,13800,48,5.5,H1.2`,
	}, "\n")

	store := &memProductRepo{}
	sum, err := ImportCSV(context.Background(), store, strings.NewReader(csvData))
	require.NoError(t, err)

	assert.Equal(t, 2, sum.Imported)
	require.Len(t, sum.Errors, 1)
	assert.Contains(t, sum.Errors[0], "row 3")
	assert.Len(t, store.products, 2)
}

func TestImportCSVNoData(t *testing.T) {
	_, err := ImportCSV(context.Background(), &memProductRepo{}, strings.NewReader("header\n"))
	require.Error(t, err)
}
