package nzs3603

// Material holds characteristic material properties in MPa. Tension and
// compression strengths are optional; the moment/shear path does not use
// them.
type Material struct {
	EMPa  float64 `json:"e_mpa"`
	FbMPa float64 `json:"f_b_mpa"`
	FsMPa float64 `json:"f_s_mpa"`
	FtMPa float64 `json:"f_t_mpa,omitempty"`
	FcMPa float64 `json:"f_c_mpa,omitempty"`
}

// Placeholder characteristic values until the product catalog covers every
// grade. SG8 per NZS3603 Table 2.4, LVL per manufacturer literature.
var (
	MaterialSG8 = Material{EMPa: 10000, FbMPa: 16, FsMPa: 2, FtMPa: 11, FcMPa: 18}
	MaterialLVL = Material{EMPa: 13800, FbMPa: 48, FsMPa: 5.5}
)

// MomentCapacity returns the design moment capacity φMn in kNm.
//
//	φMn = φ · k1 · k4 · k6 · f_b · Z
//
// Z in mm³ and f_b in MPa give Nmm, converted to kNm.
func MomentCapacity(zMM3, fbMPa float64, f Factors, phi float64) float64 {
	mnNmm := f.K1 * f.K4 * f.K6 * fbMPa * zMM3
	return phi * mnNmm / 1_000_000.0
}

// ShearCapacity returns the design shear capacity φVn in kN.
//
//	φVn = φ · k1 · k4 · k6 · f_s · A_shear
//
// A_shear in mm² and f_s in MPa give N, converted to kN.
func ShearCapacity(aShearMM2, fsMPa float64, f Factors, phi float64) float64 {
	vnN := f.K1 * f.K4 * f.K6 * fsMPa * aShearMM2
	return phi * vnN / 1000.0
}
