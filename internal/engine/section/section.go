// Package section computes geometric properties for the cross-section
// families the engine understands: solid rectangles (timber, LVL, glulam)
// and I-beams with possibly unequal flanges. All dimensions are mm.
package section

import "math"

// Kind tags the cross-section family.
type Kind string

const (
	Rectangular Kind = "RECTANGULAR"
	IBeam       Kind = "I_BEAM"
)

// Section holds the raw dimensions of a cross-section. Which fields apply
// depends on Kind: rectangles use Depth and Width, I-beams use Depth,
// WidthTop, WidthBottom, FlangeThickness and WebThickness.
type Section struct {
	Kind              Kind    `json:"kind"`
	DepthMM           float64 `json:"depth_mm"`
	WidthMM           float64 `json:"width_mm,omitempty"`
	WidthTopMM        float64 `json:"width_top_mm,omitempty"`
	WidthBottomMM     float64 `json:"width_bottom_mm,omitempty"`
	FlangeThicknessMM float64 `json:"flange_thickness_mm,omitempty"`
	WebThicknessMM    float64 `json:"web_thickness_mm,omitempty"`
}

// Properties are the derived geometric properties of a section, rounded to
// two decimal places. YBarMM (centroid height above the bottom fiber) is
// populated for I-beams only.
type Properties struct {
	AGrossMM2 float64 `json:"a_gross_mm2"`
	AShearMM2 float64 `json:"a_shear_mm2"`
	IxxMM4    float64 `json:"ixx_mm4"`
	IyyMM4    float64 `json:"iyy_mm4"`
	ZxxMM3    float64 `json:"zxx_mm3"`
	ZyyMM3    float64 `json:"zyy_mm3"`
	YBarMM    float64 `json:"y_bar_mm,omitempty"`
}

// Properties validates the raw dimensions and computes the derived
// properties. Validation reports every violated constraint at once; on
// failure no properties are returned. The string slice carries non-fatal
// advisories (an unusual but legal geometry).
func (s Section) Properties() (Properties, []string, error) {
	advisories, err := s.Validate()
	if err != nil {
		return Properties{}, nil, err
	}

	switch s.Kind {
	case Rectangular:
		return s.rectangular(), advisories, nil
	case IBeam:
		return s.iBeam(), advisories, nil
	default:
		return Properties{}, nil, &ValidationError{Problems: []string{"unknown section kind: " + string(s.Kind)}}
	}
}

func (s Section) rectangular() Properties {
	d := s.DepthMM
	b := s.WidthMM

	aGross := b * d
	ixx := b * math.Pow(d, 3) / 12.0
	iyy := d * math.Pow(b, 3) / 12.0
	zxx := b * d * d / 6.0
	zyy := d * b * b / 6.0
	aShear := 2.0 / 3.0 * aGross

	return Properties{
		AGrossMM2: round2(aGross),
		AShearMM2: round2(aShear),
		IxxMM4:    round2(ixx),
		IyyMM4:    round2(iyy),
		ZxxMM3:    round2(zxx),
		ZyyMM3:    round2(zyy),
	}
}

// iBeam decomposes the section into top flange, web and bottom flange,
// locates the composite centroid by area weighting and transfers each
// part's own inertia to it with the parallel axis theorem.
func (s Section) iBeam() Properties {
	d := s.DepthMM
	bt := s.WidthTopMM
	bb := s.WidthBottomMM
	tf := s.FlangeThicknessMM
	tw := s.WebThicknessMM

	webHeight := d - 2*tf

	aTop := bt * tf
	aBottom := bb * tf
	aWeb := webHeight * tw
	aGross := aTop + aBottom + aWeb

	// Part centroids measured from the bottom fiber.
	yTop := d - tf/2
	yBottom := tf / 2
	yWeb := d / 2

	yBar := (aTop*yTop + aBottom*yBottom + aWeb*yWeb) / aGross

	iTop := bt*math.Pow(tf, 3)/12.0 + aTop*math.Pow(yTop-yBar, 2)
	iBottom := bb*math.Pow(tf, 3)/12.0 + aBottom*math.Pow(yBottom-yBar, 2)
	iWeb := tw*math.Pow(webHeight, 3)/12.0 + aWeb*math.Pow(yWeb-yBar, 2)
	ixx := iTop + iBottom + iWeb

	// Governing modulus is to the farther extreme fiber.
	cTop := d - yBar
	cBottom := yBar
	zxx := math.Min(ixx/cTop, ixx/cBottom)

	iyyTop := tf * math.Pow(bt, 3) / 12.0
	iyyBottom := tf * math.Pow(bb, 3) / 12.0
	iyyWeb := webHeight * math.Pow(tw, 3) / 12.0
	iyy := iyyTop + iyyBottom + iyyWeb

	zyy := math.Min(iyyTop/(bt/2), iyyBottom/(bb/2))

	// Flanges carry no shear; the web alone is effective.
	aShear := aWeb

	return Properties{
		AGrossMM2: round2(aGross),
		AShearMM2: round2(aShear),
		IxxMM4:    round2(ixx),
		IyyMM4:    round2(iyy),
		ZxxMM3:    round2(zxx),
		ZyyMM3:    round2(zyy),
		YBarMM:    round2(yBar),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
