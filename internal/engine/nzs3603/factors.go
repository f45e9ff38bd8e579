// Package nzs3603 carries the code-mandated design factors and capacity
// formulas of NZS3603:1993 (with AS/NZS1170 load assumptions). The factor
// tables are fixed constants: changing any value is a new certified
// version and must be reflected in the version record below.
package nzs3603

import "fmt"

// Version record for the factor tables, returned alongside every capacity
// calculation for certification traceability.
const (
	Version       = "1.0.0"
	Standard      = "NZS3603:1993"
	CertifiedDate = "2024-11-27"
	CertifiedBy   = "Pending CPEng Certification"
)

// VersionInfo is the certification record as a value.
type VersionInfo struct {
	Version       string `json:"version"`
	Standard      string `json:"standard"`
	CertifiedDate string `json:"certified_date"`
	CertifiedBy   string `json:"certified_by"`
}

// GetVersionInfo returns the certification record for this table set.
func GetVersionInfo() VersionInfo {
	return VersionInfo{
		Version:       Version,
		Standard:      Standard,
		CertifiedDate: CertifiedDate,
		CertifiedBy:   CertifiedBy,
	}
}

// Capacity reduction factors, NZS3603 Table 2.2.
const (
	PhiBending     = 0.90
	PhiShear       = 0.90
	PhiCompression = 0.80
	PhiTension     = 0.85
)

// Span-to-deflection ratios, NZS3603 Table 2.3.
const (
	DeflectionRatioFloor      = 300.0
	DeflectionRatioRoof       = 250.0
	DeflectionRatioCantilever = 150.0
)

// LoadDuration selects the k1 load duration factor, NZS3603 Clause 2.4.1.1.
type LoadDuration string

const (
	LoadPermanent  LoadDuration = "permanent"
	LoadLongTerm   LoadDuration = "long_term"
	LoadMediumTerm LoadDuration = "medium_term"
	LoadShortTerm  LoadDuration = "short_term"
	LoadVeryShort  LoadDuration = "very_short"
)

// Moisture selects the k4 moisture condition factor, Clause 2.4.1.4.
type Moisture string

const (
	MoistureDry Moisture = "dry" // moisture content ≤ 15%
	MoistureWet Moisture = "wet"
)

// Temperature selects the k6 temperature factor, Clause 2.4.1.6.
type Temperature string

const (
	TemperatureNormal Temperature = "normal" // ≤ 65°C
	TemperatureHigh   Temperature = "high"
)

var k1Table = map[LoadDuration]float64{
	LoadPermanent:  0.57,
	LoadLongTerm:   0.57,
	LoadMediumTerm: 0.80,
	LoadShortTerm:  1.00,
	LoadVeryShort:  1.15,
}

var k4Table = map[Moisture]float64{
	MoistureDry: 1.00,
	MoistureWet: 0.80,
}

var k6Table = map[Temperature]float64{
	TemperatureNormal: 1.00,
	TemperatureHigh:   0.85,
}

// Factors is a resolved set of modification factors.
type Factors struct {
	K1 float64 `json:"k1"`
	K4 float64 `json:"k4"`
	K6 float64 `json:"k6"`
}

// DefaultFactors is the documented fallback used when no conditions are
// supplied: medium-term load, dry, normal temperature.
func DefaultFactors() Factors {
	return Factors{
		K1: k1Table[LoadMediumTerm],
		K4: k4Table[MoistureDry],
		K6: k6Table[TemperatureNormal],
	}
}

// ResolveFactors maps condition selectors to their table values. Empty
// selectors resolve to the documented defaults (medium_term, dry, normal);
// an unrecognized selector is an error, never a silent substitution.
func ResolveFactors(duration LoadDuration, moisture Moisture, temperature Temperature) (Factors, error) {
	if duration == "" {
		duration = LoadMediumTerm
	}
	if moisture == "" {
		moisture = MoistureDry
	}
	if temperature == "" {
		temperature = TemperatureNormal
	}

	k1, ok := k1Table[duration]
	if !ok {
		return Factors{}, fmt.Errorf("unknown load duration %q", duration)
	}
	k4, ok := k4Table[moisture]
	if !ok {
		return Factors{}, fmt.Errorf("unknown moisture condition %q", moisture)
	}
	k6, ok := k6Table[temperature]
	if !ok {
		return Factors{}, fmt.Errorf("unknown temperature condition %q", temperature)
	}

	return Factors{K1: k1, K4: k4, K6: k6}, nil
}
