package section

import "strings"

// ValidationError reports every constraint a section's raw dimensions
// violate, not just the first.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid section: " + strings.Join(e.Problems, "; ")
}

// Validate checks the raw dimensions for the section's kind. It returns
// non-fatal advisories and, if any hard constraint fails, a
// *ValidationError listing all of them.
func (s Section) Validate() ([]string, error) {
	switch s.Kind {
	case Rectangular:
		return s.validateRectangular()
	case IBeam:
		return s.validateIBeam()
	default:
		return nil, &ValidationError{Problems: []string{"unknown section kind: " + string(s.Kind)}}
	}
}

func (s Section) validateRectangular() ([]string, error) {
	var problems, advisories []string

	if s.DepthMM <= 0 {
		problems = append(problems, "depth must be positive")
	}
	if s.WidthMM <= 0 {
		problems = append(problems, "width must be positive")
	}
	if len(problems) == 0 && s.DepthMM < s.WidthMM {
		advisories = append(advisories, "depth is less than width (unusual for strong axis bending)")
	}

	if len(problems) > 0 {
		return nil, &ValidationError{Problems: problems}
	}
	return advisories, nil
}

func (s Section) validateIBeam() ([]string, error) {
	var problems []string

	if s.DepthMM <= 0 {
		problems = append(problems, "depth must be positive")
	}
	if s.WidthTopMM <= 0 {
		problems = append(problems, "top flange width must be positive")
	}
	if s.WidthBottomMM <= 0 {
		problems = append(problems, "bottom flange width must be positive")
	}
	if s.FlangeThicknessMM <= 0 {
		problems = append(problems, "flange thickness must be positive")
	}
	if s.WebThicknessMM <= 0 {
		problems = append(problems, "web thickness must be positive")
	}
	if 2*s.FlangeThicknessMM >= s.DepthMM {
		problems = append(problems, "flange thickness too large for overall depth")
	}
	if s.WebThicknessMM > s.WidthTopMM || s.WebThicknessMM > s.WidthBottomMM {
		problems = append(problems, "web thickness exceeds flange width")
	}

	if len(problems) > 0 {
		return nil, &ValidationError{Problems: problems}
	}
	return nil, nil
}
