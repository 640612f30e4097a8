package cutpath

// LeadType selects the geometry of a lead.
type LeadType string

const (
	// LeadNone disables the lead.
	LeadNone LeadType = "none"
	// LeadArc is a tangent circular arc.
	LeadArc LeadType = "arc"
)

// LeadConfig describes one requested lead.
type LeadConfig struct {
	Type LeadType `json:"type" validate:"omitempty,oneof=none arc"`

	// Length is the requested arc length in drawing units.
	Length float64 `json:"length" validate:"gte=0"`

	// FlipSide places the lead on the other side of the cut.
	FlipSide bool `json:"flipSide,omitempty"`

	// Angle is an optional absolute direction in degrees, measured
	// counterclockwise from +X, along which the arc center is placed. It
	// replaces the automatically chosen side.
	Angle *float64 `json:"angle,omitempty" validate:"omitempty,gte=0,lt=360"`

	// Fit allows the length to shrink when the full-length lead cannot
	// avoid material.
	Fit bool `json:"fit,omitempty"`
}

// Enabled reports whether the config asks for any geometry.
func (lc LeadConfig) Enabled() bool {
	return lc.Type == LeadArc && lc.Length > 0
}

// CutDirection is the direction the cutter travels around a closed chain.
type CutDirection int

const (
	// CutNone leaves the direction unspecified.
	CutNone CutDirection = iota
	// CutClockwise cuts clockwise.
	CutClockwise
	// CutCounterclockwise cuts counterclockwise.
	CutCounterclockwise
)

// String returns the short name used in configuration: none, cw or ccw.
func (d CutDirection) String() string {
	switch d {
	case CutClockwise:
		return "cw"
	case CutCounterclockwise:
		return "ccw"
	default:
		return "none"
	}
}

// ParseCutDirection parses none, cw, clockwise, ccw or counterclockwise.
func ParseCutDirection(s string) (CutDirection, bool) {
	switch s {
	case "", "none":
		return CutNone, true
	case "cw", "clockwise":
		return CutClockwise, true
	case "ccw", "counterclockwise":
		return CutCounterclockwise, true
	default:
		return CutNone, false
	}
}

// Lead is a computed lead-in or lead-out.
type Lead struct {
	Type LeadType

	// Arc is the lead geometry, oriented in cutting order: a lead-in ends
	// at Connection, a lead-out starts there.
	Arc Arc

	// Points samples Arc in cutting order.
	Points []Point

	// Normal is the unit direction from Connection towards the arc center.
	Normal Point

	// Connection is the point where the lead joins the chain.
	Connection Point

	// Warnings explains where the requested length or direction could not
	// be honored.
	Warnings []string
}

// Severity grades a validation finding.
type Severity int

const (
	// SeverityInfo is informational only.
	SeverityInfo Severity = iota
	// SeverityWarning means the lead may not come out as requested.
	SeverityWarning
	// SeverityError means no lead is computed.
	SeverityError
)

// String returns the severity name.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "info"
	}
}

// LeadValidationResult collects the findings of ValidateLeads.
type LeadValidationResult struct {
	Valid       bool
	Severity    Severity
	Warnings    []string
	Suggestions []string
}

// LeadRequest bundles the inputs of lead validation and synthesis.
type LeadRequest struct {
	Chain        Chain
	LeadIn       LeadConfig
	LeadOut      LeadConfig
	CutDirection CutDirection

	// Part optionally owns the chain. With a part, leads are kept out of
	// solid material; without one they are accepted as first computed.
	Part *Part

	// CutNormal optionally overrides the side the lead is placed on.
	CutNormal *Point

	// Tolerance is the coincidence distance; DefaultTolerance when zero.
	Tolerance float64
}

// LeadResult is the outcome of CalculateLeads. LeadIn and LeadOut are nil
// when not requested or when validation failed.
type LeadResult struct {
	LeadIn     *Lead
	LeadOut    *Lead
	Validation LeadValidationResult
}

// Warnings returns the validation warnings followed by the warnings of both
// leads.
func (r LeadResult) Warnings() []string {
	out := append([]string(nil), r.Validation.Warnings...)
	if r.LeadIn != nil {
		out = append(out, r.LeadIn.Warnings...)
	}
	if r.LeadOut != nil {
		out = append(out, r.LeadOut.Warnings...)
	}
	return out
}
