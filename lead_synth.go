package cutpath

import (
	"fmt"
	"math"
)

const (
	// leadSweep is the angle every lead arc subtends.
	leadSweep = math.Pi / 2

	// rotationStep is the increment of the direction search.
	rotationStep = 5 * math.Pi / 180

	// sampleSpacing is the target arc length between collision samples.
	sampleSpacing = 2.0

	// minSamples is the minimum number of collision sample segments.
	minSamples = 8

	// clearanceFraction of the lead length around the connection point is
	// not checked for collisions; samples there lie on the chain itself.
	clearanceFraction = 0.1
)

// fitFractions are the length fractions tried when LeadConfig.Fit is set.
var fitFractions = []float64{1, 0.75, 0.5, 0.25}

// rotations lists the direction offsets of the search: 0, +5°, -5°, +10°,
// ... up to 180°, covering the full circle once.
var rotations = func() []float64 {
	steps := int(math.Round(math.Pi / rotationStep))
	out := []float64{0}
	for k := 1; k < steps; k++ {
		a := float64(k) * rotationStep
		out = append(out, a, -a)
	}
	return append(out, math.Pi)
}()

// leadKind distinguishes lead-in from lead-out.
type leadKind int

const (
	leadIn leadKind = iota
	leadOut
)

func (k leadKind) String() string {
	if k == leadOut {
		return "lead-out"
	}
	return "lead-in"
}

// CalculateLeads validates the request and builds the requested leads.
//
// Each lead is a 90° arc tangent to the chain at its connection point. The
// side is taken from the cut direction and the chain's role: cutting
// clockwise, a shell lead curves counterclockwise away from material and a
// hole lead curves clockwise into the void; cutting counterclockwise flips
// both. Without a cut direction a closed chain's own winding is used, and
// an open chain gets its left normal. FlipSide mirrors the side and a
// manual angle replaces it.
//
// With a Part, candidates are sampled and rejected when a shell lead enters
// material or a hole lead leaves its hole. The direction is then rotated in
// 5° steps around the full circle, and with Fit the length is reduced to
// 75%, 50% and 25%. When nothing fits, the unrotated full-length candidate
// is returned with a warning.
func CalculateLeads(req LeadRequest) LeadResult {
	return calculateLeads(req, newRegion)
}

// calculateLeads is CalculateLeads with the part regions supplied by
// regionOf, letting callers share them between chains of one part.
func calculateLeads(req LeadRequest, regionOf func(Part) region) LeadResult {
	res := LeadResult{Validation: ValidateLeads(req)}
	if !res.Validation.Valid {
		return res
	}
	s := newLeadSynth(req, regionOf)
	if req.LeadIn.Enabled() {
		res.LeadIn = s.lead(leadIn, req.LeadIn)
	}
	if req.LeadOut.Enabled() {
		res.LeadOut = s.lead(leadOut, req.LeadOut)
	}
	return res
}

// leadSynth holds what both leads of one chain share.
type leadSynth struct {
	chain     Chain
	tol       float64
	cutDir    CutDirection
	cutNormal *Point
	role      Role

	// checked is false when no part was given and any candidate is accepted.
	checked bool
	region  region
	hole    Polygon
}

func newLeadSynth(req LeadRequest, regionOf func(Part) region) *leadSynth {
	s := &leadSynth{
		chain:     req.Chain,
		tol:       req.Tolerance,
		cutDir:    req.CutDirection,
		cutNormal: req.CutNormal,
		role:      RoleShell,
	}
	if s.tol <= 0 {
		s.tol = DefaultTolerance
	}
	if !req.Chain.ClockwiseOrDefault() {
		s.role = RoleHole
	}
	if req.Part == nil {
		return s
	}
	if role, ok := req.Part.RoleOf(req.Chain); ok {
		s.role = role
	}
	s.checked = true
	s.region = regionOf(*req.Part)
	if s.role == RoleHole {
		if i, ok := req.Part.holeIndex(req.Chain); ok && i < len(s.region.holes) {
			s.hole = s.region.holes[i]
		} else {
			s.hole = req.Chain.Polygon()
		}
	}
	return s
}

// leadCandidate is one arc tried by the search.
type leadCandidate struct {
	arc       Arc
	direction Point
	fraction  float64
	rotation  float64
}

func (s *leadSynth) lead(kind leadKind, cfg LeadConfig) *Lead {
	var (
		conn    Point
		tangent Point
		ok      bool
	)
	if kind == leadIn {
		conn = s.chain.StartPoint()
		tangent, ok = s.chain.StartTangent()
	} else {
		conn = s.chain.EndPoint()
		tangent, ok = s.chain.EndTangent()
	}
	if !ok {
		return &Lead{
			Type:       LeadNone,
			Connection: conn,
			Warnings:   []string{fmt.Sprintf("%s skipped: chain %s has no tangent at the connection point", kind, s.chain.ID)},
		}
	}

	base := s.baseDirection(tangent, cfg)
	baseCCW := tangent.Cross(base) >= 0
	build := func(fraction, rotation float64) leadCandidate {
		dir := base.Rotate(rotation)
		ccw := baseCCW
		if c := tangent.Cross(dir); math.Abs(c) > 1e-9 {
			ccw = c > 0
		}
		return leadCandidate{
			arc:       leadArc(kind, conn, dir, cfg.Length*fraction, ccw),
			direction: dir,
			fraction:  fraction,
			rotation:  rotation,
		}
	}

	first := build(1, 0)
	if !s.checked {
		return s.finish(first, conn, nil)
	}

	fractions := fitFractions[:1]
	if cfg.Fit {
		fractions = fitFractions
	}
	accept := func(c leadCandidate) bool { return s.clear(c.arc, conn, cfg.Length*c.fraction) }
	found, ok := searchLead(fractions, rotations, build, accept)
	if !ok {
		msg := fmt.Sprintf("%s on %s %s could not avoid solid material; shorten the lead or adjust it manually",
			kind, s.role, s.chain.ID)
		stageLogger(stageLeads).Warn("lead search exhausted", "chain", s.chain.ID, "lead", kind.String(), "role", s.role.String())
		return s.finish(first, conn, []string{msg})
	}

	var warnings []string
	if found.fraction < 1 {
		warnings = append(warnings, fmt.Sprintf("%s length reduced from %.2f to %.2f to avoid solid material",
			kind, cfg.Length, cfg.Length*found.fraction))
	}
	if found.rotation != 0 {
		warnings = append(warnings, fmt.Sprintf("%s rotated by %.0f° to avoid solid material",
			kind, found.rotation*180/math.Pi))
	}
	stageLogger(stageLeads).Debug("lead placed", "chain", s.chain.ID, "lead", kind.String(),
		"fraction", found.fraction, "rotation", found.rotation)
	return s.finish(found, conn, warnings)
}

// searchLead returns the first candidate over fractions × rotations that
// accept approves.
func searchLead(
	fractions, rotations []float64,
	build func(fraction, rotation float64) leadCandidate,
	accept func(leadCandidate) bool,
) (leadCandidate, bool) {
	for _, f := range fractions {
		for _, r := range rotations {
			if c := build(f, r); accept(c) {
				return c, true
			}
		}
	}
	return leadCandidate{}, false
}

func (s *leadSynth) finish(c leadCandidate, conn Point, warnings []string) *Lead {
	return &Lead{
		Type:       LeadArc,
		Arc:        c.arc,
		Points:     sampleArc(c.arc, c.arc.ArcLength()),
		Normal:     c.direction,
		Connection: conn,
		Warnings:   warnings,
	}
}

// baseDirection picks the unit vector from the connection point towards the
// arc center before any search rotation.
func (s *leadSynth) baseDirection(tangent Point, cfg LeadConfig) Point {
	if cfg.Angle != nil {
		sin, cos := math.Sincos(*cfg.Angle * math.Pi / 180)
		return Point{X: cos, Y: sin}
	}

	var dir Point
	switch dirn := s.sideDirection(); {
	case s.cutNormal != nil && s.cutNormal.Length() > 0:
		dir = s.cutNormal.Normalize()
	case dirn != CutNone:
		if sweepCCW(dirn, s.role) {
			dir = tangent.LeftNormal()
		} else {
			dir = tangent.RightNormal()
		}
	default:
		dir = tangent.LeftNormal()
	}
	if cfg.FlipSide {
		dir = dir.Neg()
	}
	return dir
}

// sideDirection returns the cut direction the rule table is keyed on: the
// requested one, or without a request the winding of a closed chain.
func (s *leadSynth) sideDirection() CutDirection {
	if s.cutDir != CutNone {
		return s.cutDir
	}
	switch s.chain.Orientation(s.tol) {
	case OrientationClockwise:
		return CutClockwise
	case OrientationCounterclockwise:
		return CutCounterclockwise
	default:
		return CutNone
	}
}

// sweepCCW is the rule table for the arc handedness.
func sweepCCW(dir CutDirection, role Role) bool {
	shell := role == RoleShell
	if dir == CutClockwise {
		return shell
	}
	return !shell
}

// leadArc builds a 90° arc of the given length through conn with its center
// along dir. A lead-in ends at conn, a lead-out starts there.
func leadArc(kind leadKind, conn, dir Point, length float64, ccw bool) Arc {
	r := length / leadSweep
	center := conn.Add(dir.Normalize().Mul(r))
	phi := conn.Sub(center).Angle()
	arc := Arc{Center: center, Radius: r, Clockwise: !ccw}
	sweep := leadSweep
	if !ccw {
		sweep = -sweep
	}
	if kind == leadIn {
		arc.StartAngle, arc.EndAngle = phi-sweep, phi
	} else {
		arc.StartAngle, arc.EndAngle = phi, phi+sweep
	}
	return arc
}

// sampleArc samples the arc with about sampleSpacing units between points
// and at least minSamples segments.
func sampleArc(a Arc, length float64) []Point {
	n := max(minSamples, int(math.Ceil(length/sampleSpacing)))
	pts := make([]Point, n+1)
	for i := range pts {
		pts[i] = a.PointAt(float64(i) / float64(n))
	}
	return pts
}

// clear reports whether the arc stays out of material (shell leads) or
// inside its hole (hole leads), ignoring samples next to conn.
func (s *leadSynth) clear(a Arc, conn Point, length float64) bool {
	clearance := math.Max(2*s.tol, clearanceFraction*length)
	for _, p := range sampleArc(a, length) {
		if p.Distance(conn) < clearance {
			continue
		}
		if s.role == RoleHole {
			if !s.hole.Contains(p) {
				return false
			}
			continue
		}
		if s.region.solid(p) {
			return false
		}
	}
	return true
}
