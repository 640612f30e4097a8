package cutpath

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
)

// validate checks struct tags on LeadConfig. A validator caches struct
// metadata and is safe for concurrent use.
var validate = validator.New()

// validation accumulates findings at increasing severity.
type validation struct {
	result LeadValidationResult
}

func (v *validation) add(sev Severity, msg string) {
	if sev > v.result.Severity {
		v.result.Severity = sev
	}
	v.result.Warnings = append(v.result.Warnings, msg)
}

func (v *validation) suggest(msg string) {
	v.result.Suggestions = append(v.result.Suggestions, msg)
}

// ValidateLeads checks a lead request before any geometry is built.
//
// Errors (negative lengths, manual angles outside [0, 360), unknown lead
// types, empty chains) make the result invalid and stop CalculateLeads.
// Warnings and infos flag leads that are long compared to the chain, hole
// leads that may reach other holes, closed chains without a cut direction
// and manual angles that override tangency.
func ValidateLeads(req LeadRequest) LeadValidationResult {
	var v validation
	if req.Chain.IsEmpty() {
		v.add(SeverityError, fmt.Sprintf("chain %s has no shapes", req.Chain.ID))
	}
	v.checkConfig("lead-in", req.LeadIn)
	v.checkConfig("lead-out", req.LeadOut)
	if v.result.Severity == SeverityError {
		return v.done()
	}

	tol := req.Tolerance
	if tol <= 0 {
		tol = DefaultTolerance
	}
	closed := req.Chain.IsClosed(tol)
	size := chainSize(req.Chain, closed)

	for _, lc := range []struct {
		name string
		cfg  LeadConfig
	}{{"lead-in", req.LeadIn}, {"lead-out", req.LeadOut}} {
		if !lc.cfg.Enabled() {
			continue
		}
		switch {
		case size > 0 && lc.cfg.Length > size:
			v.add(SeverityWarning, fmt.Sprintf("%s length %.2f exceeds the chain size %.2f", lc.name, lc.cfg.Length, size))
			v.suggest(fmt.Sprintf("shorten the %s to at most %.2f or enable fit", lc.name, size/2))
		case size > 0 && lc.cfg.Length > size/2:
			v.add(SeverityInfo, fmt.Sprintf("%s length %.2f is more than half the chain size %.2f", lc.name, lc.cfg.Length, size))
		}
		if lc.cfg.Angle != nil {
			v.add(SeverityInfo, fmt.Sprintf("%s manual angle %.1f° overrides automatic tangency", lc.name, *lc.cfg.Angle))
		}
	}

	if !req.LeadIn.Enabled() && !req.LeadOut.Enabled() {
		return v.done()
	}
	if closed && req.CutDirection == CutNone && req.CutNormal == nil {
		v.add(SeverityWarning, fmt.Sprintf("chain %s is closed but no cut direction is set; lead side follows the chain orientation", req.Chain.ID))
		v.suggest("set a cut direction so leads are placed on the intended side")
	}
	if req.Part != nil {
		if role, ok := req.Part.RoleOf(req.Chain); ok && role == RoleHole && len(req.Part.Holes) > 1 {
			v.add(SeverityInfo, fmt.Sprintf("leads on hole %s may collide with the %d other holes of %s",
				req.Chain.ID, len(req.Part.Holes)-1, req.Part.ID))
		}
	}
	return v.done()
}

func (v *validation) done() LeadValidationResult {
	v.result.Valid = v.result.Severity < SeverityError
	return v.result
}

// checkConfig runs the struct-tag rules of LeadConfig.
func (v *validation) checkConfig(name string, cfg LeadConfig) {
	err := validate.Struct(cfg)
	if err == nil {
		return
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		v.add(SeverityError, fmt.Sprintf("%s: %v", name, err))
		return
	}
	for _, fe := range fieldErrs {
		switch fe.Field() {
		case "Length":
			v.add(SeverityError, fmt.Sprintf("%s length %v must not be negative", name, fe.Value()))
		case "Angle":
			v.add(SeverityError, fmt.Sprintf("%s angle %v must be in [0, 360) degrees", name, derefFloat(fe.Value())))
		case "Type":
			v.add(SeverityError, fmt.Sprintf("%s type %q is not supported", name, fe.Value()))
		default:
			v.add(SeverityError, fmt.Sprintf("%s: %s failed on %s", name, fe.Field(), fe.Tag()))
		}
	}
}

func derefFloat(v any) any {
	if p, ok := v.(*float64); ok && p != nil {
		return *p
	}
	return v
}

// chainSize is the scale leads are compared against: the shorter side of
// the bounding box for closed chains, the path length for open ones.
func chainSize(c Chain, closed bool) float64 {
	if c.IsEmpty() {
		return 0
	}
	if closed {
		bb := c.BoundingBox()
		return math.Min(bb.Width(), bb.Height())
	}
	return c.Length()
}
