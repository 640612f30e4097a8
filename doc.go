// Package cutpath turns the loose shapes of a 2D CAD drawing into cuttable
// toolpath inputs for plasma and laser cutting.
//
// # Overview
//
// The pipeline runs in four stages, each consuming the complete output of
// the previous one:
//
//   - DetectChains groups shapes whose key points touch into chains.
//   - NormalizeChain orders and reverses the shapes of a chain into one
//     directed path.
//   - DetectParts nests closed chains into parts: a shell with its holes.
//     Islands inside holes become parts of their own.
//   - CalculateLeads adds tangent lead-in and lead-out arcs that stay out of
//     solid material.
//
// Processor wires the stages together:
//
//	p := cutpath.NewProcessor(
//	    cutpath.WithTolerance(0.05),
//	    cutpath.WithCutDirection(cutpath.CutClockwise),
//	    cutpath.WithLeads(
//	        cutpath.LeadConfig{Type: cutpath.LeadArc, Length: 5, Fit: true},
//	        cutpath.LeadConfig{Type: cutpath.LeadArc, Length: 3},
//	    ),
//	)
//	defer p.Close()
//	res := p.Process(shapes)
//
// # Coordinate System
//
// Drawing coordinates: X increases right, Y increases up. Angles are in
// radians, 0 is +X and angles increase counterclockwise; LeadConfig.Angle
// is the one value given in degrees.
//
// # Errors
//
// Geometric edge cases never fail. Degenerate shapes have no tangent and no
// key points, chains that cannot be ordered are passed through, and leads
// that cannot avoid material come back with a warning and best-effort
// geometry. Passing a Shape of an unknown type panics.
package cutpath
