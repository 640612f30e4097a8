package cutpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// plateDrawing is a 100×60 plate with its sides out of order, a 10 mm
// hole and a stray open line.
func plateDrawing() []Shape {
	sides := rectLines("side", 0, 0, 100, 60)
	return []Shape{
		sides[2],
		Circle{Meta: Meta{ID: "hole"}, Center: Pt(50, 30), Radius: 10},
		Reverse(sides[0]),
		sides[3],
		Line{Meta: Meta{ID: "stray"}, Start: Pt(200, 0), End: Pt(210, 0)},
		sides[1],
	}
}

func chainWith(t *testing.T, res *Result, shapeID string) Chain {
	t.Helper()
	for _, c := range res.Chains {
		for _, s := range c.Shapes {
			if s.Info().ID == shapeID || s.Info().ID == shapeID+":1" || s.Info().ID == shapeID+":2" {
				return c
			}
		}
	}
	require.Failf(t, "chain not found", "no chain holds %s", shapeID)
	return Chain{}
}

func TestProcessor_Pipeline(t *testing.T) {
	p := NewProcessor(
		WithTolerance(0.01),
		WithCutDirection(CutClockwise),
		WithLeads(arcLead(5), arcLead(5)),
		WithStartPointOptimization(true),
	)
	defer p.Close()

	res := p.Process(plateDrawing())
	require.Len(t, res.Chains, 3)

	plateChain := chainWith(t, res, "side0")
	holeChain := chainWith(t, res, "hole")
	stray := chainWith(t, res, "stray")

	assert.True(t, IsTraversal(plateChain, 0.01))
	assert.Equal(t, OrientationClockwise, plateChain.Orientation(0.01))
	assert.Len(t, plateChain.Shapes, 5, "start moved into the longest side")

	assert.Equal(t, OrientationClockwise, holeChain.Orientation(0.01))

	require.Len(t, res.Parts, 1)
	assert.Equal(t, plateChain.ID, res.Parts[0].Shell.Chain.ID)
	require.Len(t, res.Parts[0].Holes, 1)
	assert.Equal(t, holeChain.ID, res.Parts[0].Holes[0].Chain.ID)

	require.Len(t, res.Warnings, 1)
	assert.Equal(t, stray.ID, res.Warnings[0].ChainID)
	assert.Equal(t, WarningOpenChain, res.Warnings[0].Kind)

	require.Len(t, res.Leads, 3)
	for i, cl := range res.Leads {
		assert.Equal(t, res.Chains[i].ID, cl.ChainID)
		require.NotNil(t, cl.Result.LeadIn, "chain %s", cl.ChainID)
		require.NotNil(t, cl.Result.LeadOut, "chain %s", cl.ChainID)
		switch cl.ChainID {
		case stray.ID:
			assert.Empty(t, cl.PartID)
		default:
			assert.Equal(t, "part-1", cl.PartID)
			assert.Empty(t, cl.Result.Warnings(), "chain %s", cl.ChainID)
		}
	}
}

func TestProcessor_NoLeads(t *testing.T) {
	p := NewProcessor()
	defer p.Close()

	res := p.Process(plateDrawing())
	assert.Len(t, res.Chains, 3)
	assert.Nil(t, res.Leads)
}

func TestProcessor_NotTraversable(t *testing.T) {
	p := NewProcessor()
	defer p.Close()

	res := p.Process([]Shape{
		Line{Meta: Meta{ID: "a"}, Start: Pt(0, 0), End: Pt(1, 0)},
		Line{Meta: Meta{ID: "b"}, Start: Pt(0, 0), End: Pt(-1, 0)},
		Line{Meta: Meta{ID: "c"}, Start: Pt(0, 0), End: Pt(0, 1)},
	})
	require.Len(t, res.Chains, 1)

	var kinds []WarningKind
	for _, w := range res.Warnings {
		kinds = append(kinds, w.Kind)
	}
	assert.ElementsMatch(t, []WarningKind{WarningNotTraversable, WarningOpenChain}, kinds)
}

func TestProcessor_WorkersAgree(t *testing.T) {
	opts := []Option{
		WithCutDirection(CutCounterclockwise),
		WithLeads(arcLead(4), LeadConfig{Type: LeadArc, Length: 4, Fit: true}),
	}

	seq := NewProcessor(append(opts, WithWorkers(1))...)
	defer seq.Close()
	par := NewProcessor(append(opts, WithWorkers(4))...)
	defer par.Close()

	shapes := plateDrawing()
	for i := range 5 {
		shapes = append(shapes, rectLines(string(rune('a'+i)), float64(300+20*i), 0, 10, 10)...)
	}
	assert.Equal(t, seq.Process(shapes), par.Process(shapes))
}

func TestProcessor_EmptyInput(t *testing.T) {
	p := NewProcessor(WithLeads(arcLead(5), arcLead(5)))
	defer p.Close()

	res := p.Process(nil)
	assert.Empty(t, res.Chains)
	assert.Empty(t, res.Parts)
	assert.Empty(t, res.Leads)
}
