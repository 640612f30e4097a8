package cutpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultOptions(t *testing.T) {
	o := defaultOptions()
	assert.Equal(t, DefaultTolerance, o.tolerance)
	assert.Equal(t, 1, o.workers)
	assert.Equal(t, CutNone, o.cutDirection)
	assert.False(t, o.leadIn.Enabled())
	assert.False(t, o.leadOut.Enabled())
	assert.False(t, o.optimize)
}

func TestOptionsApply(t *testing.T) {
	in := LeadConfig{Type: LeadArc, Length: 5}
	out := LeadConfig{Type: LeadArc, Length: 3, Fit: true}

	p := NewProcessor(
		WithTolerance(0.2),
		WithWorkers(4),
		WithCutDirection(CutClockwise),
		WithLeads(in, out),
		WithStartPointOptimization(true),
	)
	defer p.Close()

	assert.Equal(t, 0.2, p.opts.tolerance)
	assert.Equal(t, 4, p.opts.workers)
	assert.Equal(t, CutClockwise, p.opts.cutDirection)
	assert.Equal(t, in, p.opts.leadIn)
	assert.Equal(t, out, p.opts.leadOut)
	assert.True(t, p.opts.optimize)
}

func TestWithToleranceIgnoresNonPositive(t *testing.T) {
	o := defaultOptions()
	WithTolerance(0)(&o)
	WithTolerance(-1)(&o)
	assert.Equal(t, DefaultTolerance, o.tolerance)
}
