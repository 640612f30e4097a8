package cutpath

import (
	"fmt"

	"github.com/gogpu/cutpath/internal/cache"
	"github.com/gogpu/cutpath/internal/parallel"
)

// Processor runs the whole pipeline: chain detection, normalization,
// optional orientation and start-point optimization, part detection and
// lead synthesis.
//
// Each stage completes before the next one starts. Within the per-chain
// stages the work is spread over the configured number of workers.
type Processor struct {
	opts options
	pool *parallel.Pool
}

// NewProcessor creates a Processor. Close releases its workers.
func NewProcessor(opts ...Option) *Processor {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	p := &Processor{opts: o}
	if o.workers != 1 {
		p.pool = parallel.NewPool(o.workers)
	}
	return p
}

// Close stops the worker goroutines. The Processor keeps working
// sequentially afterwards.
func (p *Processor) Close() {
	if p.pool != nil {
		p.pool.Close()
	}
}

// ChainLeads is the lead result of one chain.
type ChainLeads struct {
	ChainID string
	// PartID is empty for chains that belong to no part.
	PartID string
	Result LeadResult
}

// Result is the output of Process.
type Result struct {
	Chains   []Chain
	Parts    []Part
	Warnings []PartWarning
	// Leads holds one entry per chain, in Chains order, when any lead is
	// configured.
	Leads []ChainLeads
}

// Process runs the pipeline over shapes.
func (p *Processor) Process(shapes []Shape) *Result {
	tol := p.opts.tolerance
	res := &Result{}

	chains := DetectChains(shapes, tol)
	traversable := make([]bool, len(chains))
	p.forEach(len(chains), func(i int) {
		c, ok := NormalizeChain(chains[i], tol)
		if ok {
			c = OrientChain(c, p.opts.cutDirection, tol)
			if p.opts.optimize {
				c = OptimizeStartPoint(c, tol)
			}
		}
		chains[i], traversable[i] = c, ok
	})
	for i, ok := range traversable {
		if ok {
			continue
		}
		res.Warnings = append(res.Warnings, PartWarning{
			ChainID: chains[i].ID,
			Kind:    WarningNotTraversable,
			Message: fmt.Sprintf("shapes of chain %s do not form a single path", chains[i].ID),
		})
	}
	res.Chains = chains

	parts := DetectParts(chains, tol)
	res.Parts = parts.Parts
	res.Warnings = append(res.Warnings, parts.Warnings...)

	if !p.opts.leadIn.Enabled() && !p.opts.leadOut.Enabled() {
		return res
	}
	res.Leads = make([]ChainLeads, len(chains))
	regions := cache.New[string, region](len(res.Parts))
	regionOf := func(part Part) region {
		return regions.GetOrCreate(part.ID, func() region { return newRegion(part) })
	}
	p.forEach(len(chains), func(i int) {
		req := LeadRequest{
			Chain:        chains[i],
			LeadIn:       p.opts.leadIn,
			LeadOut:      p.opts.leadOut,
			CutDirection: p.opts.cutDirection,
			Tolerance:    tol,
		}
		entry := ChainLeads{ChainID: chains[i].ID}
		if part, ok := FindPart(res.Parts, chains[i]); ok {
			req.Part = part
			entry.PartID = part.ID
		}
		entry.Result = calculateLeads(req, regionOf)
		res.Leads[i] = entry
	})
	return res
}

func (p *Processor) forEach(n int, fn func(i int)) {
	if p.pool == nil {
		for i := range n {
			fn(i)
		}
		return
	}
	p.pool.ForEach(n, fn)
}
