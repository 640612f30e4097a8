package cutpath

// DefaultTolerance is the coincidence distance used when none is given.
const DefaultTolerance = 0.05

// Option configures a Processor during creation.
//
// Example:
//
//	p := cutpath.NewProcessor(
//	    cutpath.WithTolerance(0.01),
//	    cutpath.WithCutDirection(cutpath.CutClockwise),
//	    cutpath.WithLeads(in, out),
//	)
type Option func(*options)

// options holds the Processor configuration.
type options struct {
	tolerance    float64
	workers      int
	cutDirection CutDirection
	leadIn       LeadConfig
	leadOut      LeadConfig
	optimize     bool
}

// defaultOptions returns the default processor options: default tolerance,
// sequential execution, no cut direction and no leads.
func defaultOptions() options {
	return options{
		tolerance: DefaultTolerance,
		workers:   1,
		leadIn:    LeadConfig{Type: LeadNone},
		leadOut:   LeadConfig{Type: LeadNone},
	}
}

// WithTolerance sets the coincidence distance. Non-positive values keep
// DefaultTolerance.
func WithTolerance(tol float64) Option {
	return func(o *options) {
		if tol > 0 {
			o.tolerance = tol
		}
	}
}

// WithWorkers sets the number of goroutines used for per-chain stages.
// 1 runs everything on the calling goroutine; 0 or less uses GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithCutDirection orients closed chains to the cut direction before parts
// and leads are computed.
func WithCutDirection(dir CutDirection) Option {
	return func(o *options) {
		o.cutDirection = dir
	}
}

// WithLeads sets the lead-in and lead-out applied to every chain.
func WithLeads(in, out LeadConfig) Option {
	return func(o *options) {
		o.leadIn = in
		o.leadOut = out
	}
}

// WithStartPointOptimization moves the start of closed chains to the middle
// of their longest line or arc.
func WithStartPointOptimization(enabled bool) Option {
	return func(o *options) {
		o.optimize = enabled
	}
}
