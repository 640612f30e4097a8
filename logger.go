package cutpath

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// Pipeline stages, reported as the "stage" attribute of every log record.
const (
	stageDetect    = "detect"
	stageNormalize = "normalize"
	stageParts     = "parts"
	stageLeads     = "leads"
)

// discard drops every record. Enabled returns false so the pipeline never
// formats attributes while logging is off.
type discard struct{}

func (discard) Enabled(context.Context, slog.Level) bool  { return false }
func (discard) Handle(context.Context, slog.Record) error { return nil }
func (discard) WithAttrs([]slog.Attr) slog.Handler        { return discard{} }
func (discard) WithGroup(string) slog.Handler             { return discard{} }

var silent = slog.New(discard{})

// current is read by worker goroutines of a Processor while SetLogger may
// replace it.
var current atomic.Pointer[slog.Logger]

func init() {
	current.Store(silent)
}

// SetLogger routes the pipeline's diagnostics to l. Nil restores the
// default, which discards everything.
//
// Records carry a "stage" attribute (detect, normalize, parts, leads) and,
// where one applies, the chain ID:
//   - [slog.LevelDebug]: chain, part and lead counts per stage and where
//     each lead ended up after the search
//   - [slog.LevelWarn]: chains whose shapes cannot be ordered into one path
//     and leads that found no placement clear of material
//
// The cutpath command installs a text handler on stderr:
//
//	cutpath.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silent
	}
	current.Store(l)
}

// Logger returns the logger installed with SetLogger. It is safe for
// concurrent use.
func Logger() *slog.Logger {
	return current.Load()
}

// stageLogger returns the current logger tagged with a pipeline stage.
func stageLogger(stage string) *slog.Logger {
	l := current.Load()
	if l == silent {
		return l
	}
	return l.With(slog.String("stage", stage))
}
