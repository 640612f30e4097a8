package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/gogpu/cutpath"
	"github.com/gogpu/cutpath/drawing"
)

func newProcessCmd(a *app) *cobra.Command {
	var outDir string
	cmd := &cobra.Command{
		Use:   "process <drawing.json>...",
		Short: "Run the full pipeline and write <name>.result.json per drawing",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if outDir != "" {
				if err := os.MkdirAll(outDir, 0o755); err != nil {
					return fmt.Errorf("failed to create output directory: %w", err)
				}
			}

			limit := a.cfg.Workers
			if limit <= 0 {
				limit = runtime.GOMAXPROCS(0)
			}
			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(limit)

			results := make([]*cutpath.Result, len(args))
			for i, path := range args {
				g.Go(func() error {
					if err := ctx.Err(); err != nil {
						return err
					}
					// Files already run in parallel; each pipeline stays sequential.
					res, err := a.process(path, cutpath.WithWorkers(1))
					if err != nil {
						return err
					}
					if err := writeResult(resultPath(path, outDir), res, a.cfg.Tolerance); err != nil {
						return err
					}
					results[i] = res
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			for i, path := range args {
				printSummary(a.printer, cmd.OutOrStdout(), filepath.Base(path), results[i])
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Output directory (default: next to each drawing)")
	return cmd
}

// resultPath returns <dir>/<name>.result.json, where dir defaults to the
// directory of the drawing.
func resultPath(path, outDir string) string {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) + ".result.json"
	if outDir == "" {
		outDir = filepath.Dir(path)
	}
	return filepath.Join(outDir, name)
}

func writeResult(path string, res *cutpath.Result, tol float64) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create result file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("failed to close result file: %w", cerr)
		}
	}()
	return drawing.EncodeResult(f, drawing.NewResult(res, tol))
}
