package main

import (
	"github.com/spf13/cobra"

	"github.com/gogpu/cutpath"
	"github.com/gogpu/cutpath/drawing"
)

func newChainsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "chains <drawing.json>",
		Short: "Detect and normalize chains",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			shapes, err := drawing.ReadFile(args[0])
			if err != nil {
				return err
			}
			tol := a.cfg.Tolerance
			chains, untraversable := cutpath.NormalizeChains(cutpath.DetectChains(shapes, tol), tol)
			printChains(a.printer, cmd.OutOrStdout(), chains, untraversable, tol)
			return nil
		},
	}
}
