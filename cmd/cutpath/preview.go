package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/gogpu/cutpath/preview"
)

func newPreviewCmd(a *app) *cobra.Command {
	var (
		out    string
		size   int
		labels bool
	)
	cmd := &cobra.Command{
		Use:   "preview <drawing.json>",
		Short: "Render chains, parts and leads to a PNG image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				return errors.New("--out is required")
			}
			res, err := a.process(args[0])
			if err != nil {
				return err
			}
			opts := preview.DefaultOptions()
			opts.Size = size
			opts.Labels = labels
			if err := preview.WriteFile(out, res, opts); err != nil {
				return err
			}
			a.printer.Fprintf(cmd.OutOrStdout(), "preview written to %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output PNG file")
	cmd.Flags().IntVar(&size, "size", preview.DefaultOptions().Size, "Longer image side in pixels")
	cmd.Flags().BoolVar(&labels, "labels", true, "Draw part IDs")
	return cmd
}
