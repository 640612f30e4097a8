package main

import (
	"github.com/spf13/cobra"

	"github.com/gogpu/cutpath"
)

func newPartsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "parts <drawing.json>",
		Short: "Classify closed chains into shells and holes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			none := cutpath.LeadConfig{Type: cutpath.LeadNone}
			res, err := a.process(args[0], cutpath.WithLeads(none, none))
			if err != nil {
				return err
			}
			printParts(a.printer, cmd.OutOrStdout(), res)
			return nil
		},
	}
}
