package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gogpu/cutpath"
	"github.com/gogpu/cutpath/internal/config"
)

func newLeadsCmd(a *app) *cobra.Command {
	var (
		inLength  float64
		outLength float64
		direction string
		fit       bool
	)
	cmd := &cobra.Command{
		Use:   "leads <drawing.json>",
		Short: "Compute lead-in and lead-out arcs for every chain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if flags.Changed("lead-in-length") {
				setLeadLength(&a.cfg.LeadIn, inLength)
			}
			if flags.Changed("lead-out-length") {
				setLeadLength(&a.cfg.LeadOut, outLength)
			}
			if flags.Changed("cut-direction") {
				a.cfg.CutDirection = direction
			}
			if flags.Changed("fit") {
				a.cfg.LeadIn.Fit, a.cfg.LeadOut.Fit = fit, fit
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}
			if !a.cfg.LeadIn.Enabled() && !a.cfg.LeadOut.Enabled() {
				return fmt.Errorf("%w: no lead configured; set --lead-in-length or --lead-out-length", config.ErrInvalid)
			}

			res, err := a.process(args[0])
			if err != nil {
				return err
			}
			printLeads(a.printer, cmd.OutOrStdout(), res)
			return nil
		},
	}
	cmd.Flags().Float64Var(&inLength, "lead-in-length", 0, "Lead-in arc length (0 disables)")
	cmd.Flags().Float64Var(&outLength, "lead-out-length", 0, "Lead-out arc length (0 disables)")
	cmd.Flags().StringVar(&direction, "cut-direction", "none", "Cut direction: cw, ccw or none")
	cmd.Flags().BoolVar(&fit, "fit", false, "Shorten leads that cannot avoid material")
	return cmd
}

// setLeadLength overrides the length of lc and keeps its side and angle
// settings. A positive length turns the lead into an arc.
func setLeadLength(lc *cutpath.LeadConfig, length float64) {
	lc.Length = length
	if length > 0 {
		lc.Type = cutpath.LeadArc
	}
}
