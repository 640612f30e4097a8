package main

import (
	"io"

	"golang.org/x/text/message"

	"github.com/gogpu/cutpath"
)

// shortID trims UUID chain IDs for table output.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func printChains(p *message.Printer, w io.Writer, chains []cutpath.Chain, untraversable []string, tol float64) {
	closed := 0
	p.Fprintf(w, "%-8s  %6s  %-6s  %-16s  %12s\n", "CHAIN", "SHAPES", "CLOSED", "ORIENTATION", "LENGTH")
	for _, c := range chains {
		isClosed := c.IsClosed(tol)
		if isClosed {
			closed++
		}
		p.Fprintf(w, "%-8s  %6d  %-6t  %-16s  %12.2f\n",
			shortID(c.ID), len(c.Shapes), isClosed, c.Orientation(tol), c.Length())
	}
	p.Fprintf(w, "%d chains, %d closed\n", len(chains), closed)
	for _, id := range untraversable {
		p.Fprintf(w, "warning: chain %s cannot be traversed as a single path\n", shortID(id))
	}
}

func printBox(p *message.Printer, w io.Writer, label string, id string, r cutpath.Rect) {
	p.Fprintf(w, "  %-5s %-8s  (%.2f, %.2f) - (%.2f, %.2f)\n", label, shortID(id), r.Min.X, r.Min.Y, r.Max.X, r.Max.Y)
}

func printParts(p *message.Printer, w io.Writer, res *cutpath.Result) {
	for _, part := range res.Parts {
		p.Fprintf(w, "%s: %d holes\n", part.ID, len(part.Holes))
		printBox(p, w, "shell", part.Shell.Chain.ID, part.Shell.BoundingBox)
		for _, h := range part.Holes {
			printBox(p, w, "hole", h.Chain.ID, h.BoundingBox)
		}
	}
	p.Fprintf(w, "%d parts\n", len(res.Parts))
	printWarnings(p, w, res.Warnings)
}

func printWarnings(p *message.Printer, w io.Writer, warnings []cutpath.PartWarning) {
	for _, warn := range warnings {
		p.Fprintf(w, "warning [%s]: %s\n", warn.Kind, warn.Message)
	}
}

func printLead(p *message.Printer, w io.Writer, name string, l *cutpath.Lead) {
	if l == nil {
		return
	}
	if l.Type != cutpath.LeadArc {
		p.Fprintf(w, "  %-8s none\n", name)
		return
	}
	p.Fprintf(w, "  %-8s at (%.2f, %.2f) length %.2f radius %.2f\n",
		name, l.Connection.X, l.Connection.Y, l.Arc.ArcLength(), l.Arc.Radius)
}

func printLeads(p *message.Printer, w io.Writer, res *cutpath.Result) {
	for _, cl := range res.Leads {
		part := cl.PartID
		if part == "" {
			part = "-"
		}
		v := cl.Result.Validation
		p.Fprintf(w, "%s (part %s): %s\n", shortID(cl.ChainID), part, v.Severity)
		printLead(p, w, "lead-in", cl.Result.LeadIn)
		printLead(p, w, "lead-out", cl.Result.LeadOut)
		for _, msg := range cl.Result.Warnings() {
			p.Fprintf(w, "  warning: %s\n", msg)
		}
		for _, s := range v.Suggestions {
			p.Fprintf(w, "  suggestion: %s\n", s)
		}
	}
}

func printSummary(p *message.Printer, w io.Writer, name string, res *cutpath.Result) {
	leads := 0
	for _, cl := range res.Leads {
		if cl.Result.LeadIn != nil && cl.Result.LeadIn.Type == cutpath.LeadArc {
			leads++
		}
		if cl.Result.LeadOut != nil && cl.Result.LeadOut.Type == cutpath.LeadArc {
			leads++
		}
	}
	p.Fprintf(w, "%s: %d chains, %d parts, %d leads, %d warnings\n",
		name, len(res.Chains), len(res.Parts), leads, len(res.Warnings))
}
