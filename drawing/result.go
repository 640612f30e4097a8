package drawing

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/gogpu/cutpath"
)

// Result is the JSON form of a pipeline result.
type Result struct {
	Chains   []ChainRecord   `json:"chains"`
	Parts    []PartRecord    `json:"parts"`
	Warnings []WarningRecord `json:"warnings,omitempty"`
	Leads    []LeadsRecord   `json:"leads,omitempty"`
}

// ChainRecord describes one normalized chain.
type ChainRecord struct {
	ID          string   `json:"id"`
	Closed      bool     `json:"closed"`
	Orientation string   `json:"orientation"`
	Length      float64  `json:"length"`
	Shapes      []Record `json:"shapes"`
}

// Box is an axis-aligned bounding box.
type Box struct {
	Min Vec `json:"min"`
	Max Vec `json:"max"`
}

func boxOf(r cutpath.Rect) Box {
	return Box{Min: Vec{X: r.Min.X, Y: r.Min.Y}, Max: Vec{X: r.Max.X, Y: r.Max.Y}}
}

// PartChainRecord names a chain of a part.
type PartChainRecord struct {
	ChainID string `json:"chainId"`
	Box     Box    `json:"box"`
}

// PartRecord is a shell with its holes.
type PartRecord struct {
	ID    string            `json:"id"`
	Shell PartChainRecord   `json:"shell"`
	Holes []PartChainRecord `json:"holes,omitempty"`
}

// WarningRecord is a chain-level warning.
type WarningRecord struct {
	ChainID string `json:"chainId"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// LeadsRecord holds the leads of one chain.
type LeadsRecord struct {
	ChainID     string      `json:"chainId"`
	PartID      string      `json:"partId,omitempty"`
	Valid       bool        `json:"valid"`
	Severity    string      `json:"severity"`
	Warnings    []string    `json:"warnings,omitempty"`
	Suggestions []string    `json:"suggestions,omitempty"`
	LeadIn      *LeadRecord `json:"leadIn,omitempty"`
	LeadOut     *LeadRecord `json:"leadOut,omitempty"`
}

// LeadRecord is one computed lead.
type LeadRecord struct {
	Type       string   `json:"type"`
	Connection Vec      `json:"connection"`
	Normal     Vec      `json:"normal"`
	Arc        *Record  `json:"arc,omitempty"`
	Points     []Vec    `json:"points,omitempty"`
	Warnings   []string `json:"warnings,omitempty"`
}

// NewResult converts a pipeline result. tol is used to report chain
// closure and orientation.
func NewResult(res *cutpath.Result, tol float64) *Result {
	out := &Result{
		Chains: make([]ChainRecord, len(res.Chains)),
		Parts:  make([]PartRecord, len(res.Parts)),
	}
	for i, c := range res.Chains {
		rec := ChainRecord{
			ID:          c.ID,
			Closed:      c.IsClosed(tol),
			Orientation: c.Orientation(tol).String(),
			Length:      c.Length(),
			Shapes:      make([]Record, len(c.Shapes)),
		}
		for j, s := range c.Shapes {
			rec.Shapes[j] = recordOf(s)
		}
		out.Chains[i] = rec
	}
	for i, p := range res.Parts {
		rec := PartRecord{
			ID:    p.ID,
			Shell: PartChainRecord{ChainID: p.Shell.Chain.ID, Box: boxOf(p.Shell.BoundingBox)},
		}
		for _, h := range p.Holes {
			rec.Holes = append(rec.Holes, PartChainRecord{ChainID: h.Chain.ID, Box: boxOf(h.BoundingBox)})
		}
		out.Parts[i] = rec
	}
	for _, w := range res.Warnings {
		out.Warnings = append(out.Warnings, WarningRecord{ChainID: w.ChainID, Kind: string(w.Kind), Message: w.Message})
	}
	for _, cl := range res.Leads {
		v := cl.Result.Validation
		out.Leads = append(out.Leads, LeadsRecord{
			ChainID:     cl.ChainID,
			PartID:      cl.PartID,
			Valid:       v.Valid,
			Severity:    v.Severity.String(),
			Warnings:    v.Warnings,
			Suggestions: v.Suggestions,
			LeadIn:      leadRecord(cl.Result.LeadIn),
			LeadOut:     leadRecord(cl.Result.LeadOut),
		})
	}
	return out
}

func leadRecord(l *cutpath.Lead) *LeadRecord {
	if l == nil {
		return nil
	}
	rec := &LeadRecord{
		Type:       string(l.Type),
		Connection: Vec{X: l.Connection.X, Y: l.Connection.Y},
		Normal:     Vec{X: l.Normal.X, Y: l.Normal.Y},
		Warnings:   l.Warnings,
	}
	if l.Type == cutpath.LeadArc {
		arc := recordOf(l.Arc)
		rec.Arc = &arc
		rec.Points = make([]Vec, len(l.Points))
		for i, p := range l.Points {
			rec.Points[i] = Vec{X: p.X, Y: p.Y}
		}
	}
	return rec
}

// EncodeResult writes the result as indented JSON.
func EncodeResult(w io.Writer, res *Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	return nil
}
