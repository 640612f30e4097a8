// Package drawing reads and writes the JSON drawing format consumed by the
// cutpath CLI and encodes pipeline results.
//
// A drawing is a list of typed shape records:
//
//	{"units": "mm", "shapes": [
//	  {"type": "line", "id": "a", "start": {"x": 0, "y": 0}, "end": {"x": 10, "y": 0}},
//	  {"type": "arc", "center": {"x": 5, "y": 0}, "radius": 5, "startAngle": 0, "endAngle": 180},
//	  {"type": "circle", "center": {"x": 5, "y": 5}, "radius": 2},
//	  {"type": "polyline", "points": [...], "bulges": [...], "closed": true},
//	  {"type": "ellipse", "center": {...}, "majorAxis": {...}, "ratio": 0.5}
//	]}
//
// Arc angles and ellipse parameters are stored in degrees and converted to
// radians on import. Shapes without an ID get a UUID derived from their
// position in the document, so importing the same file twice yields the
// same shape and chain IDs.
package drawing

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/google/uuid"

	"github.com/gogpu/cutpath"
)

var (
	// ErrUnknownShapeType is returned for records whose type is not one of
	// line, arc, circle, polyline or ellipse.
	ErrUnknownShapeType = errors.New("unknown shape type")

	// ErrMissingField is returned for records lacking a required field.
	ErrMissingField = errors.New("missing field")
)

// shapeNamespace scopes the IDs generated for records without one.
var shapeNamespace = uuid.MustParse("0b7d3e96-4a2f-5c18-8e61-d25f9a4c3b07")

// Shape record types.
const (
	TypeLine     = "line"
	TypeArc      = "arc"
	TypeCircle   = "circle"
	TypePolyline = "polyline"
	TypeEllipse  = "ellipse"
)

// Vec is a point in a drawing file.
type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func vecOf(p cutpath.Point) *Vec { return &Vec{X: p.X, Y: p.Y} }

func (v Vec) point() cutpath.Point { return cutpath.Pt(v.X, v.Y) }

// Document is a drawing file.
type Document struct {
	Units  string   `json:"units,omitempty"`
	Shapes []Record `json:"shapes"`
}

// Record is one shape. Which fields are used depends on Type.
type Record struct {
	Type  string `json:"type"`
	ID    string `json:"id,omitempty"`
	Layer string `json:"layer,omitempty"`

	Start *Vec `json:"start,omitempty"`
	End   *Vec `json:"end,omitempty"`

	Center     *Vec    `json:"center,omitempty"`
	Radius     float64 `json:"radius,omitempty"`
	StartAngle float64 `json:"startAngle,omitempty"`
	EndAngle   float64 `json:"endAngle,omitempty"`
	Clockwise  bool    `json:"clockwise,omitempty"`

	Points []Vec     `json:"points,omitempty"`
	Bulges []float64 `json:"bulges,omitempty"`
	Closed bool      `json:"closed,omitempty"`

	MajorAxis  *Vec    `json:"majorAxis,omitempty"`
	Ratio      float64 `json:"ratio,omitempty"`
	StartParam float64 `json:"startParam,omitempty"`
	EndParam   float64 `json:"endParam,omitempty"`
}

// Decode reads a drawing document from r.
func Decode(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode drawing: %w", err)
	}
	return &doc, nil
}

// ReadFile decodes the drawing at path and converts it to shapes.
func ReadFile(path string) ([]cutpath.Shape, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open drawing: %w", err)
	}
	defer f.Close()

	doc, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	shapes, err := doc.ToShapes()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return shapes, nil
}

// ToShapes converts every record. It stops at the first invalid record.
func (d *Document) ToShapes() ([]cutpath.Shape, error) {
	shapes := make([]cutpath.Shape, 0, len(d.Shapes))
	for i, rec := range d.Shapes {
		if rec.ID == "" {
			rec.ID = indexID(i)
		}
		s, err := rec.Shape()
		if err != nil {
			return nil, fmt.Errorf("shape %d: %w", i, err)
		}
		shapes = append(shapes, s)
	}
	return shapes, nil
}

func indexID(i int) string {
	return uuid.NewSHA1(shapeNamespace, []byte(strconv.Itoa(i))).String()
}

// Shape converts the record into a cutpath shape. An empty ID is kept;
// ToShapes fills it in.
func (r Record) Shape() (cutpath.Shape, error) {
	meta := cutpath.Meta{ID: r.ID, Layer: r.Layer}

	switch r.Type {
	case TypeLine:
		if r.Start == nil || r.End == nil {
			return nil, r.missing("start/end")
		}
		return cutpath.Line{Meta: meta, Start: r.Start.point(), End: r.End.point()}, nil
	case TypeArc:
		if r.Center == nil {
			return nil, r.missing("center")
		}
		return cutpath.Arc{
			Meta:       meta,
			Center:     r.Center.point(),
			Radius:     r.Radius,
			StartAngle: radians(r.StartAngle),
			EndAngle:   radians(r.EndAngle),
			Clockwise:  r.Clockwise,
		}, nil
	case TypeCircle:
		if r.Center == nil {
			return nil, r.missing("center")
		}
		return cutpath.Circle{Meta: meta, Center: r.Center.point(), Radius: r.Radius}, nil
	case TypePolyline:
		if len(r.Points) == 0 {
			return nil, r.missing("points")
		}
		pts := make([]cutpath.Point, len(r.Points))
		for i, v := range r.Points {
			pts[i] = v.point()
		}
		return cutpath.Polyline{Meta: meta, Points: pts, Bulges: r.Bulges, Closed: r.Closed}, nil
	case TypeEllipse:
		if r.Center == nil || r.MajorAxis == nil {
			return nil, r.missing("center/majorAxis")
		}
		return cutpath.Ellipse{
			Meta:       meta,
			Center:     r.Center.point(),
			MajorAxis:  r.MajorAxis.point(),
			Ratio:      r.Ratio,
			StartParam: radians(r.StartParam),
			EndParam:   radians(r.EndParam),
			Clockwise:  r.Clockwise,
		}, nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownShapeType, r.Type)
	}
}

func (r Record) missing(field string) error {
	return fmt.Errorf("%s %s: %w %s", r.Type, r.ID, ErrMissingField, field)
}

// FromShapes builds a document from shapes. Arc angles and ellipse
// parameters are written in degrees.
func FromShapes(units string, shapes []cutpath.Shape) *Document {
	doc := &Document{Units: units, Shapes: make([]Record, len(shapes))}
	for i, s := range shapes {
		doc.Shapes[i] = recordOf(s)
	}
	return doc
}

func recordOf(s cutpath.Shape) Record {
	meta := s.Info()
	r := Record{ID: meta.ID, Layer: meta.Layer}
	switch v := s.(type) {
	case cutpath.Line:
		r.Type, r.Start, r.End = TypeLine, vecOf(v.Start), vecOf(v.End)
	case cutpath.Arc:
		r.Type, r.Center, r.Radius = TypeArc, vecOf(v.Center), v.Radius
		r.StartAngle, r.EndAngle = degrees(v.StartAngle), degrees(v.EndAngle)
		r.Clockwise = v.Clockwise
	case cutpath.Circle:
		r.Type, r.Center, r.Radius = TypeCircle, vecOf(v.Center), v.Radius
	case cutpath.Polyline:
		r.Type, r.Bulges, r.Closed = TypePolyline, v.Bulges, v.Closed
		r.Points = make([]Vec, len(v.Points))
		for i, p := range v.Points {
			r.Points[i] = Vec{X: p.X, Y: p.Y}
		}
	case cutpath.Ellipse:
		r.Type, r.Center, r.MajorAxis = TypeEllipse, vecOf(v.Center), vecOf(v.MajorAxis)
		r.Ratio, r.Clockwise = v.Ratio, v.Clockwise
		r.StartParam, r.EndParam = degrees(v.StartParam), degrees(v.EndParam)
	default:
		panic(fmt.Sprintf("drawing: unknown shape type %T", s))
	}
	return r
}

// Encode writes the document as indented JSON.
func Encode(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode drawing: %w", err)
	}
	return nil
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

func degrees(rad float64) float64 { return rad * 180 / math.Pi }
