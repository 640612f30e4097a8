package cutpath

import "fmt"

// rectLines returns the four sides of an axis-aligned rectangle,
// counterclockwise from (x, y).
func rectLines(prefix string, x, y, w, h float64) []Shape {
	p := []Point{Pt(x, y), Pt(x+w, y), Pt(x+w, y+h), Pt(x, y+h)}
	out := make([]Shape, 4)
	for i := range p {
		out[i] = Line{
			Meta:  Meta{ID: fmt.Sprintf("%s%d", prefix, i)},
			Start: p[i],
			End:   p[(i+1)%4],
		}
	}
	return out
}

// rectChain returns a normalized counterclockwise rectangle chain.
func rectChain(id string, x, y, w, h float64) Chain {
	return Chain{ID: id, Shapes: rectLines(id+"-", x, y, w, h)}
}

// circleChain returns a single-circle chain.
func circleChain(id string, cx, cy, r float64) Chain {
	return Chain{ID: id, Shapes: []Shape{Circle{Meta: Meta{ID: id}, Center: Pt(cx, cy), Radius: r}}}
}

// bogusShape satisfies Shape without being one of the known variants.
type bogusShape struct{ Meta }

func (bogusShape) isShape() {}
