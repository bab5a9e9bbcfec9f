// Package splines builds natural cubic spline bases.
//
// A BasisModel holds everything needed to rebuild the basis for new values:
// interior knots, the two boundary knots and the intercept flag. Fitting a
// model looks at training values once; evaluating it never does.
//
// The basis is the order-4 B-spline design on the knot sequence
// {b0 x4, interior..., b1 x4}, projected onto the subspace whose second
// derivative vanishes at both boundary knots. Beyond the boundary knots each
// basis function continues as the straight line tangent at the boundary.
package splines

import (
	"math"
	"sort"

	"github.com/Ramsey-B/fern/pkg/errors"
	"github.com/Ramsey-B/fern/pkg/stats"
	"gonum.org/v1/gonum/mat"
)

const (
	order = 4

	// TailDegree is the degree of the linear tails outside the boundary knots.
	// It is the degree subtracted from the degrees of freedom when counting
	// interior knots.
	TailDegree = 1
)

// BasisModel is the fitted, serializable state of one expanded column.
type BasisModel struct {
	Column        string     `json:"column" yaml:"column"`
	Knots         []float64  `json:"knots" yaml:"knots"`
	BoundaryKnots [2]float64 `json:"boundary_knots" yaml:"boundary_knots"`
	Intercept     bool       `json:"intercept" yaml:"intercept"`
	Degree        int        `json:"degree" yaml:"degree"`
}

// FitOptions controls knot placement.
type FitOptions struct {
	// DegFree is the number of basis columns wanted. Ignored when Knots is set.
	DegFree int
	// Intercept keeps the first B-spline column.
	Intercept bool
	// Knots are explicit interior knots.
	Knots []float64
	// BoundaryKnots are explicit boundary knots; defaults to the range of x.
	BoundaryKnots []float64
}

// InteriorKnotCount is df - 1 - intercept, floored at zero.
func InteriorKnotCount(degFree int, intercept bool) int {
	n := degFree - TailDegree
	if intercept {
		n--
	}
	if n < 0 {
		return 0
	}
	return n
}

// Fit places knots for column from its non-missing training values x.
func Fit(column string, x []float64, opts FitOptions) (BasisModel, error) {
	for _, v := range x {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return BasisModel{}, errors.NewDelegatedError("cannot fit a spline to non-finite value %v", v).AddColumn(column)
		}
	}

	var boundary [2]float64
	switch len(opts.BoundaryKnots) {
	case 0:
		lo, hi, err := stats.Range(x)
		if err != nil {
			return BasisModel{}, errors.NewDelegatedError("cannot fit a spline without non-missing values").AddColumn(column)
		}
		boundary = [2]float64{lo, hi}
	case 2:
		boundary = [2]float64{opts.BoundaryKnots[0], opts.BoundaryKnots[1]}
		if boundary[0] > boundary[1] {
			boundary[0], boundary[1] = boundary[1], boundary[0]
		}
	default:
		return BasisModel{}, errors.NewDelegatedError("boundary knots must have 2 values, got %d", len(opts.BoundaryKnots)).AddColumn(column)
	}

	if !(boundary[0] < boundary[1]) {
		return BasisModel{}, errors.NewDelegatedError("boundary knots must be distinct, got [%v, %v]", boundary[0], boundary[1]).AddColumn(column)
	}

	var knots []float64
	if len(opts.Knots) > 0 {
		knots = append([]float64{}, opts.Knots...)
		sort.Float64s(knots)
		for _, k := range knots {
			if k <= boundary[0] || k >= boundary[1] {
				return BasisModel{}, errors.NewDelegatedError("interior knot %v is not inside the boundary knots [%v, %v]", k, boundary[0], boundary[1]).AddColumn(column)
			}
		}
	} else if n := InteriorKnotCount(opts.DegFree, opts.Intercept); n > 0 {
		inside := make([]float64, 0, len(x))
		for _, v := range x {
			if v >= boundary[0] && v <= boundary[1] {
				inside = append(inside, v)
			}
		}
		probs := make([]float64, n)
		for i := range probs {
			probs[i] = float64(i+1) / float64(n+1)
		}
		q, err := stats.Quantiles(inside, probs)
		if err != nil {
			return BasisModel{}, errors.NewDelegatedError("cannot place interior knots: %w", err).AddColumn(column)
		}
		knots = q
	}

	return BasisModel{
		Column:        column,
		Knots:         knots,
		BoundaryKnots: boundary,
		Intercept:     opts.Intercept,
		Degree:        TailDegree,
	}, nil
}

// NumColumns is the width of the basis.
func (m BasisModel) NumColumns() int {
	n := len(m.Knots) + 1
	if m.Intercept {
		n++
	}
	return n
}

// Basis is a BasisModel ready for evaluation.
type Basis struct {
	model      BasisModel
	knots      []float64
	projection mat.Matrix
	leftValue  []float64
	leftSlope  []float64
	rightValue []float64
	rightSlope []float64
}

// Compile builds the knot sequence and the natural-constraint projection.
func (m BasisModel) Compile() (*Basis, error) {
	b0, b1 := m.BoundaryKnots[0], m.BoundaryKnots[1]
	if !(b0 < b1) {
		return nil, errors.NewDelegatedError("boundary knots must be distinct, got [%v, %v]", b0, b1).AddColumn(m.Column)
	}
	for _, k := range m.Knots {
		if !(k >= b0 && k <= b1) {
			return nil, errors.NewDelegatedError("interior knot %v is not inside the boundary knots [%v, %v]", k, b0, b1).AddColumn(m.Column)
		}
	}

	knots := make([]float64, 0, len(m.Knots)+2*order)
	for i := 0; i < order; i++ {
		knots = append(knots, b0)
	}
	knots = append(knots, m.Knots...)
	for i := 0; i < order; i++ {
		knots = append(knots, b1)
	}

	b := &Basis{model: m, knots: knots}

	// second derivatives at both boundaries, one row each, transposed so the
	// columns span the constraints
	left := b.trim(designRow(knots, order, b0, 2))
	right := b.trim(designRow(knots, order, b1, 2))
	p := len(left)
	constraints := mat.NewDense(p, 2, nil)
	for i := 0; i < p; i++ {
		constraints.Set(i, 0, left[i])
		constraints.Set(i, 1, right[i])
	}

	var qr mat.QR
	qr.Factorize(constraints)
	var q mat.Dense
	qr.QTo(&q)
	b.projection = q.Slice(0, p, 2, p)

	b.leftValue = b.trim(designRow(knots, order, b0, 0))
	b.leftSlope = b.trim(designRow(knots, order, b0, 1))
	b.rightValue = b.trim(designRow(knots, order, b1, 0))
	b.rightSlope = b.trim(designRow(knots, order, b1, 1))

	return b, nil
}

// trim drops the first B-spline when the model has no intercept.
func (b *Basis) trim(row []float64) []float64 {
	if b.model.Intercept {
		return row
	}
	return row[1:]
}

// Evaluate returns one basis row per value of x. NaN inputs give NaN rows;
// infinite inputs are an error.
func (b *Basis) Evaluate(x []float64) ([][]float64, error) {
	b0, b1 := b.model.BoundaryKnots[0], b.model.BoundaryKnots[1]
	p, cols := b.projection.Dims()

	out := make([][]float64, len(x))
	if len(x) == 0 {
		return out, nil
	}

	raw := mat.NewDense(len(x), p, nil)
	for i, v := range x {
		var row []float64
		switch {
		case math.IsInf(v, 0):
			return nil, errors.NewDelegatedError("cannot evaluate a spline basis at %v", v).AddColumn(b.model.Column)
		case math.IsNaN(v):
			continue
		case v < b0:
			row = linear(b.leftValue, b.leftSlope, v-b0)
		case v > b1:
			row = linear(b.rightValue, b.rightSlope, v-b1)
		default:
			row = b.trim(designRow(b.knots, order, v, 0))
		}
		raw.SetRow(i, row)
	}

	var projected mat.Dense
	projected.Mul(raw, b.projection)

	for i, v := range x {
		row := make([]float64, cols)
		if math.IsNaN(v) {
			for j := range row {
				row[j] = math.NaN()
			}
		} else {
			mat.Row(row, i, &projected)
		}
		out[i] = row
	}

	return out, nil
}

// NumColumns is the width of the basis.
func (b *Basis) NumColumns() int {
	_, cols := b.projection.Dims()
	return cols
}

func linear(value, slope []float64, dx float64) []float64 {
	row := make([]float64, len(value))
	for i := range value {
		row[i] = value[i] + dx*slope[i]
	}
	return row
}

// Evaluate is a convenience for compiling m and evaluating x.
func (m BasisModel) Evaluate(x []float64) ([][]float64, error) {
	b, err := m.Compile()
	if err != nil {
		return nil, err
	}
	return b.Evaluate(x)
}
