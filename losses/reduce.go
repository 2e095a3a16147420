package losses

import (
	"gonum.org/v1/gonum/mat"

	"github.com/imba-go/imbaloss/pkg/errors"
)

// Reduction selects how a per-element loss matrix is collapsed into the final
// result.
type Reduction string

const (
	// ReductionNone returns the per-element loss matrix unchanged.
	ReductionNone Reduction = "none"

	// ReductionMean returns the arithmetic mean over all elements, or
	// sum/avg_factor when an average factor is supplied.
	ReductionMean Reduction = "mean"

	// ReductionSum returns the sum over all elements.
	ReductionSum Reduction = "sum"
)

// Valid reports whether r is one of the supported reduction modes.
func (r Reduction) Valid() bool {
	switch r {
	case ReductionNone, ReductionMean, ReductionSum:
		return true
	}
	return false
}

// ParseReduction converts a string into a Reduction, failing with an
// InvalidArgumentError for unknown modes.
func ParseReduction(s string) (Reduction, error) {
	r := Reduction(s)
	if !r.Valid() {
		return "", errors.NewInvalidArgumentError("ParseReduction", "reduction",
			"must be one of 'none', 'mean' or 'sum'", s)
	}
	return r, nil
}

// Loss is the result of a loss computation. For ReductionNone it carries the
// per-element matrix; for ReductionMean and ReductionSum it carries a scalar.
type Loss struct {
	value    float64
	elements *mat.Dense
}

func newScalarLoss(v float64) *Loss {
	return &Loss{value: v}
}

func newElementwiseLoss(m *mat.Dense) *Loss {
	return &Loss{elements: m}
}

// IsReduced reports whether the loss was collapsed to a scalar.
func (l *Loss) IsReduced() bool {
	return l.elements == nil
}

// Scalar returns the reduced loss value. It is only meaningful when IsReduced
// returns true; for an unreduced loss it returns 0.
func (l *Loss) Scalar() float64 {
	return l.value
}

// Elements returns the per-element loss matrix, or nil when the loss was
// reduced to a scalar.
func (l *Loss) Elements() *mat.Dense {
	return l.elements
}

// scale multiplies the loss in place by a scalar. Used by module wrappers to
// apply their configured loss weight.
func (l *Loss) scale(w float64) {
	if l.elements != nil {
		l.elements.Scale(w, l.elements)
		return
	}
	l.value *= w
}

// weightReduceLoss applies an optional per-sample weight to an n×c per-element
// loss matrix, then reduces it according to the reduction mode.
//
// The weight vector has one entry per sample (row) and broadcasts across the
// class dimension. An avg_factor substitutes for the raw element count under
// ReductionMean; it is rejected under ReductionSum and ignored (with a library
// warning) under ReductionNone.
func weightReduceLoss(op string, loss *mat.Dense, weight *mat.VecDense, reduction Reduction, avgFactor *float64) (*Loss, error) {
	r, c := loss.Dims()

	if weight != nil {
		if weight.Len() != r {
			return nil, errors.NewShapeMismatchError(op, []int{r}, []int{weight.Len()})
		}
		for i := 0; i < r; i++ {
			w := weight.AtVec(i)
			for j := 0; j < c; j++ {
				loss.Set(i, j, loss.At(i, j)*w)
			}
		}
	}

	switch reduction {
	case ReductionNone:
		if avgFactor != nil {
			errors.Warn(errors.NewIgnoredArgumentWarning(op, "avg_factor", "reduction is 'none'"))
		}
		return newElementwiseLoss(loss), nil

	case ReductionSum:
		if avgFactor != nil {
			return nil, errors.NewInvalidArgumentError(op, "avg_factor",
				"cannot be combined with reduction 'sum'", *avgFactor)
		}
		return newScalarLoss(mat.Sum(loss)), nil

	case ReductionMean:
		sum := mat.Sum(loss)
		if avgFactor == nil {
			return newScalarLoss(sum / float64(r*c)), nil
		}
		if *avgFactor <= 0 {
			return nil, errors.NewInvalidArgumentError(op, "avg_factor",
				"must be positive", *avgFactor)
		}
		return newScalarLoss(sum / *avgFactor), nil

	default:
		return nil, errors.NewInvalidArgumentError(op, "reduction",
			"must be one of 'none', 'mean' or 'sum'", string(reduction))
	}
}
