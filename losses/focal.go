package losses

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/imba-go/imbaloss/core/parallel"
	"github.com/imba-go/imbaloss/pkg/errors"
)

// Alpha is the class-balancing factor of the focal loss: either a scalar in
// [0, 1] applied globally, or a matrix broadcast-compatible with the
// prediction (each dimension equal to the prediction's or 1) for per-element
// balancing.
type Alpha struct {
	matrix mat.Matrix
	scalar float64
}

// ScalarAlpha creates a scalar balancing factor. The zero value of Alpha is
// equivalent to ScalarAlpha(0).
func ScalarAlpha(v float64) Alpha {
	return Alpha{scalar: v}
}

// MatrixAlpha creates a per-element balancing factor. m must broadcast against
// the prediction: each dimension equal to the prediction's or 1.
func MatrixAlpha(m mat.Matrix) Alpha {
	return Alpha{matrix: m}
}

// validate checks the factor against the prediction dimensions.
func (a Alpha) validate(op string, rows, cols int) error {
	if a.matrix == nil {
		if a.scalar < 0 || a.scalar > 1 {
			return errors.NewInvalidArgumentError(op, "alpha", "scalar alpha must be in [0, 1]", a.scalar)
		}
		return nil
	}
	ar, ac := a.matrix.Dims()
	if (ar != rows && ar != 1) || (ac != cols && ac != 1) {
		return errors.NewShapeMismatchError(op, []int{rows, cols}, []int{ar, ac})
	}
	return nil
}

// at resolves the balancing factor for element (i, j), broadcasting unit
// dimensions of a matrix alpha.
func (a Alpha) at(i, j int) float64 {
	if a.matrix == nil {
		return a.scalar
	}
	ar, ac := a.matrix.Dims()
	if ar == 1 {
		i = 0
	}
	if ac == 1 {
		j = 0
	}
	return a.matrix.At(i, j)
}

// SigmoidFocalLoss computes the sigmoid focal loss of Lin et al. (2017)
// elementwise, then applies the shared weight/reduction contract.
//
// Per element, with p = sigmoid(pred) and binary target t:
//
//	pt           = (1-p)*t + p*(1-t)          // (1 - p_t): large when confidently wrong
//	focal_weight = (alpha*t + (1-alpha)*(1-t)) * pt^gamma
//	loss         = focal_weight * BCEWithLogits(pred, t)
//
// pred and target are n_samples×n_classes matrices of identical shape (rank-1
// inputs are n×1, e.g. *mat.VecDense); target values are binary indicators or
// one-hot rows. weight, when non-nil, holds one multiplier per sample and
// broadcasts across the class dimension. gamma ≥ 0 controls how aggressively
// well-classified elements are down-weighted. avgFactor substitutes for the
// raw element count under ReductionMean, e.g. to normalize by the number of
// positive samples.
func SigmoidFocalLoss(pred, target mat.Matrix, weight *mat.VecDense, gamma float64, alpha Alpha, reduction Reduction, avgFactor *float64) (loss *Loss, err error) {
	defer errors.Recover(&err, "SigmoidFocalLoss")
	const op = "SigmoidFocalLoss"

	r, c, err := checkPredTarget(op, pred, target)
	if err != nil {
		return nil, err
	}
	if gamma < 0 {
		return nil, errors.NewInvalidArgumentError(op, "gamma", "must be non-negative", gamma)
	}
	if !reduction.Valid() {
		return nil, errors.NewInvalidArgumentError(op, "reduction",
			"must be one of 'none', 'mean' or 'sum'", string(reduction))
	}
	if err := alpha.validate(op, r, c); err != nil {
		return nil, err
	}

	elems := mat.NewDense(r, c, nil)
	parallel.ParallelizeWithThreshold(r, parallelRowThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			for j := 0; j < c; j++ {
				x := pred.At(i, j)
				t := target.At(i, j)
				p := sigmoid(x)
				pt := (1-p)*t + p*(1-t)
				av := alpha.at(i, j)
				focalWeight := (av*t + (1-av)*(1-t)) * math.Pow(pt, gamma)
				elems.Set(i, j, focalWeight*bceWithLogits(x, t))
			}
		}
	})

	return weightReduceLoss(op, elems, weight, reduction, avgFactor)
}

// FocalLoss is a module wrapper around SigmoidFocalLoss holding an immutable
// configuration, for use by training loops that instantiate losses once and
// call Forward per batch.
type FocalLoss struct {
	gamma      float64
	alpha      Alpha
	reduction  Reduction
	lossWeight float64
}

// FocalLossOption configures a FocalLoss.
type FocalLossOption func(*FocalLoss)

// WithGamma sets the focusing exponent (default 2.0).
func WithGamma(gamma float64) FocalLossOption {
	return func(l *FocalLoss) { l.gamma = gamma }
}

// WithAlpha sets the class-balancing factor (default ScalarAlpha(0.25)).
func WithAlpha(alpha Alpha) FocalLossOption {
	return func(l *FocalLoss) { l.alpha = alpha }
}

// WithReduction sets the reduction mode (default ReductionMean).
func WithReduction(reduction Reduction) FocalLossOption {
	return func(l *FocalLoss) { l.reduction = reduction }
}

// WithLossWeight sets the scalar multiplier applied to the final loss
// (default 1.0).
func WithLossWeight(w float64) FocalLossOption {
	return func(l *FocalLoss) { l.lossWeight = w }
}

// NewFocalLoss creates a FocalLoss with the standard defaults of the original
// formulation: gamma 2.0, alpha 0.25, reduction 'mean', loss weight 1.0.
func NewFocalLoss(opts ...FocalLossOption) *FocalLoss {
	l := &FocalLoss{
		gamma:      2.0,
		alpha:      ScalarAlpha(0.25),
		reduction:  ReductionMean,
		lossWeight: 1.0,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Forward computes the loss. A non-empty reductionOverride takes precedence
// over the configured reduction; the result is scaled by the configured loss
// weight.
func (l *FocalLoss) Forward(pred, target mat.Matrix, weight *mat.VecDense, avgFactor *float64, reductionOverride Reduction) (*Loss, error) {
	const op = "FocalLoss.Forward"

	if reductionOverride != "" && !reductionOverride.Valid() {
		return nil, errors.NewInvalidArgumentError(op, "reduction_override",
			"must be empty or one of 'none', 'mean' or 'sum'", string(reductionOverride))
	}
	reduction := l.reduction
	if reductionOverride != "" {
		reduction = reductionOverride
	}

	loss, err := SigmoidFocalLoss(pred, target, weight, l.gamma, l.alpha, reduction, avgFactor)
	if err != nil {
		return nil, err
	}
	loss.scale(l.lossWeight)
	return loss, nil
}
