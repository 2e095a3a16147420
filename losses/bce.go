package losses

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/imba-go/imbaloss/core/parallel"
	"github.com/imba-go/imbaloss/pkg/errors"
)

// parallelRowThreshold is the batch size below which the elementwise kernels
// run sequentially. Small batches do not amortize goroutine startup.
const parallelRowThreshold = 512

// sigmoid computes the logistic transform 1/(1+e^-x).
func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

// bceWithLogits computes binary cross-entropy directly from a logit using the
// log-sum-exp-stable formulation:
//
//	max(x, 0) - x*t + log(1 + exp(-|x|))
//
// The naive -t*log(sigmoid(x)) - (1-t)*log(1-sigmoid(x)) overflows to Inf for
// large |x|; this form stays finite for the full float64 range.
func bceWithLogits(x, t float64) float64 {
	return math.Max(x, 0) - x*t + math.Log1p(math.Exp(-math.Abs(x)))
}

// checkPredTarget validates the shared preconditions of the elementwise
// losses: prediction and target must have identical, non-empty shapes.
// Returns the common dimensions.
func checkPredTarget(op string, pred, target mat.Matrix) (int, int, error) {
	r, c := pred.Dims()
	tr, tc := target.Dims()
	if r != tr || c != tc {
		return 0, 0, errors.NewShapeMismatchError(op, []int{r, c}, []int{tr, tc})
	}
	if r == 0 || c == 0 {
		return 0, 0, errors.NewInvalidArgumentError(op, "pred", "empty input", []int{r, c})
	}
	return r, c, nil
}

// BCEWithLogitsLoss computes an elementwise binary cross-entropy loss from
// logits, then applies the shared weight/reduction contract.
//
// pred and target are n_samples×n_classes matrices of identical shape (rank-1
// inputs are n×1, e.g. *mat.VecDense); target values are binary indicators.
// weight, when non-nil, holds one multiplier per sample and broadcasts across
// the class dimension. avgFactor substitutes for the raw element count under
// ReductionMean.
func BCEWithLogitsLoss(pred, target mat.Matrix, weight *mat.VecDense, reduction Reduction, avgFactor *float64) (loss *Loss, err error) {
	defer errors.Recover(&err, "BCEWithLogitsLoss")
	const op = "BCEWithLogitsLoss"

	r, c, err := checkPredTarget(op, pred, target)
	if err != nil {
		return nil, err
	}
	if !reduction.Valid() {
		return nil, errors.NewInvalidArgumentError(op, "reduction",
			"must be one of 'none', 'mean' or 'sum'", string(reduction))
	}

	elems := mat.NewDense(r, c, nil)
	parallel.ParallelizeWithThreshold(r, parallelRowThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			for j := 0; j < c; j++ {
				elems.Set(i, j, bceWithLogits(pred.At(i, j), target.At(i, j)))
			}
		}
	})

	return weightReduceLoss(op, elems, weight, reduction, avgFactor)
}

// BCELoss is a module wrapper around BCEWithLogitsLoss holding an immutable
// reduction mode and loss weight.
type BCELoss struct {
	reduction  Reduction
	lossWeight float64
}

// NewBCELoss creates a BCELoss with the given reduction mode and loss weight.
func NewBCELoss(reduction Reduction, lossWeight float64) *BCELoss {
	return &BCELoss{
		reduction:  reduction,
		lossWeight: lossWeight,
	}
}

// NewBCELossDefault creates a BCELoss with reduction 'mean' and loss weight 1.
func NewBCELossDefault() *BCELoss {
	return NewBCELoss(ReductionMean, 1.0)
}

// Forward computes the loss. A non-empty reductionOverride takes precedence
// over the configured reduction; the result is scaled by the configured loss
// weight.
func (l *BCELoss) Forward(pred, target mat.Matrix, weight *mat.VecDense, avgFactor *float64, reductionOverride Reduction) (*Loss, error) {
	const op = "BCELoss.Forward"

	if reductionOverride != "" && !reductionOverride.Valid() {
		return nil, errors.NewInvalidArgumentError(op, "reduction_override",
			"must be empty or one of 'none', 'mean' or 'sum'", string(reductionOverride))
	}
	reduction := l.reduction
	if reductionOverride != "" {
		reduction = reductionOverride
	}

	loss, err := BCEWithLogitsLoss(pred, target, weight, reduction, avgFactor)
	if err != nil {
		return nil, err
	}
	loss.scale(l.lossWeight)
	return loss, nil
}
