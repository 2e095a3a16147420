// Package losses provides classification loss functions for imbalanced
// datasets, built on gonum matrices.
//
// Each loss exists in two forms: a bare function taking every parameter per
// call (SigmoidFocalLoss, BCEWithLogitsLoss), and a module wrapper holding an
// immutable configuration for use inside training loops (FocalLoss, BCELoss).
// Both forms share one weight/reduction contract: an optional per-sample
// weight vector broadcasts across the class dimension, and a Reduction mode
// collapses the per-element loss matrix to a scalar (or leaves it unreduced).
//
// All computations are pure: no state is shared between calls, and the same
// inputs always produce the same outputs, so losses are safe for concurrent
// use.
//
// Example:
//
//	loss := losses.NewFocalLoss(losses.WithGamma(2.0))
//	out, err := loss.Forward(pred, target, nil, nil, "")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(out.Scalar())
package losses
