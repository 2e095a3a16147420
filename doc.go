// Package imbaloss provides classification loss functions for imbalanced
// datasets, designed for Go training loops that need PyTorch-style loss
// semantics on gonum matrices.
//
// The centerpiece is the sigmoid focal loss, which down-weights
// well-classified examples via a (1-p_t)^gamma modulating factor so that
// training focuses on hard or misclassified examples. A numerically stable
// binary cross-entropy with logits is included as the base loss, sharing the
// same per-sample weight and reduction contract.
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/imba-go/imbaloss/losses"
//	    "gonum.org/v1/gonum/mat"
//	)
//
//	func main() {
//	    pred := mat.NewDense(2, 3, []float64{2.1, -1.0, -0.5, -0.3, 1.7, -2.2})
//	    target := mat.NewDense(2, 3, []float64{1, 0, 0, 0, 1, 0})
//
//	    loss := losses.NewFocalLoss(losses.WithGamma(2.0))
//	    out, err := loss.Forward(pred, target, nil, nil, "")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println("focal loss:", out.Scalar())
//	}
//
// # Packages
//
//   - losses: focal loss and binary cross-entropy with the shared
//     weight/reduction contract
//   - pkg/errors: structured error taxonomy (shape mismatch, invalid
//     argument) with stack traces and warnings
//   - pkg/log: slog-based structured logging with stack-trace extraction
//   - core/parallel: chunked worker helpers used by the elementwise kernels
//
// All loss computations are pure functions over their inputs and are safe to
// call concurrently without coordination.
package imbaloss
