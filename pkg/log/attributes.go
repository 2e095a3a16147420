// Package log defines standard attribute keys for loss computations.
//
// Using these keys consistently enables structured log filtering across
// training pipelines that embed ImbaLoss. Keys follow a hierarchical naming
// convention (e.g. "loss.name", "data.samples").

package log

// Loss and operation context.
const (
	// LossNameKey identifies the loss function being evaluated.
	// Examples: "FocalLoss", "BCELoss"
	LossNameKey = "loss.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "forward", "reduce"
	OperationKey = "loss.operation"

	// ReductionKey records the reduction mode in effect.
	// Values: "none", "mean", "sum"
	ReductionKey = "loss.reduction"

	// GammaKey records the focusing exponent of a focal loss.
	GammaKey = "loss.gamma"

	// AlphaKey records the class-balancing factor of a focal loss.
	AlphaKey = "loss.alpha"

	// LossWeightKey records the scalar multiplier applied by a module wrapper.
	LossWeightKey = "loss.weight"

	// AvgFactorKey records the external normalization divisor, if any.
	AvgFactorKey = "loss.avg_factor"
)

// Data shape and characteristics.
const (
	// SamplesKey indicates the number of samples (rows) in the batch.
	SamplesKey = "data.samples"

	// ClassesKey indicates the number of classes (columns) in the batch.
	ClassesKey = "data.classes"

	// WeightedKey indicates whether a per-sample weight vector was supplied.
	WeightedKey = "data.weighted"
)

// Performance metrics.
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// LossValueKey records the reduced loss value.
	LossValueKey = "metrics.loss"
)

// Error and warning context.
const (
	// ErrorCodeKey provides a structured error code for programmatic handling.
	// Examples: "SHAPE_MISMATCH", "INVALID_ARGUMENT"
	ErrorCodeKey = "error.code"

	// ErrorTypeKey categorizes the type of error encountered.
	// Examples: "ShapeMismatchError", "InvalidArgumentError"
	ErrorTypeKey = "error.type"

	// SuggestionKey provides helpful suggestions for resolving issues.
	// Examples: "Check that pred and target have identical shapes"
	SuggestionKey = "error.suggestion"
)

// Standard error codes.
const (
	ErrorShapeMismatch   = "SHAPE_MISMATCH"
	ErrorInvalidArgument = "INVALID_ARGUMENT"
	ErrorEmptyData       = "EMPTY_DATA"
	ErrorNumerical       = "NUMERICAL_INSTABILITY"
)
