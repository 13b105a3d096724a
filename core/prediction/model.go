package prediction

// Model is a pretrained regression artifact producing a travel time in
// minutes from an ordered feature slice.
type Model interface {
	// Predict evaluates the model on one input row.
	Predict(x []float64) (float64, error)

	// FeatureNames returns the feature ordering the model was trained
	// with, or nil when the model does not declare one. Callers must then
	// feed features in sorted-key order.
	FeatureNames() []string
}

// EnsembleModel is a Model built from independent sub-predictors whose
// disagreement serves as an uncertainty proxy. The variant is fixed at
// model-load time; there is no runtime capability probing.
type EnsembleModel interface {
	Model

	// Members returns the sub-predictors in training order.
	Members() []Model
}
