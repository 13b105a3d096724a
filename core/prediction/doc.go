// Package prediction wraps a pretrained travel-time regression model and
// turns its raw output into a point estimate with a confidence band. The
// band comes from ensemble disagreement when the model exposes sub-models,
// otherwise from a fixed ±15% margin.
package prediction
