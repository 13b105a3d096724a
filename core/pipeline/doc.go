// Package pipeline sequences the prediction stages: feature engineering,
// model estimation, optional same-day traffic adjustment, wait-time
// addition, congestion classification and alert composition. It owns the
// fallback policy: external failures degrade, only unexpected internal
// failures surface to the caller.
package pipeline
