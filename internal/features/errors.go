// Package features implements the placement engine: a type-keyed registry
// of feature builders driven by a generic reconcile-build-validate-retry
// controller, plus the composite platform/ramp assembler.
package features

import (
	"errors"
	"fmt"
)

// DelayError means a referenced label does not exist yet. The engine
// re-queues the request after other features commit; only when the global
// delay ceiling is exhausted does it become a hard configuration error.
type DelayError struct {
	Label  string
	Reason string
}

func (e *DelayError) Error() string {
	return fmt.Sprintf("delayed: %s (label %q)", e.Reason, e.Label)
}

// Delayf builds a DelayError for the given label.
func Delayf(label, format string, args ...any) error {
	return &DelayError{Label: label, Reason: fmt.Sprintf(format, args...)}
}

// IsDelay reports whether the error chain contains a DelayError.
func IsDelay(err error) bool {
	var d *DelayError
	return errors.As(err, &d)
}

// ConfigError means the request is structurally unsatisfiable no matter
// how often it is resampled. Fatal and reported immediately.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "invalid configuration: " + e.Reason
}

// Configf builds a ConfigError.
func Configf(format string, args ...any) error {
	return &ConfigError{Reason: fmt.Sprintf(format, args...)}
}

// IsConfig reports whether the error chain contains a ConfigError.
func IsConfig(err error) bool {
	var c *ConfigError
	return errors.As(err, &c)
}

// PlacementError means one randomized attempt was geometrically
// infeasible. The controller recovers by retrying with a fresh
// resolution; it only surfaces after the retry budget is spent.
type PlacementError struct {
	Feature  string
	Attempts int
	Reason   string
	// Config holds the last reconciled configuration for diagnosis.
	Config any
}

func (e *PlacementError) Error() string {
	if e.Attempts > 0 {
		return fmt.Sprintf(
			"failed to place %s after %d attempts: %s",
			e.Feature, e.Attempts, e.Reason)
	}
	return fmt.Sprintf("failed to place %s: %s", e.Feature, e.Reason)
}

// Placementf builds a retry-eligible PlacementError.
func Placementf(feature, format string, args ...any) error {
	return &PlacementError{Feature: feature, Reason: fmt.Sprintf(format, args...)}
}
