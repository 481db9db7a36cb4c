// Package features provides a feature flag system for gating optional
// behavior, with priority resolution from CLI overrides, config file
// values, and compiled-in defaults.
//
// Detector exposes the touch_input flag as the capability check panels
// use to pick between wheel and touch bindings.
package features
