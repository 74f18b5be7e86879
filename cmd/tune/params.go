// Package main provides CMA-ES tuning for blob material parameters.
package main

import (
	"github.com/pthm-cable/clay/config"
)

// ParamSpec defines a single tunable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all tunable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of tunable material
// parameters. Counts, timestep and gesture thresholds stay locked;
// tuning only touches what shapes the material response.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "cohesion", Path: "blob.cohesion", Min: 0.02, Max: 0.40, Default: 0.12},
			{Name: "surface_tension", Path: "blob.surface_tension", Min: 0.0005, Max: 0.02, Default: 0.003},
			{Name: "anchor", Path: "blob.anchor", Min: 0.0, Max: 0.2, Default: 0.05},
			{Name: "rest_pull", Path: "blob.rest_pull", Min: 0.005, Max: 0.08, Default: 0.02},
			{Name: "rest_adapt_rate", Path: "blob.rest_adapt_rate", Min: 0.002, Max: 0.05, Default: 0.01},
			{Name: "damping", Path: "blob.damping", Min: 0.85, Max: 0.99, Default: 0.92},
			{Name: "separation_strength", Path: "blob.separation_strength", Min: 0.1, Max: 1.0, Default: 0.5},
			{Name: "merge_distance", Path: "blob.merge_distance", Min: 0.4, Max: 1.6, Default: 0.9},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := v[i]
		if val < spec.Min {
			val = spec.Min
		}
		if val > spec.Max {
			val = spec.Max
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)

	i := 0
	cfg.Blob.Cohesion = clamped[i]
	i++
	cfg.Blob.SurfaceTension = clamped[i]
	i++
	cfg.Blob.Anchor = clamped[i]
	i++
	cfg.Blob.RestPull = clamped[i]
	i++
	cfg.Blob.RestAdaptRate = clamped[i]
	i++
	cfg.Blob.Damping = clamped[i]
	i++
	cfg.Blob.SeparationStrength = clamped[i]
	i++
	cfg.Blob.MergeDistance = clamped[i]
}

// ExtractFromConfig extracts current parameter values from a Config.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.Blob.Cohesion,
		cfg.Blob.SurfaceTension,
		cfg.Blob.Anchor,
		cfg.Blob.RestPull,
		cfg.Blob.RestAdaptRate,
		cfg.Blob.Damping,
		cfg.Blob.SeparationStrength,
		cfg.Blob.MergeDistance,
	}
}
