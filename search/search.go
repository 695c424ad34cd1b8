// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package search provides the public API for the model-selection loop:
// repeated training rounds across hidden sizes with best-by-train and
// best-by-validation registries.
package search

import (
	"github.com/born-ml/shallow/internal/search"
)

// Config holds the knobs for one model search.
type Config = search.Config

// Search runs the model-selection loop.
type Search = search.Search

// Report is the outcome of a full search.
type Report = search.Report

// Best is one best-model registry entry.
type Best = search.Best

// Registry tracks the lowest loss seen for a single criterion.
type Registry = search.Registry

// SizeSummary aggregates per-round results for one hidden size.
type SizeSummary = search.SizeSummary

// Hooks bundles the optional observers.
type Hooks = search.Hooks

// RoundHook observes round boundaries.
type RoundHook = search.RoundHook

// New creates a Search.
func New(cfg Config, hooks Hooks) (*Search, error) {
	return search.New(cfg, hooks)
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return search.NewRegistry()
}
