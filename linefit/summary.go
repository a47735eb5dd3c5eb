package main

import (
	"bitbucket.org/Davydov/linefit/optimize"
	"bitbucket.org/Davydov/linefit/stats"
)

// RunSummary stores linefit run summary information.
type RunSummary struct {
	// Version stores linefit version.
	Version string `json:"version"`
	// CommandLine is an array storing binary name and all command-line parameters.
	CommandLine []string `json:"commandLine"`
	// Seed is the seed used for random number generation initialization.
	Seed int64 `json:"seed"`
	// LeastSquares is the weighted least-squares estimate of (m, b).
	LeastSquares map[string]float64 `json:"leastSquares,omitempty"`
	// Optimizer is the maximum-likelihood optimization summary.
	Optimizer optimize.Summary `json:"optimizer"`
	// Walkers is the number of ensemble walkers.
	Walkers int `json:"walkers"`
	// Steps is the number of sampling steps actually performed.
	Steps int `json:"steps"`
	// Burnin is the number of discarded steps per walker.
	Burnin int `json:"burnin"`
	// Estimates are the posterior credible intervals, including the
	// f transform of lnf.
	Estimates []stats.Estimate `json:"estimates"`
	// Time is the computations time in seconds.
	Time float64 `json:"time"`
}
