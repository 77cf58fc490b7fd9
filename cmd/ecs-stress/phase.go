package main

//go:generate go tool stringer -type=Phase -trimprefix=Phase

// Phase is a step of the particle simulation. Systems are registered in
// phase order and named after their phase.
type Phase int

const (
	PhaseSpawn Phase = iota
	PhaseIntegrate
	PhaseDecay
	PhaseCull
)
