// Package orchestrator wires the loader → parser → model builder → UI schema
// pipeline that turns the forms document into form definitions, and renders
// them through a renderer registry.
package orchestrator
