// Package orchestrator wires schema building, presentation loading,
// cross-block checks and atomic output into a single entry point. The zero
// configuration generates the PSUR template from the embedded presentation
// document.
package orchestrator
