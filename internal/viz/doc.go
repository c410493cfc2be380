// Package viz renders simulation results for the terminal.
//
// Everything here is a pure function of its arguments: a result goes in and
// a string comes out, so the same helpers serve the CLI and the TUI.
//
//   - [Plots]: contaminant and biomass time series drawn with asciigraph
//   - [Phase]: the biomass/contaminant plane as a character grid
//   - [Interpretation]: the outcome sentence in a bordered box
//   - [Articles]: the reading list as cards
package viz
