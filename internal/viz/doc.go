// Package viz renders spectra, histograms and run status for the terminal.
//
// Plots are drawn with asciigraph; headings and status markers use
// lipgloss styles shared with the watch view.
package viz
