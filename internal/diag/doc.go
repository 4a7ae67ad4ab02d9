// Package diag carries diagnostics produced by the reindent pipeline:
// severities, stable numeric codes, the Bag accumulator, and the Reporter
// contract phases use to emit without depending on presentation.
package diag
