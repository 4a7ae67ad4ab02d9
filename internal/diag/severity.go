package diag

// Severity ranks how serious a diagnostic is. Structural repairs surface
// as warnings; only conditions that reject a file outright are errors.
type Severity uint8

const (
	// SevInfo — informational, never affects the exit code.
	SevInfo Severity = iota
	// SevWarning — a repair or a suspicious construct; processing continued.
	SevWarning
	// SevError — the file could not be processed safely.
	SevError
)

var severityNames = [...]string{"INFO", "WARNING", "ERROR"}

func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s]
	}
	return "UNKNOWN"
}
