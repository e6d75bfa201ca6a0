package styles

import "strings"

// Status symbols
const (
	SymbolOK      = "✓"
	SymbolSkipped = "→"
	SymbolFailed  = "✗"
	SymbolIgnored = "·"
)

// FormatStatus renders a status word with a symbol and color. Unknown
// statuses are returned unstyled.
//
// Recognized prefixes: "moved"/"placed" (success), "skipped"/"misplaced"
// (warning), "failed"/"unreadable" (error), "no-origin"/"local" (muted).
func FormatStatus(status string) string {
	switch {
	case status == "moved", status == "placed":
		return SuccessStyle.Render(SymbolOK + " " + status)
	case strings.HasPrefix(status, "skipped"):
		return WarningStyle.Render(SymbolSkipped + " " + status)
	case status == "misplaced":
		return WarningStyle.Render(SymbolSkipped + " " + status)
	case status == "failed", status == "unreadable":
		return ErrorStyle.Render(SymbolFailed + " " + status)
	case status == "no-origin", status == "local":
		return MutedStyle.Render(SymbolIgnored + " " + status)
	default:
		return status
	}
}
