package display

import (
	"time"

	"github.com/pterm/pterm"
)

// RunSummary is the outcome of one schema generation run, shaped for
// both terminal rendering and JSON output.
type RunSummary struct {
	RunID      string   `json:"run_id"`
	Source     string   `json:"source"`
	Outputs    []string `json:"outputs"`
	Classes    int      `json:"classes"`
	Slots      int      `json:"slots"`
	Enums      int      `json:"enums"`
	UniqueKeys int      `json:"unique_keys"`
	Rules      int      `json:"rules"`
	DurationMS int64    `json:"duration_ms"`
}

// RenderRunSummary pretty-prints a generation outcome for terminal use.
func RenderRunSummary(s RunSummary) {
	pterm.Success.Printf("Schema generated from %s\n", s.Source)
	pterm.Println()

	pterm.Info.Println("Statistics:")
	pterm.Printf("  Classes:     %d\n", s.Classes)
	pterm.Printf("  Slots:       %d\n", s.Slots)
	pterm.Printf("  Enums:       %d\n", s.Enums)
	pterm.Printf("  Unique keys: %d\n", s.UniqueKeys)
	pterm.Printf("  Rules:       %d\n", s.Rules)
	pterm.Println()

	for _, out := range s.Outputs {
		pterm.Info.Printf("Wrote %s\n", out)
	}
	pterm.Printf("Completed in %s (run %s)\n",
		(time.Duration(s.DurationMS) * time.Millisecond).Round(time.Millisecond), s.RunID)
}
