package root

import (
	"fmt"
	"io"

	"studyquest/internal/engine"
	"studyquest/internal/ui"
)

// printResult prints a result, preceded by any day rollover that happened
// while the command ran.
func printResult(w io.Writer, res engine.Result) {
	printDay(w, res.Day)
	fmt.Fprintln(w, ui.OutcomeLine(res))
	for _, line := range ui.EventLines(res) {
		fmt.Fprintln(w, line)
	}
}

// printDay announces what opening today's session changed.
func printDay(w io.Writer, day engine.DayResult) {
	for _, line := range ui.DayLines(day) {
		fmt.Fprintln(w, line)
	}
}
