// Package report formats search statistics as tables, for periodic
// progress dumps and the final summary printed on exit.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/go-bsat/bsat/internal/sat"
)

// Periodic renders a single-row snapshot of the running search stats,
// intended to be called from a progress-signal handler.
func Periodic(w io.Writer, stats sat.Stats, elapsed time.Duration) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"time", "conflicts", "decisions", "restarts", "reductions"})
	table.Append([]string{
		elapsed.Truncate(time.Millisecond).String(),
		fmt.Sprint(stats.Conflicts),
		fmt.Sprint(stats.Decisions),
		fmt.Sprint(stats.Restarts),
		fmt.Sprint(stats.Reductions),
	})
	table.Render()
}

// Summary renders the final outcome and full stats after Solve returns.
func Summary(w io.Writer, result sat.Result, stats sat.Stats, elapsed time.Duration) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"metric", "value"})
	table.Append([]string{"result", resultString(result)})
	table.Append([]string{"conflicts", fmt.Sprint(stats.Conflicts)})
	table.Append([]string{"decisions", fmt.Sprint(stats.Decisions)})
	table.Append([]string{"propagations", fmt.Sprint(stats.Propagations)})
	table.Append([]string{"restarts", fmt.Sprint(stats.Restarts)})
	table.Append([]string{"reductions", fmt.Sprint(stats.Reductions)})
	table.Append([]string{"time", elapsed.Truncate(time.Millisecond).String()})
	table.Render()
}

func resultString(r sat.Result) string {
	switch r {
	case sat.Sat:
		return "SATISFIABLE"
	case sat.Unsat:
		return "UNSATISFIABLE"
	default:
		return "UNKNOWN"
	}
}
