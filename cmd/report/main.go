// Command report prints the damage summary for the survey sheet or exports
// it as an Excel workbook.
//
// Usage:
//
//	report summary --room 12 --type ผนังร้าว
//	report export --out report.xlsx
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand(newPipeline).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
