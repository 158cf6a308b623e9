// Command pos-backfill republishes historical POS orders onto the POS orders
// topic, for recovering from missed push deliveries. Input is a JSON array of
// order events, one file per run.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/dapurnusa/resto_backend/possync"
)

func main() {
	file := flag.String("file", "", "Path to a JSON array of order events.")
	dryRun := flag.Bool("dry-run", false, "Validate and print events without publishing.")
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "usage: pos-backfill -file orders.json [-dry-run]")
		os.Exit(1)
	}

	raw, err := os.ReadFile(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read %s: %v\n", *file, err)
		os.Exit(1)
	}

	var events []possync.OrderEvent
	if err := json.Unmarshal(raw, &events); err != nil {
		fmt.Fprintf(os.Stderr, "parse %s: %v\n", *file, err)
		os.Exit(1)
	}
	if len(events) == 0 {
		fmt.Fprintln(os.Stderr, "no events in file")
		os.Exit(1)
	}

	ctx := context.Background()
	published := 0
	failed := 0
	for _, event := range events {
		if event.OrderNumber == "" || event.OutletId == "" {
			fmt.Fprintf(os.Stderr, "skipping event without order_number/outlet_id: %+v\n", event)
			failed++
			continue
		}
		if *dryRun {
			fmt.Printf("would publish %s (%s %s)\n", event.OrderNumber, event.OutletId, event.OrderDate)
			published++
			continue
		}
		if err := possync.PublishOrderEvent(ctx, event); err != nil {
			fmt.Fprintf(os.Stderr, "publish %s: %v\n", event.OrderNumber, err)
			failed++
			continue
		}
		published++
	}

	fmt.Printf("done: published=%d failed=%d\n", published, failed)
	if failed > 0 {
		os.Exit(1)
	}
}
