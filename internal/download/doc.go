// Package download provides the orchestration that turns a range of
// WEFUNK shows into cue sheets.
//
// # Manager
//
// The Manager coordinates the per-show pipeline:
//
//  1. Fetch the show page and probe the stream endpoint (concurrently)
//  2. Resolve the broadcast date
//  3. Use the probed media filename, or synthesize one
//  4. Reconcile track metadata with timing data
//  5. Write the cue sheet to the output directory
//  6. Tag the local media file (optional)
//
// # Basic Usage
//
//	manager := download.NewManager(settings, logger, func(event download.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//
//	results, err := manager.Run(ctx, 380, 390)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Concurrency
//
// Shows are processed one after another. Only the page fetch and the
// stream probe of a single show overlap. The context is checked between
// shows, so cancelling it stops the range after the current show.
//
// # Progress Tracking
//
// Progress is reported via a callback function that receives ProgressEvent:
//
//	type ProgressEvent struct {
//	    Show    int
//	    Message string
//	    Level   ProgressLevel // Info, Verbose, Warning, Error, Success
//	}
//
// Every per-show failure (unreachable page, missing track data, write
// error) is reported as an event and recorded in the show's Result; the
// range always continues.
package download
