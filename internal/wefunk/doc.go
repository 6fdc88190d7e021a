// Package wefunk turns WEFUNK RADIO show pages into cue sheet data.
//
// The package handles three concerns:
//
//  1. Resolving the media filename by probing the stream redirect
//  2. Resolving the broadcast date from the filename or the page
//  3. Reconciling the page's track sources into one track list
//
// # Filename Resolution
//
//	resolver := wefunk.NewFilenameResolver(site, client, logger)
//	media, ok := resolver.Probe(ctx, 386)
//	if !ok {
//	    media = model.SynthesizeMedia(show, site)
//	}
//
// # Date Resolution
//
//	dates := wefunk.NewDateResolver(logger)
//	date, source := dates.Resolve(wefunk.DateInput{Filename: media.Filename, Page: page})
//	if source == wefunk.DateUnresolved {
//	    // warn, the placeholder date is used
//	}
//
// # Track Reconciliation
//
//	tracks, err := wefunk.NewReconciler(site, logger).Reconcile(page)
//
// # Page Data Format
//
// A show page embeds two script assignments, `var trackextra = [...]`
// holding artist/title pairs and `var tracks = [...]` holding millisecond
// offsets, next to a `ul.playlistregular` list rendering the same tracks
// for humans. The sub-package dto normalizes the script payload shapes.
package wefunk
