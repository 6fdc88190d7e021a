// Package model defines the core data structures used throughout
// wefunk-cue.
//
// # Show identity
//
// ShowIdentity carries the show number and its resolved broadcast date.
// When no date could be resolved the date is UnknownShowDate:
//
//	show := model.NewShowIdentity(386, date)
//	fmt.Println(show.Year())
//
// # Media reference
//
// MediaReference names the show's audio file, either observed from the
// stream probe or synthesized:
//
//	media := model.SynthesizeMedia(show, site)
//	fmt.Println(media.CueFileName(site)) // WEFUNK_Show_386_2006-12-07_hq.cue
//
// # Cue sheet
//
// CueSheet holds the sheet-level metadata and the ordered tracks:
//
//	sheet := model.NewCueSheet(show, media, site)
//	sheet.AddTrack(model.NewTrack(1, site.Brand, "intro", 0))
//
// # Site configuration
//
// SiteConfig collects the URLs, brand strings and naming rules of the radio
// site. DefaultSiteConfig returns the values for wefunkradio.com.
package model
