// Package audio renders cue sheets and writes show metadata into local
// media files.
//
// # Cue Sheets
//
//	creator := audio.NewCueSheetCreator()
//	content := creator.CreateCueSheet(sheet)
//	os.WriteFile("WEFUNK_Show_386_2006-12-07_hq.cue", []byte(content), 0644)
//
// INDEX values are MM:SS:FF with 75 frames per second; sub-frame precision
// is truncated.
//
// # ID3 Tagging
//
// When the show's MP3 already sits next to the cue sheet, the Tagger can
// write the sheet metadata into it:
//
//	tagger := audio.NewTagger(audio.DefaultTagConfig())
//	err := tagger.SaveTags(mediaPath, show, sheet)
//
// The tagger supports:
//   - Title, Artist, Album
//   - Year and broadcast date
//   - Genre
//   - A comment frame holding the tracklist
package audio
