package audio

import (
	"fmt"
	"strings"
	"time"

	"github.com/handiism/wefunk-cue/internal/model"
)

// FramesPerSecond is the cue sheet INDEX resolution.
const FramesPerSecond = 75

// CueSheetCreator renders cue sheets.
//
// The output is the classic single-file cue layout. Every line after the
// first starts with a newline and the sheet has no trailing newline:
//
//	TITLE "WEFUNK SHOW #386"
//	PERFORMER "WEFUNK RADIO"
//	REM Year  : 2006
//	REM Genre : HipHop
//	FILE "WEFUNK_Show_386_2006-12-07_hq.mp3" MP3
//		TRACK 01 AUDIO
//			TITLE "intro"
//			PERFORMER "WEFUNK RADIO"
//			INDEX 01 00:00:00
//
// Example:
//
//	content := NewCueSheetCreator().CreateCueSheet(sheet)
//	os.WriteFile(cuePath, []byte(content), 0644)
type CueSheetCreator struct{}

// NewCueSheetCreator creates a new CueSheetCreator.
func NewCueSheetCreator() *CueSheetCreator {
	return &CueSheetCreator{}
}

// CreateCueSheet generates the cue sheet text for a sheet.
//
// Double quotes in track titles and performers are replaced with single
// quotes; nothing else is escaped.
func (c *CueSheetCreator) CreateCueSheet(sheet *model.CueSheet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("TITLE \"%s\"", sheet.Title))
	sb.WriteString(fmt.Sprintf("\nPERFORMER \"%s\"", sheet.Performer))
	sb.WriteString(fmt.Sprintf("\nREM Year  : %s", sheet.Year))
	sb.WriteString(fmt.Sprintf("\nREM Genre : %s", sheet.Genre))
	sb.WriteString(fmt.Sprintf("\nFILE \"%s\" MP3", sheet.FileName))

	for _, track := range sheet.Tracks {
		sb.WriteString(fmt.Sprintf("\n\tTRACK %02d AUDIO", track.Number))
		sb.WriteString(fmt.Sprintf("\n\t\tTITLE \"%s\"", quoteSafe(track.Title)))
		sb.WriteString(fmt.Sprintf("\n\t\tPERFORMER \"%s\"", quoteSafe(track.Artist)))
		sb.WriteString(fmt.Sprintf("\n\t\tINDEX 01 %s", FormatIndex(track.StartsAt)))
	}

	return sb.String()
}

// FormatIndex renders an offset as MM:SS:FF. Minutes are not wrapped into
// hours. Frames are truncated to 1/75 second.
//
//	FormatIndex(61500 * time.Millisecond) // "01:01:37"
func FormatIndex(offset time.Duration) string {
	totalSeconds := int64(offset / time.Second)
	minutes := totalSeconds / 60
	seconds := totalSeconds % 60
	subSecond := (offset % time.Second).Microseconds()
	frames := subSecond * FramesPerSecond / int64(time.Second/time.Microsecond)

	return fmt.Sprintf("%02d:%02d:%02d", minutes, seconds, frames)
}

func quoteSafe(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}
