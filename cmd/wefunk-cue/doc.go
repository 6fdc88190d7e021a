// Command wefunk-cue writes cue sheets for a range of WEFUNK Radio shows.
//
// Usage:
//
//	wefunk-cue 386
//	wefunk-cue --start 380 --end 390 -o /music/wefunk
//	wefunk-cue --config wefunk-cue.toml --tag
//
// Without a show number or --start/--end the command prompts for them.
// Media names marked with * in the summary were synthesized because the
// stream probe failed.
package main
