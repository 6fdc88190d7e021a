package main

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/handiism/wefunk-cue/internal/download"
	"github.com/handiism/wefunk-cue/internal/wefunk"
)

func renderSummary(results []download.Result) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Show", "Date", "Media", "Tracks", "Status"})

	for _, r := range results {
		tw.AppendRow(table.Row{
			strconv.Itoa(r.Show),
			dateCell(r),
			mediaCell(r),
			tracksCell(r),
			statusCell(r),
		})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 4, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})

	return tw.Render()
}

func dateCell(r download.Result) string {
	switch {
	case r.Status == download.StatusSkipped:
		return "-"
	case !r.DateKnown || r.DateSource == wefunk.DateUnresolved:
		return "unknown"
	default:
		return r.Date.Format("2006-01-02") + " (" + string(r.DateSource) + ")"
	}
}

func mediaCell(r download.Result) string {
	if r.Filename == "" {
		return "-"
	}
	if !r.FilenameObserved {
		return r.Filename + " *"
	}
	return r.Filename
}

func tracksCell(r download.Result) string {
	if r.Status != download.StatusSaved && r.Status != download.StatusWriteFailed {
		return "-"
	}
	return strconv.Itoa(r.Tracks)
}

func statusCell(r download.Result) string {
	status := string(r.Status)
	if r.Tagged {
		status += ", tagged"
	}
	return status
}
