// Package dto holds the loosely typed payloads embedded in show page
// scripts and normalizes each of them to a single canonical shape before
// reconciliation runs.
package dto
