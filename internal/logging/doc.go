// Package logging builds the zap loggers used for diagnostics.
//
// User facing progress is reported through download.ProgressEvent; the
// logger carries the structured detail behind it (probe failures, date
// sources, metadata/timing mismatches).
package logging
