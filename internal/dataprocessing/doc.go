// Package dataprocessing parses the delimited monthly market exports into
// typed observations.
//
// The exports are RFC-4180-style CSV with one row per geography per month.
// Parsing is deliberately lenient: rows with mismatched field counts or
// unusable dates are dropped and counted, never fatal, because a single
// malformed row must not abort ingestion of an otherwise good file. Only an
// unreadable header or a missing date column fails the whole parse.
//
// Numeric cells become *float64: an empty or non-numeric cell is a missing
// value, which downstream layers keep distinct from zero.
package dataprocessing
