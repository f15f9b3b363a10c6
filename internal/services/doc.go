// Package services implements the business logic layer of HousePulse.
//
// MarketDataService owns the load cycle: fetch the three exports, parse
// them, build per-geography time series, derive month-over-month and
// year-over-year changes and rolling betas, and reconcile metro labels
// against the coordinate catalog. The result of a cycle is an immutable
// Snapshot swapped in atomically; HTTP handlers only ever read the latest
// snapshot and never trigger recomputation.
//
// A failed cycle leaves the previous snapshot in place, so readers keep
// serving the last good data while operators retry.
package services
