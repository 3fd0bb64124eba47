// Package services holds the query engine and the bulk loader.
//
// # Scan-and-compute
//
// Every read query follows the same shape: pull one snapshot from the store
// (full or filter-narrowed scan), then apply a pure in-memory transformation
// to the returned set. Snapshots are ephemeral; nothing is cached or shared
// between requests.
//
//	┌─────────┐  scan   ┌──────────┐  compute  ┌──────────┐
//	│  store  │ ──────> │ snapshot │ ────────> │  result  │
//	└─────────┘         └──────────┘           └──────────┘
//
// Filters the store can evaluate (equality, comparisons, substring on a
// column) are pushed down; anything it cannot (case-insensitive OR-combined
// keyword match, grouping, averaging) runs here.
//
// # Aggregations
//
//   - AveragePrice: mean over all records, rounded to 2 decimals; an empty
//     catalog is an explicit EmptyCatalogError, never a division by zero.
//   - TopDirectors: mean score per director, best 10, average descending
//     with director name ascending as tie-break.
//   - BestMovieByDirector: per director the movie with the strictly greatest
//     score (first in scan order wins ties), sorted by score descending.
//
// # Bulk load
//
// Loader ingests a CSV or XLSX file once at startup. Rows fan out to a
// bounded worker pool and Load returns only after every insert is
// acknowledged, so its completion implies persistence. Malformed rows and
// failed inserts are logged and counted, never retried.
package services
