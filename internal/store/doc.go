// Package store is the record store adapter: durable storage of Movie
// records in an embedded DuckDB database, keyed by integer id.
//
// # Access pattern
//
// The collection has no secondary indexes. Every read is a table scan,
// optionally narrowed with simple attribute comparisons pushed into the
// WHERE clause via ScanOption values:
//
//	movies, err := s.Movies().Scan(ctx, store.ByGenre("Comedy"))
//	movies, err := s.Movies().Scan(ctx, store.ByMinRating("PG-13"))
//
// ByMinRating compares the classification code lexicographically as a
// string, not by any semantic ordering of the codes. This is the documented
// contract of the rating endpoint.
//
// # Id assignment
//
// Ids are generated by the store itself from the movies_id_seq sequence,
// starting at 1. Bulk ingestion and the create endpoint therefore share one
// serialization point and cannot produce duplicate ids.
//
// # Error behavior
//
// Update and Delete report a ResourceNotFoundError when the id does not
// exist. Store calls are attempted exactly once; only NewDB's readiness ping
// retries.
package store
