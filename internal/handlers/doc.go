// Package handlers contains the gin handlers for the catalog API.
//
// Error mapping is uniform: validation failures are 400 with a
// field-agnostic message, missing records and empty-catalog aggregations are
// 404, store deadline expiry is 504, and any other store failure is a
// generic 500 with the detail logged server-side only.
package handlers
