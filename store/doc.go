// Package store holds the persistence adapters: MongoDB collections for
// POIs, categories, users and check-ins, a Redis read-through cache for
// users, and mutex-guarded in-memory equivalents used for local runs and
// tests.
//
// Lookups by key report absence through a found flag rather than an error,
// so callers never have to recognise driver-specific "no documents" errors.
package store
