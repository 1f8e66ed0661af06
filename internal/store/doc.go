// Package store defines the persistence interfaces consumed by the review
// engine, along with the shared error taxonomy and transaction helpers.
// Concrete implementations live under internal/platform.
package store
