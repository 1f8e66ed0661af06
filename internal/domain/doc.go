// Package domain defines the core business entities of the spaced-repetition
// engine: flashcards, per-student review records, learning profiles, and the
// validation rules that keep them consistent. Entities here carry no
// persistence or transport concerns.
package domain
