// Package repositories provides persistence layer implementations for all model types.
//
// Each repository implements models.Repository[T] for a specific entity type.
// The like registry adds Toggle, the set's sole mutation primitive, and the
// history repositories are append-only.
package repositories
