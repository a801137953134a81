// Package models defines the data model for the vofo streaming backend.
//
// Persistent entities (User, LikedSong, SearchEntry, PlayEntry) implement
// [Model] and are stored through [Repository] implementations in the
// repositories package. Track is a transient record produced by catalog
// providers and is never persisted verbatim.
package models
