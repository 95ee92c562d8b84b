// Package models defines the domain entities shared by the tubesync pipelines.
//
// The package contains two categories of types:
//
// 1. Remote catalog views, produced by the playlist gateway
//   - [PlaylistSummary] : playlist metadata owned by the signed-in account
//   - [PlaylistItem] : one video entry of a playlist, ordered by position
//   - [Channel] : the signed-in account's channel profile
//
// 2. Backup and restore entities
//   - [Row] / [Record] : the decoded contents of one playlist backup file
//   - [RestorationJob] : one queued playlist re-creation with its [JobStatus]
//
// [JobStore] describes persistence of restoration job history.
package models
