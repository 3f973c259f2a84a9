// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from the
// reminder engine and the task API, so the engine only ever sees a task
// collection collaborator, never a concrete database.
package store
