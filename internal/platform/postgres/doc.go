// Package postgres provides the PostgreSQL-backed implementation of the
// store.TaskStore interface.
package postgres
