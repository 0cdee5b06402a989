// Package postgres provides PostgreSQL-backed implementations of the store
// interfaces. All stores accept a store.DBTX so they work with either a
// *sql.DB or an open transaction managed by the caller.
package postgres
