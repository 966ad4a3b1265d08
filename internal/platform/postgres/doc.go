// Package postgres provides PostgreSQL implementations of the
// application's persistence interfaces using the pgx driver through
// database/sql.
package postgres
