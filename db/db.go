// Package db embeds the schema migrations and seed fixtures.
package db

import "embed"

// Migrations holds migrations/<dialect>/NNNN_name.up.sql files.
//
//go:embed migrations
var Migrations embed.FS

// Seeds holds dialect-neutral fixture inserts.
//
//go:embed seeds
var Seeds embed.FS
