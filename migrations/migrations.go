// Package migrations embeds the schema so the binary can migrate without the source tree.
package migrations

import "embed"

const PostgresDir = "postgres"

//go:embed postgres/*.sql
var Postgres embed.FS
