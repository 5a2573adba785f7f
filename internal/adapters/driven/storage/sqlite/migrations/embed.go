// Package migrations holds the numbered schema files for the SQLite
// key-value store. Each NNN_name.up.sql has a matching .down.sql.
package migrations

import "embed"

//go:embed *.up.sql *.down.sql
var FS embed.FS
