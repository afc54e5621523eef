// Package migrations embeds the SQL schema files so the binary and the
// integration tests apply the exact same migrations.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
