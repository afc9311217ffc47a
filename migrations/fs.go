// Package migrations embeds the SQL migrations so the migrator binary
// does not depend on the working directory.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
