package migrations

import "embed"

// FS SQL-миграции, по каталогу на диалект (postgres, sqlite)
//
//go:embed postgres/*.sql sqlite/*.sql
var FS embed.FS
