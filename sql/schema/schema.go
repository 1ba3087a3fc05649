// Package schema embeds the goose migrations so the server binary, the CLI and the
// integration tests apply the same schema without needing the sql directory at run time.
package schema

import "embed"

//go:embed *.sql
var FS embed.FS
