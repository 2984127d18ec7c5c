// Package all links every storage backend into a binary with one blank
// import. cmd binaries import this instead of naming backends.
package all

import (
	_ "argoetl/internal/storage/postgres"
	_ "argoetl/internal/storage/sqlite"
)
