package database

import (
	"fmt"
	"path/filepath"
)

type StoreOptions struct {
	Kind      string
	DataDir   string
	RedisAddr string
}

// NewStore builds the document store selected by options.Kind.
func NewStore(options StoreOptions) (DocumentStore, error) {
	switch options.Kind {
	case "", StoreJSON:
		return NewFileStore(options.DataDir)
	case StoreSQLite:
		return NewSQLiteStore(filepath.Join(options.DataDir, "stellarpulse.db"))
	case StoreRedis:
		return NewRedisStore(options.RedisAddr)
	default:
		return nil, fmt.Errorf("unknown store type %q", options.Kind)
	}
}
