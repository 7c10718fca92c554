package database

import "errors"

var ErrNotFound = errors.New("document not found")

// DocumentStore keeps whole JSON documents under a key. Documents are always
// read and replaced as a unit.
type DocumentStore interface {
	Get(key string) ([]byte, error)
	Put(key string, body []byte) error
	Close() error
}

const (
	StoreJSON   = "json"
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"

	ItemsKey         = "data"
	SubscriptionsKey = "keywords"
	SessionKey       = "last_query"
)
