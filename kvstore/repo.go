// Package kvstore is the persisted key-value substrate the session store
// writes its token and user slots into.
package kvstore

// Store holds string values under string keys.
// Get reports ok=false for an absent key; Remove of an absent key is not an error.
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Remove(key string) error
}
