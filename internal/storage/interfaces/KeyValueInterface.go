package interfaces

// KeyValueInterface is the local key-value storage the tracker persists into.
// Values are opaque JSON documents.
type KeyValueInterface interface {
	Get(key string) ([]byte, bool, error)
	// SetAll overwrites every given key in one write.
	SetAll(entries map[string][]byte) error
	Remove(keys ...string) error
	Clear() error
	Close() error
}
