package repository

// Cache is a key/value store used to memoize rendered amortization schedules.
type Cache interface {
	Get(key string) (string, bool)
	Set(key string, value string) error
	Delete(key string) error
}
