package storage

// Store defines the interface for durable key-value storage that survives
// restarts. Each component owns its own key namespace and is the sole writer
// to it: the session manager owns the credential key, the cart store owns the
// cart key, the router owns the reload flag.
type Store interface {
	// Get returns the stored value and whether the key was present.
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}
