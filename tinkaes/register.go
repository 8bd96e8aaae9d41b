package tinkaes

import (
	"sync"

	"github.com/google/tink/go/core/registry"
)

var (
	registerOnce sync.Once
	registerErr  error
)

// Register registers the KeyManager with Tink's registry. It is safe to call
// multiple times; only the first call registers.
func Register() error {
	registerOnce.Do(func() {
		_, registerErr = getOrRegisterKeyManager()
	})
	return registerErr
}

// getOrRegisterKeyManager registers a KeyManager unless one is already
// registered for KeyTypeURL.
func getOrRegisterKeyManager() (*KeyManager, error) {
	keyManager := NewKeyManager()

	if _, err := registry.GetKeyManager(KeyTypeURL); err == nil {
		// Key managers are stateless.
		return keyManager, nil
	}

	if err := registry.RegisterKeyManager(keyManager); err != nil {
		return nil, err
	}
	return keyManager, nil
}
