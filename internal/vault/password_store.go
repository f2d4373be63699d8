// Package vault stores connection passwords in the OS keyring so the
// operator does not retype them every session. Nothing else about a
// connection is persisted here.
package vault

import (
	"fmt"

	"github.com/verdande/dbgrip/internal/models"
	"github.com/zalando/go-keyring"
)

const serviceName = "dbgrip"

// PasswordStore saves and looks up passwords keyed by engine, user and
// host. A disabled store is a no-op that never errors.
type PasswordStore struct {
	enabled bool
}

// NewPasswordStore returns a store; pass enabled=false to turn all
// operations into no-ops (config: secrets.use_keyring).
func NewPasswordStore(enabled bool) *PasswordStore {
	return &PasswordStore{enabled: enabled}
}

// Save stores the password for engine/user@host.
func (s *PasswordStore) Save(engine models.Engine, user, host, password string) error {
	if !s.enabled || password == "" {
		return nil
	}
	return keyring.Set(serviceName, accountKey(engine, user, host), password)
}

// Lookup returns the stored password, or "" when none is stored or the
// keyring is unavailable. Lookup failures are not worth surfacing; the
// operator just types the password.
func (s *PasswordStore) Lookup(engine models.Engine, user, host string) string {
	if !s.enabled {
		return ""
	}
	password, err := keyring.Get(serviceName, accountKey(engine, user, host))
	if err != nil {
		return ""
	}
	return password
}

// Forget removes a stored password.
func (s *PasswordStore) Forget(engine models.Engine, user, host string) error {
	if !s.enabled {
		return nil
	}
	err := keyring.Delete(serviceName, accountKey(engine, user, host))
	if err == keyring.ErrNotFound {
		return nil
	}
	return err
}

func accountKey(engine models.Engine, user, host string) string {
	return fmt.Sprintf("%s://%s@%s", engine.Scheme(), user, host)
}
