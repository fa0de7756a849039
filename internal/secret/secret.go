// Package secret abstracts the OS credential store used to persist the
// master key. The interface is deliberately minimal so the key lifecycle can
// be exercised in tests with an in-memory implementation, independent of any
// real platform keyring.
package secret

// Store is an opaque get/set/delete view of a named secret blob in a secure
// credential store. Get returns common.ErrNotFound when no secret exists
// under the given service/account pair.
type Store interface {
	Get(service, account string) ([]byte, error)
	Set(service, account string, value []byte) error
	Delete(service, account string) error
}
