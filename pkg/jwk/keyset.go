/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jwk

import (
	"github.com/pkg/errors"
)

// ErrKeyNotFound is returned when a key ID is not in the key set.
var ErrKeyNotFound = errors.New("key not found")

// KeySet is an immutable collection of keys indexed by key ID.
type KeySet struct {
	keys []*Key
	byID map[string]*Key
}

// NewKeySet returns a key set. Keys with duplicate IDs are rejected.
func NewKeySet(keys ...*Key) (*KeySet, error) {
	s := &KeySet{byID: make(map[string]*Key, len(keys))}

	for _, k := range keys {
		if _, ok := s.byID[k.KeyID]; ok {
			return nil, errors.Errorf("duplicate key ID '%s'", k.KeyID)
		}

		s.byID[k.KeyID] = k
		s.keys = append(s.keys, k)
	}

	return s, nil
}

// Get returns the key with the given ID.
func (s *KeySet) Get(kid string) (*Key, error) {
	k, ok := s.byID[kid]
	if !ok {
		return nil, errors.Wrapf(ErrKeyNotFound, "kid '%s'", kid)
	}

	return k, nil
}

// Keys returns the keys in the order they were added.
func (s *KeySet) Keys() []*Key {
	return append([]*Key(nil), s.keys...)
}

// Algorithms returns the algorithms a key may be used with: the "alg" of the key, or nil when the key
// does not restrict it.
func (k *Key) Algorithms() []string {
	if k.Algorithm == "" {
		return nil
	}

	return []string{k.Algorithm}
}

// VerificationKey returns the key used to verify signatures made with k: the secret of a symmetric key,
// the public part otherwise.
func (k *Key) VerificationKey() (interface{}, error) {
	if _, symmetric := k.Key.([]byte); symmetric {
		return k.Key, nil
	}

	return PublicKey(k.Key)
}
