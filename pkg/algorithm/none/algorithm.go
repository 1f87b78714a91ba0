/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package none

import (
	"fmt"

	"github.com/trustbloc/jws-core-go/pkg/jws"
)

// Algorithm implements the unsecured "none" algorithm (https://tools.ietf.org/html/rfc7518#section-3.6).
// It takes no key. Builders and verifiers only accept it when unsecured JWS are explicitly allowed.
type Algorithm struct{}

// New returns the "none" algorithm.
func New() *Algorithm {
	return &Algorithm{}
}

// Name returns "none".
func (a *Algorithm) Name() string {
	return jws.None
}

// Family returns jws.FamilyUnsecured.
func (a *Algorithm) Family() jws.Family {
	return jws.FamilyUnsecured
}

// Sign returns an empty signature.
func (a *Algorithm) Sign(_ []byte, key interface{}) ([]byte, error) {
	if key != nil {
		return nil, fmt.Errorf("%w: none does not take a key, got %T", jws.ErrKeyTypeMismatch, key)
	}

	return []byte{}, nil
}

// Verify succeeds only for an empty signature.
func (a *Algorithm) Verify(_ []byte, key interface{}, signature []byte) (bool, error) {
	if key != nil {
		return false, fmt.Errorf("%w: none does not take a key, got %T", jws.ErrKeyTypeMismatch, key)
	}

	return len(signature) == 0, nil
}
