/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package algorithm

import (
	"fmt"
	"sort"

	"github.com/trustbloc/jws-core-go/pkg/algorithm/ecdsa"
	"github.com/trustbloc/jws-core-go/pkg/algorithm/eddsa"
	"github.com/trustbloc/jws-core-go/pkg/algorithm/hmac"
	"github.com/trustbloc/jws-core-go/pkg/algorithm/none"
	"github.com/trustbloc/jws-core-go/pkg/algorithm/rsa"
	"github.com/trustbloc/jws-core-go/pkg/jws"
)

// SignatureAlgorithm defines the sign/verify contract shared by every algorithm family.
type SignatureAlgorithm interface {
	// Name returns the value used in the "alg" header.
	Name() string

	// Family returns the cryptographic family of the algorithm.
	Family() jws.Family

	// Sign signs the JWS signing input. It fails with jws.ErrKeyTypeMismatch for a key of the wrong shape and
	// with jws.ErrUnsupportedOperation when the key cannot be used for signing.
	Sign(signingInput []byte, key interface{}) ([]byte, error)

	// Verify reports whether signature is valid for the signing input. A well-formed but non-matching signature
	// yields false and no error.
	Verify(signingInput []byte, key interface{}, signature []byte) (bool, error)
}

// Option is a registry instance option
type Option func(opts *Registry)

// Registry maps algorithm names to algorithms. It is not modified after New returns and may be shared
// between goroutines.
type Registry struct {
	algorithms map[string]SignatureAlgorithm
}

// New return new instance of signature algorithm registry
func New(opts ...Option) *Registry {
	registry := &Registry{algorithms: make(map[string]SignatureAlgorithm)}

	// apply options
	for _, opt := range opts {
		opt(registry)
	}

	return registry
}

// Resolve returns the algorithm registered under name.
func (r *Registry) Resolve(name string) (SignatureAlgorithm, error) {
	alg, ok := r.algorithms[name]
	if !ok {
		return nil, fmt.Errorf("%w: signature algorithm '%s' not supported", jws.ErrUnknownAlgorithm, name)
	}

	return alg, nil
}

// Names returns the sorted names of all registered algorithms.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.algorithms))

	for name := range r.algorithms {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// WithAlgorithm adds signature algorithm to the list of available algorithms. A later algorithm with the
// same name replaces an earlier one.
func WithAlgorithm(alg SignatureAlgorithm) Option {
	return func(opts *Registry) {
		opts.algorithms[alg.Name()] = alg
	}
}

// WithDefaultAlgorithms adds every algorithm implemented by this module, including "none".
func WithDefaultAlgorithms() Option {
	return func(opts *Registry) {
		for _, alg := range hmac.All() {
			WithAlgorithm(alg)(opts)
		}

		for _, alg := range rsa.All() {
			WithAlgorithm(alg)(opts)
		}

		for _, alg := range ecdsa.All() {
			WithAlgorithm(alg)(opts)
		}

		WithAlgorithm(eddsa.New())(opts)
		WithAlgorithm(none.New())(opts)
	}
}
