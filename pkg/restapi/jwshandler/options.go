/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jwshandler

import (
	"github.com/trustbloc/jws-core-go/pkg/algorithm"
	"github.com/trustbloc/jws-core-go/pkg/jwk"
	"github.com/trustbloc/jws-core-go/pkg/serializer"
)

// KeyStore provides the keys used for signing and verification
type KeyStore interface {
	Get(kid string) (*jwk.Key, error)
	Keys() []*jwk.Key
}

// Option is a handler option
type Option func(opts *options)

type options struct {
	registry       *algorithm.Registry
	serializers    *serializer.Manager
	allowUnsecured bool
}

// WithUnsecuredAllowed allows signing and verifying with the "none" algorithm. This is a server policy
// and cannot be requested by a client.
func WithUnsecuredAllowed() Option {
	return func(opts *options) {
		opts.allowUnsecured = true
	}
}

// WithRegistry sets the algorithm registry. Defaults to every supported algorithm.
func WithRegistry(registry *algorithm.Registry) Option {
	return func(opts *options) {
		opts.registry = registry
	}
}

func newOptions(opts []Option) *options {
	o := &options{
		registry:    algorithm.New(algorithm.WithDefaultAlgorithms()),
		serializers: serializer.NewDefaultManager(),
	}

	for _, opt := range opts {
		opt(o)
	}

	return o
}
