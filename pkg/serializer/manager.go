/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package serializer

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	logfields "github.com/trustbloc/jws-core-go/internal/log"
	"github.com/trustbloc/jws-core-go/pkg/jws"
	"github.com/trustbloc/jws-core-go/pkg/log"
)

var logger = logfields.New(log.ModuleSerializer)

// Manager holds the available serializers. Unserialize tries them in registration order.
type Manager struct {
	serializers []Serializer
	names       map[string]Serializer
}

// NewManager returns a manager for the given serializers. A serializer registered under a name that is
// already taken replaces the earlier one.
func NewManager(serializers ...Serializer) *Manager {
	m := &Manager{names: make(map[string]Serializer)}

	for _, s := range serializers {
		if _, ok := m.names[s.Name()]; ok {
			for i, existing := range m.serializers {
				if existing.Name() == s.Name() {
					m.serializers[i] = s
				}
			}
		} else {
			m.serializers = append(m.serializers, s)
		}

		m.names[s.Name()] = s
	}

	return m
}

// NewDefaultManager returns a manager for the compact, flattened JSON and general JSON serializations.
func NewDefaultManager() *Manager {
	return NewManager(NewCompact(), NewJSONFlattened(), NewJSONGeneral())
}

// Names returns the serializer names in registration order.
func (m *Manager) Names() []string {
	names := make([]string, len(m.serializers))

	for i, s := range m.serializers {
		names[i] = s.Name()
	}

	return names
}

// Get returns the serializer registered under name.
func (m *Manager) Get(name string) (Serializer, error) {
	s, ok := m.names[name]
	if !ok {
		return nil, fmt.Errorf("serializer '%s' not supported", name)
	}

	return s, nil
}

// Serialize serializes the JWS with the named serializer.
func (m *Manager) Serialize(name string, token *jws.JSONWebSignature) (string, error) {
	s, err := m.Get(name)
	if err != nil {
		return "", err
	}

	return s.Serialize(token)
}

// Unserialize parses input with the first serializer that accepts it and returns the JWS along with
// the name of that serializer.
func (m *Manager) Unserialize(input string) (*jws.JSONWebSignature, string, error) {
	var reasons []string

	for _, s := range m.serializers {
		token, err := s.Unserialize(input)
		if err != nil {
			logger.Debug("Serializer rejected input", logfields.WithFormat(s.Name()), logfields.WithReason(err.Error()))

			reasons = append(reasons, fmt.Sprintf("%s: %s", s.Name(), err))

			continue
		}

		logger.Debug("Parsed JWS", logfields.WithFormat(s.Name()), logfields.WithTotal(token.SignatureCount()))

		return token, s.Name(), nil
	}

	return nil, "", errors.Wrapf(jws.ErrMalformedSerialization, "unsupported input [%s]", strings.Join(reasons, "; "))
}
