/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package headerchecker

import (
	"fmt"
	"sort"

	"github.com/trustbloc/jws-core-go/pkg/jws"
)

// Checker validates one header parameter.
type Checker interface {
	// SupportedHeader returns the name of the checked parameter.
	SupportedHeader() string

	// ProtectedHeaderOnly reports whether the parameter must be integrity protected.
	ProtectedHeaderOnly() bool

	// CheckHeader validates the parameter value.
	CheckHeader(value interface{}) error
}

// Option is a manager instance option
type Option func(m *Manager)

// Manager enforces header rules for the signatures of a JWS. It is not modified after NewManager returns.
type Manager struct {
	checkers  map[string]Checker
	mandatory []string
}

// NewManager returns a new header checker manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{checkers: make(map[string]Checker)}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// NewDefaultManager returns a manager that understands the "b64" extension.
func NewDefaultManager() *Manager {
	return NewManager(WithChecker(NewUnencodedPayloadChecker()))
}

// WithChecker registers a parameter checker. Registering a checker also makes the parameter acceptable in "crit".
func WithChecker(c Checker) Option {
	return func(m *Manager) {
		m.checkers[c.SupportedHeader()] = c
	}
}

// WithMandatory declares parameters that must be present in the protected or the unprotected header.
func WithMandatory(names ...string) Option {
	return func(m *Manager) {
		m.mandatory = append(m.mandatory, names...)
	}
}

// Supports reports whether a checker is registered for the given parameter.
func (m *Manager) Supports(name string) bool {
	_, ok := m.checkers[name]

	return ok
}

// CheckSignature checks the headers of a signature.
func (m *Manager) CheckSignature(sig *jws.Signature) error {
	return m.Check(sig.ProtectedHeader(), sig.Header())
}

// Check validates the protected and unprotected headers of one signature.
func (m *Manager) Check(protected, unprotected jws.Headers) error {
	if err := checkDuplicates(protected, unprotected); err != nil {
		return err
	}

	if err := checkUnencodedPayload(protected, unprotected); err != nil {
		return err
	}

	if err := m.checkCritical(protected, unprotected); err != nil {
		return err
	}

	if err := m.checkMandatory(protected, unprotected); err != nil {
		return err
	}

	return m.checkParameters(protected, unprotected)
}

func checkDuplicates(protected, unprotected jws.Headers) error {
	var duplicates []string

	for name := range unprotected {
		if protected.Has(name) {
			duplicates = append(duplicates, name)
		}
	}

	if len(duplicates) > 0 {
		sort.Strings(duplicates)

		return fmt.Errorf("%w: %v present in both protected and unprotected header",
			jws.ErrDuplicateHeaderParameter, duplicates)
	}

	return nil
}

func checkUnencodedPayload(protected, unprotected jws.Headers) error {
	if unprotected.Has(jws.HeaderB64Payload) {
		return fmt.Errorf("%w: b64 must be a protected header parameter", jws.ErrInvalidB64Header)
	}

	raw, ok := protected[jws.HeaderB64Payload]
	if !ok {
		return nil
	}

	if _, ok := raw.(bool); !ok {
		return fmt.Errorf("%w: b64 must be a boolean, got %T", jws.ErrInvalidB64Header, raw)
	}

	crit, _ := protected.Critical()
	if !contains(crit, jws.HeaderB64Payload) {
		return fmt.Errorf("%w: b64 must be listed in crit", jws.ErrInvalidB64Header)
	}

	return nil
}

func (m *Manager) checkCritical(protected, unprotected jws.Headers) error {
	if unprotected.Has(jws.HeaderCritical) {
		return fmt.Errorf("%w: crit must be a protected header parameter", jws.ErrUnsupportedCriticalHeader)
	}

	if !protected.Has(jws.HeaderCritical) {
		return nil
	}

	crit, ok := protected.Critical()
	if !ok || len(crit) == 0 {
		return fmt.Errorf("%w: crit must be a non-empty array of strings", jws.ErrUnsupportedCriticalHeader)
	}

	seen := make(map[string]struct{}, len(crit))

	for _, name := range crit {
		if _, ok := seen[name]; ok {
			return fmt.Errorf("%w: '%s' is listed more than once", jws.ErrUnsupportedCriticalHeader, name)
		}

		seen[name] = struct{}{}

		if contains(jws.RegisteredHeaders(), name) {
			return fmt.Errorf("%w: registered parameter '%s' must not be listed", jws.ErrUnsupportedCriticalHeader, name)
		}

		if !protected.Has(name) {
			return fmt.Errorf("%w: '%s' is not present in the protected header", jws.ErrUnsupportedCriticalHeader, name)
		}

		if !m.Supports(name) {
			return fmt.Errorf("%w: '%s' is not understood", jws.ErrUnsupportedCriticalHeader, name)
		}
	}

	return nil
}

func (m *Manager) checkMandatory(protected, unprotected jws.Headers) error {
	for _, name := range m.mandatory {
		if !protected.Has(name) && !unprotected.Has(name) {
			return fmt.Errorf("%w: '%s'", jws.ErrMissingHeaderParameter, name)
		}
	}

	return nil
}

func (m *Manager) checkParameters(protected, unprotected jws.Headers) error {
	for name, checker := range m.checkers {
		value, inProtected := protected[name]
		if !inProtected {
			var inUnprotected bool

			value, inUnprotected = unprotected[name]
			if !inUnprotected {
				continue
			}

			if checker.ProtectedHeaderOnly() {
				return fmt.Errorf("%w: '%s' must be a protected header parameter", jws.ErrInvalidHeader, name)
			}
		}

		if err := checker.CheckHeader(value); err != nil {
			return err
		}
	}

	return nil
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}

	return false
}
