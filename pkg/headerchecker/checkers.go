/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package headerchecker

import (
	"fmt"

	"github.com/trustbloc/jws-core-go/pkg/jws"
)

// UnencodedPayloadChecker checks the RFC 7797 "b64" parameter.
type UnencodedPayloadChecker struct{}

// NewUnencodedPayloadChecker returns a "b64" checker.
func NewUnencodedPayloadChecker() *UnencodedPayloadChecker {
	return &UnencodedPayloadChecker{}
}

// SupportedHeader returns "b64".
func (c *UnencodedPayloadChecker) SupportedHeader() string {
	return jws.HeaderB64Payload
}

// ProtectedHeaderOnly returns true.
func (c *UnencodedPayloadChecker) ProtectedHeaderOnly() bool {
	return true
}

// CheckHeader requires a boolean.
func (c *UnencodedPayloadChecker) CheckHeader(value interface{}) error {
	if _, ok := value.(bool); !ok {
		return fmt.Errorf("%w: b64 must be a boolean, got %T", jws.ErrInvalidB64Header, value)
	}

	return nil
}

// AlgorithmChecker restricts the protected "alg" parameter to an allowlist.
type AlgorithmChecker struct {
	allowed []string
}

// NewAlgorithmChecker returns an "alg" checker accepting only the given algorithms.
func NewAlgorithmChecker(allowed ...string) *AlgorithmChecker {
	return &AlgorithmChecker{allowed: allowed}
}

// SupportedHeader returns "alg".
func (c *AlgorithmChecker) SupportedHeader() string {
	return jws.HeaderAlgorithm
}

// ProtectedHeaderOnly returns true.
func (c *AlgorithmChecker) ProtectedHeaderOnly() bool {
	return true
}

// CheckHeader checks the algorithm against the allowlist.
func (c *AlgorithmChecker) CheckHeader(value interface{}) error {
	alg, ok := value.(string)
	if !ok {
		return fmt.Errorf("%w: alg must be a string, got %T", jws.ErrInvalidHeader, value)
	}

	if !contains(c.allowed, alg) {
		return fmt.Errorf("%w: algorithm '%s' is not allowed", jws.ErrInvalidHeader, alg)
	}

	return nil
}

// TypeChecker restricts the "typ" parameter.
type TypeChecker struct {
	allowed []string
}

// NewTypeChecker returns a "typ" checker accepting only the given media types.
func NewTypeChecker(allowed ...string) *TypeChecker {
	return &TypeChecker{allowed: allowed}
}

// SupportedHeader returns "typ".
func (c *TypeChecker) SupportedHeader() string {
	return jws.HeaderType
}

// ProtectedHeaderOnly returns false.
func (c *TypeChecker) ProtectedHeaderOnly() bool {
	return false
}

// CheckHeader checks the type against the allowlist.
func (c *TypeChecker) CheckHeader(value interface{}) error {
	typ, ok := value.(string)
	if !ok || !contains(c.allowed, typ) {
		return fmt.Errorf("%w: unexpected typ %v", jws.ErrInvalidHeader, value)
	}

	return nil
}

// FuncChecker adapts a function to the Checker interface.
type FuncChecker struct {
	name      string
	protected bool
	check     func(value interface{}) error
}

// NewFuncChecker returns a checker for the given parameter backed by check. Errors returned by check are
// wrapped with jws.ErrInvalidHeader.
func NewFuncChecker(name string, protectedOnly bool, check func(value interface{}) error) *FuncChecker {
	return &FuncChecker{name: name, protected: protectedOnly, check: check}
}

// SupportedHeader returns the parameter name.
func (c *FuncChecker) SupportedHeader() string {
	return c.name
}

// ProtectedHeaderOnly reports whether the parameter must be protected.
func (c *FuncChecker) ProtectedHeaderOnly() bool {
	return c.protected
}

// CheckHeader calls the check function.
func (c *FuncChecker) CheckHeader(value interface{}) error {
	if err := c.check(value); err != nil {
		return fmt.Errorf("%w: '%s': %s", jws.ErrInvalidHeader, c.name, err)
	}

	return nil
}
