/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jws

import "fmt"

// Signature holds one signature of a JWS together with its header material.
// A Signature is immutable once created.
type Signature struct {
	signature              []byte
	protectedHeader        Headers
	encodedProtectedHeader string
	header                 Headers
}

// NewSignature creates a signature. encodedProtectedHeader must be the exact base64url string that was
// signed over; when it is empty the protected header is dropped.
func NewSignature(signature []byte, protectedHeader Headers, encodedProtectedHeader string, header Headers) *Signature {
	s := &Signature{
		signature:              copyBytes(signature),
		protectedHeader:        Headers{},
		encodedProtectedHeader: encodedProtectedHeader,
		header:                 header.Clone(),
	}

	if encodedProtectedHeader != "" {
		s.protectedHeader = protectedHeader.Clone()
	}

	return s
}

// Signature returns a copy of the raw signature bytes.
func (s *Signature) Signature() []byte {
	return copyBytes(s.signature)
}

// ProtectedHeader returns a copy of the protected header.
func (s *Signature) ProtectedHeader() Headers {
	return s.protectedHeader.Clone()
}

// EncodedProtectedHeader returns the protected header exactly as it was signed over.
func (s *Signature) EncodedProtectedHeader() string {
	return s.encodedProtectedHeader
}

// Header returns a copy of the unprotected header.
func (s *Signature) Header() Headers {
	return s.header.Clone()
}

// HasProtectedHeaderParameter reports whether the protected header has the given parameter.
func (s *Signature) HasProtectedHeaderParameter(name string) bool {
	return s.protectedHeader.Has(name)
}

// ProtectedHeaderParameter returns the value of a protected header parameter.
func (s *Signature) ProtectedHeaderParameter(name string) (interface{}, error) {
	v, ok := s.protectedHeader[name]
	if !ok {
		return nil, fmt.Errorf("the protected header %q does not exist", name)
	}

	return v, nil
}

// HasHeaderParameter reports whether the unprotected header has the given parameter.
func (s *Signature) HasHeaderParameter(name string) bool {
	return s.header.Has(name)
}

// HeaderParameter returns the value of an unprotected header parameter.
func (s *Signature) HeaderParameter(name string) (interface{}, error) {
	v, ok := s.header[name]
	if !ok {
		return nil, fmt.Errorf("the header %q does not exist", name)
	}

	return v, nil
}

// Algorithm returns the "alg" protected header parameter.
func (s *Signature) Algorithm() (string, bool) {
	return s.protectedHeader.Algorithm()
}

// IsPayloadEncoded reports whether this signature covers the base64url-encoded payload.
// Only an explicit protected "b64": false disables the encoding.
func (s *Signature) IsPayloadEncoded() bool {
	return IsPayloadEncoded(s.protectedHeader)
}

// IsPayloadEncoded reports whether the given protected header leaves payload encoding enabled.
func IsPayloadEncoded(protectedHeader Headers) bool {
	b64, ok := protectedHeader[HeaderB64Payload].(bool)

	return !ok || b64
}

func copyBytes(b []byte) []byte {
	if b == nil {
		return nil
	}

	c := make([]byte, len(b))
	copy(c, b)

	return c
}
