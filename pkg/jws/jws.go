/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jws

import (
	"fmt"

	"github.com/trustbloc/jws-core-go/pkg/encoder"
)

// PayloadEncoding describes how the payload of a JWS is represented in the signing input.
type PayloadEncoding int

// Payload encodings. PayloadEncodingUnknown is reported for a JWS without signatures.
const (
	PayloadEncodingUnknown PayloadEncoding = iota
	PayloadEncoded
	PayloadUnencoded
)

// JSONWebSignature defines JSON Web Signature (https://tools.ietf.org/html/rfc7515):
// a payload and an ordered list of independent signatures.
type JSONWebSignature struct {
	payload        []byte
	encodedPayload string
	detached       bool
	signatures     []*Signature
}

// New creates a JWS without signatures. encodedPayload is the payload as it appears on the wire
// (base64url or, with "b64": false, the raw payload).
func New(payload []byte, encodedPayload string, detached bool) *JSONWebSignature {
	return &JSONWebSignature{
		payload:        copyBytes(payload),
		encodedPayload: encodedPayload,
		detached:       detached,
	}
}

// WithSignature returns a new JWS with the given signature appended. The receiver is left unchanged.
func (s *JSONWebSignature) WithSignature(sig *Signature) *JSONWebSignature {
	c := *s
	c.signatures = append(append(make([]*Signature, 0, len(s.signatures)+1), s.signatures...), sig)

	return &c
}

// Payload returns a copy of the payload. It is nil for a detached payload that was not supplied.
func (s *JSONWebSignature) Payload() []byte {
	return copyBytes(s.payload)
}

// EncodedPayload returns the payload as it is represented on the wire.
func (s *JSONWebSignature) EncodedPayload() string {
	return s.encodedPayload
}

// IsPayloadDetached reports whether the payload is managed out of band.
func (s *JSONWebSignature) IsPayloadDetached() bool {
	return s.detached
}

// Signatures returns the signatures in order.
func (s *JSONWebSignature) Signatures() []*Signature {
	return append([]*Signature(nil), s.signatures...)
}

// SignatureCount returns the number of signatures.
func (s *JSONWebSignature) SignatureCount() int {
	return len(s.signatures)
}

// Signature returns the signature at index i.
func (s *JSONWebSignature) Signature(i int) (*Signature, error) {
	if i < 0 || i >= len(s.signatures) {
		return nil, fmt.Errorf("signature index %d out of range [0,%d)", i, len(s.signatures))
	}

	return s.signatures[i], nil
}

// IsPayloadEncoded returns the payload encoding shared by the signatures. A JWS whose signatures
// disagree reports the encoding of the first signature; builders and parsers reject such a mix.
func (s *JSONWebSignature) IsPayloadEncoded() PayloadEncoding {
	if len(s.signatures) == 0 {
		return PayloadEncodingUnknown
	}

	if s.signatures[0].IsPayloadEncoded() {
		return PayloadEncoded
	}

	return PayloadUnencoded
}

// EncodePayload returns the wire representation of payload for the given encoding decision.
func EncodePayload(payload []byte, encoded bool) string {
	if encoded {
		return encoder.EncodeToString(payload)
	}

	return string(payload)
}

// SigningInput builds the JWS Signing Input: ASCII(encodedProtectedHeader || '.' || payload), where the
// payload is base64url-encoded unless encoded is false (https://tools.ietf.org/html/rfc7797#section-3).
func SigningInput(encodedProtectedHeader string, payload []byte, encoded bool) []byte {
	p := EncodePayload(payload, encoded)

	input := make([]byte, 0, len(encodedProtectedHeader)+1+len(p))
	input = append(input, encodedProtectedHeader...)
	input = append(input, '.')

	return append(input, p...)
}
