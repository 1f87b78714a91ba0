/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package serializer

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/trustbloc/jws-core-go/pkg/encoder"
	"github.com/trustbloc/jws-core-go/pkg/jws"
)

const (
	compactPartsCount    = 3
	compactHeaderPart    = 0
	compactPayloadPart   = 1
	compactSignaturePart = 2
)

// Compact implements the JWS Compact Serialization (https://tools.ietf.org/html/rfc7515#section-7.1).
type Compact struct{}

// NewCompact returns a compact serializer.
func NewCompact() *Compact {
	return &Compact{}
}

// Name returns jws_compact.
func (c *Compact) Name() string {
	return CompactName
}

// Serialize returns BASE64URL(protected) "." payload "." BASE64URL(signature). The payload segment is empty
// for a detached payload.
func (c *Compact) Serialize(token *jws.JSONWebSignature) (string, error) {
	if token.SignatureCount() != 1 {
		return "", errors.Wrapf(jws.ErrUnsupportedByFormat,
			"compact serialization requires exactly one signature, got %d", token.SignatureCount())
	}

	sig := token.Signatures()[0]

	if sig.EncodedProtectedHeader() == "" {
		return "", errors.Wrap(jws.ErrUnsupportedByFormat, "compact serialization requires a protected header")
	}

	if len(sig.Header()) > 0 {
		return "", errors.Wrap(jws.ErrUnsupportedByFormat, "compact serialization cannot carry an unprotected header")
	}

	var payload string

	if !token.IsPayloadDetached() {
		payload = token.EncodedPayload()

		if !sig.IsPayloadEncoded() && strings.Contains(payload, ".") {
			return "", errors.Wrap(jws.ErrUnsupportedByFormat,
				"unencoded payload containing '.' must be detached in compact serialization")
		}
	}

	return sig.EncodedProtectedHeader() + "." + payload + "." + encoder.EncodeToString(sig.Signature()), nil
}

// Unserialize parses a compact JWS. An empty payload segment is read as a detached payload.
func (c *Compact) Unserialize(input string) (*jws.JSONWebSignature, error) {
	parts := strings.Split(input, ".")
	if len(parts) != compactPartsCount {
		return nil, errors.Wrapf(jws.ErrMalformedSerialization,
			"compact serialization must have %d parts, got %d", compactPartsCount, len(parts))
	}

	if parts[compactHeaderPart] == "" {
		return nil, errors.Wrap(jws.ErrMalformedSerialization, "compact serialization requires a protected header")
	}

	sig, err := parseSignature(parts[compactHeaderPart], parts[compactSignaturePart], nil)
	if err != nil {
		return nil, err
	}

	var payload *string
	if p := parts[compactPayloadPart]; p != "" {
		payload = &p
	}

	return assemble([]*jws.Signature{sig}, payload)
}
