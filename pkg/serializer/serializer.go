/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package serializer

import (
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/square/go-jose/v3/json"

	"github.com/trustbloc/jws-core-go/pkg/encoder"
	"github.com/trustbloc/jws-core-go/pkg/jws"
)

// Serializer names.
const (
	CompactName       = "jws_compact"
	JSONFlattenedName = "jws_json_flattened"
	JSONGeneralName   = "jws_json_general"
)

// Serializer converts a JWS to and from one wire format.
type Serializer interface {
	// Name returns the format name.
	Name() string

	// Serialize returns the wire form of the JWS.
	Serialize(token *jws.JSONWebSignature) (string, error)

	// Unserialize parses the wire form. Errors match jws.ErrMalformedSerialization.
	Unserialize(input string) (*jws.JSONWebSignature, error)
}

// jsonSignature is a signature as it appears in the JSON serializations.
type jsonSignature struct {
	Protected string      `json:"protected,omitempty"`
	Header    jws.Headers `json:"header,omitempty"`
	Signature *string     `json:"signature"`
}

func newJSONSignature(sig *jws.Signature) jsonSignature {
	s := encoder.EncodeToString(sig.Signature())

	var header jws.Headers
	if h := sig.Header(); len(h) > 0 {
		header = h
	}

	return jsonSignature{
		Protected: sig.EncodedProtectedHeader(),
		Header:    header,
		Signature: &s,
	}
}

func (s *jsonSignature) toSignature() (*jws.Signature, error) {
	if s.Signature == nil {
		return nil, errors.Wrap(jws.ErrMalformedSerialization, "missing signature")
	}

	if s.Protected == "" && len(s.Header) == 0 {
		return nil, errors.Wrap(jws.ErrMalformedSerialization, "signature has neither protected nor unprotected header")
	}

	return parseSignature(s.Protected, *s.Signature, s.Header)
}

func parseSignature(encodedProtected, encodedSignature string, header jws.Headers) (*jws.Signature, error) {
	protected, err := decodeProtectedHeader(encodedProtected)
	if err != nil {
		return nil, err
	}

	signature, err := encoder.DecodeString(encodedSignature)
	if err != nil {
		return nil, errors.Wrapf(jws.ErrMalformedSerialization, "decode signature: %s", err)
	}

	return jws.NewSignature(signature, protected, encodedProtected, header), nil
}

func decodeProtectedHeader(encoded string) (jws.Headers, error) {
	if encoded == "" {
		return nil, nil
	}

	b, err := encoder.DecodeString(encoded)
	if err != nil {
		return nil, errors.Wrapf(jws.ErrMalformedSerialization, "decode protected header: %s", err)
	}

	var headers jws.Headers

	if err := json.Unmarshal(b, &headers); err != nil {
		return nil, errors.Wrapf(jws.ErrMalformedSerialization, "unmarshal protected header: %s", err)
	}

	if headers == nil {
		return nil, errors.Wrap(jws.ErrMalformedSerialization, "protected header is not a JSON object")
	}

	return headers, nil
}

// payloadEncoding returns the b64 decision shared by all signatures.
func payloadEncoding(signatures []*jws.Signature) (bool, error) {
	encoded := true

	for i, sig := range signatures {
		if i == 0 {
			encoded = sig.IsPayloadEncoded()

			continue
		}

		if sig.IsPayloadEncoded() != encoded {
			return false, errors.Wrap(jws.ErrMalformedSerialization, "signatures disagree on the b64 header parameter")
		}
	}

	return encoded, nil
}

// assemble builds a JWS from parsed signatures and the wire payload. A nil payload means detached.
func assemble(signatures []*jws.Signature, rawPayload *string) (*jws.JSONWebSignature, error) {
	encoded, err := payloadEncoding(signatures)
	if err != nil {
		return nil, err
	}

	var token *jws.JSONWebSignature

	switch {
	case rawPayload == nil:
		token = jws.New(nil, "", true)
	case encoded:
		payload, err := encoder.DecodeString(*rawPayload)
		if err != nil {
			return nil, errors.Wrapf(jws.ErrMalformedSerialization, "decode payload: %s", err)
		}

		token = jws.New(payload, *rawPayload, false)
	default:
		token = jws.New([]byte(*rawPayload), *rawPayload, false)
	}

	for _, sig := range signatures {
		token = token.WithSignature(sig)
	}

	return token, nil
}

// wirePayload returns the payload to emit in a JSON serialization, or nil when the payload is detached.
// An unencoded payload becomes a JSON string, so it must be valid UTF-8.
func wirePayload(token *jws.JSONWebSignature) (*string, error) {
	if token.IsPayloadDetached() {
		return nil, nil
	}

	p := token.EncodedPayload()

	if token.IsPayloadEncoded() == jws.PayloadUnencoded && !utf8.ValidString(p) {
		return nil, errors.Wrap(jws.ErrUnsupportedByFormat,
			"unencoded payload is not valid UTF-8 and cannot be carried by a JSON serialization")
	}

	return &p, nil
}
