/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package serializer

import (
	"github.com/pkg/errors"
	"github.com/square/go-jose/v3/json"

	"github.com/trustbloc/jws-core-go/pkg/jws"
)

type flattenedJWS struct {
	Payload   *string     `json:"payload,omitempty"`
	Protected string      `json:"protected,omitempty"`
	Header    jws.Headers `json:"header,omitempty"`
	Signature *string     `json:"signature"`
}

type generalJWS struct {
	Payload    *string         `json:"payload,omitempty"`
	Signatures []jsonSignature `json:"signatures"`
}

// JSONFlattened implements the flattened JWS JSON Serialization
// (https://tools.ietf.org/html/rfc7515#section-7.2.2).
type JSONFlattened struct{}

// NewJSONFlattened returns a flattened JSON serializer.
func NewJSONFlattened() *JSONFlattened {
	return &JSONFlattened{}
}

// Name returns jws_json_flattened.
func (s *JSONFlattened) Name() string {
	return JSONFlattenedName
}

// Serialize returns the flattened JSON object. The "payload" member is omitted for a detached payload.
func (s *JSONFlattened) Serialize(token *jws.JSONWebSignature) (string, error) {
	if token.SignatureCount() != 1 {
		return "", errors.Wrapf(jws.ErrUnsupportedByFormat,
			"flattened JSON serialization requires exactly one signature, got %d", token.SignatureCount())
	}

	payload, err := wirePayload(token)
	if err != nil {
		return "", err
	}

	sig := newJSONSignature(token.Signatures()[0])

	b, err := json.Marshal(&flattenedJWS{
		Payload:   payload,
		Protected: sig.Protected,
		Header:    sig.Header,
		Signature: sig.Signature,
	})
	if err != nil {
		return "", errors.Wrap(err, "marshal flattened JWS")
	}

	return string(b), nil
}

// Unserialize parses a flattened JSON JWS.
func (s *JSONFlattened) Unserialize(input string) (*jws.JSONWebSignature, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(input), &raw); err != nil {
		return nil, errors.Wrapf(jws.ErrMalformedSerialization, "unmarshal flattened JWS: %s", err)
	}

	if _, ok := raw["signatures"]; ok {
		return nil, errors.Wrap(jws.ErrMalformedSerialization, "flattened JWS must not contain 'signatures'")
	}

	var f flattenedJWS
	if err := json.Unmarshal([]byte(input), &f); err != nil {
		return nil, errors.Wrapf(jws.ErrMalformedSerialization, "unmarshal flattened JWS: %s", err)
	}

	js := jsonSignature{Protected: f.Protected, Header: f.Header, Signature: f.Signature}

	sig, err := js.toSignature()
	if err != nil {
		return nil, err
	}

	return assemble([]*jws.Signature{sig}, f.Payload)
}

// JSONGeneral implements the general JWS JSON Serialization (https://tools.ietf.org/html/rfc7515#section-7.2.1),
// the only format carrying more than one signature.
type JSONGeneral struct{}

// NewJSONGeneral returns a general JSON serializer.
func NewJSONGeneral() *JSONGeneral {
	return &JSONGeneral{}
}

// Name returns jws_json_general.
func (s *JSONGeneral) Name() string {
	return JSONGeneralName
}

// Serialize returns the general JSON object.
func (s *JSONGeneral) Serialize(token *jws.JSONWebSignature) (string, error) {
	payload, err := wirePayload(token)
	if err != nil {
		return "", err
	}

	g := &generalJWS{
		Payload:    payload,
		Signatures: make([]jsonSignature, 0, token.SignatureCount()),
	}

	for _, sig := range token.Signatures() {
		g.Signatures = append(g.Signatures, newJSONSignature(sig))
	}

	b, err := json.Marshal(g)
	if err != nil {
		return "", errors.Wrap(err, "marshal general JWS")
	}

	return string(b), nil
}

// Unserialize parses a general JSON JWS.
func (s *JSONGeneral) Unserialize(input string) (*jws.JSONWebSignature, error) {
	var g generalJWS
	if err := json.Unmarshal([]byte(input), &g); err != nil {
		return nil, errors.Wrapf(jws.ErrMalformedSerialization, "unmarshal general JWS: %s", err)
	}

	if g.Signatures == nil {
		return nil, errors.Wrap(jws.ErrMalformedSerialization, "general JWS must contain 'signatures'")
	}

	signatures := make([]*jws.Signature, 0, len(g.Signatures))

	for i := range g.Signatures {
		sig, err := g.Signatures[i].toSignature()
		if err != nil {
			return nil, errors.WithMessagef(err, "signature #%d", i)
		}

		signatures = append(signatures, sig)
	}

	return assemble(signatures, g.Payload)
}
