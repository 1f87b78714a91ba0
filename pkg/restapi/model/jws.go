/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package model

// SignRequest is the body of a sign request
// swagger:parameters signRequest
type SignRequest struct {
	// Payload to sign, as text
	// Required: true
	Payload string `json:"payload"`

	// Detached payloads are signed but left out of the serialization
	Detached bool `json:"detached,omitempty"`

	// Serialization format: jws_compact (default), jws_json_flattened or jws_json_general
	Format string `json:"format,omitempty"`

	// Signatures to produce
	// Required: true
	Signatures []SignatureRequest `json:"signatures"`
}

// SignatureRequest describes one signature of a sign request
type SignatureRequest struct {
	// Key ID of a configured key
	// Required: true
	KeyID string `json:"kid"`

	// Algorithm. Defaults to the algorithm of the key.
	Algorithm string `json:"alg,omitempty"`

	// Additional protected header parameters
	Protected map[string]interface{} `json:"protected,omitempty"`

	// Unprotected header parameters
	Header map[string]interface{} `json:"header,omitempty"`
}

// SignResponse is the result of a sign request
// swagger:response signResponse
type SignResponse struct {
	JWS      string `json:"jws"`
	Format   string `json:"format"`
	TokenRef string `json:"tokenRef"`
}

// VerifyRequest is the body of a verify request
// swagger:parameters verifyRequest
type VerifyRequest struct {
	// Serialized JWS in any format
	// Required: true
	JWS string `json:"jws"`

	// Serialization format the JWS must be in. Any format is accepted when empty.
	Format string `json:"format,omitempty"`

	// Payload of a JWS with a detached payload, as text
	DetachedPayload *string `json:"detachedPayload,omitempty"`

	// Restricts verification to the configured keys with these IDs
	KeyIDs []string `json:"kids,omitempty"`
}

// VerifyResponse is the result of a verify request
// swagger:response verifyResponse
type VerifyResponse struct {
	Format     string            `json:"format"`
	TokenRef   string            `json:"tokenRef"`
	Payload    string            `json:"payload,omitempty"`
	Verified   bool              `json:"verified"`
	Signatures []SignatureResult `json:"signatures"`
}

// SignatureResult is the verification outcome of one signature
type SignatureResult struct {
	Index     int    `json:"index"`
	Algorithm string `json:"alg,omitempty"`
	Verified  bool   `json:"verified"`
	KeyID     string `json:"kid,omitempty"`
	Error     string `json:"error,omitempty"`
	Kind      string `json:"kind,omitempty"`
}
