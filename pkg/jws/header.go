/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jws

// IANA registered JOSE headers (https://tools.ietf.org/html/rfc7515#section-4.1)
const (
	// HeaderAlgorithm identifies the cryptographic algorithm used to secure the JWS.
	HeaderAlgorithm = "alg" // string

	// HeaderJWKSetURL is a URI that refers to a resource for a set of JSON-encoded public keys.
	HeaderJWKSetURL = "jku" // string

	// HeaderJSONWebKey is the public key that corresponds to the key used to digitally sign the JWS.
	HeaderJSONWebKey = "jwk" // JSON

	// HeaderKeyID is a hint indicating which key was used to secure the JWS.
	HeaderKeyID = "kid" // string

	// HeaderX509URL is a URI that refers to a resource for the X.509 public key certificate or certificate chain.
	HeaderX509URL = "x5u" // string

	// HeaderX509CertificateChain contains the X.509 public key certificate or certificate chain.
	HeaderX509CertificateChain = "x5c" // []string

	// HeaderX509CertificateDigest is a base64url-encoded SHA-1 thumbprint of the DER encoding of the X.509 certificate.
	HeaderX509CertificateDigestSha1 = "x5t" // string

	// HeaderX509CertificateDigestSha256 is a base64url-encoded SHA-256 thumbprint of the DER encoding of the X.509 certificate.
	HeaderX509CertificateDigestSha256 = "x5t#S256" // string

	// HeaderType is used by JWS applications to declare the media type of this complete JWS.
	HeaderType = "typ" // string

	// HeaderContentType is used by JWS applications to declare the media type of the secured content.
	HeaderContentType = "cty" // string

	// HeaderCritical indicates that extensions to the JWS specification are being used
	// that MUST be understood and processed.
	HeaderCritical = "crit" // []string
)

// HeaderB64Payload determines whether the payload is represented in the JWS and the JWS Signing Input
// as ASCII(BASE64URL(JWS Payload)) or as the JWS Payload value itself with no encoding performed.
// See https://tools.ietf.org/html/rfc7797#section-3
const HeaderB64Payload = "b64" // bool

// RegisteredHeaders returns the names defined by RFC 7515 itself. These must never be listed in "crit".
func RegisteredHeaders() []string {
	return []string{
		HeaderAlgorithm, HeaderJWKSetURL, HeaderJSONWebKey, HeaderKeyID, HeaderX509URL,
		HeaderX509CertificateChain, HeaderX509CertificateDigestSha1, HeaderX509CertificateDigestSha256,
		HeaderType, HeaderContentType, HeaderCritical,
	}
}

// Headers represents JOSE headers.
type Headers map[string]interface{}

// KeyID gets Key ID from JOSE headers.
func (h Headers) KeyID() (string, bool) {
	return h.stringValue(HeaderKeyID)
}

// Algorithm gets Algorithm from JOSE headers.
func (h Headers) Algorithm() (string, bool) {
	return h.stringValue(HeaderAlgorithm)
}

// Type gets the media type of the JWS from JOSE headers.
func (h Headers) Type() (string, bool) {
	return h.stringValue(HeaderType)
}

// Critical gets the list of critical header names. The second return value is false
// when "crit" is absent or is not an array of strings.
func (h Headers) Critical() ([]string, bool) {
	raw, ok := h[HeaderCritical]
	if !ok {
		return nil, false
	}

	switch v := raw.(type) {
	case []string:
		return append([]string(nil), v...), true
	case []interface{}:
		names := make([]string, 0, len(v))

		for _, item := range v {
			name, ok := item.(string)
			if !ok {
				return nil, false
			}

			names = append(names, name)
		}

		return names, true
	default:
		return nil, false
	}
}

// Has reports whether the given parameter is present.
func (h Headers) Has(name string) bool {
	_, ok := h[name]

	return ok
}

// Clone returns a shallow copy of the headers. A nil receiver yields an empty, non-nil map.
func (h Headers) Clone() Headers {
	c := make(Headers, len(h))

	for k, v := range h {
		c[k] = v
	}

	return c
}

func (h Headers) stringValue(key string) (string, bool) {
	raw, ok := h[key]
	if !ok {
		return "", false
	}

	str, ok := raw.(string)

	return str, ok
}
