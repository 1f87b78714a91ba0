/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jws

// Signature algorithm names (https://tools.ietf.org/html/rfc7518#section-3.1).
const (
	HS256 = "HS256"
	HS384 = "HS384"
	HS512 = "HS512"

	RS256 = "RS256"
	RS384 = "RS384"
	RS512 = "RS512"

	PS256 = "PS256"
	PS384 = "PS384"
	PS512 = "PS512"

	ES256  = "ES256"
	ES384  = "ES384"
	ES512  = "ES512"
	ES256K = "ES256K"

	EdDSA = "EdDSA"

	None = "none"
)

// Family groups signature algorithms sharing one cryptographic primitive.
type Family int

// Supported algorithm families.
const (
	FamilyUnknown Family = iota
	FamilyHMAC
	FamilyRSAPKCS1
	FamilyRSAPSS
	FamilyECDSA
	FamilyEdDSA
	FamilyUnsecured
)

func (f Family) String() string {
	switch f {
	case FamilyHMAC:
		return "HMAC"
	case FamilyRSAPKCS1:
		return "RSA-PKCS1"
	case FamilyRSAPSS:
		return "RSA-PSS"
	case FamilyECDSA:
		return "ECDSA"
	case FamilyEdDSA:
		return "EdDSA"
	case FamilyUnsecured:
		return "Unsecured"
	default:
		return "unknown"
	}
}
