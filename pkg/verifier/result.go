/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package verifier

// Result is the outcome of verifying one signature.
type Result struct {
	// Index is the position of the signature in the JWS.
	Index int
	// Algorithm is the protected "alg" value, empty if it could not be read.
	Algorithm string
	// KeyIndex is the position of the candidate key that verified the signature, or -1.
	KeyIndex int
	// Err is nil for a verified signature.
	Err error
}

// Verified reports whether the signature verified.
func (r Result) Verified() bool {
	return r.Err == nil && r.KeyIndex >= 0
}

// Results holds one result per signature, in signature order.
type Results []Result

// Verified returns the indexes of the verified signatures.
func (r Results) Verified() []int {
	var indexes []int

	for _, res := range r {
		if res.Verified() {
			indexes = append(indexes, res.Index)
		}
	}

	return indexes
}

// AnyVerified reports whether at least one signature verified. It is false for a JWS without signatures.
func (r Results) AnyVerified() bool {
	return len(r.Verified()) > 0
}
