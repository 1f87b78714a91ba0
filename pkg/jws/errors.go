/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jws

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedSerialization is returned when serialized JWS bytes cannot be parsed: bad base64url,
	// bad JSON or a wrong structure.
	ErrMalformedSerialization = errors.New("malformed serialization")

	// ErrDuplicateHeaderParameter is returned when a header parameter is present in both the protected
	// and the unprotected header of one signature.
	ErrDuplicateHeaderParameter = errors.New("duplicate header parameter")

	// ErrUnsupportedCriticalHeader is returned when "crit" is invalid or lists a parameter that is
	// absent or has no registered checker.
	ErrUnsupportedCriticalHeader = errors.New("unsupported critical header")

	// ErrInvalidB64Header is returned when the RFC 7797 "b64" header is used incorrectly.
	ErrInvalidB64Header = errors.New("invalid b64 header")

	// ErrUnknownAlgorithm is returned when an algorithm name cannot be resolved.
	ErrUnknownAlgorithm = errors.New("unknown algorithm")

	// ErrKeyTypeMismatch is returned when a key does not have the shape an algorithm requires.
	ErrKeyTypeMismatch = errors.New("key type mismatch")

	// ErrUnsupportedOperation is returned when an algorithm cannot perform an operation with the given key,
	// e.g. signing with a public key.
	ErrUnsupportedOperation = errors.New("unsupported operation")

	// ErrUnsupportedByFormat is returned when a JWS cannot be represented by a serialization format.
	ErrUnsupportedByFormat = errors.New("unsupported by format")

	// ErrUnsecuredNotAllowed is returned when the "none" algorithm is used without being explicitly allowed.
	ErrUnsecuredNotAllowed = errors.New("unsecured JWS not allowed")

	// ErrVerificationFailed is returned for a structurally valid signature that does not verify.
	ErrVerificationFailed = errors.New("verification failed")

	// ErrMissingHeaderParameter is returned when a mandatory header parameter is missing.
	ErrMissingHeaderParameter = errors.New("missing header parameter")

	// ErrAlgorithmMismatch is returned when the "alg" header disagrees with the algorithm used for signing.
	ErrAlgorithmMismatch = errors.New("algorithm mismatch")

	// ErrInvalidHeader is returned when a header parameter is rejected by its checker.
	ErrInvalidHeader = errors.New("invalid header parameter")
)

var kinds = []struct {
	err  error
	name string
}{
	{ErrMalformedSerialization, "MalformedSerialization"},
	{ErrDuplicateHeaderParameter, "DuplicateHeaderParameter"},
	{ErrUnsupportedCriticalHeader, "UnsupportedCriticalHeader"},
	{ErrInvalidB64Header, "InvalidB64Header"},
	{ErrUnknownAlgorithm, "UnknownAlgorithm"},
	{ErrKeyTypeMismatch, "KeyTypeMismatch"},
	{ErrUnsupportedOperation, "UnsupportedOperation"},
	{ErrUnsupportedByFormat, "UnsupportedByFormat"},
	{ErrUnsecuredNotAllowed, "UnsecuredNotAllowed"},
	{ErrVerificationFailed, "VerificationFailed"},
	{ErrMissingHeaderParameter, "MissingHeaderParameter"},
	{ErrAlgorithmMismatch, "AlgorithmMismatch"},
	{ErrInvalidHeader, "InvalidHeader"},
}

// Kind returns the taxonomy name of err, or an empty string if err is nil or does not wrap one of
// the errors defined by this package.
func Kind(err error) string {
	if err == nil {
		return ""
	}

	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.name
		}
	}

	return ""
}

// SignatureError ties an error to the index of the signature it concerns.
type SignatureError struct {
	Index int
	Err   error
}

// NewSignatureError returns a new SignatureError.
func NewSignatureError(index int, err error) *SignatureError {
	return &SignatureError{Index: index, Err: err}
}

func (e *SignatureError) Error() string {
	return fmt.Sprintf("signature #%d: %s", e.Index, e.Err)
}

// Unwrap returns the underlying error.
func (e *SignatureError) Unwrap() error {
	return e.Err
}
