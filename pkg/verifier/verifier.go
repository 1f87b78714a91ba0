/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package verifier

import (
	"errors"
	"fmt"

	"github.com/trustbloc/jws-core-go/pkg/algorithm"
	"github.com/trustbloc/jws-core-go/pkg/headerchecker"
	logfields "github.com/trustbloc/jws-core-go/internal/log"
	"github.com/trustbloc/jws-core-go/pkg/jws"
	"github.com/trustbloc/jws-core-go/pkg/log"
	"github.com/trustbloc/jws-core-go/pkg/serializer"
	"github.com/trustbloc/jws-core-go/pkg/tokenref"
)

var logger = logfields.New(log.ModuleVerifier)

// AlgorithmResolver resolves "alg" values to signature algorithms.
type AlgorithmResolver interface {
	Resolve(name string) (algorithm.SignatureAlgorithm, error)
}

// HeaderChecker validates the headers of one signature.
type HeaderChecker interface {
	Check(protected, unprotected jws.Headers) error
}

// Unserializer parses serialized JWS and reports the detected format. Get returns the serializer of one
// format.
type Unserializer interface {
	Unserialize(input string) (*jws.JSONWebSignature, string, error)
	Get(name string) (serializer.Serializer, error)
}

// Candidate is a key the caller is willing to verify with, restricted to the listed algorithms.
// An empty list admits every algorithm except "none".
type Candidate struct {
	Algorithms []string
	Key        interface{}
}

// Option is a verifier option.
type Option func(v *Verifier)

// WithHeaderChecker sets the header rules applied to every signature. Defaults to a checker that
// understands "b64".
func WithHeaderChecker(checker HeaderChecker) Option {
	return func(v *Verifier) {
		v.checker = checker
	}
}

// WithSerializerManager sets the serializers used by Load. Defaults to all three JWS serializations.
func WithSerializerManager(s Unserializer) Option {
	return func(v *Verifier) {
		v.serializers = s
	}
}

// WithUnsecuredAllowed allows the "none" algorithm. A "none" signature verifies only with a candidate
// that lists "none" explicitly.
func WithUnsecuredAllowed() Option {
	return func(v *Verifier) {
		v.allowUnsecured = true
	}
}

type verifyOpts struct {
	detachedPayload []byte
}

// VerifyOption is an option of a single verification.
type VerifyOption func(opts *verifyOpts)

// WithDetachedPayload supplies the payload of a JWS whose payload is detached.
func WithDetachedPayload(payload []byte) VerifyOption {
	return func(opts *verifyOpts) {
		opts.detachedPayload = payload
	}
}

// Verifier loads serialized JWS and verifies their signatures. It holds no per-call state and may be
// shared between goroutines.
type Verifier struct {
	resolver       AlgorithmResolver
	checker        HeaderChecker
	serializers    Unserializer
	allowUnsecured bool
}

// New returns a new verifier.
func New(resolver AlgorithmResolver, opts ...Option) *Verifier {
	v := &Verifier{
		resolver:    resolver,
		checker:     headerchecker.NewDefaultManager(),
		serializers: serializer.NewDefaultManager(),
	}

	for _, opt := range opts {
		opt(v)
	}

	return v
}

// Load parses a serialized JWS in any supported format and returns it with the format name.
func (v *Verifier) Load(input string) (*jws.JSONWebSignature, string, error) {
	token, format, err := v.serializers.Unserialize(input)
	if err != nil {
		logger.Debug("Failed to load JWS", logfields.WithTokenRef(tokenref.MustCompute(input)),
			logfields.WithReason(err.Error()))

		return nil, "", err
	}

	logger.Debug("Loaded JWS", logfields.WithTokenRef(tokenref.MustCompute(input)), logfields.WithFormat(format),
		logfields.WithTotal(token.SignatureCount()), logfields.WithDetached(token.IsPayloadDetached()))

	return token, format, nil
}

// LoadFormat parses a serialized JWS that must be in the named format. Input in any other format fails
// with ErrMalformedSerialization.
func (v *Verifier) LoadFormat(format, input string) (*jws.JSONWebSignature, error) {
	s, err := v.serializers.Get(format)
	if err != nil {
		return nil, err
	}

	token, err := s.Unserialize(input)
	if err != nil {
		logger.Debug("Failed to load JWS", logfields.WithTokenRef(tokenref.MustCompute(input)),
			logfields.WithFormat(format), logfields.WithReason(err.Error()))

		return nil, err
	}

	logger.Debug("Loaded JWS", logfields.WithTokenRef(tokenref.MustCompute(input)), logfields.WithFormat(format),
		logfields.WithTotal(token.SignatureCount()), logfields.WithDetached(token.IsPayloadDetached()))

	return token, nil
}

// LoadAndVerify loads the input and verifies every signature.
func (v *Verifier) LoadAndVerify(input string, candidates []Candidate,
	opts ...VerifyOption) (*jws.JSONWebSignature, Results, error) {
	token, _, err := v.Load(input)
	if err != nil {
		return nil, nil, err
	}

	return token, v.Verify(token, candidates, opts...), nil
}

// LoadAndVerifyFormat is LoadAndVerify for input that must be in the named format.
func (v *Verifier) LoadAndVerifyFormat(format, input string, candidates []Candidate,
	opts ...VerifyOption) (*jws.JSONWebSignature, Results, error) {
	token, err := v.LoadFormat(format, input)
	if err != nil {
		return nil, nil, err
	}

	return token, v.Verify(token, candidates, opts...), nil
}

// Verify verifies every signature of the JWS independently and returns one result per signature.
// Applying a policy such as "at least one trusted signature" is left to the caller.
func (v *Verifier) Verify(token *jws.JSONWebSignature, candidates []Candidate, opts ...VerifyOption) Results {
	vOpts := &verifyOpts{}

	for _, opt := range opts {
		opt(vOpts)
	}

	payload := token.Payload()
	if token.IsPayloadDetached() {
		payload = vOpts.detachedPayload
	}

	results := make(Results, 0, token.SignatureCount())

	for i, sig := range token.Signatures() {
		res := v.verifySignature(sig, payload, candidates)
		res.Index = i

		if res.Err != nil {
			logger.Debug("Signature rejected", logfields.WithSignatureIndex(i),
				logfields.WithAlgorithm(res.Algorithm), logfields.WithReason(res.Err.Error()))
		} else {
			logger.Debug("Signature verified", logfields.WithSignatureIndex(i),
				logfields.WithAlgorithm(res.Algorithm), logfields.WithKeyIndex(res.KeyIndex))
		}

		results = append(results, res)
	}

	return results
}

func (v *Verifier) verifySignature(sig *jws.Signature, payload []byte, candidates []Candidate) Result {
	res := Result{KeyIndex: -1}

	if err := v.checker.Check(sig.ProtectedHeader(), sig.Header()); err != nil {
		res.Err = err

		return res
	}

	alg, ok := sig.ProtectedHeader().Algorithm()
	if !ok {
		res.Err = fmt.Errorf("%w: 'alg' is missing from the protected header", jws.ErrUnknownAlgorithm)

		return res
	}

	res.Algorithm = alg

	if alg == jws.None && !v.allowUnsecured {
		res.Err = jws.ErrUnsecuredNotAllowed

		return res
	}

	a, err := v.resolver.Resolve(alg)
	if err != nil {
		res.Err = err

		return res
	}

	input := jws.SigningInput(sig.EncodedProtectedHeader(), payload, sig.IsPayloadEncoded())

	var admitted, mismatched int

	for k, c := range candidates {
		if !admits(c, alg) {
			continue
		}

		admitted++

		verified, verifyErr := a.Verify(input, c.Key, sig.Signature())
		if verifyErr != nil {
			if errors.Is(verifyErr, jws.ErrKeyTypeMismatch) {
				mismatched++
			}

			logger.Debugf("Candidate key %d not usable for %s: %s", k, alg, verifyErr)

			continue
		}

		if verified {
			res.KeyIndex = k

			return res
		}
	}

	switch {
	case admitted == 0:
		res.Err = fmt.Errorf("%w: no candidate key admits '%s'", jws.ErrVerificationFailed, alg)
	case mismatched == admitted:
		res.Err = fmt.Errorf("%w: no candidate key has the shape required by '%s'", jws.ErrKeyTypeMismatch, alg)
	default:
		res.Err = jws.ErrVerificationFailed
	}

	return res
}

func admits(c Candidate, alg string) bool {
	if len(c.Algorithms) == 0 {
		return alg != jws.None
	}

	for _, a := range c.Algorithms {
		if a == alg {
			return true
		}
	}

	return false
}
