/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package builder

import (
	"errors"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/square/go-jose/v3/json"

	"github.com/trustbloc/jws-core-go/pkg/algorithm"
	"github.com/trustbloc/jws-core-go/pkg/encoder"
	"github.com/trustbloc/jws-core-go/pkg/headerchecker"
	logfields "github.com/trustbloc/jws-core-go/internal/log"
	"github.com/trustbloc/jws-core-go/pkg/jws"
	"github.com/trustbloc/jws-core-go/pkg/log"
)

var logger = logfields.New(log.ModuleBuilder)

// AlgorithmResolver resolves "alg" values to signature algorithms.
type AlgorithmResolver interface {
	Resolve(name string) (algorithm.SignatureAlgorithm, error)
}

// HeaderChecker validates the headers of one signature.
type HeaderChecker interface {
	Check(protected, unprotected jws.Headers) error
}

// Option is a builder option.
type Option func(b *Builder)

// WithHeaderChecker sets the header rules applied to every signature. Defaults to a checker that
// understands "b64".
func WithHeaderChecker(checker HeaderChecker) Option {
	return func(b *Builder) {
		b.checker = checker
	}
}

// WithUnsecuredAllowed allows signatures with the "none" algorithm.
func WithUnsecuredAllowed() Option {
	return func(b *Builder) {
		b.allowUnsecured = true
	}
}

// WithDefaultProtectedHeader sets parameters added to every protected header. The protected header of a
// signature is merged over the defaults (https://tools.ietf.org/html/rfc7386); a null value removes a default.
func WithDefaultProtectedHeader(headers jws.Headers) Option {
	return func(b *Builder) {
		b.defaultProtected = headers.Clone()
	}
}

type pendingSignature struct {
	alg         string
	key         interface{}
	protected   jws.Headers
	unprotected jws.Headers
}

// Builder collects a payload and signature requests and produces a JWS. WithPayload and AddSignature
// return modified copies, so a Builder may be shared and extended independently.
type Builder struct {
	resolver         AlgorithmResolver
	checker          HeaderChecker
	allowUnsecured   bool
	defaultProtected jws.Headers

	payload    []byte
	payloadSet bool
	detached   bool
	signatures []pendingSignature
}

// New returns a new builder.
func New(resolver AlgorithmResolver, opts ...Option) *Builder {
	b := &Builder{
		resolver: resolver,
		checker:  headerchecker.NewDefaultManager(),
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// WithPayload returns a copy of the builder with the given payload. A detached payload is signed
// but not carried by the serialized JWS.
func (b *Builder) WithPayload(payload []byte, detached bool) *Builder {
	c := b.clone()
	c.payload = append([]byte{}, payload...)
	c.payloadSet = true
	c.detached = detached

	return c
}

// AddSignature returns a copy of the builder with one more signature request. The "alg" parameter is
// written into the protected header.
func (b *Builder) AddSignature(alg string, key interface{}, protected, unprotected jws.Headers) *Builder {
	c := b.clone()
	c.signatures = append(c.signatures, pendingSignature{
		alg:         alg,
		key:         key,
		protected:   protected.Clone(),
		unprotected: unprotected.Clone(),
	})

	return c
}

// Build signs the payload once per signature request. Either every signature is produced or an error is
// returned; a per-signature failure is a *jws.SignatureError.
func (b *Builder) Build() (*jws.JSONWebSignature, error) {
	if !b.payloadSet {
		return nil, errors.New("payload has not been set")
	}

	if len(b.signatures) == 0 {
		return nil, errors.New("at least one signature is required")
	}

	var (
		signatures = make([]*jws.Signature, 0, len(b.signatures))
		encoded    bool
	)

	for i, p := range b.signatures {
		sig, sigEncoded, err := b.sign(p)
		if err != nil {
			logger.Debug("Failed to create signature", logfields.WithSignatureIndex(i),
				logfields.WithAlgorithm(p.alg), logfields.WithReason(err.Error()))

			return nil, jws.NewSignatureError(i, err)
		}

		if i == 0 {
			encoded = sigEncoded
		} else if sigEncoded != encoded {
			return nil, jws.NewSignatureError(i,
				fmt.Errorf("%w: b64 differs from the first signature", jws.ErrInvalidB64Header))
		}

		logger.Debug("Created signature", logfields.WithSignatureIndex(i), logfields.WithAlgorithm(p.alg))

		signatures = append(signatures, sig)
	}

	token := jws.New(b.payload, jws.EncodePayload(b.payload, encoded), b.detached)
	for _, sig := range signatures {
		token = token.WithSignature(sig)
	}

	return token, nil
}

func (b *Builder) sign(p pendingSignature) (*jws.Signature, bool, error) {
	protected, err := b.protectedHeader(p)
	if err != nil {
		return nil, false, err
	}

	if p.alg == jws.None && !b.allowUnsecured {
		return nil, false, jws.ErrUnsecuredNotAllowed
	}

	alg, err := b.resolver.Resolve(p.alg)
	if err != nil {
		return nil, false, err
	}

	if err := b.checker.Check(protected, p.unprotected); err != nil {
		return nil, false, err
	}

	headerBytes, err := json.Marshal(protected)
	if err != nil {
		return nil, false, fmt.Errorf("marshal protected header: %w", err)
	}

	encodedProtected := encoder.EncodeToString(headerBytes)
	encoded := jws.IsPayloadEncoded(protected)

	signature, err := alg.Sign(jws.SigningInput(encodedProtected, b.payload, encoded), p.key)
	if err != nil {
		return nil, false, err
	}

	return jws.NewSignature(signature, protected, encodedProtected, p.unprotected), encoded, nil
}

func (b *Builder) protectedHeader(p pendingSignature) (jws.Headers, error) {
	protected := p.protected.Clone()

	if len(b.defaultProtected) > 0 {
		merged, err := mergeHeaders(b.defaultProtected, p.protected)
		if err != nil {
			return nil, err
		}

		protected = merged
	}

	if v, ok := protected[jws.HeaderAlgorithm]; ok {
		if alg, ok := v.(string); !ok || alg != p.alg {
			return nil, fmt.Errorf("%w: header has '%v', signing with '%s'", jws.ErrAlgorithmMismatch, v, p.alg)
		}
	}

	protected[jws.HeaderAlgorithm] = p.alg

	return protected, nil
}

func mergeHeaders(defaults, headers jws.Headers) (jws.Headers, error) {
	docBytes, err := json.Marshal(defaults)
	if err != nil {
		return nil, fmt.Errorf("marshal default protected header: %w", err)
	}

	patchBytes, err := json.Marshal(headers)
	if err != nil {
		return nil, fmt.Errorf("marshal protected header: %w", err)
	}

	mergedBytes, err := jsonpatch.MergePatch(docBytes, patchBytes)
	if err != nil {
		return nil, fmt.Errorf("merge protected header: %w", err)
	}

	merged := make(jws.Headers)
	if err := json.Unmarshal(mergedBytes, &merged); err != nil {
		return nil, fmt.Errorf("unmarshal protected header: %w", err)
	}

	return merged, nil
}

func (b *Builder) clone() *Builder {
	c := *b
	c.signatures = append([]pendingSignature(nil), b.signatures...)

	return &c
}
