/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jwshandler

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"

	logfields "github.com/trustbloc/jws-core-go/internal/log"
	"github.com/trustbloc/jws-core-go/pkg/jwk"
	"github.com/trustbloc/jws-core-go/pkg/jws"
	"github.com/trustbloc/jws-core-go/pkg/restapi/common"
	"github.com/trustbloc/jws-core-go/pkg/restapi/model"
	"github.com/trustbloc/jws-core-go/pkg/tokenref"
	"github.com/trustbloc/jws-core-go/pkg/verifier"
)

// VerifyHandler verifies JWS against the configured keys
type VerifyHandler struct {
	basePath string
	keys     KeyStore
	opts     *options
	verifier *verifier.Verifier
}

// NewVerifyHandler returns a new verify handler
func NewVerifyHandler(basePath string, keys KeyStore, opts ...Option) *VerifyHandler {
	o := newOptions(opts)

	verifierOpts := []verifier.Option{verifier.WithSerializerManager(o.serializers)}
	if o.allowUnsecured {
		verifierOpts = append(verifierOpts, verifier.WithUnsecuredAllowed())
	}

	return &VerifyHandler{
		basePath: basePath,
		keys:     keys,
		opts:     o,
		verifier: verifier.New(o.registry, verifierOpts...),
	}
}

// Path returns the context path
func (h *VerifyHandler) Path() string {
	return h.basePath + "/verify"
}

// Method returns the HTTP method
func (h *VerifyHandler) Method() string {
	return http.MethodPost
}

// Handler returns the handler
func (h *VerifyHandler) Handler() common.HTTPRequestHandler {
	return h.Verify
}

// Verify verifies every signature of the JWS in the request
func (h *VerifyHandler) Verify(rw http.ResponseWriter, req *http.Request) {
	request, err := ioutil.ReadAll(req.Body)
	if err != nil {
		common.WriteError(rw, http.StatusBadRequest, err)
		return
	}

	response, err := h.doVerify(request)
	if err != nil {
		common.WriteError(rw, http.StatusInternalServerError, err)
		return
	}

	common.WriteResponse(rw, http.StatusOK, response)
}

func (h *VerifyHandler) doVerify(request []byte) (*model.VerifyResponse, error) {
	var verifyReq model.VerifyRequest
	if err := json.Unmarshal(request, &verifyReq); err != nil {
		return nil, common.NewHTTPError(http.StatusBadRequest, fmt.Errorf("invalid verify request: %w", err))
	}

	token, format, err := h.load(verifyReq.Format, verifyReq.JWS)
	if err != nil {
		return nil, common.NewHTTPError(http.StatusBadRequest, err)
	}

	candidates, kids, err := h.candidates(verifyReq.KeyIDs)
	if err != nil {
		return nil, common.NewHTTPError(http.StatusBadRequest, err)
	}

	var opts []verifier.VerifyOption
	if verifyReq.DetachedPayload != nil {
		opts = append(opts, verifier.WithDetachedPayload([]byte(*verifyReq.DetachedPayload)))
	}

	results := h.verifier.Verify(token, candidates, opts...)

	resp := NewVerifyResponse(verifyReq.JWS, format, token, results, kids)

	logger.Debug("Verified JWS", logfields.WithTokenRef(resp.TokenRef), logfields.WithFormat(format),
		logfields.WithTotal(len(results)))

	return resp, nil
}

func (h *VerifyHandler) load(format, input string) (*jws.JSONWebSignature, string, error) {
	if format == "" {
		return h.verifier.Load(input)
	}

	token, err := h.verifier.LoadFormat(format, input)

	return token, format, err
}

// candidates returns the verification candidates for the requested key IDs (all keys when none are
// requested) and the key ID of each candidate.
func (h *VerifyHandler) candidates(kids []string) ([]verifier.Candidate, []string, error) {
	if len(kids) == 0 {
		return Candidates(h.keys.Keys(), h.opts.allowUnsecured)
	}

	keys := make([]*jwk.Key, 0, len(kids))

	for _, kid := range kids {
		key, err := h.keys.Get(kid)
		if err != nil {
			return nil, nil, err
		}

		keys = append(keys, key)
	}

	return Candidates(keys, h.opts.allowUnsecured)
}

// Candidates returns one verification candidate per key, restricted to the key's algorithms, and the key ID
// of each candidate. When unsecured JWS are allowed a "none" candidate with an empty key ID is appended.
func Candidates(keys []*jwk.Key, allowUnsecured bool) ([]verifier.Candidate, []string, error) {
	candidates := make([]verifier.Candidate, 0, len(keys)+1)
	ids := make([]string, 0, len(keys)+1)

	for _, key := range keys {
		verificationKey, err := key.VerificationKey()
		if err != nil {
			return nil, nil, err
		}

		candidates = append(candidates, verifier.Candidate{Algorithms: key.Algorithms(), Key: verificationKey})
		ids = append(ids, key.KeyID)
	}

	if allowUnsecured {
		candidates = append(candidates, verifier.Candidate{Algorithms: []string{jws.None}})
		ids = append(ids, "")
	}

	return candidates, ids, nil
}

// NewVerifyResponse builds the verify response for the serialized JWS. kids holds the key ID of each
// candidate the results refer to.
func NewVerifyResponse(serialized, format string, token *jws.JSONWebSignature, results verifier.Results,
	kids []string) *model.VerifyResponse {
	resp := &model.VerifyResponse{
		Format:     format,
		TokenRef:   tokenref.MustCompute(serialized),
		Verified:   results.AnyVerified(),
		Signatures: make([]model.SignatureResult, 0, len(results)),
	}

	if !token.IsPayloadDetached() {
		resp.Payload = string(token.Payload())
	}

	for _, res := range results {
		sr := model.SignatureResult{Index: res.Index, Algorithm: res.Algorithm, Verified: res.Verified()}

		switch {
		case res.Verified() && res.KeyIndex < len(kids):
			sr.KeyID = kids[res.KeyIndex]
		case res.Err != nil:
			sr.Error = res.Err.Error()
			sr.Kind = jws.Kind(res.Err)
		}

		resp.Signatures = append(resp.Signatures, sr)
	}

	return resp
}
