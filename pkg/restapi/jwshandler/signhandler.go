/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jwshandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"net/http"

	"github.com/trustbloc/jws-core-go/pkg/builder"
	logfields "github.com/trustbloc/jws-core-go/internal/log"
	"github.com/trustbloc/jws-core-go/pkg/jws"
	"github.com/trustbloc/jws-core-go/pkg/log"
	"github.com/trustbloc/jws-core-go/pkg/restapi/common"
	"github.com/trustbloc/jws-core-go/pkg/restapi/model"
	"github.com/trustbloc/jws-core-go/pkg/serializer"
	"github.com/trustbloc/jws-core-go/pkg/tokenref"
)

var logger = logfields.New(log.ModuleRESTAPI)

// SignHandler signs payloads with configured keys
type SignHandler struct {
	basePath string
	keys     KeyStore
	opts     *options
}

// NewSignHandler returns a new sign handler
func NewSignHandler(basePath string, keys KeyStore, opts ...Option) *SignHandler {
	return &SignHandler{
		basePath: basePath,
		keys:     keys,
		opts:     newOptions(opts),
	}
}

// Path returns the context path
func (h *SignHandler) Path() string {
	return h.basePath + "/sign"
}

// Method returns the HTTP method
func (h *SignHandler) Method() string {
	return http.MethodPost
}

// Handler returns the handler
func (h *SignHandler) Handler() common.HTTPRequestHandler {
	return h.Sign
}

// Sign signs the payload of the request
func (h *SignHandler) Sign(rw http.ResponseWriter, req *http.Request) {
	request, err := ioutil.ReadAll(req.Body)
	if err != nil {
		common.WriteError(rw, http.StatusBadRequest, err)
		return
	}

	response, err := h.doSign(request)
	if err != nil {
		common.WriteError(rw, http.StatusInternalServerError, err)
		return
	}

	common.WriteResponse(rw, http.StatusOK, response)
}

func (h *SignHandler) doSign(request []byte) (*model.SignResponse, error) {
	var signReq model.SignRequest
	if err := json.Unmarshal(request, &signReq); err != nil {
		return nil, common.NewHTTPError(http.StatusBadRequest, fmt.Errorf("invalid sign request: %w", err))
	}

	format := signReq.Format
	if format == "" {
		format = serializer.CompactName
	}

	if _, err := h.opts.serializers.Get(format); err != nil {
		return nil, common.NewHTTPError(http.StatusBadRequest, err)
	}

	if len(signReq.Signatures) == 0 {
		return nil, common.NewHTTPError(http.StatusBadRequest, errors.New("at least one signature is required"))
	}

	var builderOpts []builder.Option
	if h.opts.allowUnsecured {
		builderOpts = append(builderOpts, builder.WithUnsecuredAllowed())
	}

	b := builder.New(h.opts.registry, builderOpts...).WithPayload([]byte(signReq.Payload), signReq.Detached)

	for i, s := range signReq.Signatures {
		alg, key, protected, err := h.signatureParams(s)
		if err != nil {
			return nil, common.NewHTTPError(http.StatusBadRequest, jws.NewSignatureError(i, err))
		}

		b = b.AddSignature(alg, key, protected, s.Header)
	}

	token, err := b.Build()
	if err != nil {
		logger.Warnf("Sign request rejected: %s", err)

		return nil, common.NewHTTPError(common.StatusFor(err), err)
	}

	out, err := h.opts.serializers.Serialize(format, token)
	if err != nil {
		return nil, common.NewHTTPError(common.StatusFor(err), err)
	}

	ref := tokenref.MustCompute(out)

	logger.Debug("Signed payload", logfields.WithTokenRef(ref), logfields.WithFormat(format),
		logfields.WithTotal(token.SignatureCount()))

	return &model.SignResponse{JWS: out, Format: format, TokenRef: ref}, nil
}

func (h *SignHandler) signatureParams(s model.SignatureRequest) (string, interface{}, jws.Headers, error) {
	if s.KeyID == "" {
		if s.Algorithm == jws.None {
			return jws.None, nil, s.Protected, nil
		}

		return "", nil, nil, errors.New("kid is required")
	}

	key, err := h.keys.Get(s.KeyID)
	if err != nil {
		return "", nil, nil, err
	}

	alg := s.Algorithm
	if alg == "" {
		alg = key.Algorithm
	}

	if alg == "" {
		return "", nil, nil, fmt.Errorf("alg is required for key '%s'", s.KeyID)
	}

	protected := jws.Headers(s.Protected).Clone()

	if _, ok := s.Header[jws.HeaderKeyID]; !ok && !protected.Has(jws.HeaderKeyID) {
		protected[jws.HeaderKeyID] = key.KeyID
	}

	return alg, key.Key, protected, nil
}
