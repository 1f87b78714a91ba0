/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package common

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/trustbloc/jws-core-go/pkg/jws"
	"github.com/trustbloc/jws-core-go/pkg/restapi/model"
)

const contentTypeJSON = "application/json"

// WriteResponse writes a response to the response writer
func WriteResponse(rw http.ResponseWriter, status int, v interface{}) {
	rw.Header().Set("Content-Type", contentTypeJSON)
	rw.WriteHeader(status)

	err := json.NewEncoder(rw).Encode(v)
	if err != nil {
		logger.Errorf("Unable to write response: %s", err)
	}
}

// WriteError writes an error to the response writer. The status of an HTTPError takes precedence over status.
func WriteError(rw http.ResponseWriter, status int, err error) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		status = httpErr.Status()
	}

	WriteResponse(rw, status, &model.Error{Message: err.Error(), Kind: jws.Kind(err)})
}

// StatusFor returns the HTTP status reported for a JWS error: 400 for errors caused by the request and
// 500 for anything else.
func StatusFor(err error) int {
	if jws.Kind(err) != "" {
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}
