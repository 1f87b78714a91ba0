/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package encoder

import (
	"encoding/base64"
	"fmt"
	"strings"
)

var strictRawURL = base64.RawURLEncoding.Strict()

// EncodeToString encodes the bytes to an unpadded base64url string.
func EncodeToString(data []byte) string {
	return base64.RawURLEncoding.EncodeToString(data)
}

// DecodeString decodes unpadded base64url content. Padding, line breaks, characters outside of
// the URL-safe alphabet and non-canonical trailing bits are all rejected.
func DecodeString(encodedContent string) ([]byte, error) {
	if i := strings.IndexAny(encodedContent, "=\r\n"); i >= 0 {
		return nil, fmt.Errorf("illegal base64url data at input byte %d", i)
	}

	return strictRawURL.DecodeString(encodedContent)
}
