/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package log

import (
	"bytes"
	"encoding/json"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStandardFields(t *testing.T) {
	const module = "test_module"

	u1 := parseURL(t, "https://example1.com")

	t.Run("json fields", func(t *testing.T) {
		stdOut := newMockWriter()

		logger := New(module, WithStdOut(stdOut), WithEncoding(JSON))

		logger.Info("Some message",
			WithAlgorithm("PS512"), WithAlgorithms("HS256", "ES256"), WithSignatureIndex(2), WithKeyIndex(1),
			WithKeyID("key-1"), WithTokenRef("zQm1234"), WithFormat("jws_compact"), WithTotal(12),
			WithHeader(map[string]interface{}{"alg": "PS512"}), WithDetached(true), WithReason("verification failed"),
			WithURIString(u1.String()),
		)

		l := unmarshalLogData(t, stdOut.Bytes())

		require.Equal(t, `Some message`, l.Msg)
		require.Equal(t, "INFO", l.Level)
		require.Equal(t, module, l.Logger)
		require.Equal(t, "PS512", l.Algorithm)
		require.Equal(t, []string{"HS256", "ES256"}, l.Algorithms)
		require.Equal(t, 2, l.SignatureIndex)
		require.Equal(t, 1, l.KeyIndex)
		require.Equal(t, "key-1", l.KeyID)
		require.Equal(t, "zQm1234", l.TokenRef)
		require.Equal(t, "jws_compact", l.Format)
		require.Equal(t, 12, l.Total)
		require.Equal(t, `{"alg":"PS512"}`, l.Header)
		require.True(t, l.Detached)
		require.Equal(t, "verification failed", l.Reason)
		require.Equal(t, u1.String(), l.URI)
	})
}

type logData struct {
	Level  string `json:"level"`
	Time   string `json:"time"`
	Logger string `json:"logger"`
	Caller string `json:"caller"`
	Msg    string `json:"msg"`
	Error  string `json:"error"`

	Algorithm      string   `json:"alg"`
	Algorithms     []string `json:"algorithms"`
	SignatureIndex int      `json:"signatureIndex"`
	KeyIndex       int      `json:"keyIndex"`
	KeyID          string   `json:"kid"`
	TokenRef       string   `json:"tokenRef"`
	Format         string   `json:"format"`
	Total          int      `json:"total"`
	Header         string   `json:"header"`
	Detached       bool     `json:"detached"`
	Reason         string   `json:"reason"`
	URI            string   `json:"uri"`
}

func unmarshalLogData(t *testing.T, b []byte) *logData {
	t.Helper()

	l := &logData{}

	require.NoError(t, json.Unmarshal(b, l))

	return l
}

func parseURL(t *testing.T, raw string) *url.URL {
	t.Helper()

	u, err := url.Parse(raw)
	require.NoError(t, err)

	return u
}

type mockWriter struct {
	*bytes.Buffer
}

func (m *mockWriter) Sync() error {
	return nil
}

func newMockWriter() *mockWriter {
	return &mockWriter{Buffer: bytes.NewBuffer(nil)}
}
