/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package log

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log Fields.
const (
	FieldAlgorithm      = "alg"
	FieldAlgorithms     = "algorithms"
	FieldSignatureIndex = "signatureIndex"
	FieldKeyIndex       = "keyIndex"
	FieldKeyID          = "kid"
	FieldTokenRef       = "tokenRef"
	FieldFormat         = "format"
	FieldTotal          = "total"
	FieldHeader         = "header"
	FieldDetached       = "detached"
	FieldReason         = "reason"
	FieldURI            = "uri"
)

// WithAlgorithm sets the alg field.
func WithAlgorithm(value string) zap.Field {
	return zap.String(FieldAlgorithm, value)
}

// WithAlgorithms sets the algorithms field.
func WithAlgorithms(value ...string) zap.Field {
	return zap.Array(FieldAlgorithms, NewStringArrayMarshaller(value))
}

// WithSignatureIndex sets the signature-index field.
func WithSignatureIndex(value int) zap.Field {
	return zap.Int(FieldSignatureIndex, value)
}

// WithKeyIndex sets the key-index field.
func WithKeyIndex(value int) zap.Field {
	return zap.Int(FieldKeyIndex, value)
}

// WithKeyID sets the kid field.
func WithKeyID(value string) zap.Field {
	return zap.String(FieldKeyID, value)
}

// WithTokenRef sets the token-ref field.
func WithTokenRef(value string) zap.Field {
	return zap.String(FieldTokenRef, value)
}

// WithFormat sets the format field.
func WithFormat(value string) zap.Field {
	return zap.String(FieldFormat, value)
}

// WithTotal sets the total field.
func WithTotal(value int) zap.Field {
	return zap.Int(FieldTotal, value)
}

// WithHeader sets the header field.
func WithHeader(value map[string]interface{}) zap.Field {
	return zap.Inline(newJSONMarshaller(FieldHeader, value))
}

// WithDetached sets the detached field.
func WithDetached(value bool) zap.Field {
	return zap.Bool(FieldDetached, value)
}

// WithReason sets the reason field.
func WithReason(value string) zap.Field {
	return zap.String(FieldReason, value)
}

// WithURIString sets the uri field.
func WithURIString(value string) zap.Field {
	return zap.String(FieldURI, value)
}

type jsonMarshaller struct {
	key string
	obj interface{}
}

func newJSONMarshaller(key string, value interface{}) *jsonMarshaller {
	return &jsonMarshaller{key: key, obj: value}
}

func (m *jsonMarshaller) MarshalLogObject(e zapcore.ObjectEncoder) error {
	b, err := json.Marshal(m.obj)
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	e.AddString(m.key, string(b))

	return nil
}

// StringArrayMarshaller marshals an array of strings into a log field.
type StringArrayMarshaller struct {
	values []string
}

// NewStringArrayMarshaller returns a new StringArrayMarshaller.
func NewStringArrayMarshaller(values []string) *StringArrayMarshaller {
	return &StringArrayMarshaller{values: values}
}

// MarshalLogArray marshals the array.
func (m *StringArrayMarshaller) MarshalLogArray(e zapcore.ArrayEncoder) error {
	for _, v := range m.values {
		e.AppendString(v)
	}

	return nil
}
