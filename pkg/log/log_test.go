/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package log

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultLevel(t *testing.T) {
	SetDefaultLevel(ERROR)
	defer SetDefaultLevel(INFO)

	require.Equal(t, ERROR, GetLevel("moduley"))
}

func TestSetLevel(t *testing.T) {
	SetLevel("modulex", PANIC)

	require.Equal(t, PANIC, GetLevel("modulex"))
}

func TestSetSpec(t *testing.T) {
	defer SetDefaultLevel(INFO)

	require.NoError(t, SetSpec(ModuleVerifier+"=debug:"+ModuleBuilder+"=panic:error"))
	require.Contains(t, GetSpec(), "jws-core-verifier=DEBUG")
	require.Contains(t, GetSpec(), "jws-core-builder=PANIC")
	require.Contains(t, GetSpec(), ":ERROR")

	require.Equal(t, DEBUG, GetLevel(ModuleVerifier))
	require.Equal(t, PANIC, GetLevel(ModuleBuilder))
	require.Equal(t, ERROR, GetLevel(""))
}
