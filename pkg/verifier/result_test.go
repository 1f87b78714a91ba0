/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package verifier

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trustbloc/jws-core-go/pkg/jws"
)

func TestResults(t *testing.T) {
	require.False(t, Result{}.Verified())
	require.False(t, Result{KeyIndex: 0, Err: jws.ErrVerificationFailed}.Verified())
	require.True(t, Result{KeyIndex: 2}.Verified())

	results := Results{
		{Index: 0, KeyIndex: -1, Err: jws.ErrVerificationFailed},
		{Index: 1, KeyIndex: 0},
		{Index: 2, KeyIndex: -1, Err: jws.ErrUnknownAlgorithm},
		{Index: 3, KeyIndex: 1},
	}

	require.Equal(t, []int{1, 3}, results.Verified())
	require.True(t, results.AnyVerified())
	require.False(t, results[:1].AnyVerified())
}
