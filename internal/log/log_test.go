/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package log

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLevels(t *testing.T) {
	require.Equal(t, "DEBUG", DEBUG.String())
	require.Equal(t, "WARNING", WARNING.String())
	require.Equal(t, "Level(42)", Level(42).String())

	level, err := ParseLevel("warning")
	require.NoError(t, err)
	require.Equal(t, WARNING, level)

	_, err = ParseLevel("verbose")
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid log level")
}

func TestLog_LevelFiltering(t *testing.T) {
	const module = "level_filtering"

	stdOut := newMockWriter()
	logger := New(module, WithStdOut(stdOut), WithEncoding(JSON))
	require.Equal(t, module, logger.Module())

	SetLevel(module, ERROR)
	require.False(t, logger.IsEnabled(DEBUG))
	require.True(t, logger.IsEnabled(ERROR))

	logger.Debugf("hidden %d", 1)
	logger.Infof("hidden %d", 2)
	require.Empty(t, stdOut.String())

	logger.Errorf("shown %d", 3)
	require.Contains(t, stdOut.String(), "shown 3")

	stdOut.Reset()
	SetLevel(module, DEBUG)

	logger.Debugf("now shown %s", "debug")
	logger.Warnf("and %s", "warning")

	lines := strings.Split(strings.TrimSpace(stdOut.String()), "\n")
	require.Len(t, lines, 2)

	l := unmarshalLogData(t, []byte(lines[0]))
	require.Equal(t, "DEBUG", l.Level)
	require.Equal(t, "now shown debug", l.Msg)
	require.Contains(t, l.Caller, "log_test.go")
}

func TestSetSpec(t *testing.T) {
	require.NoError(t, SetSpec("modulea=debug:moduleb=panic:error"))
	require.Contains(t, GetSpec(), "modulea=DEBUG")
	require.Contains(t, GetSpec(), "moduleb=PANIC")
	require.True(t, strings.HasSuffix(GetSpec(), ":ERROR"))

	require.Equal(t, DEBUG, GetLevel("modulea"))
	require.Equal(t, PANIC, GetLevel("moduleb"))
	require.Equal(t, ERROR, GetLevel("unknown"))

	require.Error(t, SetSpec("modulea=loud"))
	require.Error(t, SetSpec("a=b=c"))

	SetDefaultLevel(INFO)
}
