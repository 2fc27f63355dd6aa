package main

import (
	"bytes"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lirical-go/lirical/internal/config"
)

func TestRunConfigGet_UnknownKeyRejected(t *testing.T) {
	defer viper.Reset()
	cmd := newConfigCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)

	err := runConfigGet(cmd, "not_a_real_key")
	require.Error(t, err)
	var usageErr *UsageError
	require.ErrorAs(t, err, &usageErr)
	assert.Contains(t, usageErr.Msg, "unknown config key")
	assert.Contains(t, usageErr.Msg, config.KeyDataDir)
}

func TestRunConfigSet_UnknownKeyRejected(t *testing.T) {
	defer viper.Reset()
	cmd := newConfigCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)

	err := runConfigSet(cmd, "not_a_real_key", "x")
	require.Error(t, err)
	var usageErr *UsageError
	require.ErrorAs(t, err, &usageErr)
}

func TestRunConfigSet_NonBooleanFilterColumnRejected(t *testing.T) {
	defer viper.Reset()
	cmd := newConfigCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)

	err := runConfigSet(cmd, config.KeyFilterOnFilterColumn, "maybe")
	require.Error(t, err)
	var usageErr *UsageError
	require.ErrorAs(t, err, &usageErr)
	assert.Contains(t, usageErr.Msg, "must be a boolean")
}

func TestRunConfigShow_NoDefaultsSet(t *testing.T) {
	defer viper.Reset()
	viper.Reset()
	cmd := newConfigCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)

	require.NoError(t, runConfigShow(cmd))
	assert.Contains(t, out.String(), "no defaults set")
}

func TestRunConfigGet_ReturnsValueAfterViperSet(t *testing.T) {
	defer viper.Reset()
	viper.Reset()
	viper.Set(config.KeyAssembly, "hg19")
	cmd := newConfigCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)

	require.NoError(t, runConfigGet(cmd, config.KeyAssembly))
	assert.Contains(t, out.String(), "hg19")
}

func TestIsValidConfigKey(t *testing.T) {
	for _, k := range config.Keys() {
		assert.True(t, isValidConfigKey(k))
	}
	assert.False(t, isValidConfigKey("bogus"))
}
