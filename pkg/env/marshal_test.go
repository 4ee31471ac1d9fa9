package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalEnv(t *testing.T) {
	type settings struct {
		Name     string `env:"APP_NAME"`
		Port     int    `env:"APP_PORT"`
		Verbose  bool   `env:"APP_VERBOSE"`
		Untagged string
		Disabled string `env:"APP_DISABLED"`
	}

	out, err := MarshalEnv(&settings{
		Name:     "sani",
		Port:     8080,
		Verbose:  true,
		Untagged: "ignored",
		Disabled: "false",
	})

	require.NoError(t, err)
	assert.Equal(t, "APP_NAME=sani\nAPP_PORT=8080\nAPP_VERBOSE=true\nAPP_DISABLED=false\n", out)
}

func TestMarshalEnvSkipsZeroFields(t *testing.T) {
	type settings struct {
		Token string `env:"TOKEN"`
		Limit int    `env:"LIMIT"`
	}

	out, err := MarshalEnv(&settings{})

	require.NoError(t, err)
	assert.Empty(t, out, "unanswered settings must not appear in the file")
}
