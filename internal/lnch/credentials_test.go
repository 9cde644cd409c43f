//    TweetTopicModeler
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lnch

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/e-gun/TweetTopicModeler/internal/vv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearCredentialEnv - unset every credential variable for the duration of the test
func clearCredentialEnv(t *testing.T) {
	t.Helper()
	for _, k := range vv.CredentialEnvVars {
		for _, name := range []string{k, strings.ToUpper(k)} {
			t.Setenv(name, "")
			require.NoError(t, os.Unsetenv(name))
		}
	}
}

func TestLoadCredentialsFromEnvironment(t *testing.T) {
	clearCredentialEnv(t)
	t.Setenv("api_key", "key-1234")
	t.Setenv("api_secret", "secret-5678")
	t.Setenv("ACCESS_TOKEN", "token-abcd")
	t.Setenv("access_secret", "")

	c, err := LoadCredentials("")
	require.NoError(t, err)
	assert.Equal(t, "key-1234", c.ConsumerKey)
	assert.Equal(t, "secret-5678", c.ConsumerSecret)
	assert.Equal(t, "token-abcd", c.AccessKey)
	assert.Equal(t, "", c.AccessSecret, "an empty value still counts as set")
}

func TestLoadCredentialsMissing(t *testing.T) {
	clearCredentialEnv(t)
	t.Setenv("api_key", "key-1234")

	_, err := LoadCredentials(filepath.Join(t.TempDir(), "absent.env"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingCredentials)
	assert.ErrorIs(t, err, vv.ErrConfig)
	assert.Equal(t, vv.EXITCONFIG, vv.ExitCode(err))
	assert.Contains(t, err.Error(), "api_secret")
	assert.Contains(t, err.Error(), "access_token")
	assert.NotContains(t, err.Error(), "api_key,")
}

func TestLoadCredentialsDotEnvFallback(t *testing.T) {
	clearCredentialEnv(t)
	t.Setenv("api_key", "from-the-environment")

	p := filepath.Join(t.TempDir(), ".env")
	body := "api_key=from-the-file\napi_secret=s\naccess_token=t\naccess_secret=a\n"
	require.NoError(t, os.WriteFile(p, []byte(body), 0600))

	c, err := LoadCredentials(p)
	require.NoError(t, err)
	assert.Equal(t, "from-the-environment", c.ConsumerKey)
	assert.Equal(t, "s", c.ConsumerSecret)
	assert.Equal(t, "t", c.AccessKey)
	assert.Equal(t, "a", c.AccessSecret)
}

func TestMaskCredential(t *testing.T) {
	assert.Equal(t, "abcd…(10)", MaskCredential("abcdefghij"))
	assert.Equal(t, "***(3)", MaskCredential("abc"))
	assert.Equal(t, "(0)", MaskCredential(""))
}
