//    TweetTopicModeler
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lnch

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/e-gun/TweetTopicModeler/internal/str"
	"github.com/e-gun/TweetTopicModeler/internal/vv"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrMissingCredentials = fmt.Errorf("%w: missing credentials", vv.ErrConfig)

// LoadCredentials - read the four OAuth values from the environment, falling back to a dotenv file
func LoadCredentials(dotenv string) (str.Credentials, error) {
	v := viper.New()
	v.AllowEmptyEnv(true)

	// the real environment always beats the file
	if dotenv != "" {
		fromfile, err := godotenv.Read(dotenv)
		switch {
		case err == nil:
			for k, val := range fromfile {
				v.SetDefault(strings.ToLower(k), val)
			}
			Msg.TMI(fmt.Sprintf("read '%s'", dotenv))
		case errors.Is(err, os.ErrNotExist):
			// nothing to see
		default:
			return str.Credentials{}, fmt.Errorf("%w: could not parse '%s': %w", vv.ErrConfig, dotenv, err)
		}
	}

	var missing []string
	for _, k := range vv.CredentialEnvVars {
		_ = v.BindEnv(k, k, strings.ToUpper(k))
		if !v.IsSet(k) {
			missing = append(missing, k)
		}
	}

	if len(missing) > 0 {
		return str.Credentials{}, fmt.Errorf("%w: %s", ErrMissingCredentials, strings.Join(missing, ", "))
	}

	return str.Credentials{
		ConsumerKey:    v.GetString(vv.ENVAPIKEY),
		ConsumerSecret: v.GetString(vv.ENVAPISECRET),
		AccessKey:      v.GetString(vv.ENVACCESSTOKEN),
		AccessSecret:   v.GetString(vv.ENVACCESSSECRET),
	}, nil
}

// MaskCredential - "abcd…(25)": enough to recognize a value without leaking it
func MaskCredential(s string) string {
	r := []rune(s)
	if len(r) <= 4 {
		return fmt.Sprintf("%s(%d)", strings.Repeat("*", len(r)), len(r))
	}
	return fmt.Sprintf("%s…(%d)", string(r[:4]), len(r))
}

// EchoCredentials - tell the operator which credentials were picked up
func EchoCredentials(c str.Credentials) {
	const (
		MSG = "C3%sC0: %s"
	)
	Msg.MAND(fmt.Sprintf(MSG, vv.ENVAPIKEY, MaskCredential(c.ConsumerKey)))
	Msg.MAND(fmt.Sprintf(MSG, vv.ENVAPISECRET, MaskCredential(c.ConsumerSecret)))
	Msg.MAND(fmt.Sprintf(MSG, vv.ENVACCESSTOKEN, MaskCredential(c.AccessKey)))
	Msg.MAND(fmt.Sprintf(MSG, vv.ENVACCESSSECRET, MaskCredential(c.AccessSecret)))
}
