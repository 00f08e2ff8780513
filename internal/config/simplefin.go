package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// SimpleFINToken returns the one-time setup token from simplefin.token or
// SIMPLEFIN_TOKEN. It is only needed until the token has been claimed.
func SimpleFINToken(v *viper.Viper) string {
	return firstNonEmpty(v.GetString("simplefin.token"), os.Getenv("SIMPLEFIN_TOKEN"))
}

// SimpleFINStatePath is where the claimed SimpleFIN access URL is kept.
func SimpleFINStatePath() (string, error) {
	dir, err := DefaultConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "simplefin-auth.json"), nil
}
