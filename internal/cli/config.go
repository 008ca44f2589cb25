// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cli

import (
	"github.com/spf13/viper"

	"github.com/pdiddy/eutils/internal/config"
)

const envPrefix = "EUTILS"

// newViper returns a viper instance reading EUTILS_* environment variables.
// Flags are bound to it by NewCommand.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	_ = v.BindEnv("config")
	_ = v.BindEnv("verbose")
	_ = v.BindEnv("warn_dangerous")
	return v
}

// location resolves the preferences path: --config, then EUTILS_CONFIG, then
// the default under the home directory.
func location(v *viper.Viper) (config.Location, error) {
	if path := v.GetString("config"); path != "" {
		return config.Location{Path: path}, nil
	}
	return config.DefaultLocation()
}

// warnDangerous lets EUTILS_WARN_DANGEROUS override the preference.
func warnDangerous(v *viper.Viper, settings *config.Settings) bool {
	if v.IsSet("warn_dangerous") {
		return v.GetBool("warn_dangerous")
	}
	return settings.WarnDangerous
}
