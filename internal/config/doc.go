// SPDX-License-Identifier: MPL-2.0

// Package config handles per-repository configuration using Viper.
//
// Configuration is read from the first of `.config/repo.json`,
// `.config/repo.cue` and `.config/repo.toml` found in the working directory.
// Every format is validated against the CUE schema in config_schema.cue
// before it is merged over the defaults. A missing file means defaults.
package config
