// Package config defines the Tellus configuration model and its YAML loader.
//
// Configuration is loaded in a fixed sequence: parse the YAML file, apply
// defaults for unset fields, optionally apply TELLUS_* environment variable
// overrides, then validate the final result. Loaded configuration is passed
// down explicitly; there is no package-level configuration state.
package config
