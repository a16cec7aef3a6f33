// Package config loads and merges iotfwd configuration files.
//
// A configuration is a nested mapping decoded from one or more files: YAML
// for .yml/.yaml (and extensionless paths), TOML for .toml. Files are merged
// left to right so later files override individual keys of earlier ones,
// and ${NAME} references are substituted from the environment before a file
// is decoded. Values are addressed with dotted keys such as "core.logging".
//
// The "core" namespace carries the settings the CLI itself consumes; Core
// returns them with repository defaults applied and validated. Every failure
// to read, decode or validate a file surfaces as a *ConfigError.
package config
