// Package settings owns the workflow's persisted preferences: the flat
// Settings record and its defaults, the partial Update applied by the config
// command, and the Manager that loads (or bootstraps) the record, merges an
// update into it and writes it back. The record can be stored as YAML, TOML
// or JSON; every format is checked against the same embedded JSON schema
// before it is decoded.
package settings
