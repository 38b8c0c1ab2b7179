// Package config resolves the runtime settings of the workflow binary itself:
// where the data directory lives, which on-disk format the user settings use,
// the log level, and the host variables Alfred exports to every script.
// Values come from the environment (with an optional .env overlay in the
// data directory) through Viper.
package config
