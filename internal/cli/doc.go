// Package cli defines the Cobra command tree for the alfred-pinboard binary.
// Alfred invokes one command per user action; each file registers one
// command with the root. Commands parse flags, delegate to internal packages
// and write Script Filter output to stdout.
package cli
