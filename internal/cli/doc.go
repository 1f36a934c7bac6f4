// Package cli defines the Cobra command tree for the initkit CLI. Each file
// in this package builds one top-level command (start, approve, apply, etc.)
// and attaches it to the root command. Commands delegate to the pipeline
// package for business logic and only handle flag parsing, output
// formatting, and exit codes.
package cli
