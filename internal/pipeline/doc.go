// Package pipeline implements the initialization commands. Each command
// loads the state and blueprint it needs, runs the validators, plans or
// applies changes through the lower-level packages, persists state after
// its side effects succeed, and returns a result struct for the CLI to
// render. Nothing here writes to stdout or decides exit codes.
package pipeline
