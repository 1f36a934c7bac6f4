// Package integrations runs the wrapper-sync collaborator that copies skill,
// workflow and command files into provider-specific directories. It defines
// the Syncer interface used by the pipeline, an exec-backed implementation
// that spawns the sync script, and the provider registry used to validate
// the --providers value before anything is spawned.
package integrations
