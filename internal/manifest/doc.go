// Package manifest maintains the skill sync manifest at
// .ai/skills/_meta/sync-manifest.json, which tells the wrapper-sync
// collaborator which skill prefixes and names to copy into provider
// directories.
//
// Update recomputes includePrefixes from the blueprint's packs and applies
// the blueprint's explicit exclude lists. Older manifest shapes are
// migrated on read, and keys this package does not manage are preserved.
package manifest
