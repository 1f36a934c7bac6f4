// Package packs knows the skill packs a blueprint can select: their
// canonical order, the manifest prefix each maps to, which packs a
// blueprint should carry, and whether a pack is installed in the repo.
package packs
