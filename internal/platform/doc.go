// Package platform provides the filesystem primitives the pipeline builds
// on: durable atomic file replacement, existence checks, file copies, and
// permission handling that degrades to a no-op on Windows.
package platform
