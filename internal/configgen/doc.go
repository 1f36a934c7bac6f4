// Package configgen renders stack-specific config files and the project
// README from templates, filling {{key.path}} tokens with flattened
// blueprint values. Files that already exist are never overwritten.
package configgen
