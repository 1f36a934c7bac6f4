// Package blueprint reads and validates the Stage B project blueprint.
//
// A blueprint is kept as the decoded JSON document so that fields this
// package does not know about survive a rewrite. Accessors read the fields
// the pipeline needs; Validate reports required-field errors and advisory
// warnings; Flatten turns the document into dot-separated key paths for
// template rendering.
package blueprint
