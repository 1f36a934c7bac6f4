// Package cleanup implements the pipeline's destructive operations:
// removing the bootstrap directory, archiving Stage A documents and the
// blueprint before removal, and pruning the agent-builder workflow.
//
// Every operation has a dry-run form. Bootstrap removal additionally
// requires the provenance marker written by start, and callers must check
// the user's acknowledgement (RequireAcknowledgement) before applying.
package cleanup
