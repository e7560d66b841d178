// Package bridge implements the controller mediating between the embedded
// renderer and the host's capability dialogs: consent prompts, the composite
// camera/gallery chooser, and navigation history. It tracks at most one
// outstanding file-chooser request and at most one outstanding permission
// request, and resolves each exactly once.
package bridge
