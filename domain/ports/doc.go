// Package ports defines interfaces for the bridge's external collaborators:
// the embedded renderer, the consent prompter, the composite picker, the
// share provider, and grant persistence. These ports enable dependency
// inversion - the controller depends on abstractions, and infrastructure
// adapters implement them.
package ports
