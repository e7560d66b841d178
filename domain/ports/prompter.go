package ports

import "github.com/hostview-dev/hostview-sdk/domain/entities"

// Prompter presents the host consent dialog for guarded capabilities.
type Prompter interface {
	// Prompt shows the consent dialog for req and invokes done exactly once
	// with the outcome. Prompt returns immediately; done runs on the bridge
	// dispatcher, strictly after the handler that called Prompt has
	// returned.
	Prompt(req entities.PermissionRequest, done func(entities.PromptResult))
}
