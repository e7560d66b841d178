// Package policy decides how capability requests are answered: unguarded
// capabilities are granted without a prompt, guarded ones are checked against
// the persistent grant set with doublestar origin matching.
package policy

import (
	"github.com/bmatcuk/doublestar/v4"

	"github.com/hostview-dev/hostview-sdk/domain/entities"
	"github.com/hostview-dev/hostview-sdk/domain/ports"
)

// Decision is the outcome of evaluating a permission request.
type Decision int

const (
	// DecisionGrant: every requested capability may be granted immediately,
	// either because it is unguarded or because a persistent grant covers it.
	DecisionGrant Decision = iota

	// DecisionPrompt: at least one guarded capability lacks a grant and the
	// user must be asked.
	DecisionPrompt
)

// policyConfig holds configuration for the Policy engine.
type policyConfig struct {
	observer ports.GrantObserver
}

func defaultPolicyConfig() policyConfig {
	return policyConfig{
		observer: &SlogObserver{},
	}
}

// Option configures the Policy.
type Option func(*policyConfig)

// WithObserver sets the grant observer.
func WithObserver(o ports.GrantObserver) Option {
	return func(c *policyConfig) {
		c.observer = o
	}
}

// Policy implements stateless grant evaluation.
type Policy struct {
	config policyConfig
}

// New creates a new Policy.
func New(opts ...Option) *Policy {
	cfg := defaultPolicyConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Policy{config: cfg}
}

// Decide evaluates a permission request against the grant set.
func (p *Policy) Decide(req entities.PermissionRequest, grants *entities.GrantSet) Decision {
	for _, c := range req.Guarded() {
		if !p.HasGrant(c, req.Origin, grants) {
			return DecisionPrompt
		}
	}
	return DecisionGrant
}

// HasGrant reports whether a persistent grant covers the capability for the
// origin. Unguarded capabilities are always covered.
func (p *Policy) HasGrant(c entities.Capability, origin string, grants *entities.GrantSet) bool {
	if !c.Guarded() {
		return true
	}
	if grants.IsEmpty() {
		return false
	}
	for _, rule := range grants.Rules {
		if !ruleHasCapability(rule, c) {
			continue
		}
		for _, pattern := range rule.Origins {
			if matchOrigin(pattern, origin) {
				return true
			}
		}
	}
	return false
}

// RecordGrant reports a grant to the observer.
func (p *Policy) RecordGrant(req entities.PermissionRequest, auto bool) {
	p.config.observer.OnGrant(req, auto)
}

// RecordDenial reports a denial to the observer.
func (p *Policy) RecordDenial(req entities.PermissionRequest, reason string) {
	p.config.observer.OnDenial(req, reason)
}

func ruleHasCapability(rule entities.GrantRule, c entities.Capability) bool {
	for _, rc := range rule.Capabilities {
		if rc == c {
			return true
		}
	}
	return false
}

func matchOrigin(pattern, origin string) bool {
	if pattern == origin {
		return true
	}
	ok, err := doublestar.Match(pattern, origin)
	if err != nil {
		// Malformed pattern in the grant file never grants.
		return false
	}
	return ok
}
