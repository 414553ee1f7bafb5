// Package scope resolves which configuration applies to a document by
// walking the scope hierarchy from most to least specific.
package scope

import (
	"context"
	"log"
	"sort"

	"github.com/google/uuid"

	"docflow/internal/domain"
	"docflow/internal/mapping"
	"docflow/internal/port"
)

// candidate is one step of the resolution chain.
type candidate struct {
	scope          domain.ConfigScope
	organizationID *uuid.UUID
	formatID       *uuid.UUID
}

// Resolver finds the most specific active configuration for a document.
type Resolver struct {
	configRepo port.ConfigurationRepository
}

// NewResolver creates a Resolver backed by the configuration store.
func NewResolver(configRepo port.ConfigurationRepository) *Resolver {
	return &Resolver{configRepo: configRepo}
}

// Resolve walks the candidate scopes in priority order and returns the first
// active configuration found, together with the scope it matched at. For the
// mapping kind the built-in default is the final fallback, so resolution
// always succeeds; for other kinds a nil configuration with ScopeNone means
// the caller falls back to direct mapping.
//
// Resolution is never fatal: a failing store read is treated the same as
// "nothing at this scope" and the walk continues.
func (r *Resolver) Resolve(ctx context.Context, kind domain.ConfigKind, organizationID, formatID *uuid.UUID) (*domain.Configuration, domain.ConfigScope) {
	for _, c := range candidates(organizationID, formatID) {
		configs, err := r.configRepo.ListActive(ctx, kind, c.scope, c.organizationID, c.formatID)
		if err != nil {
			log.Printf("scope.Resolver: %s lookup at scope %s failed, continuing: %v", kind, c.scope, err)
			continue
		}
		if len(configs) == 0 {
			continue
		}
		if len(configs) > 1 {
			log.Printf("scope.Resolver: %d active %s configurations at scope %s violate uniqueness, tie-breaking by priority then recency", len(configs), kind, c.scope)
		}
		cfg := pick(configs)
		return cfg, c.scope
	}

	if kind == domain.ConfigKindMapping {
		return mapping.DefaultConfiguration(), domain.ScopeDefault
	}
	return nil, domain.ScopeNone
}

// candidates builds the ordered chain for the identifiers at hand. Scopes
// whose key identifiers are missing are skipped.
func candidates(organizationID, formatID *uuid.UUID) []candidate {
	var chain []candidate
	if organizationID != nil && formatID != nil {
		chain = append(chain, candidate{domain.ScopeSpecific, organizationID, formatID})
	}
	if organizationID != nil {
		chain = append(chain, candidate{domain.ScopeOrganization, organizationID, nil})
	}
	if formatID != nil {
		chain = append(chain, candidate{domain.ScopeFormat, nil, formatID})
	}
	chain = append(chain, candidate{domain.ScopeGlobal, nil, nil})
	return chain
}

// pick tie-breaks duplicate active configurations at one scope key:
// highest priority first, then most recently updated.
func pick(configs []domain.Configuration) *domain.Configuration {
	sort.SliceStable(configs, func(i, j int) bool {
		if configs[i].Priority != configs[j].Priority {
			return configs[i].Priority > configs[j].Priority
		}
		return configs[i].UpdatedAt.After(configs[j].UpdatedAt)
	})
	return &configs[0]
}
