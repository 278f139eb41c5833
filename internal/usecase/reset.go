package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"ContactOutreach/internal/domain"
	"ContactOutreach/internal/ports"
)

// ResetDeps wires the ledger into the operator reset action.
type ResetDeps struct {
	Ledger ports.LedgerStore
	Logger *slog.Logger
}

// Reset flips the contacted flag back to "no" for explicitly named rows.
// This is an out-of-band operator action; bulk resets are refused by
// requiring at least one interaction ID.
type Reset struct {
	ledger ports.LedgerStore
	logger *slog.Logger
}

// NewReset constructs the reset action.
func NewReset(deps ResetDeps) *Reset {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Reset{ledger: deps.Ledger, logger: logger}
}

// Run resets the named interaction IDs and rewrites the ledger when
// anything changed.
func (r *Reset) Run(ctx context.Context, interactionIDs []string) (domain.ResetStats, error) {
	var stats domain.ResetStats

	if len(interactionIDs) == 0 {
		return stats, fmt.Errorf("no interaction ids given, refusing bulk reset")
	}

	contacts, err := r.ledger.Load(ctx)
	if err != nil {
		return stats, fmt.Errorf("load ledger: %w", err)
	}

	wanted := map[string]bool{}
	for _, id := range interactionIDs {
		wanted[id] = false
	}

	for i := range contacts {
		contact := &contacts[i]
		if _, ok := wanted[contact.InteractionID]; !ok {
			continue
		}
		wanted[contact.InteractionID] = true

		if contact.Contacted {
			contact.Contacted = false
			stats.Reset++
			r.logger.Info("reset contact",
				"contact", contact.DisplayName(), "interaction_id", contact.InteractionID)
		} else {
			stats.AlreadyNo++
		}
	}

	for _, id := range interactionIDs {
		if !wanted[id] {
			stats.NotFound = append(stats.NotFound, id)
			r.logger.Warn("interaction id not in ledger", "interaction_id", id)
		}
	}

	if stats.Reset > 0 {
		if err := r.ledger.Rewrite(ctx, contacts); err != nil {
			return stats, fmt.Errorf("rewrite ledger: %w", err)
		}
	}

	r.logger.Info("reset complete",
		"reset", stats.Reset, "already_no", stats.AlreadyNo, "not_found", len(stats.NotFound))

	return stats, nil
}
