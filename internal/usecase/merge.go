package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"ContactOutreach/internal/domain"
	"ContactOutreach/internal/ports"
)

// MergeDeps wires the driven adapters into the phone-merge workflow.
type MergeDeps struct {
	Phones ports.PhoneSource
	Ledger ports.LedgerStore
	Logger *slog.Logger
}

// Merge backfills phone numbers into existing ledger rows from the
// secondary property export, matched by normalized street address.
type Merge struct {
	phones ports.PhoneSource
	ledger ports.LedgerStore
	logger *slog.Logger
}

// NewMerge constructs the merge workflow.
func NewMerge(deps MergeDeps) *Merge {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Merge{phones: deps.Phones, ledger: deps.Ledger, logger: logger}
}

// Run overwrites the phone slots of every ledger row whose address key
// matches the secondary source, preserving row order and all non-phone
// fields, then rewrites the ledger in full.
func (m *Merge) Run(ctx context.Context) (domain.MergeStats, error) {
	var stats domain.MergeStats

	lookup, err := m.phones.Load(ctx)
	if err != nil {
		return stats, fmt.Errorf("load phone source: %w", err)
	}
	stats.SourceAddresses = len(lookup)

	contacts, err := m.ledger.Load(ctx)
	if err != nil {
		return stats, fmt.Errorf("load ledger: %w", err)
	}
	stats.TotalRows = len(contacts)

	for i := range contacts {
		key := contacts[i].Address.Key()
		if key == "" {
			continue
		}

		phones, ok := lookup[key]
		if !ok {
			stats.Unmatched++
			continue
		}

		var slots [domain.PhoneSlots]string
		fillSlots(slots[:], phones)
		contacts[i].Phones = slots
		stats.Matched++
	}

	if err := m.ledger.Rewrite(ctx, contacts); err != nil {
		return stats, fmt.Errorf("rewrite ledger: %w", err)
	}

	m.logger.Info("phone merge complete",
		"source_addresses", stats.SourceAddresses,
		"matched", stats.Matched,
		"unmatched", stats.Unmatched,
		"rows", stats.TotalRows)

	return stats, nil
}
