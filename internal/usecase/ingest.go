package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"ContactOutreach/internal/domain"
	"ContactOutreach/internal/ports"
)

// IngestDeps wires the driven adapters into the fetch-and-append workflow.
type IngestDeps struct {
	Source ports.InteractionSource
	Ledger ports.LedgerStore
	Logger *slog.Logger
}

// Ingest pulls interactions from the upstream API, deduplicates against the
// ledger by interaction ID, and appends the new rows.
type Ingest struct {
	source ports.InteractionSource
	ledger ports.LedgerStore
	logger *slog.Logger
}

// NewIngest constructs the ingestion workflow.
func NewIngest(deps IngestDeps) *Ingest {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Ingest{source: deps.Source, ledger: deps.Ledger, logger: logger}
}

// Run executes one fetch-and-append pass. A missing ledger file starts an
// empty ledger; any other ledger or listing failure aborts before any
// append. Sub-resource lookup failures never drop an interaction — the
// affected fields stay empty.
func (i *Ingest) Run(ctx context.Context) (domain.IngestStats, error) {
	var stats domain.IngestStats

	known := map[string]struct{}{}
	existing, err := i.ledger.Load(ctx)
	switch {
	case errors.Is(err, ports.ErrLedgerNotFound):
		i.logger.Info("ledger missing, starting empty")
	case err != nil:
		return stats, fmt.Errorf("load ledger: %w", err)
	default:
		for _, contact := range existing {
			if contact.InteractionID != "" {
				known[contact.InteractionID] = struct{}{}
			}
		}
	}
	stats.Known = len(known)

	interactions, err := i.source.ListInteractions(ctx)
	if err != nil {
		return stats, fmt.Errorf("list interactions: %w", err)
	}
	stats.Fetched = len(interactions)

	var unseen []domain.Interaction
	for _, interaction := range interactions {
		if _, ok := known[strconv.FormatInt(interaction.ID, 10)]; ok {
			continue
		}
		unseen = append(unseen, interaction)
	}
	stats.New = len(unseen)
	i.logger.Info("interactions fetched",
		"total", stats.Fetched, "known", stats.Known, "new", stats.New)

	if len(unseen) == 0 {
		return stats, nil
	}

	resolver := newResolver(i.source, i.logger)
	rows := make([]domain.Contact, 0, len(unseen))
	for _, interaction := range unseen {
		rows = append(rows, i.buildRow(ctx, resolver, interaction))
	}
	stats.LookupFailures = resolver.failures

	if err := i.ledger.Append(ctx, rows); err != nil {
		return stats, fmt.Errorf("append ledger rows: %w", err)
	}
	stats.Appended = len(rows)
	i.logger.Info("ledger updated", "appended", stats.Appended, "lookup_failures", stats.LookupFailures)

	return stats, nil
}

// buildRow assembles one ledger row from an interaction and its resolved
// sub-resources.
func (i *Ingest) buildRow(ctx context.Context, r *resolver, interaction domain.Interaction) domain.Contact {
	canvass := r.contact(ctx, interaction.ContactID)
	house := r.house(ctx, interaction.HouseID)
	user := r.user(ctx, interaction.CreatedBy)

	row := domain.Contact{
		FirstName: canvass.FirstName,
		Surname:   canvass.LastName,
		Address: domain.Address{
			Unit:        house.Unit,
			HouseName:   house.HouseName,
			HouseNumber: house.HouseNumber,
			StreetName:  house.StreetName,
			City:        house.City,
			State:       house.State,
		},
		InteractionID:   strconv.FormatInt(interaction.ID, 10),
		Status:          string(interaction.Status),
		Rating:          interaction.Rating,
		InteractionDate: interaction.CreatedAt,
		Organizer:       user.FullName(),
		BB:              canvass.CustomFieldValue("BB"),
		Contacted:       false,
	}

	// Custom phone fields take priority over the primary mobile and home
	// numbers when filling slots.
	phones := canvass.CustomFieldValues("Phone_")
	phones = append(phones, canvass.ContactDetails.Mobile, canvass.ContactDetails.Home)
	fillSlots(row.Phones[:], phones)

	emails := append([]string{canvass.ContactDetails.Email}, canvass.CustomFieldValues("Email_")...)
	fillSlots(row.Emails[:], emails)

	return row
}

// fillSlots copies distinct non-empty values into the fixed-width slot
// array, truncating overflow and leaving trailing slots empty.
func fillSlots(slots []string, values []string) {
	n := 0
	for _, value := range values {
		if value == "" || n == len(slots) {
			continue
		}
		duplicate := false
		for _, existing := range slots[:n] {
			if existing == value {
				duplicate = true
				break
			}
		}
		if duplicate {
			continue
		}
		slots[n] = value
		n++
	}
}

// resolver memoizes sub-resource lookups so each distinct contact, house,
// and user is fetched at most once per run. A failed lookup is logged,
// counted, and cached as its zero value; the interaction is still recorded.
type resolver struct {
	source   ports.InteractionSource
	logger   *slog.Logger
	contacts map[int64]domain.CanvassContact
	houses   map[int64]domain.House
	users    map[int64]domain.User
	failures int
}

func newResolver(source ports.InteractionSource, logger *slog.Logger) *resolver {
	return &resolver{
		source:   source,
		logger:   logger,
		contacts: map[int64]domain.CanvassContact{},
		houses:   map[int64]domain.House{},
		users:    map[int64]domain.User{},
	}
}

func (r *resolver) contact(ctx context.Context, id int64) domain.CanvassContact {
	if id == 0 {
		return domain.CanvassContact{}
	}
	if cached, ok := r.contacts[id]; ok {
		return cached
	}
	contact, err := r.source.GetContact(ctx, id)
	if err != nil {
		r.logger.Warn("contact lookup failed", "id", id, "error", err)
		r.failures++
	}
	r.contacts[id] = contact
	return contact
}

func (r *resolver) house(ctx context.Context, id int64) domain.House {
	if id == 0 {
		return domain.House{}
	}
	if cached, ok := r.houses[id]; ok {
		return cached
	}
	house, err := r.source.GetHouse(ctx, id)
	if err != nil {
		r.logger.Warn("house lookup failed", "id", id, "error", err)
		r.failures++
	}
	r.houses[id] = house
	return house
}

func (r *resolver) user(ctx context.Context, id int64) domain.User {
	if id == 0 {
		return domain.User{}
	}
	if cached, ok := r.users[id]; ok {
		return cached
	}
	user, err := r.source.GetUser(ctx, id)
	if err != nil {
		r.logger.Warn("user lookup failed", "id", id, "error", err)
		r.failures++
	}
	r.users[id] = user
	return user
}
