package usecase

import (
	"context"
	"errors"
	"testing"

	"ContactOutreach/internal/domain"
)

func ledgerRowAt(houseNumber, street string) domain.Contact {
	return domain.Contact{
		FirstName:     "MATTHEW J",
		Surname:       "HERMES",
		InteractionID: "1",
		Address: domain.Address{
			HouseNumber: houseNumber,
			StreetName:  street,
		},
	}
}

func TestMergeOverwritesMatchingRows(t *testing.T) {
	t.Parallel()

	row := ledgerRowAt("123", "Main St")
	row.Phones = [domain.PhoneSlots]string{"old-1", "old-2", "old-3", "old-4", "old-5"}
	row.Emails[0] = "keep@example.com"

	ledger := &fakeLedger{contacts: []domain.Contact{row}}
	phones := &fakePhones{lookup: map[string][]string{
		"123 Main St": {"1111111111", "2222222222"},
	}}

	merge := NewMerge(MergeDeps{Phones: phones, Ledger: ledger, Logger: discardLogger()})

	stats, err := merge.Run(context.Background())
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if stats.Matched != 1 {
		t.Fatalf("expected 1 match, got %d", stats.Matched)
	}

	got := ledger.contacts[0]
	want := [domain.PhoneSlots]string{"1111111111", "2222222222", "", "", ""}
	if got.Phones != want {
		t.Fatalf("phone slots not overwritten and padded: %v", got.Phones)
	}
	if got.Emails[0] != "keep@example.com" || got.Surname != "HERMES" {
		t.Fatalf("non-phone fields must be preserved: %+v", got)
	}
	if ledger.rewrites != 1 {
		t.Fatalf("expected one full rewrite, got %d", ledger.rewrites)
	}
}

func TestMergeTruncatesToSlotWidth(t *testing.T) {
	t.Parallel()

	ledger := &fakeLedger{contacts: []domain.Contact{ledgerRowAt("123", "Main St")}}
	phones := &fakePhones{lookup: map[string][]string{
		"123 Main St": {"1", "2", "3", "4", "5", "6", "7"},
	}}

	merge := NewMerge(MergeDeps{Phones: phones, Ledger: ledger, Logger: discardLogger()})

	if _, err := merge.Run(context.Background()); err != nil {
		t.Fatalf("Run error: %v", err)
	}

	want := [domain.PhoneSlots]string{"1", "2", "3", "4", "5"}
	if ledger.contacts[0].Phones != want {
		t.Fatalf("overflow not truncated: %v", ledger.contacts[0].Phones)
	}
}

func TestMergeLeavesUnmatchedRowsUntouched(t *testing.T) {
	t.Parallel()

	matched := ledgerRowAt("123", "Main St")
	unmatched := ledgerRowAt("456", "Oak Ave")
	unmatched.InteractionID = "2"
	unmatched.Phones[0] = "original"
	noKey := ledgerRowAt("", "")
	noKey.InteractionID = "3"

	ledger := &fakeLedger{contacts: []domain.Contact{matched, unmatched, noKey}}
	phones := &fakePhones{lookup: map[string][]string{
		"123 Main St": {"1111111111"},
	}}

	merge := NewMerge(MergeDeps{Phones: phones, Ledger: ledger, Logger: discardLogger()})

	stats, err := merge.Run(context.Background())
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if stats.Matched != 1 || stats.Unmatched != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if ledger.contacts[1].Phones[0] != "original" {
		t.Fatalf("unmatched row was modified: %v", ledger.contacts[1].Phones)
	}
	if ledger.contacts[0].InteractionID != "1" || ledger.contacts[2].InteractionID != "3" {
		t.Fatalf("row order not preserved")
	}
}

func TestMergeAbortsWhenSourceUnreadable(t *testing.T) {
	t.Parallel()

	ledger := &fakeLedger{contacts: []domain.Contact{ledgerRowAt("123", "Main St")}}
	phones := &fakePhones{err: errors.New("no such file")}

	merge := NewMerge(MergeDeps{Phones: phones, Ledger: ledger, Logger: discardLogger()})

	if _, err := merge.Run(context.Background()); err == nil {
		t.Fatalf("expected error when phone source cannot be read")
	}
	if ledger.rewrites != 0 {
		t.Fatalf("aborted merge must not rewrite the ledger")
	}
}
