package seed

import (
	"context"
	"fmt"

	"billed/internal/fixtures"
	"billed/pkg/types"
)

type BillUpserter interface {
	UpsertBill(ctx context.Context, bill *types.Bill) error
}

// SeedBills syncs the demo bills into the database. Bills keep their fixed
// IDs so running it twice updates rather than duplicates.
//
// To generate new IDs: `go run ./cmd/billed nanoid --size 20`
func SeedBills(ctx context.Context, repo BillUpserter) (int, error) {
	bills := fixtures.Bills()

	for i := range bills {
		if err := repo.UpsertBill(ctx, &bills[i]); err != nil {
			return i, fmt.Errorf("failed to upsert bill %s: %w", bills[i].ID, err)
		}
	}

	return len(bills), nil
}
