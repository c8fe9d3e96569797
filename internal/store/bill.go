package store

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"billed/internal/utils"
	"billed/pkg/types"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const billTableName = "billed.bills"

// billIDSize matches the ids of the seeded demo bills.
const billIDSize = 20

var billColumns = utils.StructTagValues(types.Bill{})

type BillRepository struct {
	pool *pgxpool.Pool
}

func NewBillRepository(pool *pgxpool.Pool) *BillRepository {
	return &BillRepository{pool: pool}
}

func (r *BillRepository) Bills(ctx context.Context) ([]types.Bill, error) {
	query, args, err := psql().
		Select(billColumns...).
		From(billTableName).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate bills query: %w", err)
	}

	var bills = make([]types.Bill, 0)
	err = pgxscan.Select(ctx, r.pool, &bills, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bills: %w", err)
	}

	return bills, nil
}

// CreateBill assigns the bill a new ID and creation time, then inserts it.
func (r *BillRepository) CreateBill(ctx context.Context, bill *types.Bill) error {
	bill.ID = utils.NanoIDSize(billIDSize)
	bill.CreatedAt = time.Now()

	query, args, err := psql().Insert(billTableName).SetMap(utils.StructToMap(bill)).ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert bill query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create bill")
}

// UpsertBill inserts the bill or overwrites the stored one with the same ID.
func (r *BillRepository) UpsertBill(ctx context.Context, bill *types.Bill) error {
	if bill.CreatedAt.IsZero() {
		bill.CreatedAt = time.Now()
	}

	billMap := utils.StructToMap(bill)

	updateMap := make(map[string]any, len(billMap))
	for k, v := range billMap {
		if k != "id" && k != "created_at" {
			updateMap[k] = v
		}
	}

	query, args, err := psql().
		Insert(billTableName).
		SetMap(billMap).
		Suffix("ON CONFLICT (id) DO UPDATE SET " + buildUpdateClause(updateMap)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate upsert bill query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to upsert bill")
}

// buildUpdateClause creates the SET clause for ON CONFLICT DO UPDATE
// e.g., "name = EXCLUDED.name, amount = EXCLUDED.amount, ..."
func buildUpdateClause(fields map[string]any) string {
	keys := make([]string, 0, len(fields))
	for field := range fields {
		keys = append(keys, field)
	}
	slices.Sort(keys)

	clauses := make([]string, 0, len(keys))
	for _, field := range keys {
		clauses = append(clauses, fmt.Sprintf("%s = EXCLUDED.%s", field, field))
	}
	return strings.Join(clauses, ", ")
}
