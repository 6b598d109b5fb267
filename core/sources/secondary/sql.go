package secondary

import (
	"context"
	"fmt"
	"strings"

	"stock-reconciler/core/reconcile"

	"gorm.io/gorm"
)

// BalanceRow is one row of the warehouse reporting table.
type BalanceRow struct {
	SKU       string `gorm:"column:sku;primaryKey"`
	OnHand    int    `gorm:"column:on_hand"`
	InOrder   int    `gorm:"column:in_order"`
	Physical  int    `gorm:"column:physical"`
	Stopped   int    `gorm:"column:stopped"`
	Allocated int    `gorm:"column:allocated"`
}

// RequiredColumns lists the columns the sql source selects.
var RequiredColumns = []string{"sku", "on_hand", "in_order", "physical", "stopped", "allocated"}

// SQLSource reads balances straight from the warehouse database.
type SQLSource struct {
	db  *gorm.DB
	cfg Config
}

// NewSQLSource creates a database-backed source.
func NewSQLSource(db *gorm.DB, cfg Config) *SQLSource {
	return &SQLSource{db: db, cfg: cfg}
}

func (s *SQLSource) Name() string { return KindSQL }

// Snapshot selects the rows for keys using batched IN queries.
func (s *SQLSource) Snapshot(ctx context.Context, keys []string) (map[string]reconcile.SecondaryRecord, error) {
	if s.db == nil || s.cfg.Table == "" {
		return nil, ErrNotConfigured
	}

	out := make(map[string]reconcile.SecondaryRecord, len(keys))
	for _, batch := range chunk(keys, s.cfg.batchSize()) {
		var rows []BalanceRow
		err := s.db.WithContext(ctx).
			Table(s.cfg.Table).
			Select(RequiredColumns).
			Where("sku IN ?", batch).
			Find(&rows).Error
		if err != nil {
			return nil, fmt.Errorf("query %s: %w", s.cfg.Table, err)
		}
		for _, row := range rows {
			key := strings.TrimSpace(row.SKU)
			out[key] = reconcile.SecondaryRecord{
				Key:       key,
				OnHand:    row.OnHand,
				InOrder:   row.InOrder,
				Physical:  row.Physical,
				Stopped:   row.Stopped,
				Allocated: row.Allocated,
			}
		}
	}
	return out, nil
}
