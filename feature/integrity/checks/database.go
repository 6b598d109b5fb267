package checks

import (
	"context"
	"time"

	"stock-reconciler/core/database"
	"stock-reconciler/core/sources/secondary"

	"gorm.io/gorm"
)

// DatabaseReport describes the optional warehouse database.
type DatabaseReport struct {
	Configured     bool     `json:"configured"`
	Connected      bool     `json:"connected"`
	Table          string   `json:"table"`
	MissingColumns []string `json:"missing_columns"`
	Errors         []string `json:"errors"`
	Status         string   `json:"status"` // "ok", "error", "disabled"
}

// CheckDatabase pings the warehouse database and verifies that table has every
// column the sql source selects. A nil connection reports "disabled".
func CheckDatabase(ctx context.Context, db *gorm.DB, table string) *DatabaseReport {
	report := &DatabaseReport{
		Table:          table,
		MissingColumns: []string{},
		Errors:         []string{},
		Status:         "disabled",
	}
	if db == nil {
		return report
	}
	report.Configured = true
	report.Status = "error"

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := database.Ping(pingCtx, db); err != nil {
		report.Errors = append(report.Errors, "ping: "+err.Error())
		return report
	}
	report.Connected = true

	missing, err := database.MissingColumns(db, table, secondary.RequiredColumns)
	if err != nil {
		report.Errors = append(report.Errors, err.Error())
		return report
	}
	if len(missing) > 0 {
		report.MissingColumns = missing
		return report
	}

	report.Status = "ok"
	return report
}
