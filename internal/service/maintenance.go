package service

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"github.com/jask/tomato/internal/database"
)

// MaintenanceService houses destructive actions on the journal.
type MaintenanceService struct {
	DB *sql.DB
}

// Reset wipes the interval journal. It keeps the schema intact.
func (s *MaintenanceService) Reset(ctx context.Context) error {
	if s.DB == nil {
		return errors.New("maintenance: db not configured")
	}
	if err := database.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM intervals"); err != nil {
			return errors.Wrap(err, "reset intervals")
		}
		return nil
	}); err != nil {
		return err
	}
	_, _ = s.DB.ExecContext(ctx, "VACUUM")
	return nil
}
