package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds the database constraints that back the booking
// exclusivity rules. The validator's pre-checks are advisory; these indexes
// are what actually close the race between check and write, so a losing
// concurrent insert surfaces as a duplicate-key error rather than a second
// active booking.
func MigrateConstraints(db *gorm.DB) error {
	// At most one ACTIVE booking per (seat, date, time slot)
	err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS uniq_active_seat_slot
		ON bookings (seat_id, date, time_slot)
		WHERE status = 'ACTIVE';
	`).Error
	if err != nil {
		return err
	}

	// At most one ACTIVE booking per (user, date)
	err = db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS uniq_active_user_date
		ON bookings (user_id, date)
		WHERE status = 'ACTIVE';
	`).Error
	if err != nil {
		return err
	}

	// The reminder sweep scans active bookings by date
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_bookings_status_date
		ON bookings (status, date);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
