package guard

import (
	"time"

	"gorm.io/gorm"

	"stockroom/internal/database"
)

// DBLedger is the GORM-backed attempt ledger. Each Record call is a
// single insert, durable before it returns.
type DBLedger struct {
	db *gorm.DB
}

func NewLedger(db *gorm.DB) *DBLedger {
	return &DBLedger{db: db}
}

func (l *DBLedger) Record(origin, username string, success bool, at time.Time) error {
	attempt := database.LoginAttempt{
		SourceOrigin: origin,
		Username:     username,
		Success:      success,
		CreatedAt:    at,
	}
	return l.db.Create(&attempt).Error
}

func (l *DBLedger) CountSince(origin, username string, since time.Time) (int64, error) {
	var count int64
	err := l.db.Model(&database.LoginAttempt{}).
		Where("source_origin = ? AND username = ? AND created_at >= ?", origin, username, since).
		Count(&count).Error
	return count, err
}

func (l *DBLedger) OldestSince(origin, username string, since time.Time) (time.Time, error) {
	var attempt database.LoginAttempt
	err := l.db.
		Where("source_origin = ? AND username = ? AND created_at >= ?", origin, username, since).
		Order("created_at asc").
		First(&attempt).Error
	if err != nil {
		return time.Time{}, err
	}
	return attempt.CreatedAt, nil
}
