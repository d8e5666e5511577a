package database

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

type User struct {
	ID           int        `json:"id" gorm:"primaryKey"`
	Username     string     `json:"username" gorm:"uniqueIndex;not null"`
	PasswordHash string     `json:"-" gorm:"not null"`
	Role         string     `json:"role" gorm:"default:'staff'"`
	LastLogin    *time.Time `json:"-"`
	CreatedAt    time.Time  `json:"-"`
}

func (u *User) TableName() string {
	return "users"
}

// LoginAttempt rows are append-only; the login guard is the only writer
// and nothing ever updates or deletes them.
type LoginAttempt struct {
	ID           int       `json:"id" gorm:"primaryKey"`
	SourceOrigin string    `json:"source_origin" gorm:"not null;index:idx_login_attempts_pair,priority:1"`
	Username     string    `json:"username" gorm:"not null;index:idx_login_attempts_pair,priority:2"`
	Success      bool      `json:"success" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at" gorm:"index:idx_login_attempts_pair,priority:3"`
}

func (a *LoginAttempt) TableName() string {
	return "login_attempts"
}

type Product struct {
	ID        int       `json:"id" gorm:"primaryKey"`
	SKU       string    `json:"sku" gorm:"uniqueIndex;not null"`
	Name      string    `json:"name" gorm:"not null"`
	Price     int       `json:"price" gorm:"not null"`
	Quantity  int       `json:"quantity" gorm:"default:0"`
	CreatedAt time.Time `json:"created_at"`
}

func (p *Product) TableName() string {
	return "products"
}

type SaleRecord struct {
	ID          int       `json:"id" gorm:"primaryKey"`
	ProductID   int       `json:"product_id" gorm:"not null"`
	ProductName string    `json:"product_name" gorm:"not null"`
	Quantity    int       `json:"quantity" gorm:"not null"`
	UnitPrice   int       `json:"unit_price" gorm:"not null"`
	TotalAmount int       `json:"total_amount" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
}

func (s *SaleRecord) TableName() string {
	return "sales_history"
}

type ResetKey struct {
	Key       uuid.UUID `json:"key" gorm:"type:uuid;primaryKey"`
	UserID    int       `json:"user_id" gorm:"not null"`
	CreatedAt time.Time `json:"-"`
}

func (rk *ResetKey) TableName() string {
	return "reset_keys"
}
