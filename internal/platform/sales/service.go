package sales

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"stockroom/internal/database"
	"stockroom/internal/platform/product"
)

type SalesService struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *SalesService {
	return &SalesService{db: db}
}

type ProductTotal struct {
	ProductName string `json:"product"`
	Sales       int    `json:"sales"`
}

type DailyTotal struct {
	Date   string `json:"date"`
	Amount int    `json:"amount"`
}

// Record writes the sale row and decrements stock in one transaction;
// either both land or neither does.
func (s *SalesService) Record(productID, quantity, unitPrice int) (*database.SaleRecord, error) {
	var sale database.SaleRecord

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var prod database.Product
		result := tx.First(&prod, "id = ?", productID)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return product.ErrProductNotFound
			}
			return result.Error
		}

		if prod.Quantity < quantity {
			return product.ErrInsufficientStock
		}

		sale = database.SaleRecord{
			ProductID:   prod.ID,
			ProductName: prod.Name,
			Quantity:    quantity,
			UnitPrice:   unitPrice,
			TotalAmount: quantity * unitPrice,
		}
		if err := tx.Create(&sale).Error; err != nil {
			return err
		}

		// The read above is advisory only; the guarded decrement is what
		// keeps two concurrent sales from draining stock below zero.
		result = tx.Exec("UPDATE products SET quantity = quantity - ? WHERE id = ? AND quantity >= ?", quantity, prod.ID, quantity)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return product.ErrInsufficientStock
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &sale, nil
}

func (s *SalesService) TotalsByProduct() ([]ProductTotal, error) {
	var totals []ProductTotal
	err := s.db.Model(&database.SaleRecord{}).
		Select("product_name, SUM(total_amount) AS sales").
		Group("product_name").
		Order("sales DESC").
		Scan(&totals).Error
	return totals, err
}

func (s *SalesService) History(limit int) ([]database.SaleRecord, error) {
	var records []database.SaleRecord
	err := s.db.Order("created_at DESC").Limit(limit).Find(&records).Error
	return records, err
}

func (s *SalesService) TotalAmount() (int64, error) {
	var total int64
	err := s.db.Model(&database.SaleRecord{}).Select("COALESCE(SUM(total_amount), 0)").Scan(&total).Error
	return total, err
}

func (s *SalesService) DailyTotals(days int) ([]DailyTotal, error) {
	since := time.Now().AddDate(0, 0, -days)

	var totals []DailyTotal
	err := s.db.Model(&database.SaleRecord{}).
		Select("TO_CHAR(created_at, 'YYYY-MM-DD') AS date, SUM(total_amount) AS amount").
		Where("created_at >= ?", since).
		Group("TO_CHAR(created_at, 'YYYY-MM-DD')").
		Order("date").
		Scan(&totals).Error
	return totals, err
}
