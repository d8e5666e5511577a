package product

import (
	"errors"

	"gorm.io/gorm"

	"stockroom/internal/database"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrSKUTaken          = errors.New("sku already exists")
	ErrInsufficientStock = errors.New("insufficient stock")
)

type ProductService struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *ProductService {
	return &ProductService{db: db}
}

func (s *ProductService) List() ([]database.Product, error) {
	var products []database.Product
	if err := s.db.Order("id").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (s *ProductService) GetByID(productID int) (*database.Product, error) {
	var product database.Product
	result := s.db.First(&product, "id = ?", productID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, result.Error
	}
	return &product, nil
}

func (s *ProductService) Create(sku, name string, price, quantity int) (*database.Product, error) {
	product := database.Product{
		SKU:      sku,
		Name:     name,
		Price:    price,
		Quantity: quantity,
	}

	if err := s.db.Create(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSKUTaken
		}
		return nil, err
	}

	return &product, nil
}

// Update touches only the name and price columns so a stock movement
// landing between read and write is never overwritten.
func (s *ProductService) Update(productID int, name string, price int) (*database.Product, error) {
	result := s.db.Model(&database.Product{}).Where("id = ?", productID).
		Updates(map[string]any{"name": name, "price": price})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrProductNotFound
	}

	return s.GetByID(productID)
}

func (s *ProductService) Inbound(productID, quantity int) error {
	result := s.db.Exec("UPDATE products SET quantity = quantity + ? WHERE id = ?", quantity, productID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// Outbound decrements stock in a single guarded statement so two
// concurrent withdrawals cannot take the quantity below zero.
func (s *ProductService) Outbound(productID, quantity int) error {
	result := s.db.Exec("UPDATE products SET quantity = quantity - ? WHERE id = ? AND quantity >= ?", quantity, productID, quantity)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := s.GetByID(productID); err != nil {
			return err
		}
		return ErrInsufficientStock
	}
	return nil
}

func (s *ProductService) CountAll() (int64, error) {
	var count int64
	err := s.db.Model(&database.Product{}).Count(&count).Error
	return count, err
}

func (s *ProductService) TotalStock() (int64, error) {
	var total int64
	err := s.db.Model(&database.Product{}).Select("COALESCE(SUM(quantity), 0)").Scan(&total).Error
	return total, err
}

func (s *ProductService) LowStockCount(threshold int) (int64, error) {
	var count int64
	err := s.db.Model(&database.Product{}).Where("quantity < ?", threshold).Count(&count).Error
	return count, err
}
