package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type PurchaseRepository struct {
	DB *gorm.DB
}

func NewPurchaseRepository(db *gorm.DB) *PurchaseRepository {
	return &PurchaseRepository{DB: db}
}

func (r *PurchaseRepository) Create(record *model.PurchaseRecord) error {
	return r.DB.Create(record).Error
}

// HasPurchased reports whether a purchase record exists for (user, lesson).
// Existence of the row is the sole proof of purchase.
func (r *PurchaseRepository) HasPurchased(userID uint, lessonID string) (bool, error) {
	var n int64
	err := r.DB.Model(&model.PurchaseRecord{}).
		Where("user_id = ? AND lesson_id = ?", userID, lessonID).
		Count(&n).Error
	return n > 0, err
}

func (r *PurchaseRepository) ListByUser(userID uint) ([]model.PurchaseRecord, error) {
	var records []model.PurchaseRecord
	err := r.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&records).Error
	return records, err
}

func (r *PurchaseRepository) TotalRevenue() (float64, error) {
	var sum float64
	err := r.DB.Model(&model.PurchaseRecord{}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error
	return sum, err
}

func (r *PurchaseRepository) CountByCourse(courseID uint) (int64, error) {
	var n int64
	err := r.DB.Model(&model.PurchaseRecord{}).
		Where("course_id = ?", courseID).
		Count(&n).Error
	return n, err
}

func (r *PurchaseRepository) CreateWalletTransaction(tx *model.WalletTransaction) error {
	return r.DB.Create(tx).Error
}

func (r *PurchaseRepository) ListWalletTransactions(userID uint) ([]model.WalletTransaction, error) {
	var rows []model.WalletTransaction
	err := r.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}
