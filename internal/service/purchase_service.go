package service

import (
	"context"
	"errors"
	"fmt"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/structure"
	"lms_backend/internal/util"
	"lms_backend/pkg/monitoring"

	"gorm.io/gorm"
)

// PurchaseService performs the paid-lesson transaction: debit the wallet,
// record the purchase, and add the buyer to the lesson's paidStudents set.
// All three happen in one database transaction.
type PurchaseService struct {
	DB           *gorm.DB
	Courses      *CourseService
	PurchaseRepo *repository.PurchaseRepository
	UserRepo     *repository.UserRepository
}

func NewPurchaseService(db *gorm.DB, courses *CourseService, purchaseRepo *repository.PurchaseRepository, userRepo *repository.UserRepository) *PurchaseService {
	return &PurchaseService{
		DB:           db,
		Courses:      courses,
		PurchaseRepo: purchaseRepo,
		UserRepo:     userRepo,
	}
}

func (s *PurchaseService) PurchaseLesson(ctx context.Context, userID, courseID uint, lessonID string) (*model.PurchaseRecord, error) {
	var record *model.PurchaseRecord

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var course model.Course
		if err := tx.First(&course, courseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.ErrCourseNotFound
			}
			return err
		}

		items, err := structure.Normalize(&course)
		if err != nil {
			return err
		}

		lesson := findLesson(items, lessonID)
		if lesson == nil {
			return util.ErrLessonNotFound
		}
		if lesson.Price <= 0 {
			return fmt.Errorf("lesson %s is free, nothing to purchase", lessonID)
		}

		for _, id := range lesson.PaidStudents {
			if id == userID {
				return util.ErrAlreadyPurchased
			}
		}
		var existing int64
		if err := tx.Model(&model.PurchaseRecord{}).
			Where("user_id = ? AND lesson_id = ?", userID, lessonID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return util.ErrAlreadyPurchased
		}

		// Guarded debit: the WHERE clause makes overdraft impossible even
		// when two purchases race on the same wallet.
		res := tx.Model(&model.User{}).
			Where("id = ? AND wallet_balance >= ?", userID, lesson.Price).
			Update("wallet_balance", gorm.Expr("wallet_balance - ?", lesson.Price))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return util.ErrInsufficientBalance
		}

		lesson.PaidStudents = append(lesson.PaidStudents, userID)
		applyStructure(&course, items)
		if err := tx.Save(&course).Error; err != nil {
			return err
		}

		record = &model.PurchaseRecord{
			UserID:   userID,
			CourseID: courseID,
			LessonID: lessonID,
			Amount:   lesson.Price,
		}
		if err := tx.Create(record).Error; err != nil {
			return err
		}

		ledger := &model.WalletTransaction{
			UserID:    userID,
			Kind:      model.Debit,
			Amount:    lesson.Price,
			Reference: fmt.Sprintf("lesson:%s", lessonID),
		}
		return tx.Create(ledger).Error
	})
	if err != nil {
		return nil, err
	}

	s.Courses.invalidate(ctx, courseID)
	monitoring.LessonPurchases.Inc()
	return record, nil
}

// TopUpWallet credits a user's wallet and writes the matching ledger row.
// Only reachable through the admin API.
func (s *PurchaseService) TopUpWallet(ctx context.Context, userID uint, amount float64, reference string) error {
	if amount <= 0 {
		return fmt.Errorf("top-up amount must be positive, got %v", amount)
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.User{}).
			Where("id = ?", userID).
			Update("wallet_balance", gorm.Expr("wallet_balance + ?", amount))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return util.ErrUserNotFound
		}

		ledger := &model.WalletTransaction{
			UserID:    userID,
			Kind:      model.Credit,
			Amount:    amount,
			Reference: reference,
		}
		return tx.Create(ledger).Error
	})
}

func (s *PurchaseService) ListPurchases(userID uint) ([]model.PurchaseRecord, error) {
	return s.PurchaseRepo.ListByUser(userID)
}

// WalletSummary is the wallet page payload.
type WalletSummary struct {
	Balance      float64                   `json:"balance"`
	Transactions []model.WalletTransaction `json:"transactions"`
}

func (s *PurchaseService) GetWallet(userID uint) (*WalletSummary, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	transactions, err := s.PurchaseRepo.ListWalletTransactions(userID)
	if err != nil {
		return nil, err
	}

	return &WalletSummary{
		Balance:      user.WalletBalance,
		Transactions: transactions,
	}, nil
}
