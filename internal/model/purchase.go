package model

type TransactionKind string

const (
	Credit TransactionKind = "credit"
	Debit  TransactionKind = "debit"
)

// PurchaseRecord is the proof of purchase for one lesson. Existence of a row
// for (user, lesson) is the sole access fact; there is no expiry.
type PurchaseRecord struct {
	BaseModel
	UserID   uint    `gorm:"index;uniqueIndex:idx_user_lesson;type:bigint unsigned;not null" json:"userId"`
	CourseID uint    `gorm:"index;type:bigint unsigned;not null" json:"courseId"`
	LessonID string  `gorm:"size:36;uniqueIndex:idx_user_lesson;not null" json:"lessonId"`
	Amount   float64 `gorm:"not null" json:"amount"`
}

func (PurchaseRecord) TableName() string {
	return "purchase_records"
}

// WalletTransaction is one ledger row for a wallet credit or debit.
type WalletTransaction struct {
	BaseModel
	UserID    uint            `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	Kind      TransactionKind `gorm:"type:enum('credit','debit');not null" json:"kind"`
	Amount    float64         `gorm:"not null" json:"amount"`
	Reference string          `gorm:"size:100" json:"reference"`
}

func (WalletTransaction) TableName() string {
	return "wallet_transactions"
}
