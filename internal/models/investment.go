package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Investment is one investor's stake in one pool. InvestmentAmount is the
// current principal; the original principal is always reconstructed as
// current + sum(exits), never stored, so a stale cache can't let an
// over-exit through.
type Investment struct {
	InvestmentID     uuid.UUID       `gorm:"column:investment_id;type:uuid;primaryKey" json:"investment_id"`
	InvestorID       uuid.UUID       `gorm:"column:investor_id;type:uuid;not null;index" json:"investor_id"`
	PurchaseID       uuid.UUID       `gorm:"column:purchase_id;type:uuid;not null;index" json:"purchase_id"`
	InvestmentAmount decimal.Decimal `gorm:"column:investment_amount;type:decimal(18,2);not null;default:0" json:"investment_amount"`
	InvestmentDate   time.Time       `gorm:"column:investment_date;not null" json:"investment_date"`
	Version          int             `gorm:"column:version;not null;default:0" json:"-"`
	Exits            []ExitRecord    `gorm:"foreignKey:InvestmentID;references:InvestmentID" json:"exits"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

func (Investment) TableName() string {
	return "investor_investments"
}

// ExitRecord is an append-only partial capital withdrawal. Rows are never
// edited or deleted once written; past payments stay computed against the
// principal at their time.
type ExitRecord struct {
	ExitID       uuid.UUID       `gorm:"column:exit_id;type:uuid;primaryKey" json:"exit_id"`
	InvestmentID uuid.UUID       `gorm:"column:investment_id;type:uuid;not null;index" json:"investment_id"`
	Amount       decimal.Decimal `gorm:"column:amount;type:decimal(18,2);not null" json:"amount"`
	ExitDate     time.Time       `gorm:"column:exit_date;not null" json:"exit_date"`
	CreatedAt    time.Time       `json:"created_at"`
}

func (ExitRecord) TableName() string {
	return "investment_exits"
}
