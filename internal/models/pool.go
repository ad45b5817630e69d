package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Pool statuses are administrative; nothing in the engine computes them.
const (
	PoolStatusActive   = "Active"
	PoolStatusInactive = "Inactive"
	PoolStatusSold     = "Sold"
)

// Pool is one vehicle-purchase funding unit: bank loan plus pooled investor
// capital, with an emergency-fund reserve tracked per pool.
//
// EmergencyFundRemaining = EmergencyFundInvestorShare minus every draw
// declared against the pool; it never goes below zero. The draw is reserved
// at declaration time, not at payment time.
type Pool struct {
	PurchaseID                uuid.UUID       `gorm:"column:purchase_id;type:uuid;primaryKey" json:"purchase_id"`
	PoolName                  string          `gorm:"column:pool_name;not null" json:"pool_name"`
	Description               string          `gorm:"column:description" json:"description"`
	PurchaseDate              time.Time       `gorm:"column:purchase_date;not null" json:"purchase_date"`
	TotalCost                 decimal.Decimal `gorm:"column:total_cost;type:decimal(18,2);not null;default:0" json:"total_cost"`
	BankLoanAmount            decimal.Decimal `gorm:"column:bank_loan_amount;type:decimal(18,2);not null;default:0" json:"bank_loan_amount"`
	InvestorAmount            decimal.Decimal `gorm:"column:investor_amount;type:decimal(18,2);not null;default:0" json:"investor_amount"`
	MonthlyEmi                decimal.Decimal `gorm:"column:monthly_emi;type:decimal(18,2);not null;default:0" json:"monthly_emi"`
	EmergencyFundCollected    decimal.Decimal `gorm:"column:emergency_fund_collected;type:decimal(18,2);not null;default:0" json:"emergency_fund_collected"`
	EmergencyFundCompanyShare decimal.Decimal `gorm:"column:emergency_fund_company_share;type:decimal(18,2);not null;default:0" json:"emergency_fund_company_share"`
	EmergencyFundInvestorShare decimal.Decimal `gorm:"column:emergency_fund_investor_share;type:decimal(18,2);not null;default:0" json:"emergency_fund_investor_share"`
	EmergencyFundRemaining    decimal.Decimal `gorm:"column:emergency_fund_remaining;type:decimal(18,2);not null;default:0" json:"emergency_fund_remaining"`
	Status                    string          `gorm:"column:status;type:varchar(20);not null;default:'Active'" json:"status"`
	Version                   int             `gorm:"column:version;not null;default:0" json:"-"`
	CreatedAt                 time.Time       `json:"created_at"`
	UpdatedAt                 time.Time       `json:"updated_at"`
}

func (Pool) TableName() string {
	return "company_pools"
}
