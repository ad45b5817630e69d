package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const (
	PaymentStatusPending = "Pending"
	PaymentStatusPaid    = "Paid"
	PaymentStatusFailed  = "Failed"
)

// Payment is the computed settlement of one investment against one
// declaration. (InvestmentID, DeclarationID) is unique: regeneration after a
// partial failure must not double-pay anyone.
//
// NetPayableAmount is always re-derived from the stored components as
// max(0, gross - emergency + fd - tds); a payment can never go negative.
type Payment struct {
	PaymentID              uuid.UUID       `gorm:"column:payment_id;type:uuid;primaryKey" json:"payment_id"`
	InvestmentID           uuid.UUID       `gorm:"column:investment_id;type:uuid;not null;uniqueIndex:idx_investment_declaration" json:"investment_id"`
	DeclarationID          uuid.UUID       `gorm:"column:declaration_id;type:uuid;not null;uniqueIndex:idx_investment_declaration;index" json:"declaration_id"`
	InvestorID             uuid.UUID       `gorm:"column:investor_id;type:uuid;not null;index" json:"investor_id"`
	GrossRoiAmount         decimal.Decimal `gorm:"column:gross_roi_amount;type:decimal(18,2);not null;default:0" json:"gross_roi_amount"`
	EmergencyFundDeduction decimal.Decimal `gorm:"column:emergency_fund_deduction;type:decimal(18,2);not null;default:0" json:"emergency_fund_deduction"`
	FdReturns              decimal.Decimal `gorm:"column:fd_returns;type:decimal(18,2);not null;default:0" json:"fd_returns"`
	TdsDeduction           decimal.Decimal `gorm:"column:tds_deduction;type:decimal(18,2);not null;default:0" json:"tds_deduction"`
	NetPayableAmount       decimal.Decimal `gorm:"column:net_payable_amount;type:decimal(18,2);not null;default:0" json:"net_payable_amount"`
	PaymentStatus          string          `gorm:"column:payment_status;type:varchar(20);not null;default:'Pending'" json:"payment_status"`
	PaymentDate            *time.Time      `gorm:"column:payment_date" json:"payment_date"`
	ReceiptURL             *string         `gorm:"column:receipt_url" json:"receipt_url"`
	Remark                 *string         `gorm:"column:remark" json:"remark"`
	CreatedAt              time.Time       `json:"created_at"`
	UpdatedAt              time.Time       `json:"updated_at"`
}

func (Payment) TableName() string {
	return "investor_quarterly_payments"
}

const (
	PaymentEventGenerated     = "GENERATED"
	PaymentEventCorrected     = "CORRECTED"
	PaymentEventStatusChanged = "STATUS_CHANGED"
)

// PaymentEvent is the audit row appended on every payment mutation.
type PaymentEvent struct {
	EventID    uuid.UUID      `gorm:"column:event_id;type:uuid;primaryKey" json:"event_id"`
	PaymentID  uuid.UUID      `gorm:"column:payment_id;type:uuid;not null;index" json:"payment_id"`
	EventType  string         `gorm:"column:event_type;type:varchar(20);not null" json:"event_type"`
	ActorAdmin bool           `gorm:"column:actor_admin;not null;default:false" json:"actor_admin"`
	EventData  datatypes.JSON `gorm:"column:event_data;type:json" json:"event_data"`
	CreatedAt  time.Time      `json:"created_at"`
}

func (PaymentEvent) TableName() string {
	return "payment_events"
}
