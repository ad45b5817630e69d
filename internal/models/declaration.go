package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Declaration is one quarter's ROI announcement for one pool. QuarterYear is
// unique per pool (a duplicate would double-pay the quarter). The optional
// EmergencyFundDraw is reserved against the pool at creation time.
type Declaration struct {
	DeclarationID    uuid.UUID        `gorm:"column:declaration_id;type:uuid;primaryKey" json:"declaration_id"`
	PurchaseID       uuid.UUID        `gorm:"column:purchase_id;type:uuid;not null;uniqueIndex:idx_pool_quarter" json:"purchase_id"`
	QuarterYear      string           `gorm:"column:quarter_year;type:varchar(10);not null;uniqueIndex:idx_pool_quarter" json:"quarter_year"`
	RoiPercentage    decimal.Decimal  `gorm:"column:roi_percentage;type:decimal(8,4);not null" json:"roi_percentage"`
	DeclarationDate  time.Time        `gorm:"column:declaration_date;not null" json:"declaration_date"`
	IsFinalized      bool             `gorm:"column:is_finalized;not null;default:false" json:"is_finalized"`
	EmergencyFundDraw *decimal.Decimal `gorm:"column:emergency_fund_draw;type:decimal(18,2)" json:"emergency_fund_draw"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

func (Declaration) TableName() string {
	return "quarterly_roi_declarations"
}

// DrawAmount returns the emergency-fund draw, zero when none was declared.
func (d *Declaration) DrawAmount() decimal.Decimal {
	if d.EmergencyFundDraw == nil {
		return decimal.Zero
	}
	return *d.EmergencyFundDraw
}
