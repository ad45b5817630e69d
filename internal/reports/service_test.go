package reports

import (
	"context"
	"testing"
	"time"

	"github.com/mukkoticf/twilight-investors-dashboard/internal/apperrors"
	"github.com/mukkoticf/twilight-investors-dashboard/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type reportsFixture struct {
	svc      *Service
	db       *gorm.DB
	investor *models.Investor
	pool     *models.Pool
}

func setupReportsTest(t *testing.T) *reportsFixture {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Investor{}, &models.Pool{}, &models.Investment{}, &models.ExitRecord{},
		&models.Declaration{}, &models.Payment{},
	))

	investor := &models.Investor{
		InvestorID:   uuid.New(),
		InvestorName: "Asha Nair",
		Email:        "asha@example.com",
	}
	require.NoError(t, db.Create(investor).Error)

	pool := &models.Pool{
		PurchaseID:   uuid.New(),
		PoolName:     "Tempo Fleet 7",
		PurchaseDate: time.Date(2023, 1, 10, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.Create(pool).Error)

	return &reportsFixture{svc: &Service{DB: db}, db: db, investor: investor, pool: pool}
}

func (f *reportsFixture) addInvestment(t *testing.T, amount string) *models.Investment {
	inv := &models.Investment{
		InvestmentID:     uuid.New(),
		InvestorID:       f.investor.InvestorID,
		PurchaseID:       f.pool.PurchaseID,
		InvestmentAmount: dec(amount),
		InvestmentDate:   time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, f.db.Create(inv).Error)
	return inv
}

func (f *reportsFixture) addQuarter(t *testing.T, inv *models.Investment, quarter, roi, gross, net string) {
	decl := &models.Declaration{
		DeclarationID:   uuid.New(),
		PurchaseID:      f.pool.PurchaseID,
		QuarterYear:     quarter,
		RoiPercentage:   dec(roi),
		DeclarationDate: time.Now(),
		IsFinalized:     true,
	}
	require.NoError(t, f.db.Create(decl).Error)
	require.NoError(t, f.db.Create(&models.Payment{
		PaymentID:        uuid.New(),
		InvestmentID:     inv.InvestmentID,
		DeclarationID:    decl.DeclarationID,
		InvestorID:       f.investor.InvestorID,
		GrossRoiAmount:   dec(gross),
		NetPayableAmount: dec(net),
		PaymentStatus:    models.PaymentStatusPending,
	}).Error)
}

func TestInvestorSummary_Rollup(t *testing.T) {
	f := setupReportsTest(t)
	inv := f.addInvestment(t, "150000")
	require.NoError(t, f.db.Create(&models.ExitRecord{
		ExitID:       uuid.New(),
		InvestmentID: inv.InvestmentID,
		Amount:       dec("50000"),
		ExitDate:     time.Now(),
	}).Error)
	f.addQuarter(t, inv, "Q1-2024", "6", "9000", "8500")
	f.addQuarter(t, inv, "Q2-2024", "5", "7500", "7000")

	summary, err := f.svc.InvestorSummary(context.Background(), f.investor.InvestorID)
	require.NoError(t, err)

	assert.Equal(t, "Asha Nair", summary.InvestorName)
	assert.True(t, summary.TotalInvested.Equal(dec("150000")))
	assert.True(t, summary.TotalExited.Equal(dec("50000")))
	assert.True(t, summary.TotalGrossRoi.Equal(dec("16500")))
	assert.True(t, summary.TotalNetPaid.Equal(dec("15500")))
	assert.Equal(t, 2, summary.QuartersInvested)
	require.Len(t, summary.Pools, 1)
	assert.Equal(t, "Tempo Fleet 7", summary.Pools[0].PoolName)
}

func TestInvestorSummary_UnknownInvestor(t *testing.T) {
	f := setupReportsTest(t)
	_, err := f.svc.InvestorSummary(context.Background(), uuid.New())
	assert.True(t, apperrors.IsNotFound(err))
}

func TestPoolSummary_QuartersSortedNewestFirst(t *testing.T) {
	f := setupReportsTest(t)
	inv := f.addInvestment(t, "100000")
	f.addQuarter(t, inv, "Q1-2023", "4", "4000", "4000")
	f.addQuarter(t, inv, "Q3-2024", "6", "6000", "6000")
	f.addQuarter(t, inv, "Q2-2024", "5", "5000", "5000")
	f.addQuarter(t, inv, "Q4-2023", "4", "4000", "4000")

	summary, err := f.svc.PoolSummary(context.Background(), f.pool.PurchaseID)
	require.NoError(t, err)
	require.Len(t, summary.Quarters, 4)

	got := make([]string, 0, 4)
	for _, q := range summary.Quarters {
		got = append(got, q.QuarterYear)
	}
	assert.Equal(t, []string{"Q3-2024", "Q2-2024", "Q4-2023", "Q1-2023"}, got)
	assert.True(t, summary.CurrentPrincipalTotal.Equal(dec("100000")))
}

func TestQuarterlyHistory_SortAndShape(t *testing.T) {
	f := setupReportsTest(t)
	inv := f.addInvestment(t, "100000")
	f.addQuarter(t, inv, "Q1-2023", "4", "4000", "4000")
	f.addQuarter(t, inv, "Q3-2024", "6", "6000", "6000")
	f.addQuarter(t, inv, "Q2-2024", "5", "5000", "5000")
	f.addQuarter(t, inv, "Q4-2023", "4", "4000", "4000")

	rows, err := f.svc.QuarterlyHistory(context.Background(), f.investor.InvestorID)
	require.NoError(t, err)
	require.Len(t, rows, 4)

	got := make([]string, 0, 4)
	for _, r := range rows {
		got = append(got, r.QuarterYear)
	}
	assert.Equal(t, []string{"Q3-2024", "Q2-2024", "Q4-2023", "Q1-2023"}, got)
	assert.Equal(t, "Tempo Fleet 7", rows[0].PoolName)
	assert.True(t, rows[0].RoiPercentage.Equal(dec("6")))
}

func TestQuarterlyHistory_EmptyForUnknownInvestor(t *testing.T) {
	f := setupReportsTest(t)
	rows, err := f.svc.QuarterlyHistory(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, rows)
}
