package payments

import (
	"context"
	"testing"
	"time"

	"github.com/mukkoticf/twilight-investors-dashboard/internal/actor"
	"github.com/mukkoticf/twilight-investors-dashboard/internal/apperrors"
	"github.com/mukkoticf/twilight-investors-dashboard/internal/locks"
	"github.com/mukkoticf/twilight-investors-dashboard/internal/models"
	"github.com/mukkoticf/twilight-investors-dashboard/internal/storage"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type engineFixture struct {
	svc  *Service
	db   *gorm.DB
	pool *models.Pool
}

func setupEngineTest(t *testing.T) *engineFixture {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Pool{}, &models.Investment{}, &models.ExitRecord{},
		&models.Declaration{}, &models.Payment{}, &models.PaymentEvent{},
	))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	pool := &models.Pool{
		PurchaseID:   uuid.New(),
		PoolName:     "Tempo Fleet 7",
		PurchaseDate: time.Date(2023, 1, 10, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.Create(pool).Error)

	svc := &Service{
		Declarations: &storage.GormDeclarationStore{DB: db},
		Investments:  &storage.GormInvestmentStore{DB: db},
		Payments:     &storage.GormPaymentStore{DB: db},
		Locks:        locks.NewManager(rdb),
		Allocation:   ProRataByPrincipal{},
	}
	return &engineFixture{svc: svc, db: db, pool: pool}
}

func (f *engineFixture) addInvestment(t *testing.T, amount string) *models.Investment {
	inv := &models.Investment{
		InvestmentID:     uuid.New(),
		InvestorID:       uuid.New(),
		PurchaseID:       f.pool.PurchaseID,
		InvestmentAmount: dec(amount),
		InvestmentDate:   time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, f.db.Create(inv).Error)
	return inv
}

func (f *engineFixture) addDeclaration(t *testing.T, quarter, roi string, draw *decimal.Decimal, finalized bool) *models.Declaration {
	decl := &models.Declaration{
		DeclarationID:     uuid.New(),
		PurchaseID:        f.pool.PurchaseID,
		QuarterYear:       quarter,
		RoiPercentage:     dec(roi),
		DeclarationDate:   time.Date(2024, 7, 5, 0, 0, 0, 0, time.UTC),
		IsFinalized:       finalized,
		EmergencyFundDraw: draw,
	}
	require.NoError(t, f.db.Create(decl).Error)
	return decl
}

func (f *engineFixture) paymentFor(t *testing.T, investmentID, declarationID uuid.UUID) *models.Payment {
	var payment models.Payment
	require.NoError(t, f.db.
		Where("investment_id = ? AND declaration_id = ?", investmentID, declarationID).
		First(&payment).Error)
	return &payment
}

func TestGeneratePayments_SimplePayout(t *testing.T) {
	f := setupEngineTest(t)
	inv := f.addInvestment(t, "100000")
	decl := f.addDeclaration(t, "Q1-2024", "6", nil, true)

	generated, failures, err := f.svc.GeneratePayments(context.Background(), decl.DeclarationID)
	require.NoError(t, err)
	assert.Equal(t, 1, generated)
	assert.Empty(t, failures)

	payment := f.paymentFor(t, inv.InvestmentID, decl.DeclarationID)
	assert.True(t, payment.GrossRoiAmount.Equal(dec("6000")))
	assert.True(t, payment.EmergencyFundDeduction.IsZero())
	assert.True(t, payment.NetPayableAmount.Equal(dec("6000")))
	assert.Equal(t, models.PaymentStatusPending, payment.PaymentStatus)

	// TDS of 500 entered afterwards brings net to 5,500.
	tds := dec("500")
	corrected, err := f.svc.CorrectPayment(context.Background(), actor.Admin, payment.PaymentID,
		CorrectionInput{TdsDeduction: &tds})
	require.NoError(t, err)
	assert.True(t, corrected.NetPayableAmount.Equal(dec("5500")))
}

func TestGeneratePayments_TdsDefaultRate(t *testing.T) {
	f := setupEngineTest(t)
	f.svc.TdsDefaultRate = dec("10")
	inv := f.addInvestment(t, "100000")
	decl := f.addDeclaration(t, "Q1-2024", "6", nil, true)

	_, _, err := f.svc.GeneratePayments(context.Background(), decl.DeclarationID)
	require.NoError(t, err)

	payment := f.paymentFor(t, inv.InvestmentID, decl.DeclarationID)
	assert.True(t, payment.TdsDeduction.Equal(dec("600")))
	assert.True(t, payment.NetPayableAmount.Equal(dec("5400")))
}

func TestGeneratePayments_RequiresFinalizedDeclaration(t *testing.T) {
	f := setupEngineTest(t)
	f.addInvestment(t, "100000")
	decl := f.addDeclaration(t, "Q1-2024", "6", nil, false)

	_, _, err := f.svc.GeneratePayments(context.Background(), decl.DeclarationID)
	assert.True(t, apperrors.IsValidation(err))
}

func TestGeneratePayments_UnknownDeclaration(t *testing.T) {
	f := setupEngineTest(t)
	_, _, err := f.svc.GeneratePayments(context.Background(), uuid.New())
	assert.True(t, apperrors.IsNotFound(err))
}

func TestGeneratePayments_Idempotent(t *testing.T) {
	f := setupEngineTest(t)
	f.addInvestment(t, "100000")
	f.addInvestment(t, "250000")
	decl := f.addDeclaration(t, "Q1-2024", "5", nil, true)

	generated, _, err := f.svc.GeneratePayments(context.Background(), decl.DeclarationID)
	require.NoError(t, err)
	assert.Equal(t, 2, generated)

	again, failures, err := f.svc.GeneratePayments(context.Background(), decl.DeclarationID)
	require.NoError(t, err)
	assert.Equal(t, 0, again)
	assert.Empty(t, failures)

	var count int64
	require.NoError(t, f.db.Model(&models.Payment{}).
		Where("declaration_id = ?", decl.DeclarationID).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestGeneratePayments_DeductionsSumToDraw(t *testing.T) {
	f := setupEngineTest(t)
	f.addInvestment(t, "100000")
	f.addInvestment(t, "100000")
	f.addInvestment(t, "100000")
	draw := dec("10000")
	decl := f.addDeclaration(t, "Q2-2024", "6", &draw, true)

	_, _, err := f.svc.GeneratePayments(context.Background(), decl.DeclarationID)
	require.NoError(t, err)

	payments, err := f.svc.Payments.ByDeclaration(context.Background(), decl.DeclarationID)
	require.NoError(t, err)
	require.Len(t, payments, 3)

	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.EmergencyFundDeduction)
	}
	assert.True(t, total.Equal(draw), "deductions sum to %s, want %s", total, draw)
}

func TestGeneratePayments_ExitReducesPayout(t *testing.T) {
	f := setupEngineTest(t)
	inv := f.addInvestment(t, "150000") // original 200,000 with 50,000 exited
	require.NoError(t, f.db.Create(&models.ExitRecord{
		ExitID:       uuid.New(),
		InvestmentID: inv.InvestmentID,
		Amount:       dec("50000"),
		ExitDate:     time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}).Error)
	decl := f.addDeclaration(t, "Q2-2024", "5", nil, true)

	_, _, err := f.svc.GeneratePayments(context.Background(), decl.DeclarationID)
	require.NoError(t, err)

	payment := f.paymentFor(t, inv.InvestmentID, decl.DeclarationID)
	assert.True(t, payment.GrossRoiAmount.Equal(dec("7500")), "got %s", payment.GrossRoiAmount)
}

func TestGeneratePayments_ConflictsWhileLocked(t *testing.T) {
	f := setupEngineTest(t)
	f.addInvestment(t, "100000")
	decl := f.addDeclaration(t, "Q1-2024", "6", nil, true)
	ctx := context.Background()

	held, err := f.svc.Locks.Declaration(ctx, decl.DeclarationID)
	require.NoError(t, err)
	defer held.Release(ctx)

	_, _, err = f.svc.GeneratePayments(ctx, decl.DeclarationID)
	assert.True(t, apperrors.IsConflict(err))
}

// flakyPaymentStore fails inserts for one investment, then heals.
type flakyPaymentStore struct {
	PaymentStore
	failFor uuid.UUID
	healed  bool
}

func (s *flakyPaymentStore) Insert(ctx context.Context, payment *models.Payment, event *models.PaymentEvent) error {
	if !s.healed && payment.InvestmentID == s.failFor {
		return apperrors.Storage("insert payment", context.DeadlineExceeded)
	}
	return s.PaymentStore.Insert(ctx, payment, event)
}

func TestGeneratePayments_PartialFailureContinuesAndRetries(t *testing.T) {
	f := setupEngineTest(t)
	invA := f.addInvestment(t, "100000")
	invB := f.addInvestment(t, "200000")
	decl := f.addDeclaration(t, "Q3-2024", "6", nil, true)

	flaky := &flakyPaymentStore{PaymentStore: f.svc.Payments, failFor: invA.InvestmentID}
	f.svc.Payments = flaky

	generated, failures, err := f.svc.GeneratePayments(context.Background(), decl.DeclarationID)
	require.NoError(t, err)
	assert.Equal(t, 1, generated)
	require.Len(t, failures, 1)
	assert.Equal(t, invA.InvestmentID, failures[0].InvestmentID)

	// Retry after the storage recovers: only the missing payment is inserted.
	flaky.healed = true
	generated, failures, err = f.svc.GeneratePayments(context.Background(), decl.DeclarationID)
	require.NoError(t, err)
	assert.Equal(t, 1, generated)
	assert.Empty(t, failures)

	f.paymentFor(t, invA.InvestmentID, decl.DeclarationID)
	f.paymentFor(t, invB.InvestmentID, decl.DeclarationID)
}

func TestCorrectPayment_ClampsNegativeNetToZero(t *testing.T) {
	f := setupEngineTest(t)
	inv := f.addInvestment(t, "100000")
	decl := f.addDeclaration(t, "Q1-2024", "6", nil, true)
	_, _, err := f.svc.GeneratePayments(context.Background(), decl.DeclarationID)
	require.NoError(t, err)

	payment := f.paymentFor(t, inv.InvestmentID, decl.DeclarationID)
	emergency := dec("7000")
	tds := dec("200")
	corrected, err := f.svc.CorrectPayment(context.Background(), actor.Admin, payment.PaymentID,
		CorrectionInput{EmergencyFundDeduction: &emergency, TdsDeduction: &tds})
	require.NoError(t, err)

	// 6,000 - 7,000 + 0 - 200 would be -1,200; payments never go negative.
	assert.True(t, corrected.NetPayableAmount.IsZero())
}

func TestCorrectPayment_FdReturnsAddBack(t *testing.T) {
	f := setupEngineTest(t)
	inv := f.addInvestment(t, "100000")
	decl := f.addDeclaration(t, "Q1-2024", "6", nil, true)
	_, _, err := f.svc.GeneratePayments(context.Background(), decl.DeclarationID)
	require.NoError(t, err)

	payment := f.paymentFor(t, inv.InvestmentID, decl.DeclarationID)
	fd := dec("350.50")
	corrected, err := f.svc.CorrectPayment(context.Background(), actor.Admin, payment.PaymentID,
		CorrectionInput{FdReturns: &fd})
	require.NoError(t, err)
	assert.True(t, corrected.NetPayableAmount.Equal(dec("6350.50")))
}

func TestCorrectPayment_RequiresAdmin(t *testing.T) {
	f := setupEngineTest(t)
	inv := f.addInvestment(t, "100000")
	decl := f.addDeclaration(t, "Q1-2024", "6", nil, true)
	_, _, err := f.svc.GeneratePayments(context.Background(), decl.DeclarationID)
	require.NoError(t, err)

	payment := f.paymentFor(t, inv.InvestmentID, decl.DeclarationID)
	tds := dec("500")
	_, err = f.svc.CorrectPayment(context.Background(), actor.Actor{}, payment.PaymentID,
		CorrectionInput{TdsDeduction: &tds})
	assert.Equal(t, ErrAdminRequired, err)
}

func TestCorrectPayment_RejectsNegativeField(t *testing.T) {
	f := setupEngineTest(t)
	inv := f.addInvestment(t, "100000")
	decl := f.addDeclaration(t, "Q1-2024", "6", nil, true)
	_, _, err := f.svc.GeneratePayments(context.Background(), decl.DeclarationID)
	require.NoError(t, err)

	payment := f.paymentFor(t, inv.InvestmentID, decl.DeclarationID)
	bad := dec("-1")
	_, err = f.svc.CorrectPayment(context.Background(), actor.Admin, payment.PaymentID,
		CorrectionInput{GrossRoiAmount: &bad})
	assert.True(t, apperrors.IsValidation(err))
}

func TestMarkPaidAndFailed_WriteAuditEvents(t *testing.T) {
	f := setupEngineTest(t)
	inv := f.addInvestment(t, "100000")
	decl := f.addDeclaration(t, "Q1-2024", "6", nil, true)
	_, _, err := f.svc.GeneratePayments(context.Background(), decl.DeclarationID)
	require.NoError(t, err)

	payment := f.paymentFor(t, inv.InvestmentID, decl.DeclarationID)
	receipt := "https://receipts.example/abc.pdf"
	paid, err := f.svc.MarkPaid(context.Background(), actor.Admin, payment.PaymentID,
		time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC), &receipt)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, paid.PaymentStatus)
	require.NotNil(t, paid.PaymentDate)
	require.NotNil(t, paid.ReceiptURL)

	var events []models.PaymentEvent
	require.NoError(t, f.db.Where("payment_id = ?", payment.PaymentID).
		Order("created_at ASC").Find(&events).Error)
	require.Len(t, events, 2)
	assert.Equal(t, models.PaymentEventGenerated, events[0].EventType)
	assert.Equal(t, models.PaymentEventStatusChanged, events[1].EventType)
}

func TestPaymentsByDeclaration_EffectiveRoi(t *testing.T) {
	f := setupEngineTest(t)
	f.addInvestment(t, "100000")
	decl := f.addDeclaration(t, "Q1-2024", "6", nil, true)
	_, _, err := f.svc.GeneratePayments(context.Background(), decl.DeclarationID)
	require.NoError(t, err)

	views, err := f.svc.PaymentsByDeclaration(context.Background(), decl.DeclarationID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.NotNil(t, views[0].EffectiveRoiPercentage)
	assert.True(t, views[0].EffectiveRoiPercentage.Equal(dec("6")))

	// Overriding gross shifts the effective rate, never the declared one.
	gross := dec("9000")
	_, err = f.svc.CorrectPayment(context.Background(), actor.Admin, views[0].PaymentID,
		CorrectionInput{GrossRoiAmount: &gross})
	require.NoError(t, err)

	views, err = f.svc.PaymentsByDeclaration(context.Background(), decl.DeclarationID)
	require.NoError(t, err)
	require.NotNil(t, views[0].EffectiveRoiPercentage)
	assert.True(t, views[0].EffectiveRoiPercentage.Equal(dec("9")))

	var unchanged models.Declaration
	require.NoError(t, f.db.Where("declaration_id = ?", decl.DeclarationID).First(&unchanged).Error)
	assert.True(t, unchanged.RoiPercentage.Equal(dec("6")))
}
