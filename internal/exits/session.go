package exits

import (
	"time"

	"github.com/mukkoticf/twilight-investors-dashboard/internal/apperrors"
	"github.com/mukkoticf/twilight-investors-dashboard/internal/ledger"
	"github.com/mukkoticf/twilight-investors-dashboard/internal/models"

	"github.com/shopspring/decimal"
)

// StagedExit is an uncommitted withdrawal inside an editing session.
type StagedExit struct {
	Amount   decimal.Decimal `json:"amount"`
	ExitDate time.Time       `json:"exit_date"`
}

// Session holds exits entered speculatively before a single commit. Every
// Stage call validates against original principal minus committed and
// already-staged exits, so the batch as a whole can never over-exit.
type Session struct {
	original  decimal.Decimal
	committed decimal.Decimal
	staged    []StagedExit
}

// NewSession starts a staging session from the investment's current state.
func NewSession(investment *models.Investment) *Session {
	return &Session{
		original:  ledger.OriginalPrincipal(investment),
		committed: ledger.TotalExited(investment),
	}
}

// Stage adds one exit to the uncommitted list.
func (s *Session) Stage(amount decimal.Decimal, date time.Time) error {
	if !amount.IsPositive() {
		return apperrors.Validation("amount", "exit amount must be greater than zero")
	}
	total := s.committed.Add(s.StagedTotal()).Add(amount)
	if total.GreaterThan(s.original) {
		return apperrors.Validationf("amount",
			"staged exits of %s exceed remaining principal (original %s, already exited %s)",
			s.StagedTotal().Add(amount).String(), s.original.String(), s.committed.String())
	}
	s.staged = append(s.staged, StagedExit{Amount: amount, ExitDate: date})
	return nil
}

// Staged returns the uncommitted exits in entry order.
func (s *Session) Staged() []StagedExit {
	return s.staged
}

// StagedTotal sums the uncommitted exits.
func (s *Session) StagedTotal() decimal.Decimal {
	total := decimal.Zero
	for _, e := range s.staged {
		total = total.Add(e.Amount)
	}
	return total
}
