package exits

import (
	"context"

	"github.com/mukkoticf/twilight-investors-dashboard/internal/apperrors"
	"github.com/mukkoticf/twilight-investors-dashboard/internal/ledger"
	"github.com/mukkoticf/twilight-investors-dashboard/internal/locks"
	"github.com/mukkoticf/twilight-investors-dashboard/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Service commits staged exit batches against the ledger. Commits for one
// investment are serialized by a distributed lock; the version check inside
// CommitExits catches whatever the lock cannot.
type Service struct {
	Investments ledger.InvestmentStore
	Locks       *locks.Manager
}

// Commit atomically appends every staged exit and recomputes the current
// principal. On any validation failure nothing is committed.
func (s *Service) Commit(ctx context.Context, investmentID uuid.UUID, staged []StagedExit) (*models.Investment, error) {
	if len(staged) == 0 {
		return nil, apperrors.Validation("exits", "nothing staged to commit")
	}

	lock, err := s.Locks.Investment(ctx, investmentID)
	if err != nil {
		return nil, err
	}
	defer lock.Release(ctx)

	investment, err := s.Investments.Get(ctx, investmentID)
	if err != nil {
		return nil, err
	}

	// Re-validate the whole batch against fresh state under the lock.
	session := NewSession(investment)
	for _, e := range staged {
		if err := session.Stage(e.Amount, e.ExitDate); err != nil {
			return nil, err
		}
	}

	records := make([]models.ExitRecord, 0, len(staged))
	for _, e := range staged {
		records = append(records, models.ExitRecord{
			ExitID:       uuid.New(),
			InvestmentID: investmentID,
			Amount:       e.Amount,
			ExitDate:     e.ExitDate,
		})
	}
	newPrincipal := ledger.CurrentPrincipal(investment).Sub(session.StagedTotal())

	updated, err := s.Investments.CommitExits(ctx, investmentID, investment.Version, newPrincipal, records)
	if err != nil {
		return nil, err
	}
	log.Info().
		Str("investment_id", investmentID.String()).
		Int("exits", len(records)).
		Str("current_principal", newPrincipal.String()).
		Msg("Exit batch committed")
	return updated, nil
}
