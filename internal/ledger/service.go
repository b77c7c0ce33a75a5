// Package ledger owns the XP total and gem balance of a profile. Every write
// runs in one store transaction holding the profile lock.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/TinyWins_Go/internal/concurrency"
	"github.com/osse101/TinyWins_Go/internal/domain"
	"github.com/osse101/TinyWins_Go/internal/logger"
	"github.com/osse101/TinyWins_Go/internal/metrics"
	"github.com/osse101/TinyWins_Go/internal/perk"
	"github.com/osse101/TinyWins_Go/internal/repository"
)

// Service defines the currency ledger.
//
// The *Tx methods run on a transaction opened by RunInTx and let other
// services compose several ledger writes atomically. RunInTx is not
// reentrant: calling a non-Tx method from inside fn deadlocks.
type Service interface {
	RunInTx(ctx context.Context, profileID int64, operation string, fn func(tx repository.ProgressionTx) error) error

	GetProfile(ctx context.Context, profileID int64) (*domain.Profile, error)
	SetProfileTags(ctx context.Context, profileID int64, jobClass, element string) (*domain.Profile, error)
	RenameProfile(ctx context.Context, profileID int64, name string) (*domain.Profile, error)

	AddXP(ctx context.Context, profileID, base int64) (int64, error)
	AddGems(ctx context.Context, profileID, delta int64) error
	GrantGems(ctx context.Context, profileID, base int64) (int64, error)
	SpendGems(ctx context.Context, profileID, cost int64) (bool, error)

	AddXPTx(ctx context.Context, tx repository.Queries, profileID, base int64, source string) (int64, error)
	AddGemsTx(ctx context.Context, tx repository.Queries, profileID, delta int64, source string) error
	GrantGemsTx(ctx context.Context, tx repository.Queries, profileID, base int64, source string) (int64, error)
	SpendGemsTx(ctx context.Context, tx repository.Queries, profileID, cost int64, purpose string) (bool, error)

	Perks() *perk.Resolver
}

type service struct {
	repo     repository.Progression
	perks    *perk.Resolver
	locks    *concurrency.LockManager
	validate *validator.Validate
}

// NewService creates a new ledger service. locks may be shared with other
// services working on the same store.
func NewService(repo repository.Progression, perks *perk.Resolver, locks *concurrency.LockManager) Service {
	if locks == nil {
		locks = concurrency.NewLockManager()
	}
	return &service{
		repo:     repo,
		perks:    perks,
		locks:    locks,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (s *service) Perks() *perk.Resolver {
	return s.perks
}

// RunInTx serializes writers of profileID in-process, opens a transaction,
// creates the profile on first access and takes its row lock before fn runs.
func (s *service) RunInTx(ctx context.Context, profileID int64, operation string, fn func(tx repository.ProgressionTx) error) error {
	if profileID < 1 {
		return fmt.Errorf("%w: profile id %d", domain.ErrInvalidInput, profileID)
	}
	return s.locks.WithLock(ctx, concurrency.ProfileKey(profileID), func() error {
		return metrics.ObserveTx(operation, func() error {
			return repository.WithTx(ctx, s.repo, func(tx repository.ProgressionTx) error {
				if err := tx.EnsureProfile(ctx, profileID); err != nil {
					return err
				}
				if err := tx.LockProfile(ctx, profileID); err != nil {
					return err
				}
				return fn(tx)
			})
		})
	})
}

// GetProfile returns the profile, creating it with defaults on first access
func (s *service) GetProfile(ctx context.Context, profileID int64) (*domain.Profile, error) {
	p, err := s.repo.GetProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if p != nil {
		return p, nil
	}

	if err := s.repo.EnsureProfile(ctx, profileID); err != nil {
		return nil, err
	}
	p, err = s.repo.GetProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: %d", domain.ErrProfileNotFound, profileID)
	}
	return p, nil
}

// SetProfileTags replaces both tags. Empty strings clear a tag.
func (s *service) SetProfileTags(ctx context.Context, profileID int64, jobClass, element string) (*domain.Profile, error) {
	jc, err := domain.ParseJobClass(jobClass)
	if err != nil {
		return nil, err
	}
	el, err := domain.ParseElement(element)
	if err != nil {
		return nil, err
	}

	return s.updateProfile(ctx, profileID, func(p *domain.Profile) {
		p.JobClass = jc
		p.Element = el
	})
}

// RenameProfile changes the display name
func (s *service) RenameProfile(ctx context.Context, profileID int64, name string) (*domain.Profile, error) {
	return s.updateProfile(ctx, profileID, func(p *domain.Profile) {
		p.Name = name
	})
}

func (s *service) updateProfile(ctx context.Context, profileID int64, mutate func(p *domain.Profile)) (*domain.Profile, error) {
	var updated *domain.Profile
	err := s.RunInTx(ctx, profileID, opSetProfile, func(tx repository.ProgressionTx) error {
		p, err := tx.GetProfile(ctx, profileID)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("%w: %d", domain.ErrProfileNotFound, profileID)
		}

		mutate(p)
		if err := s.validateProfile(p); err != nil {
			return err
		}
		if err := tx.UpsertProfile(ctx, p); err != nil {
			return err
		}
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgProfileUpdated, "profile_id", profileID, "name", updated.Name)
	return updated, nil
}

func (s *service) validateProfile(p *domain.Profile) error {
	err := s.validate.Struct(p)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		if fe.Field() == "JobClass" || fe.Field() == "Element" {
			return fmt.Errorf("%w: %s %v", domain.ErrInvalidProfileTag, fe.Field(), fe.Value())
		}
		return fmt.Errorf("%w: %s failed %q", domain.ErrInvalidInput, fe.Field(), fe.Tag())
	}
	return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
}

// AddXP credits base XP boosted by the equipped XP perks and returns the amount credited
func (s *service) AddXP(ctx context.Context, profileID, base int64) (int64, error) {
	var gained int64
	err := s.RunInTx(ctx, profileID, opAddXP, func(tx repository.ProgressionTx) error {
		var err error
		gained, err = s.AddXPTx(ctx, tx, profileID, base, SourceManual)
		return err
	})
	return gained, err
}

// AddGems credits delta gems as-is. Negative deltas are rejected; use SpendGems.
func (s *service) AddGems(ctx context.Context, profileID, delta int64) error {
	return s.RunInTx(ctx, profileID, opAddGems, func(tx repository.ProgressionTx) error {
		return s.AddGemsTx(ctx, tx, profileID, delta, SourceManual)
	})
}

// GrantGems credits a reward of base gems boosted by gem perks and talents
func (s *service) GrantGems(ctx context.Context, profileID, base int64) (int64, error) {
	var gained int64
	err := s.RunInTx(ctx, profileID, opGrantGems, func(tx repository.ProgressionTx) error {
		var err error
		gained, err = s.GrantGemsTx(ctx, tx, profileID, base, SourceManual)
		return err
	})
	return gained, err
}

// SpendGems debits cost when the balance covers it. A false result means
// nothing changed.
func (s *service) SpendGems(ctx context.Context, profileID, cost int64) (bool, error) {
	var ok bool
	err := s.RunInTx(ctx, profileID, opSpendGems, func(tx repository.ProgressionTx) error {
		var err error
		ok, err = s.SpendGemsTx(ctx, tx, profileID, cost, PurposeManual)
		return err
	})
	return ok, err
}

func (s *service) AddXPTx(ctx context.Context, tx repository.Queries, profileID, base int64, source string) (int64, error) {
	gained := base
	if base > 0 {
		pct, err := s.perks.XPBonusPct(ctx, tx, profileID)
		if err != nil {
			return 0, err
		}
		gained = ApplyPercent(base, pct)
	}

	if err := tx.AddProfileXP(ctx, profileID, gained); err != nil {
		return 0, err
	}

	if gained > 0 {
		metrics.XPEarned.WithLabelValues(source).Add(float64(gained))
	}
	logger.FromContext(ctx).Debug(LogMsgXPAdded, "profile_id", profileID, "base", base, "gained", gained, "source", source)
	return gained, nil
}

func (s *service) AddGemsTx(ctx context.Context, tx repository.Queries, profileID, delta int64, source string) error {
	if delta < 0 {
		return fmt.Errorf("%w: %d", domain.ErrNegativeGemDelta, delta)
	}
	if err := tx.AddProfileGems(ctx, profileID, delta); err != nil {
		return err
	}

	metrics.GemsEarned.WithLabelValues(source).Add(float64(delta))
	logger.FromContext(ctx).Debug(LogMsgGemsAdded, "profile_id", profileID, "gems", delta, "source", source)
	return nil
}

func (s *service) GrantGemsTx(ctx context.Context, tx repository.Queries, profileID, base int64, source string) (int64, error) {
	if base <= 0 {
		return 0, s.AddGemsTx(ctx, tx, profileID, base, source)
	}

	pct, err := s.perks.GemBonusPct(ctx, tx, profileID)
	if err != nil {
		return 0, err
	}
	attunement, err := tx.GetTalentLevel(ctx, profileID, domain.TalentElementalAttunement)
	if err != nil {
		return 0, err
	}

	gained := ApplyPercent(base, pct)
	if t, ok := domain.LookupTalent(domain.TalentElementalAttunement); ok {
		gained += int64(attunement) * t.GemBonusPerLevel
	}

	if err := s.AddGemsTx(ctx, tx, profileID, gained, source); err != nil {
		return 0, err
	}
	return gained, nil
}

func (s *service) SpendGemsTx(ctx context.Context, tx repository.Queries, profileID, cost int64, purpose string) (bool, error) {
	if cost < 0 {
		return false, fmt.Errorf("%w: negative cost %d", domain.ErrInvalidInput, cost)
	}
	if cost == 0 {
		return true, nil
	}

	ok, err := tx.SpendProfileGems(ctx, profileID, cost)
	if err != nil {
		return false, err
	}

	log := logger.FromContext(ctx)
	if !ok {
		metrics.SpendsRejected.WithLabelValues(purpose).Inc()
		log.Info(LogMsgSpendRejected, "profile_id", profileID, "cost", cost, "purpose", purpose)
		return false, nil
	}

	metrics.GemsSpent.WithLabelValues(purpose).Add(float64(cost))
	log.Debug(LogMsgGemsSpent, "profile_id", profileID, "cost", cost, "purpose", purpose)
	return true, nil
}

// ApplyPercent returns base increased by pct percent, rounded half up once.
// The result never drops below base; a bonus that overflows adds nothing.
func ApplyPercent(base int64, pct float64) int64 {
	if !(pct > 0) {
		return base
	}
	v := math.Floor(float64(base)*(100+pct)/100 + 0.5)
	if math.IsInf(v, 0) || v >= math.MaxInt64 || v < float64(base) {
		return base
	}
	return int64(v)
}
