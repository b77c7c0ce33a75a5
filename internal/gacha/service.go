// Package gacha draws artifacts. A batch reads the pity counters once,
// draws every artifact and writes the counters back in one transaction.
package gacha

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/osse101/TinyWins_Go/internal/domain"
	"github.com/osse101/TinyWins_Go/internal/ledger"
	"github.com/osse101/TinyWins_Go/internal/logger"
	"github.com/osse101/TinyWins_Go/internal/metrics"
	"github.com/osse101/TinyWins_Go/internal/repository"
)

// Service defines the gacha engine and the artifact inventory
type Service interface {
	// Wish draws count artifacts without charging for them. rng is required;
	// callers pick DefaultRNG or a seeded source.
	Wish(ctx context.Context, profileID int64, count int, rng RandomSource) ([]domain.Artifact, error)
	// WishTx draws on an open transaction and returns the new pity state
	WishTx(ctx context.Context, tx repository.Queries, profileID int64, count int, rng RandomSource) ([]domain.Artifact, domain.PityState, error)
	// PurchaseWish spends the wish cost and draws in the same transaction.
	// ok is false, with nothing changed, when the balance is short.
	PurchaseWish(ctx context.Context, profileID int64, count int, rng RandomSource) (result *domain.WishResult, ok bool, err error)
	WishCost(count int) int64
	Pity(ctx context.Context, profileID int64) (domain.PityState, error)

	ListArtifacts(ctx context.Context, profileID int64, equippedOnly bool) ([]domain.Artifact, error)
	Equip(ctx context.Context, profileID, artifactID int64) error
	Unequip(ctx context.Context, profileID, artifactID int64) error
}

type service struct {
	repo     repository.Progression
	ledger   ledger.Service
	catalog  *catalog
	wishCost int64
}

// NewService creates the gacha engine. A nil catalog means DefaultCatalog.
func NewService(repo repository.Progression, ledgerSvc ledger.Service, wishCost int64, templates []domain.ArtifactTemplate) Service {
	if len(templates) == 0 {
		templates = DefaultCatalog
	}
	return &service{
		repo:     repo,
		ledger:   ledgerSvc,
		catalog:  newCatalog(templates),
		wishCost: wishCost,
	}
}

func validateCount(count int) error {
	if count < 1 || count > MaxWishCount {
		return fmt.Errorf("%w: got %d, max %d", domain.ErrInvalidWishCount, count, MaxWishCount)
	}
	return nil
}

// validateDraw checks the arguments of every drawing entry point. The random
// source is always supplied by the caller; the engine never seeds one.
func validateDraw(count int, rng RandomSource) error {
	if err := validateCount(count); err != nil {
		return err
	}
	if rng == nil {
		return fmt.Errorf("%w: random source is required", domain.ErrInvalidInput)
	}
	return nil
}

func (s *service) WishCost(count int) int64 {
	return s.wishCost * int64(count)
}

func (s *service) Wish(ctx context.Context, profileID int64, count int, rng RandomSource) ([]domain.Artifact, error) {
	if err := validateDraw(count, rng); err != nil {
		return nil, err
	}

	var drawn []domain.Artifact
	var pity domain.PityState
	err := s.ledger.RunInTx(ctx, profileID, opWish, func(tx repository.ProgressionTx) error {
		var err error
		drawn, pity, err = s.WishTx(ctx, tx, profileID, count, rng)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgWishCompleted, "profile_id", profileID, "count", count,
		"pity_rare", pity.PityRare, "pity_epic", pity.PityEpic)
	return drawn, nil
}

func (s *service) WishTx(ctx context.Context, tx repository.Queries, profileID int64, count int, rng RandomSource) ([]domain.Artifact, domain.PityState, error) {
	if err := validateDraw(count, rng); err != nil {
		return nil, domain.PityState{}, err
	}

	state, err := tx.GetPityState(ctx, profileID)
	if err != nil {
		return nil, domain.PityState{}, err
	}
	state.ProfileID = profileID

	log := logger.FromContext(ctx)
	drawn := make([]domain.Artifact, 0, count)
	for i := 0; i < count; i++ {
		weights, hardPity := WeightsFor(state)
		rarity := weights.Sample(rng)
		tmpl := s.catalog.pick(rng, rarity)

		a, err := s.persist(ctx, tx, profileID, tmpl)
		if err != nil {
			return nil, domain.PityState{}, err
		}
		drawn = append(drawn, *a)

		// counters follow the sampled tier even when the template fell back
		state = Advance(state, rarity)

		metrics.ArtifactsDrawn.WithLabelValues(string(a.Rarity)).Inc()
		if hardPity != "" {
			metrics.PityTriggered.WithLabelValues(string(hardPity)).Inc()
		}
		log.Debug(LogMsgArtifactDrawn, "profile_id", profileID, "artifact_id", a.ID,
			"name", a.Name, "rarity", a.Rarity, "hard_pity", hardPity)
	}

	if err := tx.SetPityState(ctx, state); err != nil {
		return nil, domain.PityState{}, err
	}
	return drawn, state, nil
}

func (s *service) persist(ctx context.Context, tx repository.Queries, profileID int64, tmpl domain.ArtifactTemplate) (*domain.Artifact, error) {
	data := tmpl.Data
	if data == nil {
		data = map[string]any{}
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgMarshalPayload, err)
	}

	id, err := tx.AddArtifact(ctx, profileID, tmpl.Name, tmpl.Rarity, tmpl.PerkKey, payload)
	if err != nil {
		return nil, err
	}
	a, err := tx.GetArtifact(ctx, profileID, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, fmt.Errorf("%s: %w: %d", ErrMsgReadArtifact, domain.ErrArtifactNotFound, id)
	}

	if err := tx.LogWish(ctx, domain.WishLogEntry{
		ProfileID:  profileID,
		ArtifactID: id,
		Name:       tmpl.Name,
		Rarity:     tmpl.Rarity,
		PerkKey:    tmpl.PerkKey,
	}); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) PurchaseWish(ctx context.Context, profileID int64, count int, rng RandomSource) (*domain.WishResult, bool, error) {
	if err := validateDraw(count, rng); err != nil {
		return nil, false, err
	}

	cost := s.WishCost(count)
	var result *domain.WishResult
	err := s.ledger.RunInTx(ctx, profileID, opPurchaseWish, func(tx repository.ProgressionTx) error {
		ok, err := s.ledger.SpendGemsTx(ctx, tx, profileID, cost, PurposeWish)
		if err != nil || !ok {
			return err
		}

		drawn, pity, err := s.WishTx(ctx, tx, profileID, count, rng)
		if err != nil {
			return err
		}
		result = &domain.WishResult{Artifacts: drawn, Cost: cost, Pity: pity}
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	log := logger.FromContext(ctx)
	if result == nil {
		log.Info(LogMsgWishUnaffordable, "profile_id", profileID, "count", count, "cost", cost)
		return nil, false, nil
	}
	log.Info(LogMsgWishCompleted, "profile_id", profileID, "count", count, "cost", cost,
		"pity_rare", result.Pity.PityRare, "pity_epic", result.Pity.PityEpic)
	return result, true, nil
}

func (s *service) Pity(ctx context.Context, profileID int64) (domain.PityState, error) {
	state, err := s.repo.GetPityState(ctx, profileID)
	if err != nil {
		return domain.PityState{}, err
	}
	state.ProfileID = profileID
	return state, nil
}
