// Package perk derives the passive bonuses of a profile from its artifacts.
// Artifact payloads are parsed leniently: anything that is not a JSON object
// of the expected shape contributes nothing.
package perk

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/osse101/TinyWins_Go/internal/domain"
	"github.com/osse101/TinyWins_Go/internal/logger"
	"github.com/osse101/TinyWins_Go/internal/repository"
)

// Cache defaults
const (
	DefaultCacheSize = 512
	DefaultCacheTTL  = time.Hour
)

// Resolver reads perk effects through any repository.Artifact, so callers can
// pass a store or an open transaction
type Resolver struct {
	cache *payloadCache
}

// NewResolver creates a Resolver with a payload cache of cacheSize entries
func NewResolver(cacheSize int) *Resolver {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	return &Resolver{cache: newPayloadCache(cacheSize, DefaultCacheTTL)}
}

// Payload returns the parsed payload of a, or an empty map when it is malformed
func (r *Resolver) Payload(a domain.Artifact) map[string]any {
	raw := string(a.Data)
	if p, ok := r.cache.Get(a.ID, raw); ok {
		return p
	}

	p := ParsePayload(a.Data)
	if a.ID != 0 {
		r.cache.Set(a.ID, raw, p)
	}
	return p
}

// ParsePayload decodes an artifact payload. Malformed input yields an empty map.
func ParsePayload(data []byte) map[string]any {
	if len(data) == 0 {
		return map[string]any{}
	}
	var p map[string]any
	if err := json.Unmarshal(data, &p); err != nil || p == nil {
		return map[string]any{}
	}
	return p
}

// NumberField reads field as a non-negative number. Missing, non-numeric,
// negative or non-finite values are 0, as is anything beyond the int64 range.
func NumberField(payload map[string]any, field string) float64 {
	var v float64
	switch n := payload[field].(type) {
	case float64:
		v = n
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0
		}
		v = f
	default:
		return 0
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || v >= math.MaxInt64 {
		return 0
	}
	return v
}

// StringField reads field as a string. Missing or non-string values are "".
func StringField(payload map[string]any, field string) string {
	s, _ := payload[field].(string)
	return s
}

// sum adds field over the artifacts carrying perkKey
func (r *Resolver) sum(artifacts []domain.Artifact, perkKey domain.PerkKey, field string) float64 {
	var total float64
	for _, a := range artifacts {
		if a.PerkKey != perkKey {
			continue
		}
		total += NumberField(r.Payload(a), field)
	}
	return total
}

func count(artifacts []domain.Artifact, perkKey domain.PerkKey) int {
	n := 0
	for _, a := range artifacts {
		if a.PerkKey == perkKey {
			n++
		}
	}
	return n
}

func (r *Resolver) equipped(ctx context.Context, q repository.Artifact, profileID int64) ([]domain.Artifact, error) {
	artifacts, err := q.ListArtifacts(ctx, profileID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to load equipped artifacts: %w", err)
	}
	return artifacts, nil
}

// SumEquipped adds the numeric field over every equipped artifact with
// perkKey. Bonuses stack without a cap.
func (r *Resolver) SumEquipped(ctx context.Context, q repository.Artifact, profileID int64, perkKey domain.PerkKey, field string) (float64, error) {
	artifacts, err := r.equipped(ctx, q, profileID)
	if err != nil {
		return 0, err
	}
	return r.sum(artifacts, perkKey, field), nil
}

// CountEquipped counts equipped artifacts with perkKey
func (r *Resolver) CountEquipped(ctx context.Context, q repository.Artifact, profileID int64, perkKey domain.PerkKey) (int, error) {
	artifacts, err := r.equipped(ctx, q, profileID)
	if err != nil {
		return 0, err
	}
	return count(artifacts, perkKey), nil
}

// HasEquipped reports whether any artifact with perkKey is equipped
func (r *Resolver) HasEquipped(ctx context.Context, q repository.Artifact, profileID int64, perkKey domain.PerkKey) (bool, error) {
	n, err := r.CountEquipped(ctx, q, profileID, perkKey)
	return n > 0, err
}

// XPBonusPct is the total XP percentage bonus of the equipped artifacts
func (r *Resolver) XPBonusPct(ctx context.Context, q repository.Artifact, profileID int64) (float64, error) {
	return r.SumEquipped(ctx, q, profileID, domain.PerkXPBoost, domain.PayloadXPBoostPct)
}

// GemBonusPct is the total gem percentage bonus of the equipped artifacts
func (r *Resolver) GemBonusPct(ctx context.Context, q repository.Artifact, profileID int64) (float64, error) {
	return r.SumEquipped(ctx, q, profileID, domain.PerkDropBoost, domain.PayloadDropBoostPct)
}

// UnlockedThemes returns "Default" followed by the theme of every owned theme
// artifact, in acquisition order without duplicates. Owning is enough.
func (r *Resolver) UnlockedThemes(ctx context.Context, q repository.Artifact, profileID int64) ([]string, error) {
	owned, err := q.ListArtifacts(ctx, profileID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to load artifacts: %w", err)
	}
	return r.themes(ctx, owned), nil
}

func (r *Resolver) themes(ctx context.Context, owned []domain.Artifact) []string {
	themes := []string{domain.DefaultTheme}
	seen := map[string]bool{domain.DefaultTheme: true}
	for _, a := range owned {
		if !a.PerkKey.IsTheme() {
			continue
		}
		theme := StringField(r.Payload(a), domain.PayloadTheme)
		if theme == "" {
			logger.FromContext(ctx).Debug("Theme artifact without theme name", "artifact_id", a.ID)
			continue
		}
		if !seen[theme] {
			seen[theme] = true
			themes = append(themes, theme)
		}
	}
	return themes
}

// Summary aggregates every perk effect of the profile
func (r *Resolver) Summary(ctx context.Context, q repository.Artifact, profileID int64) (domain.PerkSummary, error) {
	owned, err := q.ListArtifacts(ctx, profileID, false)
	if err != nil {
		return domain.PerkSummary{}, fmt.Errorf("failed to load artifacts: %w", err)
	}

	equipped := make([]domain.Artifact, 0, len(owned))
	for _, a := range owned {
		if a.Equipped {
			equipped = append(equipped, a)
		}
	}

	return domain.PerkSummary{
		XPBonusPct:  r.sum(equipped, domain.PerkXPBoost, domain.PayloadXPBoostPct),
		GemBonusPct: r.sum(equipped, domain.PerkDropBoost, domain.PayloadDropBoostPct),
		ShieldCount: count(equipped, domain.PerkStreakShield),
		FreeReroll:  count(equipped, domain.PerkRerollBonus) > 0,
		Themes:      r.themes(ctx, owned),
	}, nil
}
