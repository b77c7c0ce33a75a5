package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Storage Metrics
var (
	TxDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameTxDuration,
			Help:    HelpTextTxDuration,
			Buckets: TxLatencyBuckets,
		},
		[]string{LabelOperation},
	)

	TxErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameTxErrors,
			Help: HelpTextTxErrors,
		},
		[]string{LabelOperation},
	)
)

// Business Metrics
var (
	XPEarned = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameXPEarned,
			Help: HelpTextXPEarned,
		},
		[]string{LabelSource},
	)

	GemsEarned = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameGemsEarned,
			Help: HelpTextGemsEarned,
		},
		[]string{LabelSource},
	)

	GemsSpent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameGemsSpent,
			Help: HelpTextGemsSpent,
		},
		[]string{LabelPurpose},
	)

	SpendsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSpendsRejected,
			Help: HelpTextSpendsRejected,
		},
		[]string{LabelPurpose},
	)

	ArtifactsDrawn = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameArtifactsDrawn,
			Help: HelpTextArtifactsDrawn,
		},
		[]string{LabelRarity},
	)

	PityTriggered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePityTriggered,
			Help: HelpTextPityTriggered,
		},
		[]string{LabelTier},
	)

	RewardsClaimed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRewardsClaimed,
			Help: HelpTextRewardsClaimed,
		},
		[]string{LabelKind},
	)

	TalentUpgrades = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameTalentUpgrades,
			Help: HelpTextTalentUpgrades,
		},
		[]string{LabelTalent},
	)

	RerollsConsumed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRerollsConsumed,
			Help: HelpTextRerollsConsumed,
		},
		[]string{LabelFree},
	)
)
