package metrics

// ============================================================================
// Metric Names
// ============================================================================

// Storage metric names
const (
	MetricNameTxDuration = "tinywins_store_tx_duration_seconds"
	MetricNameTxErrors   = "tinywins_store_tx_errors_total"
)

// Business metric names
const (
	MetricNameXPEarned        = "tinywins_xp_earned_total"
	MetricNameGemsEarned      = "tinywins_gems_earned_total"
	MetricNameGemsSpent       = "tinywins_gems_spent_total"
	MetricNameSpendsRejected  = "tinywins_spends_rejected_total"
	MetricNameArtifactsDrawn  = "tinywins_artifacts_drawn_total"
	MetricNamePityTriggered   = "tinywins_pity_triggered_total"
	MetricNameRewardsClaimed  = "tinywins_rewards_claimed_total"
	MetricNameTalentUpgrades  = "tinywins_talent_upgrades_total"
	MetricNameRerollsConsumed = "tinywins_rerolls_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// Storage metric help text
const (
	HelpTextTxDuration = "Duration of progression store transactions in seconds"
	HelpTextTxErrors   = "Total number of progression store transactions that failed"
)

// Business metric help text
const (
	HelpTextXPEarned        = "Total XP credited after perk bonuses"
	HelpTextGemsEarned      = "Total gems credited"
	HelpTextGemsSpent       = "Total gems spent"
	HelpTextSpendsRejected  = "Total number of spends rejected for insufficient gems"
	HelpTextArtifactsDrawn  = "Total number of artifacts drawn"
	HelpTextPityTriggered   = "Total number of draws decided by hard pity"
	HelpTextRewardsClaimed  = "Total number of one-time rewards granted"
	HelpTextTalentUpgrades  = "Total number of talent level upgrades"
	HelpTextRerollsConsumed = "Total number of board rerolls"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelOperation = "operation"
	LabelSource    = "source"
	LabelPurpose   = "purpose"
	LabelRarity    = "rarity"
	LabelTier      = "tier"
	LabelKind      = "kind"
	LabelTalent    = "talent"
	LabelFree      = "free"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// TxLatencyBuckets range from 0.5ms to 5s. A local SQLite transaction is
// usually under 10ms; postgres round trips push that to tens of ms.
var TxLatencyBuckets = []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 5}

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgMetricsWritten     = "Metrics written to textfile"
	LogMsgMetricsWriteFailed = "Failed to write metrics textfile"
)
