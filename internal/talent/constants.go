package talent

// ComboMinCompletions is how many recent completions trigger a combo
const ComboMinCompletions = 2

// Metric and transaction labels
const (
	PurposeUpgrade = "talent_upgrade"
	SourceCombo    = "combo"
	opUpgrade      = "talent_upgrade"
	opCombo        = "combo_bonus"
)

// Log messages
const (
	LogMsgTalentUpgraded  = "Talent upgraded"
	LogMsgUpgradeRejected = "Talent upgrade rejected"
	LogMsgComboApplied    = "Combo bonus applied"
)

// Rejection reasons logged with LogMsgUpgradeRejected
const (
	reasonUnknown  = "unknown_talent"
	reasonMaxLevel = "max_level"
	reasonFunds    = "insufficient_gems"
)
