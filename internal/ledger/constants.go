package ledger

// Metric label values for direct ledger calls
const (
	SourceManual  = "manual"
	PurposeManual = "manual"
)

// Transaction operation names
const (
	opSetProfile = "set_profile"
	opAddXP      = "add_xp"
	opAddGems    = "add_gems"
	opGrantGems  = "grant_gems"
	opSpendGems  = "spend_gems"
)

// Log messages
const (
	LogMsgXPAdded        = "XP added"
	LogMsgGemsAdded      = "Gems added"
	LogMsgGemsSpent      = "Gems spent"
	LogMsgSpendRejected  = "Spend rejected: insufficient gems"
	LogMsgProfileUpdated = "Profile updated"
)
