package rewards

import "time"

// ComboWindow is how far back a completion still counts as recent for the
// combo bonus
const ComboWindow = 10 * time.Minute

// Reward kinds, used as ledger sources and metric labels
const (
	KindTask        = "task"
	KindAchievement = "achievement"
	KindDailyLogin  = "daily_login"
	KindCommission  = "commission"
	KindWeeklyBoss  = "weekly_boss"
	KindBingoLine   = "bingo_line"
)

// PurposeReroll labels gem spends made by Reroll
const PurposeReroll = "reroll"

// Transaction operation names
const (
	opClaim      = "claim_reward"
	opAwardTask  = "award_task"
	opComplete   = "complete_task"
	opUncomplete = "uncomplete_task"
	opBingo      = "bingo_lines"
	opReroll     = "reroll"
)

// Log messages
const (
	LogMsgRewardClaimed       = "Reward claimed"
	LogMsgRewardAlreadyTaken  = "Reward already claimed"
	LogMsgTaskCompleted       = "Task completed"
	LogMsgAchievementUnlocked = "Achievement unlocked"
	LogMsgBingoLines          = "Bingo lines awarded"
	LogMsgReroll              = "Board reroll"
)
