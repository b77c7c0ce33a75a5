package domain

import "time"

// Achievement is a one-time reward recorded in the achievements table
type Achievement struct {
	Key   string `json:"key"`
	Title string `json:"title"`
	XP    int64  `json:"xp"`
	Gems  int64  `json:"gems"`
}

// Achievements granted by the task award flow
var (
	AchievementFirstBlood = Achievement{Key: "first-blood", Title: "First completion today", XP: 10, Gems: 5}
	AchievementBingo      = Achievement{Key: "bingo", Title: "Full board clear", XP: 40, Gems: 20}
)

// Reward is an XP and gem grant
type Reward struct {
	XP   int64 `json:"xp"`
	Gems int64 `json:"gems"`
}

// Fixed reward amounts
var (
	RewardTask       = Reward{XP: 10, Gems: 5}
	RewardDailyLogin = Reward{XP: 30, Gems: 20}
	RewardCommission = Reward{XP: 20, Gems: 12}
	RewardWeeklyBoss = Reward{XP: 120, Gems: 80}
	RewardBingoLine  = Reward{XP: 25, Gems: 10}
)

// BoardSize is the number of tasks on a daily 3x3 board
const BoardSize = 9

// BingoLines are the rows, columns and diagonals of a 3x3 board
var BingoLines = [][]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Commission is one of the daily side objectives
type Commission struct {
	Key   string `json:"key"`
	Title string `json:"title"`
}

// CommissionsPerDay is the number of commissions offered each day
const CommissionsPerDay = 3

// CommissionTitles is the pool daily commissions are drawn from
var CommissionTitles = []string{
	"Complete 5 tasks",
	"Share your board",
	"Finish 1 commission",
	"Clear inbox 5",
	"Walk 10 minutes",
	"Journal 5 lines",
}

// Completion is a finished task
type Completion struct {
	TaskID      string    `json:"task_id"`
	CompletedAt time.Time `json:"completed_at"`
}

// TaskReward summarizes what completing a task granted
type TaskReward struct {
	Awarded      bool     `json:"awarded"`
	XPGained     int64    `json:"xp_gained"`
	GemsGained   int64    `json:"gems_gained"`
	Achievements []string `json:"achievements,omitempty"`
	ComboXP      int64    `json:"combo_xp"`
}

// RerollResult reports how a board reroll was paid for
type RerollResult struct {
	Allowed bool  `json:"allowed"`
	Free    bool  `json:"free"`
	Cost    int64 `json:"cost"`
}
