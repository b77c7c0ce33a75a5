package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// BucketWeekly is the fixed bucket for rewards that are unique per ISO week
const BucketWeekly = "weekly"

// Milestone keys
const (
	KeyDailyLogin       = "daily-login"
	KeyFreeReroll       = "free-reroll"
	keyPrefixTask       = "award-"
	keyPrefixLine       = "line-"
	keyPrefixWeeklyBoss = "weekly-boss"
	keyPrefixCommission = "commission-"
)

// Milestone is one claimed (bucket, key) record
type Milestone struct {
	ProfileID int64     `json:"profile_id"`
	Bucket    string    `json:"bucket"`
	Key       string    `json:"key"`
	ClaimedAt time.Time `json:"claimed_at"`
}

// DayBucket returns the ISO day string used as the default milestone bucket
func DayBucket(t time.Time) string {
	return t.Format(time.DateOnly)
}

// ParseDay parses an ISO day string
func ParseDay(day string) (time.Time, error) {
	t, err := time.ParseInLocation(time.DateOnly, strings.TrimSpace(day), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: day %q", ErrInvalidInput, day)
	}
	return t, nil
}

// TaskAwardKey is the once-per-day key for the first completion of a task
func TaskAwardKey(taskID string) string {
	return keyPrefixTask + taskID
}

// CommissionKey returns the key of the n-th (1-based) daily commission
func CommissionKey(n int) string {
	return keyPrefixCommission + strconv.Itoa(n)
}

// WeeklyBossKey encodes the ISO year and week of t, e.g. "weekly-boss-2026-42"
func WeeklyBossKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%s-%d-%d", keyPrefixWeeklyBoss, year, week)
}

// BingoLineKey encodes the board indices of a line, e.g. "line-048"
func BingoLineKey(indices []int) string {
	var b strings.Builder
	b.WriteString(keyPrefixLine)
	for _, i := range indices {
		b.WriteString(strconv.Itoa(i))
	}
	return b.String()
}
