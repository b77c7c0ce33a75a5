// Package leveling maps a lifetime XP total onto levels with a linearly
// growing cap: level L needs BaseCap + CapStep*(L-1) XP to clear.
package leveling

const (
	// BaseCap is the XP needed to clear level 1
	BaseCap int64 = 100
	// CapStep is how much each further level adds to the cap
	CapStep int64 = 20
)

// Progress is the position of an XP total on the level curve
type Progress struct {
	Level     int   `json:"level"`
	XPInLevel int64 `json:"xp_in_level"`
	XPCap     int64 `json:"xp_cap"`
}

// XPToNextLevel returns the cap of level
func XPToNextLevel(level int) int64 {
	if level < 1 {
		level = 1
	}
	return BaseCap + int64(level-1)*CapStep
}

// FromTotalXP returns the level reached with totalXP.
// Negative totals are treated as zero.
func FromTotalXP(totalXP int64) Progress {
	if totalXP < 0 {
		totalXP = 0
	}

	level := 1
	remaining := totalXP
	for {
		levelCap := XPToNextLevel(level)
		if remaining < levelCap {
			return Progress{Level: level, XPInLevel: remaining, XPCap: levelCap}
		}
		remaining -= levelCap
		level++
	}
}

// TotalXPForLevel is the lifetime XP at which level is first reached
func TotalXPForLevel(level int) int64 {
	var total int64
	for l := 1; l < level; l++ {
		total += XPToNextLevel(l)
	}
	return total
}
