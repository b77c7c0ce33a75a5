package leveling

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromTotalXP(t *testing.T) {
	tests := []struct {
		name    string
		totalXP int64
		want    Progress
	}{
		{"zero", 0, Progress{Level: 1, XPInLevel: 0, XPCap: 100}},
		{"just below first cap", 99, Progress{Level: 1, XPInLevel: 99, XPCap: 100}},
		{"exactly first cap", 100, Progress{Level: 2, XPInLevel: 0, XPCap: 120}},
		{"into level 2", 150, Progress{Level: 2, XPInLevel: 50, XPCap: 120}},
		{"exactly level 3", 220, Progress{Level: 3, XPInLevel: 0, XPCap: 140}},
		{"negative clamps", -40, Progress{Level: 1, XPInLevel: 0, XPCap: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromTotalXP(tt.totalXP))
		})
	}
}

func TestFromTotalXP_Invariants(t *testing.T) {
	prevLevel := 1
	for xp := int64(0); xp <= 20000; xp += 7 {
		p := FromTotalXP(xp)
		assert.GreaterOrEqual(t, p.XPInLevel, int64(0))
		assert.Less(t, p.XPInLevel, p.XPCap, "xp %d", xp)
		assert.Equal(t, XPToNextLevel(p.Level), p.XPCap)
		assert.Equal(t, xp, TotalXPForLevel(p.Level)+p.XPInLevel, "xp %d", xp)
		assert.GreaterOrEqual(t, p.Level, prevLevel, "level must be monotonic")
		prevLevel = p.Level
	}
}

func TestXPToNextLevel(t *testing.T) {
	assert.Equal(t, int64(100), XPToNextLevel(1))
	assert.Equal(t, int64(120), XPToNextLevel(2))
	assert.Equal(t, int64(280), XPToNextLevel(10))
	assert.Equal(t, int64(100), XPToNextLevel(0))
}
