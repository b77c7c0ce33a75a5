package domain

// TalentKey identifies an upgradeable talent
type TalentKey string

const (
	TalentComboMastery        TalentKey = "combo_mastery"
	TalentElementalAttunement TalentKey = "elemental_attunement"
)

// TalentUpgradeCost is the gem price of one talent level
const TalentUpgradeCost int64 = 20

// Talent is a static talent definition
type Talent struct {
	Key              TalentKey `json:"key"`
	Name             string    `json:"name"`
	MaxLevel         int       `json:"max_level"`
	XPBonusPerLevel  int64     `json:"xp_bonus_per_level,omitempty"`
	GemBonusPerLevel int64     `json:"gem_bonus_per_level,omitempty"`
}

// Talents is the closed talent catalog, in display order
var Talents = []Talent{
	{Key: TalentComboMastery, Name: "Combo Mastery", MaxLevel: 5, XPBonusPerLevel: 2},
	{Key: TalentElementalAttunement, Name: "Elemental Attunement", MaxLevel: 5, GemBonusPerLevel: 1},
}

// LookupTalent returns the definition for key
func LookupTalent(key TalentKey) (Talent, bool) {
	for _, t := range Talents {
		if t.Key == key {
			return t, true
		}
	}
	return Talent{}, false
}

// TalentStatus is a talent definition together with a profile's level in it
type TalentStatus struct {
	Talent
	Level int `json:"level"`
}
