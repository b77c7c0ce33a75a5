package domain

import (
	"fmt"
	"strings"
	"time"
)

// DefaultProfileID is the id of the single local profile of an installation
const DefaultProfileID int64 = 1

// DefaultProfileName is the name given to a profile created on first access
const DefaultProfileName = "Traveler"

// JobClass is the optional class tag of a profile
type JobClass string

const (
	JobWarrior JobClass = "Warrior"
	JobArcher  JobClass = "Archer"
	JobMage    JobClass = "Mage"
	JobThief   JobClass = "Thief"
)

// JobClasses lists every valid job class
var JobClasses = []JobClass{JobWarrior, JobArcher, JobMage, JobThief}

// Element is the optional element tag of a profile
type Element string

const (
	ElementPyro    Element = "Pyro"
	ElementHydro   Element = "Hydro"
	ElementElectro Element = "Electro"
	ElementCryo    Element = "Cryo"
)

// Elements lists every valid element
var Elements = []Element{ElementPyro, ElementHydro, ElementElectro, ElementCryo}

// Profile is the progression aggregate of one player
type Profile struct {
	ID        int64     `json:"id" validate:"min=1"`
	Name      string    `json:"name" validate:"required,max=64"`
	JobClass  *JobClass `json:"job_class,omitempty" validate:"omitempty,oneof=Warrior Archer Mage Thief"`
	Element   *Element  `json:"element,omitempty" validate:"omitempty,oneof=Pyro Hydro Electro Cryo"`
	XP        int64     `json:"xp" validate:"min=0"`
	Gems      int64     `json:"gems" validate:"min=0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewProfile returns a profile with first-access defaults
func NewProfile(id int64) *Profile {
	return &Profile{ID: id, Name: DefaultProfileName}
}

// ParseJobClass matches s case-insensitively against the job classes.
// An empty string yields nil (tag cleared).
func ParseJobClass(s string) (*JobClass, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, jc := range JobClasses {
		if strings.EqualFold(string(jc), s) {
			v := jc
			return &v, nil
		}
	}
	return nil, fmt.Errorf("%w: job class %q", ErrInvalidProfileTag, s)
}

// ParseElement matches s case-insensitively against the elements.
// An empty string yields nil (tag cleared).
func ParseElement(s string) (*Element, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, el := range Elements {
		if strings.EqualFold(string(el), s) {
			v := el
			return &v, nil
		}
	}
	return nil, fmt.Errorf("%w: element %q", ErrInvalidProfileTag, s)
}
