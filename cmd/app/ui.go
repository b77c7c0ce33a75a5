package main

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/osse101/TinyWins_Go/internal/domain"
)

const (
	colorGreen  = "\033[0;32m"
	colorRed    = "\033[0;31m"
	colorYellow = "\033[1;33m"
	colorBlue   = "\033[0;34m"
	colorReset  = "\033[0m"
)

var titleCase = cases.Title(language.English)

// UI helpers

func PrintSuccess(w io.Writer, format string, a ...interface{}) {
	fmt.Fprintf(w, colorGreen+"✓ "+format+colorReset+"\n", a...)
}

func PrintWarning(w io.Writer, format string, a ...interface{}) {
	fmt.Fprintf(w, colorYellow+"⚠ "+format+colorReset+"\n", a...)
}

func PrintError(w io.Writer, format string, a ...interface{}) {
	fmt.Fprintf(w, colorRed+"✗ "+format+colorReset+"\n", a...)
}

func PrintHeader(w io.Writer, title string) {
	fmt.Fprintf(w, "\n"+colorYellow+"=== %s ==="+colorReset+"\n", title)
}

// rarityLabel renders a rarity for display, e.g. "Epic"
func rarityLabel(r domain.Rarity) string {
	label := titleCase.String(string(r))
	if r == domain.RarityEpic {
		return colorBlue + label + colorReset
	}
	return label
}

// perkLabel turns a perk key into words, e.g. "Streak Shield"
func perkLabel(k domain.PerkKey) string {
	return titleCase.String(strings.ReplaceAll(string(k), "_", " "))
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
