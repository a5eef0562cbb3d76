package engine

// ComboTable selects how combo count contributes to damage (spec.md §4.8,
// §6).
type ComboTable uint8

const (
	ComboTableNone ComboTable = iota
	ComboTableClassic
	ComboTableModern
	ComboTableMultiplier
)

var comboTables = map[ComboTable][]int{
	ComboTableNone:    {0},
	ComboTableClassic: {0, 1, 1, 2, 2, 3, 3, 4, 4, 4, 5},
	ComboTableModern:  {0, 1, 1, 2, 2, 2, 3, 3, 3, 3, 3, 3, 4},
}

// comboTableNames are the host-facing wire names (spec.md §6).
var comboTableNames = [...]string{
	ComboTableNone:       "none",
	ComboTableClassic:    "classic-guideline",
	ComboTableModern:     "modern-guideline",
	ComboTableMultiplier: "multiplier",
}

// String returns the host-facing name of the combo table.
func (c ComboTable) String() string {
	if int(c) >= len(comboTableNames) {
		return "?"
	}
	return comboTableNames[c]
}

// ComboTableFromString parses a config's "comboTable" field (spec.md §6).
func ComboTableFromString(s string) (ComboTable, bool) {
	for i, n := range comboTableNames {
		if n == s {
			return ComboTable(i), true
		}
	}
	return 0, false
}

// Config carries the full rule-set knobs the host supplies in a `start`
// message (spec.md §6).
type Config struct {
	Kicks              KickFamily
	Spins              SpinPolicy
	B2BCharging        bool
	B2BChargeAt        int
	B2BChargeBase      int
	B2BChaining        bool
	ComboTable         ComboTable
	GarbageMultiplier  float64
	PCB2B              int
	PCSend             int
	GarbageSpecialBonus bool
}

// DefaultConfig returns a reasonable rule set matching common guideline
// defaults.
func DefaultConfig() Config {
	return Config{
		Kicks:             KickSRSPlus,
		Spins:             SpinPolicyTPlus,
		B2BCharging:       false,
		B2BChargeAt:       0,
		B2BChargeBase:     0,
		B2BChaining:       true,
		ComboTable:        ComboTableModern,
		GarbageMultiplier: 1.0,
		PCB2B:             0,
		PCSend:            10,
		GarbageSpecialBonus: false,
	}
}
