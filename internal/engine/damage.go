package engine

import "math"

// baseDamage is the lines × spin lookup table of spec.md §4.8.
func baseDamage(lines int, spin Spin) float64 {
	switch lines {
	case 0:
		return 0
	case 1:
		if spin == SpinNormal {
			return 2
		}
		return 0
	case 2:
		if spin == SpinNormal {
			return 4
		}
		return 1
	case 3:
		if spin == SpinNormal {
			return 6
		}
		return 2
	case 4:
		if spin != SpinNone {
			return 10
		}
		return 4
	default:
		return 0
	}
}

// Damage computes the damage dealt by one hard-drop clearing lines lines
// with spin, given the chain counters b2b and combo (already updated for
// this drop, per the "Back-to-back / combo update" rule applied by the
// caller) and the rule-set cfg (spec.md §4.8). It does not add the
// perfect-clear bonus, garbage-special bonus, or back-to-back break-charge:
// those depend on information (whether this drop was a perfect clear,
// whether a streak just broke) that only the caller has.
func Damage(lines int, spin Spin, b2b, combo int16, cfg Config) float64 {
	damage := baseDamage(lines, spin)

	if lines > 0 && b2b > 0 {
		if cfg.B2BChaining {
			v := 1 + math.Log1p(0.8*float64(b2b))
			damage += math.Floor(v)
			if b2b > 1 {
				damage += (1 + fracPart(v)) / 3
			}
		} else {
			damage++
		}
	}

	if combo > 0 {
		if cfg.ComboTable == ComboTableMultiplier {
			g1 := damage * (1 + 0.25*float64(combo))
			if combo > 1 {
				damage = math.Max(g1, math.Log1p(1.25*float64(combo)))
			} else {
				damage = g1
			}
		} else {
			table := comboTables[cfg.ComboTable]
			idx := int(combo) - 1
			if idx > len(table)-1 {
				idx = len(table) - 1
			}
			if idx < 0 {
				idx = 0
			}
			damage += float64(table[idx])
		}
	}

	damage *= cfg.GarbageMultiplier
	return damage
}

func fracPart(v float64) float64 {
	return v - math.Floor(v)
}
