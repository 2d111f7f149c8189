package calibration

import (
	"fmt"
	"strconv"
	"strings"
)

// TxPower is a BLE transmit power level in dBm.
type TxPower int

// TxPowerLevels lists the selectable levels in display order.
var TxPowerLevels = []TxPower{-40, -20, -16, -8, -4, 0, 4}

func (p TxPower) String() string {
	return strconv.Itoa(int(p))
}

// Valid reports whether p is one of TxPowerLevels.
func (p TxPower) Valid() bool {
	return indexOf(p) >= 0
}

// ParseTxPower parses s and rejects values outside TxPowerLevels.
func ParseTxPower(s string) (TxPower, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("tx power %q is not an integer", s)
	}
	p := TxPower(v)
	if !p.Valid() {
		return 0, fmt.Errorf("tx power %d not in %v", v, TxPowerLevels)
	}
	return p, nil
}

// CycleTxPower steps through TxPowerLevels from the current raw value,
// wrapping at both ends. An empty or unknown value starts from the first
// level going forward or the last going backward.
func CycleTxPower(current string, delta int) string {
	n := len(TxPowerLevels)
	idx := -1
	if p, err := ParseTxPower(current); err == nil {
		idx = indexOf(p)
	}
	if idx < 0 {
		if delta >= 0 {
			return TxPowerLevels[0].String()
		}
		return TxPowerLevels[n-1].String()
	}
	next := ((idx+delta)%n + n) % n
	return TxPowerLevels[next].String()
}

func indexOf(p TxPower) int {
	for i, l := range TxPowerLevels {
		if l == p {
			return i
		}
	}
	return -1
}
