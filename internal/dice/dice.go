package dice

import (
	"fmt"
	"strconv"
	"strings"
)

// RollResult is the outcome of one dice roll
type RollResult struct {
	Total    int
	Rolls    []int
	Bonus    int
	Count    int
	Sides    int
	RawTotal int
}

// Notation is a parsed dice expression such as 2d6+3
type Notation struct {
	Count int
	Sides int
	Bonus int
}

// ParseNotation parses "XdY", "XdY+Z", "XdY-Z" or "dY".
// A bare integer is treated as zero dice plus a flat bonus.
func ParseNotation(s string) (Notation, error) {
	expr := strings.ToLower(strings.ReplaceAll(s, " ", ""))
	if expr == "" {
		return Notation{}, fmt.Errorf("invalid dice string %q", s)
	}

	if flat, err := strconv.Atoi(expr); err == nil {
		return Notation{Bonus: flat}, nil
	}

	dicePart, bonus := expr, 0
	if i := strings.IndexAny(expr, "+-"); i > 0 {
		var err error
		bonus, err = strconv.Atoi(expr[i:])
		if err != nil {
			return Notation{}, fmt.Errorf("invalid dice string %q", s)
		}
		dicePart = expr[:i]
	}

	parts := strings.Split(dicePart, "d")
	if len(parts) != 2 {
		return Notation{}, fmt.Errorf("invalid dice string %q", s)
	}

	count := 1
	if parts[0] != "" {
		n, err := strconv.Atoi(parts[0])
		if err != nil {
			return Notation{}, fmt.Errorf("invalid dice string %q", s)
		}
		count = n
	}

	sides, err := strconv.Atoi(parts[1])
	if err != nil {
		return Notation{}, fmt.Errorf("invalid dice string %q", s)
	}

	if count < 1 {
		return Notation{}, fmt.Errorf("invalid dice count in %q", s)
	}
	if sides < 1 {
		return Notation{}, fmt.Errorf("invalid dice size in %q", s)
	}

	return Notation{Count: count, Sides: sides, Bonus: bonus}, nil
}

func (n Notation) String() string {
	if n.Count == 0 {
		return strconv.Itoa(n.Bonus)
	}
	switch {
	case n.Bonus > 0:
		return fmt.Sprintf("%dd%d+%d", n.Count, n.Sides, n.Bonus)
	case n.Bonus < 0:
		return fmt.Sprintf("%dd%d%d", n.Count, n.Sides, n.Bonus)
	default:
		return fmt.Sprintf("%dd%d", n.Count, n.Sides)
	}
}

// RollNotation parses and rolls a dice expression with the given roller
func RollNotation(r Roller, s string) (*RollResult, error) {
	n, err := ParseNotation(s)
	if err != nil {
		return nil, err
	}

	if n.Count == 0 {
		return &RollResult{Total: n.Bonus, Bonus: n.Bonus}, nil
	}

	return r.Roll(n.Count, n.Sides, n.Bonus)
}
