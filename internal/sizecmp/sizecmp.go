// Package sizecmp evaluates size comparison expressions of the form
// [op]magnitude[unit], e.g. ">=10k", "<1mi", "7". The operator defaults to
// equality. Units k/m/g are decimal multipliers; ki/mi/gi are binary.
package sizecmp

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var exprRe = regexp.MustCompile(`^(<=|>=|<|>)?([0-9]+)([kKmMgG][iI]?)?$`)

var multipliers = map[string]int64{
	"k":  1000,
	"ki": 1024,
	"m":  1000 * 1000,
	"mi": 1024 * 1024,
	"g":  1000 * 1000 * 1000,
	"gi": 1024 * 1024 * 1024,
}

type expr struct {
	op    string
	bytes int64
}

func parse(s string) (expr, error) {
	m := exprRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return expr{}, fmt.Errorf("malformed size expression %q (expected [op]magnitude[unit])", s)
	}

	n, err := strconv.ParseInt(m[2], 10, 64)
	if err != nil {
		return expr{}, fmt.Errorf("size expression %q: %w", s, err)
	}

	if unit := strings.ToLower(m[3]); unit != "" {
		mult := multipliers[unit]
		if n > math.MaxInt64/mult {
			return expr{}, fmt.Errorf("size expression %q: value too large", s)
		}
		n *= mult
	}

	return expr{op: m[1], bytes: n}, nil
}

// Comparator evaluates size expressions against byte counts.
type Comparator struct{}

func New() *Comparator { return &Comparator{} }

// Validate reports whether s is a well-formed size expression.
func (*Comparator) Validate(s string) error {
	_, err := parse(s)
	return err
}

// Compare reports whether size satisfies the expression s.
func (*Comparator) Compare(s string, size int64) (bool, error) {
	e, err := parse(s)
	if err != nil {
		return false, err
	}

	switch e.op {
	case "<":
		return size < e.bytes, nil
	case "<=":
		return size <= e.bytes, nil
	case ">":
		return size > e.bytes, nil
	case ">=":
		return size >= e.bytes, nil
	default:
		return size == e.bytes, nil
	}
}
