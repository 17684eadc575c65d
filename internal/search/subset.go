package search

import (
	"slices"
	"strconv"
	"strings"
)

// Subset is an ordered list of 1-based feature indices without duplicates.
type Subset []int

// FullSubset returns {1..n}.
func FullSubset(n int) Subset {
	s := make(Subset, n)
	for i := range s {
		s[i] = i + 1
	}
	return s
}

func (s Subset) Contains(feature int) bool {
	return slices.Contains(s, feature)
}

// With returns a copy of s with feature appended.
func (s Subset) With(feature int) Subset {
	out := make(Subset, len(s), len(s)+1)
	copy(out, s)
	return append(out, feature)
}

// Without returns a copy of s with feature removed, order preserved.
func (s Subset) Without(feature int) Subset {
	out := make(Subset, 0, len(s))
	for _, f := range s {
		if f != feature {
			out = append(out, f)
		}
	}
	return out
}

func (s Subset) Clone() Subset {
	return append(Subset{}, s...)
}

// String renders the subset as "{1,2,3}".
func (s Subset) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, f := range s {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(f))
	}
	b.WriteByte('}')
	return b.String()
}

// ParseSubset reads feature lists such as "1,3,5", "{1,3,5}" or "1 3 5".
func ParseSubset(text string) (Subset, error) {
	text = strings.Trim(strings.TrimSpace(text), "{}")
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})

	s := make(Subset, 0, len(fields))
	for _, field := range fields {
		f, err := strconv.Atoi(field)
		if err != nil {
			return nil, err
		}
		s = append(s, f)
	}
	return s, nil
}
