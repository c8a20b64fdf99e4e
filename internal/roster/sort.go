package roster

import (
	"cmp"
	"fmt"
	"strings"
)

// SortKey names a field persons can be ordered by.
type SortKey string

const (
	SortByPrice SortKey = "price"
	SortByLevel SortKey = "level"
)

// ParseSortKey accepts "price"/"p" and "level"/"l".
func ParseSortKey(value string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "price", "p", "p/":
		return SortByPrice, nil
	case "level", "l", "l/":
		return SortByLevel, nil
	}
	return "", fmt.Errorf("roster: unknown sort key %q", value)
}

// Comparator orders persons by each key in turn, ascending by the key's
// Average, so "20" and "20-21" tie on price. The first key is primary; later keys only break ties.
func Comparator(keys []SortKey) func(a, b Person) int {
	return func(a, b Person) int {
		for _, key := range keys {
			var c int
			switch key {
			case SortByPrice:
				c = cmp.Compare(a.price.Average(), b.price.Average())
			case SortByLevel:
				c = cmp.Compare(a.level.Average(), b.level.Average())
			}
			if c != 0 {
				return c
			}
		}
		return 0
	}
}

// DescribeKeys renders keys as "price, then level".
func DescribeKeys(keys []SortKey) string {
	names := make([]string, len(keys))
	for i, key := range keys {
		names[i] = string(key)
	}
	return strings.Join(names, ", then ")
}
