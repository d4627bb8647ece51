package classify

import (
	"errors"
	"fmt"
)

const megabyte = 1024 * 1024

// SizeCategory is one named bucket in the size partition. The bucket covers
// [Min, Max) bytes; Max < 0 marks the final unbounded bucket.
type SizeCategory struct {
	Name string
	Min  int64
	Max  int64
}

// SizeCategories is an ordered, exhaustive, non-overlapping partition of the
// non-negative byte-size domain.
type SizeCategories []SizeCategory

// NewSizeCategories builds the standard light/medium/heavy partition from
// megabyte thresholds.
func NewSizeCategories(lightMaxMB, mediumMaxMB int64) SizeCategories {
	return SizeCategories{
		{Name: "light", Min: 0, Max: lightMaxMB * megabyte},
		{Name: "medium", Min: lightMaxMB * megabyte, Max: mediumMaxMB * megabyte},
		{Name: "heavy", Min: mediumMaxMB * megabyte, Max: -1},
	}
}

// Validate checks that the partition starts at zero, has no gap or overlap,
// and ends with an unbounded bucket, so every size maps to exactly one name.
func (cs SizeCategories) Validate() error {
	if len(cs) == 0 {
		return errors.New("size categories empty")
	}
	if cs[0].Min != 0 {
		return fmt.Errorf("first size category starts at %d, not 0", cs[0].Min)
	}
	for i, c := range cs {
		last := i == len(cs)-1
		if last {
			if c.Max >= 0 {
				return fmt.Errorf("last size category %q must be unbounded", c.Name)
			}
			continue
		}
		if c.Max <= c.Min {
			return fmt.Errorf("size category %q is empty or inverted", c.Name)
		}
		if cs[i+1].Min != c.Max {
			return fmt.Errorf("gap or overlap between %q and %q", c.Name, cs[i+1].Name)
		}
	}
	return nil
}

// Bucket returns the name of the category containing size.
func (cs SizeCategories) Bucket(size int64) string {
	for _, c := range cs {
		if size >= c.Min && (c.Max < 0 || size < c.Max) {
			return c.Name
		}
	}
	// Unreachable for a validated partition.
	return cs[len(cs)-1].Name
}
