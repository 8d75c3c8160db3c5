package model

// FilterCriteria narrows the discovery list. Empty fields match everything.
type FilterCriteria struct {
	City   string
	Name   string
	Date   *Day
	MaxAge *int
}

// IsEmpty reports whether the criteria match every entity
func (c FilterCriteria) IsEmpty() bool {
	return c.City == "" && c.Name == "" && c.Date == nil && c.MaxAge == nil
}

// Key returns a comparable representation used for memoization
func (c FilterCriteria) Key() CriteriaKey {
	k := CriteriaKey{City: c.City, Name: c.Name}
	if c.Date != nil {
		k.HasDate, k.Date = true, *c.Date
	}
	if c.MaxAge != nil {
		k.HasAge, k.MaxAge = true, *c.MaxAge
	}
	return k
}

// CriteriaKey is the comparable form of FilterCriteria
type CriteriaKey struct {
	City    string
	Name    string
	HasDate bool
	Date    Day
	HasAge  bool
	MaxAge  int
}
