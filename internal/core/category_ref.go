package core

import (
	"encoding/json"
	"fmt"
	"strings"
)

const freeMoneyPrefix = "free-money-"

// CategoryRef is what a transaction is booked against: either a real
// sub-category or the implicit free-money bucket of a project.
type CategoryRef struct {
	id        string
	freeMoney bool
}

// RealCategory references a stored sub-category.
func RealCategory(categoryID string) CategoryRef {
	return CategoryRef{id: categoryID}
}

// FreeMoney references the unallocated bucket of a project.
func FreeMoney(projectID string) CategoryRef {
	return CategoryRef{id: projectID, freeMoney: true}
}

// ParseCategoryRef decodes the persisted form produced by String.
func ParseCategoryRef(s string) CategoryRef {
	if rest, ok := strings.CutPrefix(s, freeMoneyPrefix); ok && rest != "" {
		return FreeMoney(rest)
	}
	return RealCategory(s)
}

func (r CategoryRef) IsZero() bool      { return r.id == "" }
func (r CategoryRef) IsFreeMoney() bool { return r.freeMoney }

// CategoryID is the sub-category id, empty for free money.
func (r CategoryRef) CategoryID() string {
	if r.freeMoney {
		return ""
	}
	return r.id
}

// ProjectID is the owning project of a free-money ref, empty for real ones.
func (r CategoryRef) ProjectID() string {
	if r.freeMoney {
		return r.id
	}
	return ""
}

// String returns the stable id: the category id, or free-money-<projectId>.
func (r CategoryRef) String() string {
	if r.freeMoney {
		return freeMoneyPrefix + r.id
	}
	return r.id
}

func (r CategoryRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *CategoryRef) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("category ref: %w", err)
	}
	*r = ParseCategoryRef(s)
	return nil
}
