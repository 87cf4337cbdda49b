package core

import (
	"slices"
	"time"
)

// Store is the whole persisted state. Values are treated as immutable
// snapshots: transforms clone before changing anything.
type Store struct {
	Projects       []Project       `json:"projects"`
	SubCategories  []SubCategory   `json:"subCategories"`
	Transactions   []Transaction   `json:"transactions"`
	PaymentMethods []PaymentMethod `json:"paymentMethods"`
	YearConfigs    []YearConfig    `json:"yearConfigs"`
	ThemeID        string          `json:"themeId,omitempty"`
}

// DefaultStore is the state used on first start or when a saved snapshot
// cannot be decoded.
func DefaultStore(now time.Time) Store {
	return Store{
		Projects:       []Project{},
		SubCategories:  []SubCategory{},
		Transactions:   []Transaction{},
		PaymentMethods: []PaymentMethod{CashMethod()},
		YearConfigs:    []YearConfig{{Year: now.Year()}},
	}
}

// Clone returns a deep copy.
func (s Store) Clone() Store {
	out := Store{
		Projects:       slices.Clone(s.Projects),
		SubCategories:  slices.Clone(s.SubCategories),
		Transactions:   slices.Clone(s.Transactions),
		PaymentMethods: make([]PaymentMethod, len(s.PaymentMethods)),
		YearConfigs:    slices.Clone(s.YearConfigs),
		ThemeID:        s.ThemeID,
	}
	for i, m := range s.PaymentMethods {
		if m.CycleConfig != nil {
			cfg := *m.CycleConfig
			m.CycleConfig = &cfg
		}
		out.PaymentMethods[i] = m
	}
	return out
}

// Normalize fills nil lists and guarantees the cash method exists.
func (s Store) Normalize() Store {
	if s.Projects == nil {
		s.Projects = []Project{}
	}
	if s.SubCategories == nil {
		s.SubCategories = []SubCategory{}
	}
	if s.Transactions == nil {
		s.Transactions = []Transaction{}
	}
	if s.YearConfigs == nil {
		s.YearConfigs = []YearConfig{}
	}
	if _, ok := s.PaymentMethod(CashMethodID); !ok {
		s.PaymentMethods = append([]PaymentMethod{CashMethod()}, s.PaymentMethods...)
	}
	return s
}

func (s Store) Project(id string) (Project, bool) {
	for _, p := range s.Projects {
		if p.ID == id {
			return p, true
		}
	}
	return Project{}, false
}

func (s Store) SubCategory(id string) (SubCategory, bool) {
	for _, c := range s.SubCategories {
		if c.ID == id {
			return c, true
		}
	}
	return SubCategory{}, false
}

func (s Store) Transaction(id string) (Transaction, bool) {
	for _, t := range s.Transactions {
		if t.ID == id {
			return t, true
		}
	}
	return Transaction{}, false
}

func (s Store) PaymentMethod(id string) (PaymentMethod, bool) {
	for _, m := range s.PaymentMethods {
		if m.ID == id {
			return m, true
		}
	}
	return PaymentMethod{}, false
}

func (s Store) YearConfig(year int) (YearConfig, bool) {
	for _, y := range s.YearConfigs {
		if y.Year == year {
			return y, true
		}
	}
	return YearConfig{}, false
}

// CategoriesOf returns the sub-categories of a project in store order.
func (s Store) CategoriesOf(projectID string) []SubCategory {
	var out []SubCategory
	for _, c := range s.SubCategories {
		if c.ProjectID == projectID {
			out = append(out, c)
		}
	}
	return out
}

// ProjectOf resolves the project a category ref belongs to.
func (s Store) ProjectOf(ref CategoryRef) (Project, bool) {
	if ref.IsFreeMoney() {
		return s.Project(ref.ProjectID())
	}
	c, ok := s.SubCategory(ref.CategoryID())
	if !ok {
		return Project{}, false
	}
	return s.Project(c.ProjectID)
}

// ProjectByPeriod finds the month-based project for a period.
func (s Store) ProjectByPeriod(p Period) (Project, bool) {
	return s.Project(p.ID())
}

// Years lists the distinct years that have a YearConfig or a month-based
// project, newest first.
func (s Store) Years() []int {
	seen := make(map[int]struct{})
	var years []int
	add := func(y int) {
		if y == 0 {
			return
		}
		if _, ok := seen[y]; ok {
			return
		}
		seen[y] = struct{}{}
		years = append(years, y)
	}
	for _, y := range s.YearConfigs {
		add(y.Year)
	}
	for _, p := range s.Projects {
		if _, ok := p.Period(); ok {
			add(p.Year)
		}
	}
	slices.Sort(years)
	slices.Reverse(years)
	return years
}
