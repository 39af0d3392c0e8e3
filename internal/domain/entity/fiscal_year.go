package entity

import (
	"sort"
	"strconv"
	"strings"
)

// FiscalYear holds the activation state of a fiscal year and of its months.
// The embedded Months list is the only writable month state; the standalone
// month listing is derived from it (see MonthStatusView).
type FiscalYear struct {
	ID     string        `json:"_id"`
	FyName string        `json:"fy_name"`
	FyID   bool          `json:"fy_id"`
	Months []MonthStatus `json:"months"`
}

// MonthStatus is a month name with its active (true) or locked (false) flag.
type MonthStatus struct {
	MonthName string `json:"month_name" yaml:"month_name"`
	MonthID   bool   `json:"month_id" yaml:"month_id"`
}

// FiscalYearOption is the dropdown projection of a fiscal year.
type FiscalYearOption struct {
	FyName string        `json:"fy_name"`
	FyID   bool          `json:"fy_id"`
	Months []MonthStatus `json:"months"`
}

// FormFiscalYear is a distinct fiscal year referenced by stored forms.
type FormFiscalYear struct {
	ID     *string `json:"_id"`
	FyName string  `json:"fy_name"`
}

// ActiveMonths returns the active months of the fiscal year in calendar order.
func (fy *FiscalYear) ActiveMonths() []MonthStatus {
	active := make([]MonthStatus, 0, len(fy.Months))
	for _, m := range fy.Months {
		if m.MonthID {
			active = append(active, m)
		}
	}
	SortMonthStatuses(active)
	return active
}

// StartYear parses the leading year of names like "2023-2024".
// Unparseable names sort first.
func (fy *FiscalYear) StartYear() int {
	head := strings.TrimSpace(strings.SplitN(fy.FyName, "-", 2)[0])
	year, err := strconv.Atoi(head)
	if err != nil {
		return -1
	}
	return year
}

// SortFiscalYearsByStart sorts by the leading year of the fiscal year name.
func SortFiscalYearsByStart(years []*FiscalYear) {
	sort.SliceStable(years, func(i, j int) bool {
		return years[i].StartYear() < years[j].StartYear()
	})
}

// MonthStatusView derives the standalone month listing from fiscal years.
// A month is active when it is active in at least one of the given fiscal years.
func MonthStatusView(years []*FiscalYear) []MonthStatus {
	seen := make(map[string]int)
	view := make([]MonthStatus, 0, len(monthOrder))
	for _, fy := range years {
		for _, m := range fy.Months {
			idx, ok := seen[m.MonthName]
			if !ok {
				seen[m.MonthName] = len(view)
				view = append(view, m)
				continue
			}
			view[idx].MonthID = view[idx].MonthID || m.MonthID
		}
	}
	SortMonthStatuses(view)
	return view
}
