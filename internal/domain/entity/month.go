package entity

import "sort"

// monthOrder is the calendar order used to sort month names.
var monthOrder = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// MonthIndex returns the calendar position of a month name, or -1.
func MonthIndex(name string) int {
	for i, m := range monthOrder {
		if m == name {
			return i
		}
	}
	return -1
}

// SortMonthStatuses sorts in calendar order; unknown names go first.
func SortMonthStatuses(months []MonthStatus) {
	sort.SliceStable(months, func(i, j int) bool {
		return MonthIndex(months[i].MonthName) < MonthIndex(months[j].MonthName)
	})
}

// SortMonthRefs sorts in calendar order; unknown names go first.
func SortMonthRefs(months []MonthRef) {
	sort.SliceStable(months, func(i, j int) bool {
		return MonthIndex(months[i].MonthName) < MonthIndex(months[j].MonthName)
	})
}
