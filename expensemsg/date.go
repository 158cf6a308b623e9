package expensemsg

import (
	"strconv"
	"strings"
	"time"
)

// Indonesian month names and common abbreviations.
var monthNames = map[string]time.Month{
	"januari":   time.January,
	"jan":       time.January,
	"februari":  time.February,
	"feb":       time.February,
	"peb":       time.February,
	"maret":     time.March,
	"mar":       time.March,
	"april":     time.April,
	"apr":       time.April,
	"mei":       time.May,
	"juni":      time.June,
	"jun":       time.June,
	"juli":      time.July,
	"jul":       time.July,
	"agustus":   time.August,
	"agu":       time.August,
	"agt":       time.August,
	"ags":       time.August,
	"september": time.September,
	"sep":       time.September,
	"sept":      time.September,
	"oktober":   time.October,
	"okt":       time.October,
	"november":  time.November,
	"nov":       time.November,
	"desember":  time.December,
	"des":       time.December,
}

// parseDateLine parses "<day> <month-name>" (e.g. "20 jan", "10 oktober").
// The year is taken from now; if the resolved date lands more than 30 days in
// the future, the year is decremented — a December report parsed in January
// belongs to last year.
func parseDateLine(line string, now time.Time) (time.Time, bool) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) != 2 {
		return time.Time{}, false
	}

	day, err := strconv.Atoi(fields[0])
	if err != nil || day < 1 || day > 31 {
		return time.Time{}, false
	}

	month, ok := monthNames[fields[1]]
	if !ok {
		return time.Time{}, false
	}

	date := time.Date(now.Year(), month, day, 0, 0, 0, 0, now.Location())
	// Reject day overflow ("31 feb" normalizes into March).
	if date.Day() != day || date.Month() != month {
		return time.Time{}, false
	}

	if date.After(now.AddDate(0, 0, 30)) {
		date = date.AddDate(-1, 0, 0)
	}
	return date, true
}
