package taskparse

import (
	"fmt"
	"time"
)

// Locale holds the trigger tables for one input language: the words the
// scanner recognizes and the labels used when a date is rendered back into
// the buffer. Parsing and formatting share the same tables so a formatted
// label always re-parses to the same calendar day.
type Locale struct {
	Name string

	// Recognition tables, keyed by lowercased token.
	TodayWords    []string
	TomorrowWords []string
	Weekdays      map[string]time.Weekday
	Months        map[string]time.Month
	NextBefore    []string // modifier preceding a weekday ("next monday")
	NextAfter     []string // modifier following a weekday ("lundi prochain")

	// Formatting labels.
	TodayLabel    string
	TomorrowLabel string
	WeekdayNames  [7]string  // indexed by time.Weekday
	MonthNames    [13]string // indexed by time.Month, [0] unused
}

// French returns the French locale. Accent-less spellings are accepted on
// input so "fevrier" and "aout" still match.
func French() *Locale {
	return &Locale{
		Name:          "fr",
		TodayWords:    []string{"aujourd'hui", "aujourd’hui"},
		TomorrowWords: []string{"demain"},
		Weekdays: map[string]time.Weekday{
			"dimanche": time.Sunday,
			"lundi":    time.Monday,
			"mardi":    time.Tuesday,
			"mercredi": time.Wednesday,
			"jeudi":    time.Thursday,
			"vendredi": time.Friday,
			"samedi":   time.Saturday,
		},
		Months: map[string]time.Month{
			"janvier":   time.January,
			"février":   time.February,
			"fevrier":   time.February,
			"mars":      time.March,
			"avril":     time.April,
			"mai":       time.May,
			"juin":      time.June,
			"juillet":   time.July,
			"août":      time.August,
			"aout":      time.August,
			"septembre": time.September,
			"octobre":   time.October,
			"novembre":  time.November,
			"décembre":  time.December,
			"decembre":  time.December,
		},
		NextAfter:     []string{"prochain", "prochaine"},
		TodayLabel:    "aujourd'hui",
		TomorrowLabel: "demain",
		WeekdayNames: [7]string{
			"dimanche", "lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi",
		},
		MonthNames: [13]string{
			"", "janvier", "février", "mars", "avril", "mai", "juin",
			"juillet", "août", "septembre", "octobre", "novembre", "décembre",
		},
	}
}

// English returns the English locale.
func English() *Locale {
	return &Locale{
		Name:          "en",
		TodayWords:    []string{"today"},
		TomorrowWords: []string{"tomorrow"},
		Weekdays: map[string]time.Weekday{
			"sunday":    time.Sunday,
			"monday":    time.Monday,
			"tuesday":   time.Tuesday,
			"wednesday": time.Wednesday,
			"thursday":  time.Thursday,
			"friday":    time.Friday,
			"saturday":  time.Saturday,
		},
		Months: map[string]time.Month{
			"january":   time.January,
			"february":  time.February,
			"march":     time.March,
			"april":     time.April,
			"may":       time.May,
			"june":      time.June,
			"july":      time.July,
			"august":    time.August,
			"september": time.September,
			"october":   time.October,
			"november":  time.November,
			"december":  time.December,
		},
		NextBefore:    []string{"next"},
		TodayLabel:    "today",
		TomorrowLabel: "tomorrow",
		WeekdayNames: [7]string{
			"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday",
		},
		MonthNames: [13]string{
			"", "january", "february", "march", "april", "may", "june",
			"july", "august", "september", "october", "november", "december",
		},
	}
}

// ForLanguage returns the locale for a language code, defaulting to French
// (the app's original audience) when the code is unknown.
func ForLanguage(lang string) *Locale {
	switch lang {
	case "en":
		return English()
	default:
		return French()
	}
}

// FormatDate renders a date as the natural-language label used in the input
// buffer: the today/tomorrow word when the date is that close, otherwise
// "<weekday> <day> <month>". Re-parsing the result resolves to the same
// calendar day.
func (l *Locale) FormatDate(d, now time.Time) string {
	// Compare calendar days, not instants. The picked date and the clock
	// may live in different locations.
	switch {
	case sameDay(d, now):
		return l.TodayLabel
	case sameDay(d, now.AddDate(0, 0, 1)):
		return l.TomorrowLabel
	}

	return fmt.Sprintf("%s %d %s",
		l.WeekdayNames[d.Weekday()], d.Day(), l.MonthNames[d.Month()])
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
