// Package taskparse extracts a due date and a priority signal from free-text
// task input. Parsing is a pure function of the buffer and "now": it never
// fails, it only degrades to "no match, normal priority".
package taskparse

import (
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"listik/internal/store"
)

// Match describes the first date expression found in the input: its byte
// offset, the literal substring, and the calendar day it resolves to
// (midnight in the caller's location).
type Match struct {
	Offset int
	Text   string
	Date   time.Time
}

// Result is the outcome of one parse pass.
type Result struct {
	Match    *Match
	Priority store.Priority
}

// Trigger maps a set of phrases to a priority level. Triggers are evaluated
// in order and the first phrase found in the (lowercased) input wins.
type Trigger struct {
	Phrases []string
	Level   store.Priority
}

// DefaultTriggers returns the built-in priority rules. The "!!" rule is
// listed before the lone "!" rule so the chain order decides when both
// trivially apply.
func DefaultTriggers() []Trigger {
	return []Trigger{
		{Phrases: []string{"urgent", "important", "!!"}, Level: store.PriorityHigh},
		{Phrases: []string{"!", "asap"}, Level: store.PriorityHigh},
		{Phrases: []string{"plus tard", "quand possible"}, Level: store.PriorityLow},
	}
}

// Parser scans task input using one locale's tables and an ordered trigger
// list.
type Parser struct {
	locale   *Locale
	triggers []Trigger
}

// New creates a Parser. A nil locale defaults to French, nil triggers to
// DefaultTriggers.
func New(locale *Locale, triggers []Trigger) *Parser {
	if locale == nil {
		locale = French()
	}
	if triggers == nil {
		triggers = DefaultTriggers()
	}
	return &Parser{locale: locale, triggers: triggers}
}

// Locale returns the parser's locale tables.
func (p *Parser) Locale() *Locale {
	return p.locale
}

// Parse scans text for the first date expression and classifies its
// priority. Relative expressions are forward-dated: a weekday already past
// this week resolves to next week, never to the past.
func (p *Parser) Parse(text string, now time.Time) Result {
	res := Result{Priority: p.classify(text)}

	toks := tokenize(text)
	for i := range toks {
		if m := p.matchAt(text, toks, i, now); m != nil {
			res.Match = m
			break
		}
	}
	return res
}

// classify runs the trigger chain over the lowercased input.
func (p *Parser) classify(text string) store.Priority {
	lower := strings.ToLower(text)
	for _, trig := range p.triggers {
		for _, phrase := range trig.Phrases {
			if phrase != "" && strings.Contains(lower, phrase) {
				return trig.Level
			}
		}
	}
	return store.PriorityNormal
}

// matchAt tries every expression form anchored at token i, longest first,
// so "mardi 14 janvier" is a single match rather than a bare "mardi".
func (p *Parser) matchAt(text string, toks []token, i int, now time.Time) *Match {
	l := p.locale
	tok := toks[i]

	// "<weekday> <d> <month>", the long label form the formatter emits.
	// The explicit day+month decides the date; the weekday word is carried
	// in the span but not cross-checked.
	if _, ok := l.Weekdays[tok.core]; ok && i+2 < len(toks) {
		if day, ok := parseDayNumber(toks[i+1].core); ok {
			if month, ok := l.Months[toks[i+2].core]; ok {
				if d, ok := resolveDayMonth(now, day, month); ok {
					return newMatch(text, tok.start, toks[i+2].end, d)
				}
			}
		}
	}

	// "<d> <month>"
	if day, ok := parseDayNumber(tok.core); ok && i+1 < len(toks) {
		if month, ok := l.Months[toks[i+1].core]; ok {
			if d, ok := resolveDayMonth(now, day, month); ok {
				return newMatch(text, tok.start, toks[i+1].end, d)
			}
		}
	}

	if containsWord(l.TodayWords, tok.core) {
		return newMatch(text, tok.start, tok.end, midnight(now))
	}
	if containsWord(l.TomorrowWords, tok.core) {
		return newMatch(text, tok.start, tok.end, midnight(now).AddDate(0, 0, 1))
	}

	// "next <weekday>"
	if containsWord(l.NextBefore, tok.core) && i+1 < len(toks) {
		if wd, ok := l.Weekdays[toks[i+1].core]; ok {
			return newMatch(text, tok.start, toks[i+1].end, resolveWeekday(now, wd, true))
		}
	}

	if wd, ok := l.Weekdays[tok.core]; ok {
		// "<weekday> prochain"
		if i+1 < len(toks) && containsWord(l.NextAfter, toks[i+1].core) {
			return newMatch(text, tok.start, toks[i+1].end, resolveWeekday(now, wd, true))
		}
		return newMatch(text, tok.start, tok.end, resolveWeekday(now, wd, false))
	}

	return nil
}

func newMatch(text string, start, end int, d time.Time) *Match {
	return &Match{Offset: start, Text: text[start:end], Date: d}
}

// resolveWeekday forward-dates a weekday reference. Without an explicit
// "next" modifier the same weekday resolves to today; with one it always
// lands in the coming week.
func resolveWeekday(now time.Time, wd time.Weekday, explicitNext bool) time.Time {
	today := midnight(now)
	var days int
	if explicitNext {
		days = (int(wd)-int(today.Weekday())+6)%7 + 1
	} else {
		days = (int(wd) - int(today.Weekday()) + 7) % 7
	}
	return today.AddDate(0, 0, days)
}

// resolveDayMonth resolves an explicit day+month to this year, rolling to
// next year when the date has already passed. Impossible dates ("31
// février") are rejected.
func resolveDayMonth(now time.Time, day int, month time.Month) (time.Time, bool) {
	today := midnight(now)
	for _, year := range []int{today.Year(), today.Year() + 1} {
		candidate := time.Date(year, month, day, 0, 0, 0, 0, now.Location())
		if candidate.Day() != day || candidate.Month() != month {
			continue // normalized away: not a real date that year
		}
		if candidate.Before(today) {
			continue
		}
		return candidate, true
	}
	return time.Time{}, false
}

// parseDayNumber parses a day-of-month token, accepting ordinal suffixes
// ("1er", "2nd", "14th").
func parseDayNumber(core string) (int, bool) {
	for _, suffix := range []string{"er", "st", "nd", "rd", "th"} {
		if trimmed := strings.TrimSuffix(core, suffix); trimmed != core {
			core = trimmed
			break
		}
	}
	if core == "" {
		return 0, false
	}
	n, err := strconv.Atoi(core)
	if err != nil || n < 1 || n > 31 {
		return 0, false
	}
	return n, true
}

func containsWord(words []string, core string) bool {
	for _, w := range words {
		if w == core {
			return true
		}
	}
	return false
}

// token is one whitespace-delimited word with surrounding punctuation
// stripped; start/end are the byte span of the stripped core in the
// original text.
type token struct {
	core       string // lowercased
	start, end int
}

const edgePunct = ".,;:!?()[]{}\"«»"

func tokenize(text string) []token {
	var toks []token
	i := 0
	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])
		if unicode.IsSpace(r) {
			i += size
			continue
		}
		j := i
		for j < len(text) {
			r2, s2 := utf8.DecodeRuneInString(text[j:])
			if unicode.IsSpace(r2) {
				break
			}
			j += s2
		}
		raw := text[i:j]
		lo, hi := trimEdges(raw)
		if hi > lo {
			toks = append(toks, token{
				core:  strings.ToLower(raw[lo:hi]),
				start: i + lo,
				end:   i + hi,
			})
		}
		i = j
	}
	return toks
}

// trimEdges returns the byte range of s with leading and trailing
// punctuation removed. Apostrophes are kept ("aujourd'hui").
func trimEdges(s string) (int, int) {
	lo := 0
	for lo < len(s) {
		r, size := utf8.DecodeRuneInString(s[lo:])
		if !strings.ContainsRune(edgePunct, r) {
			break
		}
		lo += size
	}
	hi := len(s)
	for hi > lo {
		r, size := utf8.DecodeLastRuneInString(s[:hi])
		if !strings.ContainsRune(edgePunct, r) {
			break
		}
		hi -= size
	}
	return lo, hi
}
