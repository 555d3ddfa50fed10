// Package draft owns the in-progress task input: the text buffer, the
// detected date and its highlighted span, the inferred priority, and the
// submission guard. It mediates between keystroke-driven parses and manual
// date edits so the two never fight over the buffer.
package draft

import (
	"fmt"
	"strings"
	"time"

	"listik/internal/store"
	"listik/internal/taskparse"
)

// Span is a half-open byte range [Offset, Offset+Length) within the draft
// text, marking the substring currently rendered as the date part.
type Span struct {
	Offset int
	Length int
}

func (s Span) validIn(text string) bool {
	return s.Offset >= 0 && s.Length > 0 && s.Offset+s.Length <= len(text)
}

// Draft is the transient input state before submission.
type Draft struct {
	Text         string
	DetectedDate *time.Time
	DateSpan     *Span
	Priority     store.Priority

	// suppressNextAutoDetect skips exactly one parse pass after a manual
	// date rewrite, so our own synthetic buffer update does not re-trigger
	// detection.
	suppressNextAutoDetect bool

	// lastDetected remembers the last date the "new date detected" event
	// fired for, so the event fires once per distinct date rather than once
	// per keystroke.
	lastDetected *time.Time
}

func emptyDraft() Draft {
	return Draft{Priority: store.PriorityNormal}
}

// Reconciler is the single owner of a Draft. All mutations go through its
// three event entry points: OnKeystroke, OnManualDateChange, and the
// BeginSubmit/FinishSubmit pair.
type Reconciler struct {
	parser     *taskparse.Parser
	now        func() time.Time
	draft      Draft
	submitting bool
}

// NewReconciler creates a Reconciler around the given parser. A nil parser
// defaults to the French parser with the built-in triggers.
func NewReconciler(parser *taskparse.Parser) *Reconciler {
	if parser == nil {
		parser = taskparse.New(nil, nil)
	}
	return &Reconciler{parser: parser, now: time.Now, draft: emptyDraft()}
}

// SetNowFunc overrides the clock. Passing nil resets it to time.Now.
func (r *Reconciler) SetNowFunc(now func() time.Time) {
	if now == nil {
		r.now = time.Now
		return
	}
	r.now = now
}

// Draft returns a snapshot of the current draft state.
func (r *Reconciler) Draft() Draft {
	return r.draft
}

// Text returns the current buffer contents.
func (r *Reconciler) Text() string {
	return r.draft.Text
}

// Submitting reports whether a submission is in flight.
func (r *Reconciler) Submitting() bool {
	return r.submitting
}

// Locale returns the locale used for date labels.
func (r *Reconciler) Locale() *taskparse.Locale {
	return r.parser.Locale()
}

// OnKeystroke records the new buffer contents and re-parses them. It
// returns true when a date distinct from the previously detected one was
// found, which is the view's cue for a transient highlight flash.
//
// One pass immediately after a manual date change is skipped: that update
// is our own rewrite echoing back through the input widget.
func (r *Reconciler) OnKeystroke(newText string) (dateDetected bool) {
	r.draft.Text = newText

	if r.draft.suppressNextAutoDetect {
		r.draft.suppressNextAutoDetect = false
		return false
	}

	res := r.parser.Parse(newText, r.now())
	r.draft.Priority = res.Priority

	if res.Match == nil {
		r.draft.DetectedDate = nil
		r.draft.DateSpan = nil
		r.draft.lastDetected = nil
		return false
	}

	d := res.Match.Date
	r.draft.DetectedDate = &d
	r.draft.DateSpan = &Span{Offset: res.Match.Offset, Length: len(res.Match.Text)}

	if r.draft.lastDetected != nil && r.draft.lastDetected.Equal(d) {
		return false
	}
	r.draft.lastDetected = &d
	return true
}

// OnManualDateChange applies a date picked outside the text flow. The
// buffer is rewritten in place: the existing date substring is replaced
// with the canonical label for the new date, or the label is appended when
// no date was present. Passing nil clears the date and removes its
// substring. The next automatic parse pass is suppressed either way.
func (r *Reconciler) OnManualDateChange(newDate *time.Time) {
	r.draft.suppressNextAutoDetect = true

	if newDate == nil {
		if r.draft.DateSpan != nil {
			r.draft.Text = spliceOut(r.draft.Text, *r.draft.DateSpan)
		}
		r.draft.DateSpan = nil
		r.draft.DetectedDate = nil
		r.draft.lastDetected = nil
		return
	}

	label := r.parser.Locale().FormatDate(*newDate, r.now())

	if r.draft.DateSpan != nil {
		s := *r.draft.DateSpan
		if !s.validIn(r.draft.Text) {
			panic(fmt.Sprintf("draft: date span [%d,%d) out of bounds for text %q",
				s.Offset, s.Offset+s.Length, r.draft.Text))
		}
		r.draft.Text = r.draft.Text[:s.Offset] + label + r.draft.Text[s.Offset+s.Length:]
	} else {
		trimmed := strings.TrimSpace(r.draft.Text)
		if trimmed == "" {
			r.draft.Text = label
		} else {
			r.draft.Text = trimmed + " " + label
		}
	}

	// Last occurrence, so an identical earlier substring is never matched.
	idx := strings.LastIndex(r.draft.Text, label)
	r.draft.DateSpan = &Span{Offset: idx, Length: len(label)}

	d := *newDate
	r.draft.DetectedDate = &d
	r.draft.lastDetected = &d
}

// spliceOut removes the span from text, collapsing the whitespace seam it
// leaves behind to at most one separating space.
func spliceOut(text string, s Span) string {
	if !s.validIn(text) {
		panic(fmt.Sprintf("draft: date span [%d,%d) out of bounds for text %q",
			s.Offset, s.Offset+s.Length, text))
	}
	before := text[:s.Offset]
	after := text[s.Offset+s.Length:]
	if strings.HasSuffix(before, " ") && strings.HasPrefix(after, " ") {
		after = after[1:]
	}
	return strings.TrimSpace(before + after)
}

// BeginSubmit freezes the draft into a creation request and arms the
// in-flight guard. It returns ok=false when the trimmed text is empty or a
// submission is already in flight; re-entrant submits are no-ops.
func (r *Reconciler) BeginSubmit() (store.CreateTask, bool) {
	text := strings.TrimSpace(r.draft.Text)
	if text == "" || r.submitting {
		return store.CreateTask{}, false
	}
	r.submitting = true

	req := store.CreateTask{Text: text, Priority: r.draft.Priority}
	if r.draft.DetectedDate != nil {
		due := store.DateOf(*r.draft.DetectedDate)
		req.DueDate = &due
	}
	return req, true
}

// FinishSubmit settles the in-flight guard. On success the draft resets to
// its empty initial state; on failure it is left untouched so the user
// keeps their input.
func (r *Reconciler) FinishSubmit(err error) {
	r.submitting = false
	if err == nil {
		r.draft = emptyDraft()
	}
}

// SetPriority applies a manual override. The override is not sticky: the
// next parse pass recomputes priority from the text.
func (r *Reconciler) SetPriority(p store.Priority) {
	if p.Valid() {
		r.draft.Priority = p
	}
}

// Reset clears the draft to its empty initial state.
func (r *Reconciler) Reset() {
	r.draft = emptyDraft()
	r.submitting = false
}
