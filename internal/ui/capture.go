// Package ui provides terminal user interface components for the listik app.
package ui

import (
	"strings"
	"time"

	"listik/internal/config"
	"listik/internal/draft"
	"listik/internal/store"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// flashDuration is how long the date-detected notice stays visible.
const flashDuration = 2 * time.Second

// Capture is the task entry field. Every keystroke runs through the
// reconciler so date expressions and priority phrases are picked up while
// the user types; shortcut keys rewrite the buffer through the same
// reconciler so the typed text and the picked date never disagree.
type Capture struct {
	input      textinput.Model
	rec        *draft.Reconciler
	store      *store.Store
	styles     *Styles
	keys       CaptureKeyMap
	showHint   bool
	width      int
	flash      string
	flashUntil time.Time
}

// NewCapture creates the capture input bound to a reconciler and store.
func NewCapture(rec *draft.Reconciler, st *store.Store, styles *Styles, cfg *config.Config) *Capture {
	keyCfg := &config.KeysConfig{}
	showHint := true
	if cfg != nil {
		keyCfg = &cfg.Keys
		showHint = cfg.UX.ShowDetectionHint
	}

	ti := textinput.New()
	ti.Placeholder = "Ajouter une tâche… (demain, lundi, urgent)"
	ti.CharLimit = 200
	ti.Width = 40

	return &Capture{
		input:    ti,
		rec:      rec,
		store:    st,
		styles:   styles,
		keys:     NewCaptureKeyMap(keyCfg),
		showHint: showHint,
	}
}

// Focus gives the input keyboard focus.
func (c *Capture) Focus() tea.Cmd {
	c.input.Focus()
	return textinput.Blink
}

// Blur removes keyboard focus and drops the in-progress draft.
func (c *Capture) Blur() {
	c.input.Blur()
	c.input.Reset()
	c.rec.Reset()
	c.flash = ""
}

// Focused reports whether the input has keyboard focus.
func (c *Capture) Focused() bool {
	return c.input.Focused()
}

// SetWidth sets the rendered width of the input.
func (c *Capture) SetWidth(width int) {
	c.width = width
	c.input.Width = max(10, width-4)
}

// Draft exposes the current reconciled draft for rendering.
func (c *Capture) Draft() draft.Draft {
	return c.rec.Draft()
}

// Update handles key input while the capture field is focused. It returns a
// command when a task submission has been started.
func (c *Capture) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case taskCreatedMsg:
		c.rec.FinishSubmit(msg.err)
		if msg.err == nil {
			c.input.Reset()
		}
		return nil

	case tea.KeyMsg:
		if !c.input.Focused() {
			return nil
		}

		switch {
		case key.Matches(msg, c.keys.Submit):
			req, ok := c.rec.BeginSubmit()
			if !ok {
				return nil
			}
			// A dateless capture still lands on today's list.
			if req.ScheduledFor == nil && req.DueDate == nil {
				today := c.store.Today()
				req.ScheduledFor = &today
			}
			return createTaskCmd(c.store, req)

		case key.Matches(msg, c.keys.Cancel):
			c.Blur()
			return nil

		case key.Matches(msg, c.keys.SetToday):
			c.applyManualDate(c.dayOffsetFromToday(0))
			return nil

		case key.Matches(msg, c.keys.SetTomorrow):
			c.applyManualDate(c.dayOffsetFromToday(1))
			return nil

		case key.Matches(msg, c.keys.DateForward):
			c.applyManualDate(c.shiftDetected(1))
			return nil

		case key.Matches(msg, c.keys.DateBack):
			c.applyManualDate(c.shiftDetected(-1))
			return nil

		case key.Matches(msg, c.keys.ClearDate):
			c.applyManualDate(nil)
			return nil

		case key.Matches(msg, c.keys.CyclePriority):
			c.rec.SetPriority(nextPriority(c.rec.Draft().Priority))
			return nil
		}

		prev := c.input.Value()
		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		if v := c.input.Value(); v != prev {
			if c.rec.OnKeystroke(v) {
				c.setFlash()
			}
		}
		return cmd
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return cmd
}

// applyManualDate routes a shortcut date pick through the reconciler and
// mirrors the rewritten buffer back into the text input. SetValue emits no
// update event, so the suppressed parse pass is echoed here synchronously;
// otherwise the next real keystroke would consume it against changed text
// and leave a stale span behind.
func (c *Capture) applyManualDate(t *time.Time) {
	c.rec.OnManualDateChange(t)
	c.rec.OnKeystroke(c.rec.Text())
	c.input.SetValue(c.rec.Text())
	c.input.CursorEnd()
	if t != nil {
		c.setFlash()
	}
}

// dayOffsetFromToday returns midnight today plus the given number of days.
func (c *Capture) dayOffsetFromToday(days int) *time.Time {
	t := c.store.Today().AddDays(days).Time(time.Local)
	return &t
}

// shiftDetected moves the current date by delta days, starting from today
// when no date is set yet.
func (c *Capture) shiftDetected(delta int) *time.Time {
	d := c.rec.Draft()
	if d.DetectedDate == nil {
		return c.dayOffsetFromToday(delta)
	}
	t := store.DateOf(*d.DetectedDate).AddDays(delta).Time(time.Local)
	return &t
}

func (c *Capture) setFlash() {
	d := c.rec.Draft()
	if d.DetectedDate == nil {
		return
	}
	label := c.rec.Locale().FormatDate(*d.DetectedDate, c.store.Now())
	c.flash = "→ " + label
	c.flashUntil = c.store.Now().Add(flashDuration)
}

// Tick expires the detection flash; the app forwards its tick here.
func (c *Capture) Tick() {
	if c.flash != "" && c.store.Now().After(c.flashUntil) {
		c.flash = ""
	}
}

// View renders the input, the highlighted echo of the buffer, and the
// detection hint line.
func (c *Capture) View() string {
	var b strings.Builder

	prompt := c.styles.InputPromptStyle.Render("+ ")
	b.WriteString(prompt + c.input.View())

	d := c.rec.Draft()

	// Echo line with the detected date words highlighted.
	if d.DateSpan != nil && d.Text != "" {
		s := *d.DateSpan
		before := d.Text[:s.Offset]
		span := d.Text[s.Offset : s.Offset+s.Length]
		after := d.Text[s.Offset+s.Length:]
		b.WriteString("\n  ")
		b.WriteString(c.styles.InputTextStyle.Render(before))
		b.WriteString(c.styles.DateSpanStyle.Render(span))
		b.WriteString(c.styles.InputTextStyle.Render(after))
	}

	if c.showHint {
		if hint := c.hintLine(); hint != "" {
			b.WriteString("\n  ")
			b.WriteString(hint)
		}
	}

	return b.String()
}

// hintLine summarizes what will be saved: date, priority, and the flash.
func (c *Capture) hintLine() string {
	d := c.rec.Draft()

	var parts []string
	if d.DetectedDate != nil {
		label := c.rec.Locale().FormatDate(*d.DetectedDate, c.store.Now())
		parts = append(parts, "📅 "+label)
	}
	if d.Priority == store.PriorityHigh {
		parts = append(parts, c.styles.PriorityHighStyle.Render("priorité haute"))
	} else if d.Priority == store.PriorityLow {
		parts = append(parts, c.styles.PriorityLowStyle.Render("priorité basse"))
	}
	if c.flash != "" {
		parts = append(parts, c.styles.DetectionFlashStyle.Render(c.flash))
	}

	if len(parts) == 0 {
		return ""
	}
	return c.styles.DetectionHintStyle.Render(strings.Join(parts, "  ·  "))
}

// nextPriority cycles normal -> high -> low -> normal.
func nextPriority(p store.Priority) store.Priority {
	switch p {
	case store.PriorityNormal:
		return store.PriorityHigh
	case store.PriorityHigh:
		return store.PriorityLow
	default:
		return store.PriorityNormal
	}
}
