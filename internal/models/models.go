package models

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// EventType classifies an event for costing.
type EventType string

const (
	Meeting  EventType = "meeting"
	DeepWork EventType = "deep_work"
	Recovery EventType = "recovery"
	Admin    EventType = "admin"
	Unknown  EventType = "unknown"
)

// EventTypes lists every valid event type.
var EventTypes = []EventType{Meeting, DeepWork, Recovery, Admin, Unknown}

// ParseEventType converts s into an EventType. The empty string is Unknown.
func ParseEventType(s string) (EventType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Unknown, nil
	}

	s = strings.ReplaceAll(s, "-", "_")

	for _, t := range EventTypes {
		if string(t) == s {
			return t, nil
		}
	}

	return Unknown, fmt.Errorf("unknown event type: %q", s)
}

// Flexibility records whether the optimizer may relocate an event.
type Flexibility int

const (
	FlexUnset Flexibility = iota
	Movable
	Unmovable
)

func (f Flexibility) String() string {
	switch f {
	case Movable:
		return "movable"
	case Unmovable:
		return "unmovable"
	default:
		return "unset"
	}
}

// ParseFlexibility accepts movable/unmovable/unset as well as the boolean
// spellings used by calendar exports.
func ParseFlexibility(s string) (Flexibility, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "unset", "null":
		return FlexUnset, nil
	case "movable", "flexible", "true", "yes":
		return Movable, nil
	case "unmovable", "fixed", "false", "no":
		return Unmovable, nil
	}

	return FlexUnset, fmt.Errorf("unknown flexibility: %q", s)
}

// FlexibilityFromBool maps an optional boolean onto the tri-state.
func FlexibilityFromBool(b *bool) Flexibility {
	if b == nil {
		return FlexUnset
	}

	if *b {
		return Movable
	}

	return Unmovable
}

func (f Flexibility) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

func (f *Flexibility) UnmarshalText(b []byte) error {
	v, err := ParseFlexibility(string(b))
	if err != nil {
		return err
	}

	*f = v

	return nil
}

// Event is a scheduled interval.
type Event struct {
	StartTime          time.Time   `json:"start_time"`
	EndTime            time.Time   `json:"end_time"`
	UpdatedAt          time.Time   `json:"updated_at"`
	Participants       *int        `json:"participants,omitempty"`
	HasAgenda          *bool       `json:"has_agenda,omitempty"`
	RequiresToolSwitch *bool       `json:"requires_tool_switch,omitempty"`
	ActualCost         *float64    `json:"actual_cost,omitempty"`
	ProratedCost       *float64    `json:"prorated_cost,omitempty"`
	ID                 string      `json:"id"`
	Title              string      `json:"title"`
	Description        string      `json:"description,omitempty"`
	Source             string      `json:"source,omitempty"`
	Type               EventType   `json:"event_type"`
	CalculatedCost     float64     `json:"calculated_cost"`
	Flexibility        Flexibility `json:"is_flexible"`
	IsCompleted        bool        `json:"is_completed"`
}

// Duration returns the scheduled length of the event.
func (e *Event) Duration() time.Duration {
	return e.EndTime.Sub(e.StartTime)
}

// DurationMinutes returns the scheduled length in minutes.
func (e *Event) DurationMinutes() float64 {
	return e.Duration().Minutes()
}

// Enriched reports whether the meeting specific fields have been filled in.
// Events that are neither meetings nor admin are always enriched.
func (e *Event) Enriched() bool {
	if e.Type != Meeting && e.Type != Admin {
		return true
	}

	return e.Participants != nil && e.HasAgenda != nil
}

// Overlaps reports whether the two events share any time.
func (e *Event) Overlaps(o *Event) bool {
	return e.StartTime.Before(o.EndTime) && o.StartTime.Before(e.EndTime)
}

// Fingerprint identifies the version of an event that affects scheduling.
// Any edit to timing, flexibility or cost inputs changes it.
func (e *Event) Fingerprint() string {
	var b strings.Builder

	b.WriteString(e.ID)
	b.WriteByte('|')
	b.WriteString(e.StartTime.UTC().Format(time.RFC3339Nano))
	b.WriteByte('|')
	b.WriteString(e.EndTime.UTC().Format(time.RFC3339Nano))
	b.WriteByte('|')
	b.WriteString(string(e.Type))
	b.WriteByte('|')
	b.WriteString(e.Flexibility.String())
	b.WriteByte('|')
	b.WriteString(optInt(e.Participants))
	b.WriteByte('|')
	b.WriteString(optBool(e.HasAgenda))
	b.WriteByte('|')
	b.WriteString(optBool(e.RequiresToolSwitch))

	sum := sha256.Sum256([]byte(b.String()))

	return hex.EncodeToString(sum[:8])
}

func optInt(i *int) string {
	if i == nil {
		return "-"
	}

	return strconv.Itoa(*i)
}

func optBool(b *bool) string {
	if b == nil {
		return "-"
	}

	return strconv.FormatBool(*b)
}

// CostBreakdown lists each term of an event's cost. Base is the reference
// value the discounts are computed from; the remaining terms sum to Total.
type CostBreakdown struct {
	EventID            string    `json:"event_id"`
	EventType          EventType `json:"event_type"`
	Base               float64   `json:"base"`
	DurationComponent  float64   `json:"duration_component"`
	ToolSwitch         float64   `json:"tool_switch"`
	Participants       float64   `json:"participants"`
	NoAgenda           float64   `json:"no_agenda"`
	AfternoonDiscount  float64   `json:"afternoon_discount"`
	ProximityIncrement float64   `json:"proximity_increment"`
	Total              float64   `json:"total"`
}

// Sum adds up the additive terms in the order they are applied.
func (b *CostBreakdown) Sum() float64 {
	return b.DurationComponent +
		b.ToolSwitch +
		b.Participants +
		b.NoAgenda +
		b.AfternoonDiscount +
		b.ProximityIncrement
}

// RecoveryActivity is an entry of the fixed recovery catalog.
type RecoveryActivity struct {
	Type            string  `json:"activity_type"`
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	PointValue      float64 `json:"point_value"`
	DurationMinutes int     `json:"duration_minutes"`
}

// Duration returns the activity length.
func (a RecoveryActivity) Duration() time.Duration {
	return time.Duration(a.DurationMinutes) * time.Minute
}

const (
	PriorityHigh   = "high"
	PriorityNormal = "normal"
)

// TimeSlot is a free interval on a day.
type TimeSlot struct {
	Start    time.Time `json:"start_time"`
	End      time.Time `json:"end_time"`
	Day      string    `json:"day"`
	Priority string    `json:"priority"`
}

// DayBudget is the spend for one calendar day.
type DayBudget struct {
	Date      time.Time `json:"date"`
	Spent     float64   `json:"spent"`
	Scheduled float64   `json:"scheduled"`
	Debt      float64   `json:"debt"`
}

// Budget is the derived budget state as of a point in time.
type Budget struct {
	AsOf            time.Time   `json:"as_of"`
	Days            []DayBudget `json:"days"`
	DailyBudget     float64     `json:"daily_budget"`
	DailySpent      float64     `json:"daily_spent"`
	DailyScheduled  float64     `json:"daily_scheduled"`
	DailyRemaining  float64     `json:"daily_remaining"`
	DailyDebt       float64     `json:"daily_debt"`
	WeeklyBudget    float64     `json:"weekly_budget"`
	WeeklySpent     float64     `json:"weekly_spent"`
	WeeklyScheduled float64     `json:"weekly_scheduled"`
	WeeklyDebt      float64     `json:"weekly_debt"`
}

// Overdrafted reports whether today's spend exceeds the budget.
func (b *Budget) Overdrafted() bool {
	return b.DailyDebt > 0
}

// Change is one proposed relocation.
type Change struct {
	OriginalStart time.Time `json:"original_start"`
	OriginalEnd   time.Time `json:"original_end"`
	NewStart      time.Time `json:"new_start"`
	NewEnd        time.Time `json:"new_end"`
	EventID       string    `json:"event_id"`
	Title         string    `json:"title"`
	Applied       bool      `json:"applied"`
}

// DayGap is the idle gap penalty of one day before and after a proposal.
type DayGap struct {
	Day    string `json:"day"`
	Before int    `json:"before"`
	After  int    `json:"after"`
}

// Proposal is an unapplied set of relocations for one week.
type Proposal struct {
	WeekStart            time.Time         `json:"week_start"`
	Snapshot             map[string]string `json:"snapshot"`
	ID                   string            `json:"id"`
	Changes              []Change          `json:"changes"`
	Unplaceable          []string          `json:"unplaceable"`
	Gaps                 []DayGap          `json:"gaps"`
	CurrentMaxDailyDebt  float64           `json:"current_max_daily_debt"`
	ProposedMaxDailyDebt float64           `json:"proposed_max_daily_debt"`
	TotalDebtReduction   float64           `json:"total_debt_reduction"`
}

// Empty reports whether the proposal moves nothing.
func (p *Proposal) Empty() bool {
	return len(p.Changes) == 0
}

// Score is the reduction of one vitals reading.
type Score struct {
	Timestamp     time.Time `json:"timestamp"`
	RMSSD         *float64  `json:"rmssd,omitempty"`
	PulseRate     float64   `json:"pulse_rate"`
	BreathingRate float64   `json:"breathing_rate"`
	HRV           float64   `json:"hrv"`
	Focus         float64   `json:"focus"`
	Stress        float64   `json:"stress"`
	CostDelta     int       `json:"cost_delta"`
	HRVDefined    bool      `json:"hrv_defined"`
}

// Session is a live vitals monitoring session.
type Session struct {
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	ActualCost    *float64  `json:"actual_cost,omitempty"`
	ID            string    `json:"session_id"`
	UserID        string    `json:"user_id"`
	EventID       string    `json:"event_id,omitempty"`
	Readings      []Score   `json:"readings"`
	EstimatedCost float64   `json:"estimated_cost"`
	Skipped       int       `json:"skipped"`
}

// Deltas returns the cost deltas collected so far in arrival order.
func (s *Session) Deltas() []float64 {
	d := make([]float64, len(s.Readings))

	for i := range s.Readings {
		d[i] = float64(s.Readings[i].CostDelta)
	}

	return d
}

// Active reports whether the session has not been finalised.
func (s *Session) Active() bool {
	return s.EndTime.IsZero()
}
