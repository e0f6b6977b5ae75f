package config

import (
	"github.com/robfig/cron/v3"

	"github.com/ayoisaiah/cogload/vitals"
)

const maxHour = 24

// Validate performs validation checks on the Config struct and its fields.
func (c *Config) Validate() error {
	if err := c.validateSchedule(); err != nil {
		return err
	}

	if c.Budget.Daily <= 0 {
		return errInvalidBudget.Fmt(c.Budget.Daily)
	}

	if err := c.validateCost(); err != nil {
		return err
	}

	if err := c.validateVitals(); err != nil {
		return err
	}

	if c.Recovery.MaxSlots < 1 {
		return errInvalidMaxSlots.Fmt(c.Recovery.MaxSlots)
	}

	if _, err := cron.ParseStandard(c.Watch.Schedule); err != nil {
		return errInvalidSchedule.Fmt(c.Watch.Schedule).Wrap(err)
	}

	return nil
}

func (c *Config) validateSchedule() error {
	s := c.Schedule

	if s.WorkStart < 0 || s.WorkStart >= s.WorkEnd || s.WorkEnd > maxHour {
		return errInvalidWorkHours.Fmt(s.WorkStart, s.WorkEnd)
	}

	if s.Days < 1 || s.Days > 7 {
		return errInvalidDays.Fmt(s.Days)
	}

	return nil
}

func (c *Config) validateCost() error {
	if c.Cost.AfternoonCutoff < 0 || c.Cost.AfternoonCutoff >= maxHour {
		return errInvalidCutoff.Fmt(c.Cost.AfternoonCutoff)
	}

	if c.Cost.ProximityWindow < 0 {
		return errInvalidWindow.Fmt(c.Cost.ProximityWindow)
	}

	if c.Cost.ProximityIncrement < 0 {
		return errInvalidIncrement.Fmt(c.Cost.ProximityIncrement)
	}

	return nil
}

func (c *Config) validateVitals() error {
	if !vitals.ValidAggregation(c.Vitals.Aggregation) {
		return errInvalidAggregation.Fmt(c.Vitals.Aggregation)
	}

	if c.Vitals.MaxCostDelta <= 0 {
		return errInvalidMaxDelta.Fmt(c.Vitals.MaxCostDelta)
	}

	return nil
}
