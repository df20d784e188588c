package service

import "errors"

// ErrProjectNotConfigured is returned when a daily record is submitted before
// the site settings have been saved.
var ErrProjectNotConfigured = errors.New("project_not_configured")

// ErrCycleStepsRequired is returned when a cycle time is recorded for a project
// without any configured cycle steps.
var ErrCycleStepsRequired = errors.New("cycle_steps_required")

// ErrInvalidInput wraps validation failures on user input.
var ErrInvalidInput = errors.New("invalid_input")
