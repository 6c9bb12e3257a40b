// Package alerts renders user-facing notices such as validation failures and
// empty exports.
package alerts

import (
	stderrors "errors"
	"fmt"
	"time"

	"github.com/fioriscope/fioriscope/pkg/constants"
	"github.com/fioriscope/fioriscope/pkg/errors"
)

// Alert is a single user-facing notice.
type Alert struct {
	Level     Level
	Message   string
	Details   []string
	Timestamp time.Time
	// TTL is how long a live view keeps the alert on screen.
	TTL time.Duration
	Err error
}

// New creates a new alert with the given level and message.
func New(level Level, message string) *Alert {
	return &Alert{
		Level:     level,
		Message:   message,
		Timestamp: time.Now(),
		TTL:       constants.AlertTTL,
	}
}

// NewError creates a new error alert.
func NewError(message string) *Alert {
	return New(LevelError, message)
}

// NewWarning creates a new warning alert.
func NewWarning(message string) *Alert {
	return New(LevelWarning, message)
}

// NewSuccess creates a new success alert.
func NewSuccess(message string) *Alert {
	return New(LevelSuccess, message)
}

// FromError turns err into an alert. Input and export problems are warnings
// carrying their bare message; anything else is an error.
func FromError(err error) *Alert {
	var v *errors.ValidationError
	switch {
	case stderrors.As(err, &v):
		return NewWarning(v.Message)
	case errors.IsNoValidResults(err):
		return NewWarning(err.Error())
	case errors.IsBusy(err):
		return NewWarning(err.Error())
	default:
		return NewError("Run failed").WithError(err)
	}
}

// WithError adds an underlying error to the alert.
func (a *Alert) WithError(err error) *Alert {
	a.Err = err
	return a
}

// WithDetails adds additional context details to the alert.
func (a *Alert) WithDetails(details ...string) *Alert {
	a.Details = append(a.Details, details...)
	return a
}

// String returns a string representation of the alert.
func (a *Alert) String() string {
	message := fmt.Sprintf("%s %s", a.Level.Icon(), a.Message)
	if a.Err != nil {
		message += fmt.Sprintf(": %v", a.Err)
	}
	return message
}
