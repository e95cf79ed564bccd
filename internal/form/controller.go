// Package form holds the client side of the inquiry form: the editable
// fields, their normalization and the submission lifecycle.
package form

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"mangaart/internal/domain"
	"mangaart/internal/util"
	apperrors "mangaart/pkg/errors"
)

// Field names, matching the JSON names used in field errors
const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldPhone   = "phone"
	FieldCountry = "country"
	FieldMessage = "message"
)

// Fields lists the form fields in display order
var Fields = []string{FieldName, FieldEmail, FieldPhone, FieldCountry, FieldMessage}

// Status is the submission lifecycle state
type Status int

const (
	StatusIdle Status = iota
	StatusInFlight
	StatusSucceeded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusInFlight:
		return "in-flight"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

var (
	// ErrSubmissionInFlight is returned when Submit is called while another
	// submission from the same controller has not finished. It is a no-op.
	ErrSubmissionInFlight = errors.New("form: submission already in flight")
	// ErrUnknownField is returned by Set for a name not in Fields
	ErrUnknownField = errors.New("form: unknown field")
)

// Submitter accepts one inquiry candidate
type Submitter interface {
	Submit(ctx context.Context, c domain.Candidate) (*domain.Inquiry, error)
}

// State is a snapshot of the controller
type State struct {
	Status       Status
	Values       domain.Candidate
	FieldErrors  map[string]string
	GeneralError string
	Last         *domain.Inquiry
}

// Controller owns one form. It is safe for concurrent use and allows at
// most one submission in flight.
type Controller struct {
	submitter Submitter

	mu      sync.Mutex
	values  domain.Candidate
	status  Status
	fields  map[string]string
	general string
	last    *domain.Inquiry
}

// NewController creates an idle controller with empty fields
func NewController(submitter Submitter) *Controller {
	return &Controller{submitter: submitter}
}

// Set updates one field. Arabic-Indic digits in the phone are converted to
// ASCII digits as they are typed.
func (c *Controller) Set(field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch field {
	case FieldName:
		c.values.Name = value
	case FieldEmail:
		c.values.Email = value
	case FieldPhone:
		c.values.Phone = util.NormalizeDigits(value)
	case FieldCountry:
		c.values.Country = value
	case FieldMessage:
		c.values.Message = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

// Values returns the current field values
func (c *Controller) Values() domain.Candidate {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.values
}

// State returns a snapshot of the controller
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := State{
		Status:       c.status,
		Values:       c.values,
		GeneralError: c.general,
	}
	if len(c.fields) > 0 {
		s.FieldErrors = make(map[string]string, len(c.fields))
		for k, v := range c.fields {
			s.FieldErrors[k] = v
		}
	}
	if c.last != nil {
		last := *c.last
		s.Last = &last
	}
	return s
}

// Submit sends the current values. On success the fields are cleared; on
// failure they are kept and the error is recorded either per field or as a
// general message. The returned error is the submitter's.
func (c *Controller) Submit(ctx context.Context) (*domain.Inquiry, error) {
	c.mu.Lock()
	if c.status == StatusInFlight {
		c.mu.Unlock()
		return nil, ErrSubmissionInFlight
	}
	c.status = StatusInFlight
	c.fields = nil
	c.general = ""
	candidate := c.values
	c.mu.Unlock()

	inquiry, err := c.submitter.Submit(ctx, candidate)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.status = StatusFailed
		c.fields, c.general = describeFailure(err)
		return nil, err
	}

	c.status = StatusSucceeded
	c.values = domain.Candidate{}
	c.last = inquiry
	return inquiry, nil
}

func describeFailure(err error) (map[string]string, string) {
	if fieldErrs := apperrors.FieldsOf(err); len(fieldErrs) > 0 {
		fields := make(map[string]string, len(fieldErrs))
		for _, f := range fieldErrs {
			if _, seen := fields[f.Field]; !seen {
				fields[f.Field] = f.Reason
			}
		}
		return fields, ""
	}
	if apperrors.IsStorage(err) {
		return nil, "Your message could not be saved. Please try again later."
	}
	return nil, "Something went wrong. Please try again."
}
