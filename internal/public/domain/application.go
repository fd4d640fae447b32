package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Application is one room application submitted by a prospective tenant.
// It is written once and never changed.
type Application struct {
	ID           string
	FullName     string
	Email        Email
	Phone        string
	Occupation   string
	Employer     string
	ContractType ContractType
	GrossSalary  Salary
	NetSalary    Salary
	MoveInDate   string
	Duration     string
	Message      string
	PropertyID   string
	PropertyName string
	RoomID       string
	RoomName     string
	OwnerID      string
	// CreatedAt is assigned by the document store; nil until persisted.
	CreatedAt *time.Time
}

// ApplicationInput is the raw form payload.
type ApplicationInput struct {
	FullName     string
	Email        string
	Phone        string
	Occupation   string
	Employer     string
	ContractType string
	GrossSalary  string
	NetSalary    string
	MoveInDate   string
	Duration     string
	Message      string
}

// FieldError names one invalid form field.
type FieldError struct {
	Field  string
	Reason string
}

// ValidationError lists every invalid field of a submission.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Reason))
	}
	return "invalid application: " + strings.Join(parts, "; ")
}

// IsValidationError reports whether err carries field errors.
func IsValidationError(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// NewApplication validates in and builds an unsaved application. Every
// field except Message is mandatory.
func NewApplication(in ApplicationInput) (*Application, error) {
	verr := &ValidationError{}
	required := func(field, value string) string {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			verr.Fields = append(verr.Fields, FieldError{Field: field, Reason: "is required"})
		}
		return trimmed
	}

	app := &Application{
		FullName:   required("fullName", in.FullName),
		Phone:      required("phone", in.Phone),
		Occupation: required("occupation", in.Occupation),
		Employer:   required("employer", in.Employer),
		MoveInDate: required("moveInDate", in.MoveInDate),
		Duration:   required("duration", in.Duration),
		Message:    strings.TrimSpace(in.Message),
	}

	var err error
	if app.Email, err = NewEmail(in.Email); err != nil {
		verr.Fields = append(verr.Fields, FieldError{Field: "email", Reason: err.Error()})
	}
	if app.ContractType, err = NewContractType(in.ContractType); err != nil {
		verr.Fields = append(verr.Fields, FieldError{Field: "contractType", Reason: err.Error()})
	}
	if app.GrossSalary, err = NewSalary(in.GrossSalary); err != nil {
		verr.Fields = append(verr.Fields, FieldError{Field: "grossSalary", Reason: err.Error()})
	}
	if app.NetSalary, err = NewSalary(in.NetSalary); err != nil {
		verr.Fields = append(verr.Fields, FieldError{Field: "netSalary", Reason: err.Error()})
	}

	if len(verr.Fields) > 0 {
		return nil, verr
	}
	return app, nil
}
