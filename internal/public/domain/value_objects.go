package domain

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
)

// ContractType is the applicant's employment contract.
type ContractType string

const (
	ContractCDI        ContractType = "CDI"
	ContractCDD        ContractType = "CDD"
	ContractInternship ContractType = "Internship"
	ContractFreelance  ContractType = "Freelance"
	ContractOther      ContractType = "Other"
)

// ContractTypes lists the accepted contract types in form order.
var ContractTypes = []ContractType{ContractCDI, ContractCDD, ContractInternship, ContractFreelance, ContractOther}

func NewContractType(value string) (ContractType, error) {
	trimmed := strings.TrimSpace(value)
	for _, allowed := range ContractTypes {
		if strings.EqualFold(string(allowed), trimmed) {
			return allowed, nil
		}
	}
	return "", fmt.Errorf("unknown contract type %q", value)
}

type Email string

func NewEmail(value string) (Email, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", fmt.Errorf("email is required")
	}
	if len(trimmed) > 254 {
		return "", fmt.Errorf("email too long")
	}
	addr, err := mail.ParseAddress(trimmed)
	if err != nil {
		return "", fmt.Errorf("invalid email: %w", err)
	}
	if addr.Address != trimmed {
		return "", fmt.Errorf("invalid email: expected a bare address")
	}
	return Email(trimmed), nil
}

func (e Email) String() string {
	return string(e)
}

// Salary is a monthly amount kept as the applicant typed it.
type Salary string

// salaryPattern accepts plain decimal amounts with an optional "." or ","
// and up to two fraction digits.
var salaryPattern = regexp.MustCompile(`^[0-9]+([.,][0-9]{1,2})?$`)

func NewSalary(value string) (Salary, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", fmt.Errorf("salary is required")
	}
	if strings.HasPrefix(trimmed, "-") {
		return "", fmt.Errorf("salary must be >= 0")
	}
	if !salaryPattern.MatchString(trimmed) {
		return "", fmt.Errorf("salary must be a number")
	}
	return Salary(trimmed), nil
}

func (s Salary) String() string {
	return string(s)
}
