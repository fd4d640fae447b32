package domain

import (
	"sort"
	"time"
)

// InboundApplication is a submitted room application as the operator sees it.
type InboundApplication struct {
	ID           string
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
	PropertyID   string
	PropertyName string
	RoomID       string
	RoomName     string
	OwnerID      string
	CreatedAt    *time.Time
}

// createdUnix treats a missing timestamp as the epoch so it sorts last.
func (a InboundApplication) createdUnix() int64 {
	if a.CreatedAt == nil {
		return 0
	}
	return a.CreatedAt.Unix()
}

// SortNewestFirst orders applications by creation time, newest first.
// Ties keep their input order.
func SortNewestFirst(apps []InboundApplication) {
	sort.SliceStable(apps, func(i, j int) bool {
		return apps[i].createdUnix() > apps[j].createdUnix()
	})
}
