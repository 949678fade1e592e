package leave

import (
	"time"

	"github.com/homecare-staffing/nursing-backend-go/internal/pkg/utils"
	"github.com/homecare-staffing/nursing-backend-go/internal/pkg/validator"
)

// Type is the kind of an approved absence.
type Type string

const (
	TypeSick      Type = "sick"
	TypeAnnual    Type = "annual"
	TypePersonal  Type = "personal"
	TypeCasual    Type = "casual"
	TypeMaternity Type = "maternity"
	TypePaternity Type = "paternity"
	TypeUnpaid    Type = "unpaid"
)

var TypeValues = []string{
	string(TypeSick),
	string(TypeAnnual),
	string(TypePersonal),
	string(TypeCasual),
	string(TypeMaternity),
	string(TypePaternity),
	string(TypeUnpaid),
}

func (t Type) IsValid() bool {
	return validator.IsInSlice(string(t), TypeValues)
}

type RequestStatus string

// RequestStatusApproved is the only status the engine reads; approval itself happens elsewhere.
const RequestStatusApproved RequestStatus = "approved"

// Interval is an approved leave window for a nurse, independent of any assignment.
type Interval struct {
	ID        string
	NurseID   string
	StartDate time.Time
	EndDate   time.Time
	LeaveType Type
}

// Covers reports whether date lies in [StartDate, EndDate].
func (i Interval) Covers(date time.Time) bool {
	date = utils.DateOf(date)
	return !date.Before(utils.DateOf(i.StartDate)) && !date.After(utils.DateOf(i.EndDate))
}
