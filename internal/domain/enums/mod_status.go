package enums

type ModStatus string

const (
	ModStatusPending  ModStatus = "pending"
	ModStatusApproved ModStatus = "approved"
	ModStatusRejected ModStatus = "rejected"
)

func (s ModStatus) Valid() bool {
	switch s {
	case ModStatusPending, ModStatusApproved, ModStatusRejected:
		return true
	default:
		return false
	}
}
