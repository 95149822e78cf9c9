package enums

type AdminRole string

const (
	AdminRoleOwner AdminRole = "owner"
)
