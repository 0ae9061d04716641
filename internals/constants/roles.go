package constants

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// AdminOnly is the allow-list for privileged route groups.
var AdminOnly = []string{RoleAdmin}
