package rbac

// DefaultPolicies is the coarse role gate in front of the directory.
// EMPLOYEE has no entry and is denied everything here.
var DefaultPolicies = [][]string{
	{"ADMIN", "department", "*"},
	{"ADMIN", "employee", "*"},
	{"MANAGER", "employee", "read"},
}
