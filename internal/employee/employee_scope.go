package employee

import "github.com/google/uuid"

// Scope is the set of employee records a caller may enumerate.
type Scope struct {
	Global       bool
	DepartmentID *uuid.UUID
	ExcludeID    uuid.UUID
}

// Empty reports whether the scope can match no record at all.
func (s Scope) Empty() bool {
	return !s.Global && s.DepartmentID == nil
}

// ResolveScope computes the listing scope of a caller. Admins see every
// employee, anyone else sees their own department. The caller is always
// excluded. EMPLOYEE callers are not denied here; that gate belongs to the
// role check in front of the directory.
func ResolveScope(callerID uuid.UUID, role Role, departmentID *uuid.UUID) Scope {
	switch role {
	case RoleAdmin:
		return Scope{Global: true, ExcludeID: callerID}
	default:
		return Scope{DepartmentID: departmentID, ExcludeID: callerID}
	}
}
