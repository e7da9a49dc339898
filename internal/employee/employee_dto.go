package employee

type CreateEmployeeRequest struct {
	FirstName    string `json:"first_name" binding:"required,notblank"`
	LastName     string `json:"last_name" binding:"required,notblank"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8"`
	Role         Role   `json:"role" binding:"required,oneof=ADMIN MANAGER EMPLOYEE"`
	DepartmentID string `json:"department_id" binding:"required,uuid"`
}

// UpdateEmployeeRequest leaves the department untouched when DepartmentID
// is omitted.
type UpdateEmployeeRequest struct {
	FirstName    string  `json:"first_name" binding:"required,notblank"`
	LastName     string  `json:"last_name" binding:"required,notblank"`
	Email        string  `json:"email" binding:"required,email"`
	Role         Role    `json:"role" binding:"required,oneof=ADMIN MANAGER EMPLOYEE"`
	DepartmentID *string `json:"department_id" binding:"omitempty,uuid"`
}

type EmployeeDepartmentResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type EmployeeResponse struct {
	ID           string                      `json:"id"`
	FirstName    string                      `json:"first_name"`
	LastName     string                      `json:"last_name"`
	Email        string                      `json:"email"`
	Role         Role                        `json:"role"`
	Status       Status                      `json:"status"`
	DepartmentID string                      `json:"department_id,omitempty"`
	Department   *EmployeeDepartmentResponse `json:"department,omitempty"`
	CreatedAt    string                      `json:"created_at,omitempty"`
	UpdatedAt    string                      `json:"updated_at,omitempty"`
}

// AuthServiceEmployeeResponse is the projection served to the identity
// system for sign-in checks. It must not grow personal or department fields.
type AuthServiceEmployeeResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
	Status   Status `json:"status"`
}
