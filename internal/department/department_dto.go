package department

type CreateDepartmentRequest struct {
	Name string `json:"name" binding:"required,notblank"`
}

type UpdateDepartmentRequest struct {
	Name string `json:"name" binding:"required,notblank"`
}

type DepartmentResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}
