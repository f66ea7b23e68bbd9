package employee

type CreateEmployeeRequest struct {
	Name       string `json:"name" binding:"required,max=255"`
	EmployeeID string `json:"employee_id" binding:"required,max=50"`
	Email      string `json:"email" binding:"required,email,max=255"`
	Department string `json:"department" binding:"required,max=100"`
	Position   string `json:"position" binding:"required,max=100"`
	HireDate   string `json:"hire_date" binding:"required"`
}

// UpdateEmployeeRequest overwrites only the fields that are present.
type UpdateEmployeeRequest struct {
	ID         int64   `json:"id" binding:"required,gt=0"`
	Name       *string `json:"name" binding:"omitnil,min=1,max=255"`
	Email      *string `json:"email" binding:"omitnil,email,max=255"`
	Department *string `json:"department" binding:"omitnil,min=1,max=100"`
	Position   *string `json:"position" binding:"omitnil,min=1,max=100"`
}

type GetEmployeeByIDQuery struct {
	ID int64 `form:"id" binding:"required,gt=0"`
}

type EmployeeResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	EmployeeID string `json:"employee_id"`
	Email      string `json:"email"`
	Department string `json:"department"`
	Position   string `json:"position"`
	HireDate   string `json:"hire_date"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}
