package employee

import "time"

type Employee struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	Name         string    `gorm:"type:varchar(255);not null"`
	EmployeeCode string    `gorm:"column:employee_id;type:varchar(50);not null;uniqueIndex:uq_employees_employee_id"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex:uq_employees_email"`
	Department   string    `gorm:"type:varchar(100);not null"`
	Position     string    `gorm:"type:varchar(100);not null"`
	HireDate     time.Time `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null;autoUpdateTime:false"`
}

func (Employee) TableName() string {
	return "employees"
}
