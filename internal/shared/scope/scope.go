package scope

import "gorm.io/gorm"

// Department restricts a query to rows belonging to departmentID.
func Department(departmentID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("department_id = ?", departmentID)
	}
}

// ExcludeID drops the row with the given id from the result.
func ExcludeID(id string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("id <> ?", id)
	}
}
