package employee

import (
	"context"

	"go-ems/internal/shared/scope"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, emp *Employee) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	FindByID(ctx context.Context, id string) (*Employee, error)
	FindByIDAndDepartment(ctx context.Context, id, departmentID string) (*Employee, error)
	FindByEmail(ctx context.Context, email string) (*Employee, error)
	FindAllExcept(ctx context.Context, excludeID string) ([]Employee, error)
	FindByDepartmentExcept(ctx context.Context, departmentID, excludeID string) ([]Employee, error)
	Update(ctx context.Context, emp *Employee) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, emp *Employee) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(emp).Error
}

func (r *repository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Employee{}).
		Where("email = ?", email).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Employee, error) {
	var emp Employee
	err := r.db.WithContext(ctx).
		Preload("Department").
		First(&emp, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

func (r *repository) FindByIDAndDepartment(ctx context.Context, id, departmentID string) (*Employee, error) {
	var emp Employee
	err := r.db.WithContext(ctx).
		Preload("Department").
		Scopes(scope.Department(departmentID)).
		First(&emp, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*Employee, error) {
	var emp Employee
	if err := r.db.WithContext(ctx).First(&emp, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &emp, nil
}

func (r *repository) FindAllExcept(ctx context.Context, excludeID string) ([]Employee, error) {
	var emps []Employee
	err := r.db.WithContext(ctx).
		Preload("Department").
		Scopes(scope.ExcludeID(excludeID)).
		Find(&emps).Error
	return emps, err
}

func (r *repository) FindByDepartmentExcept(ctx context.Context, departmentID, excludeID string) ([]Employee, error) {
	var emps []Employee
	err := r.db.WithContext(ctx).
		Preload("Department").
		Scopes(scope.Department(departmentID), scope.ExcludeID(excludeID)).
		Find(&emps).Error
	return emps, err
}

func (r *repository) Update(ctx context.Context, emp *Employee) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(emp).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Employee{}, "id = ?", id).Error
}
