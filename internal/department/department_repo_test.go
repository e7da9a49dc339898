package department_test

import (
	"context"
	"testing"

	"go-ems/internal/department"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newGormMock(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{SkipDefaultTransaction: true})
	assert.NoError(t, err)
	return db, mock
}

func TestDepartmentRepository_ExistsByName(t *testing.T) {
	db, mock := newGormMock(t)
	repo := department.NewRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "departments" WHERE name = \$1`).
		WithArgs("Engineering").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := repo.ExistsByName(context.Background(), "Engineering")

	assert.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDepartmentRepository_FindByID(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("found", func(t *testing.T) {
		db, mock := newGormMock(t)
		repo := department.NewRepository(db)

		mock.ExpectQuery(`SELECT \* FROM "departments" WHERE id = \$1`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(id.String(), "HR"))

		dept, err := repo.FindByID(ctx, id.String())

		assert.NoError(t, err)
		assert.Equal(t, "HR", dept.Name)
		assert.Equal(t, id, dept.ID)
	})

	t.Run("missing row is gorm.ErrRecordNotFound", func(t *testing.T) {
		db, mock := newGormMock(t)
		repo := department.NewRepository(db)

		mock.ExpectQuery(`SELECT \* FROM "departments" WHERE id = \$1`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

		dept, err := repo.FindByID(ctx, id.String())

		assert.Nil(t, dept)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}

func TestDepartmentRepository_Delete(t *testing.T) {
	db, mock := newGormMock(t)
	repo := department.NewRepository(db)
	id := uuid.NewString()

	mock.ExpectExec(`DELETE FROM "departments" WHERE id = \$1`).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Delete(context.Background(), id))
	assert.NoError(t, mock.ExpectationsWereMet())
}
