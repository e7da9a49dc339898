package department

import (
	"context"
	"encoding/json"
	"time"

	departmenterrors "go-ems/internal/department/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	DepartmentAllKey = "departments:all"
	departmentAllTTL = 30 * time.Minute
)

//go:generate mockgen -source=department_service.go -destination=mock/department_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateDepartmentRequest) (DepartmentResponse, error)
	GetAll(ctx context.Context) ([]DepartmentResponse, error)
	GetByID(ctx context.Context, id string) (DepartmentResponse, error)
	Update(ctx context.Context, id string, req UpdateDepartmentRequest) (DepartmentResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *gorm.DB
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("department.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("department.service")
	}
	return &service{db: db, repo: repo, rdb: rdb, sf: &singleflight.Group{}, logger: l}
}

func (s *service) Create(
	ctx context.Context,
	req CreateDepartmentRequest,
) (DepartmentResponse, error) {
	s.logger.Debug("create department requested", zap.String("name", req.Name))

	exists, err := s.repo.ExistsByName(ctx, req.Name)
	if err != nil {
		s.logger.Error("create department name lookup failed", zap.Error(err))
		return DepartmentResponse{}, err
	}
	if exists {
		return DepartmentResponse{}, departmenterrors.ErrDepartmentAlreadyExists
	}

	dept := &Department{
		ID:   uuid.New(),
		Name: req.Name,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).Create(ctx, dept)
	})
	if err != nil {
		s.logger.Error("create department persist failed", zap.Error(err))
		return DepartmentResponse{}, mapRepositoryError(err, dept.ID.String())
	}

	s.invalidateCache(ctx)
	s.logger.Info("create department success", zap.String("department_id", dept.ID.String()))

	return mapToResponse(*dept), nil
}

func (s *service) GetAll(ctx context.Context) ([]DepartmentResponse, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, DepartmentAllKey).Result()
		switch {
		case err == nil:
			var resp []DepartmentResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		case err != redis.Nil:
			s.logger.Warn("department cache read failed", zap.Error(err))
		}
	}

	v, err, _ := s.sf.Do(DepartmentAllKey, func() (interface{}, error) {
		// Shared by every waiter, so one caller's cancellation must not fail the rest.
		loadCtx := context.WithoutCancel(ctx)

		depts, err := s.repo.FindAll(loadCtx)
		if err != nil {
			return nil, err
		}

		resp := mapToListResponse(depts)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(loadCtx, DepartmentAllKey, jsonData, departmentAllTTL).Err(); err != nil {
					s.logger.Warn("department cache write failed", zap.Error(err))
				}
			}
		}

		return resp, nil
	})
	if err != nil {
		s.logger.Error("get all departments failed", zap.Error(err))
		return nil, err
	}

	return v.([]DepartmentResponse), nil
}

func (s *service) GetByID(ctx context.Context, id string) (DepartmentResponse, error) {
	dept, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return DepartmentResponse{}, mapRepositoryError(err, id)
	}

	return mapToResponse(*dept), nil
}

// Update renames a department. The new name is not checked against other
// departments here; a clash surfaces from uq_department_name as a conflict.
func (s *service) Update(
	ctx context.Context,
	id string,
	req UpdateDepartmentRequest,
) (DepartmentResponse, error) {
	s.logger.Debug("rename department requested",
		zap.String("department_id", id),
		zap.String("name", req.Name),
	)

	var dept *Department
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		found, err := qtx.FindByID(ctx, id)
		if err != nil {
			return err
		}

		found.Name = req.Name
		found.UpdatedAt = time.Now().UTC()

		if err := qtx.Update(ctx, found); err != nil {
			return err
		}
		dept = found
		return nil
	})
	if err != nil {
		s.logger.Warn("rename department failed", zap.String("department_id", id), zap.Error(err))
		return DepartmentResponse{}, mapRepositoryError(err, id)
	}

	s.invalidateCache(ctx)

	return mapToResponse(*dept), nil
}

// Delete removes the department row only. Employees that still reference it
// keep the dangling department id.
func (s *service) Delete(ctx context.Context, id string) error {
	s.logger.Debug("delete department requested", zap.String("department_id", id))

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		if _, err := qtx.FindByID(ctx, id); err != nil {
			return err
		}
		return qtx.Delete(ctx, id)
	})
	if err != nil {
		s.logger.Warn("delete department failed", zap.String("department_id", id), zap.Error(err))
		return mapRepositoryError(err, id)
	}

	s.invalidateCache(ctx)
	s.logger.Info("delete department success", zap.String("department_id", id))
	return nil
}

func (s *service) invalidateCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, DepartmentAllKey).Err(); err != nil {
		s.logger.Error("failed to invalidate department cache",
			zap.String("key", DepartmentAllKey),
			zap.Error(err),
		)
	}
}

func mapToResponse(dept Department) DepartmentResponse {
	resp := DepartmentResponse{
		ID:   dept.ID.String(),
		Name: dept.Name,
	}
	if !dept.CreatedAt.IsZero() {
		resp.CreatedAt = dept.CreatedAt.Format(time.RFC3339)
	}
	if !dept.UpdatedAt.IsZero() {
		resp.UpdatedAt = dept.UpdatedAt.Format(time.RFC3339)
	}
	return resp
}

func mapToListResponse(depts []Department) []DepartmentResponse {
	res := make([]DepartmentResponse, len(depts))
	for i, d := range depts {
		res[i] = mapToResponse(d)
	}
	return res
}
