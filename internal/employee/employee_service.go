package employee

import (
	"context"
	"encoding/json"
	"time"

	"go-ems/internal/department"
	employeeerrors "go-ems/internal/employee/errors"
	"go-ems/internal/events"
	"go-ems/internal/messaging/kafka"
	"go-ems/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const aggregateType = "employee"

// DepartmentRegistry is satisfied by department.Service.
type DepartmentRegistry interface {
	GetByID(ctx context.Context, id string) (department.DepartmentResponse, error)
}

// CredentialHasher turns a plaintext password into its stored form.
type CredentialHasher interface {
	Hash(plain string) (string, error)
}

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context, callerID string) ([]EmployeeResponse, error)
	// GetByID restricts the lookup to the manager's department when
	// managerID is non-empty.
	GetByID(ctx context.Context, id, managerID string) (EmployeeResponse, error)
	GetByEmail(ctx context.Context, email string) (AuthServiceEmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db          *gorm.DB
	repo        Repository
	departments DepartmentRegistry
	hasher      CredentialHasher
	publisher   EventPublisher
	outbox      kafka.OutboxRepository
	logger      *zap.Logger
}

// NewService publishes the employee created event after the insert commits.
// A publish failure is logged and the employee stays created, so the
// identity system can miss the event if the broker is down.
func NewService(
	db *gorm.DB,
	repo Repository,
	departments DepartmentRegistry,
	hasher CredentialHasher,
	publisher EventPublisher,
	logger ...*zap.Logger,
) Service {
	if publisher == nil {
		publisher = NewNoopEventPublisher()
	}
	return newService(db, repo, departments, hasher, publisher, nil, logger...)
}

// NewServiceWithOutbox writes the event to the outbox in the same
// transaction as the employee row. cmd/worker relays it to Kafka.
func NewServiceWithOutbox(
	db *gorm.DB,
	repo Repository,
	departments DepartmentRegistry,
	hasher CredentialHasher,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	return newService(db, repo, departments, hasher, nil, outboxRepo, logger...)
}

func newService(
	db *gorm.DB,
	repo Repository,
	departments DepartmentRegistry,
	hasher CredentialHasher,
	publisher EventPublisher,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:          db,
		repo:        repo,
		departments: departments,
		hasher:      hasher,
		publisher:   publisher,
		outbox:      outboxRepo,
		logger:      l,
	}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("email", req.Email),
		zap.String("department_id", req.DepartmentID),
	)

	exists, err := s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		s.logger.Error("create employee email lookup failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	if exists {
		return EmployeeResponse{}, employeeerrors.ErrEmployeeAlreadyExists
	}

	dept, err := s.departments.GetByID(ctx, req.DepartmentID)
	if err != nil {
		s.logger.Warn("create employee department lookup failed",
			zap.String("department_id", req.DepartmentID),
			zap.Error(err),
		)
		return EmployeeResponse{}, err
	}

	hashed, err := s.hasher.Hash(req.Password)
	if err != nil {
		s.logger.Error("create employee hash password failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	empl := &Employee{
		ID:           uuid.New(),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Password:     hashed,
		Role:         req.Role,
		Status:       StatusActive,
		DepartmentID: uuidPtr(dept.ID),
	}

	event := events.EmployeeCreatedEvent{
		EventType:  events.EmployeeCreatedEventType,
		RequestID:  rid,
		EmployeeID: empl.ID.String(),
		Email:      empl.Email,
		FirstName:  empl.FirstName,
		LastName:   empl.LastName,
		OccurredAt: time.Now().UTC(),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, empl); err != nil {
			return mapRepositoryError(err)
		}

		if s.outbox == nil {
			return nil
		}

		payload, err := json.Marshal(event)
		if err != nil {
			return err
		}

		return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: aggregateType,
			AggregateID:   empl.ID.String(),
			EventType:     event.EventType,
			Topic:         events.EmployeeCreatedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		})
	})
	if err != nil {
		s.logger.Error("create employee persist failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	if s.outbox != nil {
		s.logger.Info("create employee outbox queued", zap.String("employee_id", empl.ID.String()))
	} else if err := s.publisher.PublishEmployeeCreated(context.WithoutCancel(ctx), event); err != nil {
		s.logger.Error("employee created event not published",
			zap.String("request_id", rid),
			zap.String("employee_id", empl.ID.String()),
			zap.Error(err),
		)
	}

	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID.String()),
	)

	resp := mapToResponse(*empl)
	resp.Department = &EmployeeDepartmentResponse{ID: dept.ID, Name: dept.Name}
	return resp, nil
}

func (s *service) GetAll(ctx context.Context, callerID string) ([]EmployeeResponse, error) {
	s.logger.Debug("get all employees requested", zap.String("caller_id", callerID))

	caller, err := s.repo.FindByID(ctx, callerID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	sc := ResolveScope(caller.ID, caller.Role, caller.DepartmentID)

	var emps []Employee
	switch {
	case sc.Global:
		emps, err = s.repo.FindAllExcept(ctx, sc.ExcludeID.String())
	case sc.Empty():
		return []EmployeeResponse{}, nil
	default:
		emps, err = s.repo.FindByDepartmentExcept(ctx, sc.DepartmentID.String(), sc.ExcludeID.String())
	}
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(emps), nil
}

func (s *service) GetByID(ctx context.Context, id, managerID string) (EmployeeResponse, error) {
	s.logger.Debug("get employee by id requested",
		zap.String("employee_id", id),
		zap.String("manager_id", managerID),
	)

	if managerID == "" {
		empl, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return EmployeeResponse{}, mapRepositoryError(err)
		}
		return mapToResponse(*empl), nil
	}

	manager, err := s.repo.FindByID(ctx, managerID)
	if err != nil {
		if isNotFound(err) {
			return EmployeeResponse{}, employeeerrors.ErrManagerNotFound
		}
		return EmployeeResponse{}, err
	}
	if manager.DepartmentID == nil {
		return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
	}

	empl, err := s.repo.FindByIDAndDepartment(ctx, id, manager.DepartmentID.String())
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*empl), nil
}

func (s *service) GetByEmail(ctx context.Context, email string) (AuthServiceEmployeeResponse, error) {
	empl, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			return AuthServiceEmployeeResponse{}, employeeerrors.NotFoundByEmail(email)
		}
		return AuthServiceEmployeeResponse{}, err
	}

	return AuthServiceEmployeeResponse{
		ID:       empl.ID.String(),
		Email:    empl.Email,
		Password: empl.Password,
		Role:     empl.Role,
		Status:   empl.Status,
	}, nil
}

// Update overwrites the editable fields. Email uniqueness is only enforced by
// uq_employee_email here, not pre-checked.
func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	s.logger.Debug("update employee requested", zap.String("employee_id", id))

	var empl *Employee
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		found, err := qtx.FindByID(ctx, id)
		if err != nil {
			return mapRepositoryError(err)
		}

		found.FirstName = req.FirstName
		found.LastName = req.LastName
		found.Email = req.Email
		found.Role = req.Role

		if req.DepartmentID != nil {
			dept, err := s.departments.GetByID(ctx, *req.DepartmentID)
			if err != nil {
				return err
			}
			found.DepartmentID = uuidPtr(dept.ID)
			found.Department = &department.Department{ID: *found.DepartmentID, Name: dept.Name}
		}

		found.UpdatedAt = time.Now().UTC()

		if err := qtx.Update(ctx, found); err != nil {
			return mapRepositoryError(err)
		}
		empl = found
		return nil
	})
	if err != nil {
		s.logger.Warn("update employee failed", zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.logger.Info("update employee success", zap.String("employee_id", id))
	return mapToResponse(*empl), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	s.logger.Debug("delete employee requested", zap.String("employee_id", id))

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		if _, err := qtx.FindByID(ctx, id); err != nil {
			return mapRepositoryError(err)
		}
		return qtx.Delete(ctx, id)
	})
	if err != nil {
		s.logger.Warn("delete employee failed", zap.String("employee_id", id), zap.Error(err))
		return err
	}

	s.logger.Info("delete employee success", zap.String("employee_id", id))
	return nil
}

func mapToResponse(empl Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:           empl.ID.String(),
		FirstName:    empl.FirstName,
		LastName:     empl.LastName,
		Email:        empl.Email,
		Role:         empl.Role,
		Status:       empl.Status,
		DepartmentID: uuidToString(empl.DepartmentID),
	}
	if empl.Department != nil {
		resp.Department = &EmployeeDepartmentResponse{
			ID:   empl.Department.ID.String(),
			Name: empl.Department.Name,
		}
	}
	if !empl.CreatedAt.IsZero() {
		resp.CreatedAt = empl.CreatedAt.Format(time.RFC3339)
	}
	if !empl.UpdatedAt.IsZero() {
		resp.UpdatedAt = empl.UpdatedAt.Format(time.RFC3339)
	}
	return resp
}

func mapToListResponse(emps []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(emps))
	for i, e := range emps {
		res[i] = mapToResponse(e)
	}
	return res
}

func uuidPtr(v string) *uuid.UUID {
	id, err := uuid.Parse(v)
	if err != nil {
		return nil
	}
	return &id
}

func uuidToString(v *uuid.UUID) string {
	if v == nil {
		return ""
	}
	return v.String()
}
