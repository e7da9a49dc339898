package employee_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-ems/internal/employee"
	employeeerrors "go-ems/internal/employee/errors"
	"go-ems/internal/shared/apperror"

	employeeMock "go-ems/internal/employee/mock"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type envelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

// newRouter mounts the handler behind a stub that plays the auth middleware.
func newRouter(t *testing.T, callerID string, role employee.Role) (*gin.Engine, *employeeMock.MockService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	apperror.Init()

	svc := employeeMock.NewMockService(gomock.NewController(t))
	h := employee.NewHandler(svc)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if callerID != "" {
			c.Set("employee_id", callerID)
			c.Set("role", string(role))
		}
		c.Next()
	})
	r.POST("/employees", h.Create)
	r.GET("/employees", h.GetAll)
	r.GET("/employees/:id", h.GetById)
	r.PUT("/employees/:id", h.Update)
	r.DELETE("/employees/:id", h.Delete)
	r.GET("/internal/employees/by-email", h.GetByEmail)
	return r, svc
}

func serve(r *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestEmployeeHandler_Create(t *testing.T) {
	deptID := uuid.NewString()

	t.Run("success", func(t *testing.T) {
		r, svc := newRouter(t, uuid.NewString(), employee.RoleAdmin)
		svc.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				assert.Equal(t, employee.RoleEmployee, req.Role)
				return employee.EmployeeResponse{ID: uuid.NewString(), Email: req.Email, Status: employee.StatusActive}, nil
			})

		body := `{"first_name":"Ada","last_name":"Lovelace","email":"a@x.com","password":"s3cret-pass","role":"EMPLOYEE","department_id":"` + deptID + `"}`
		w := serve(r, http.MethodPost, "/employees", body)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.NotContains(t, w.Body.String(), "s3cret-pass")
	})

	t.Run("validation failures are reported per field", func(t *testing.T) {
		r, svc := newRouter(t, uuid.NewString(), employee.RoleAdmin)
		svc.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

		w := serve(r, http.MethodPost, "/employees", `{"email":"not-an-email","role":"OWNER","password":"short"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decode(t, w)
		assert.Equal(t, "INVALID_INPUT", env.Error.Code)
		assert.Equal(t, "First Name is required", env.Error.Details["first_name"])
		assert.Equal(t, "Email must be a valid email", env.Error.Details["email"])
		assert.Contains(t, env.Error.Details, "role")
		assert.Contains(t, env.Error.Details, "password")
		assert.Contains(t, env.Error.Details, "department_id")
	})

	t.Run("blank names are rejected", func(t *testing.T) {
		r, svc := newRouter(t, uuid.NewString(), employee.RoleAdmin)
		svc.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

		body := `{"first_name":"  ","last_name":"\t","email":"a@x.com","password":"s3cret-pass","role":"EMPLOYEE","department_id":"` + deptID + `"}`
		w := serve(r, http.MethodPost, "/employees", body)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decode(t, w)
		assert.Equal(t, "INVALID_INPUT", env.Error.Code)
		assert.Equal(t, "First Name must not be blank", env.Error.Details["first_name"])
		assert.Equal(t, "Last Name must not be blank", env.Error.Details["last_name"])
	})

	t.Run("conflict", func(t *testing.T) {
		r, svc := newRouter(t, uuid.NewString(), employee.RoleAdmin)
		svc.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(employee.EmployeeResponse{}, employeeerrors.ErrEmployeeAlreadyExists)

		body := `{"first_name":"Ada","last_name":"Lovelace","email":"a@x.com","password":"s3cret-pass","role":"EMPLOYEE","department_id":"` + deptID + `"}`
		w := serve(r, http.MethodPost, "/employees", body)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "Employee with email already exists", decode(t, w).Error.Message)
	})
}

func TestEmployeeHandler_GetAll(t *testing.T) {
	t.Run("lists for the token's employee", func(t *testing.T) {
		callerID := uuid.NewString()
		r, svc := newRouter(t, callerID, employee.RoleManager)
		svc.EXPECT().
			GetAll(gomock.Any(), callerID).
			Return([]employee.EmployeeResponse{{ID: uuid.NewString()}}, nil)

		w := serve(r, http.MethodGet, "/employees", "")

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing caller is unauthorized", func(t *testing.T) {
		r, svc := newRouter(t, "", "")
		svc.EXPECT().GetAll(gomock.Any(), gomock.Any()).Times(0)

		w := serve(r, http.MethodGet, "/employees", "")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unexpected error is opaque", func(t *testing.T) {
		r, svc := newRouter(t, uuid.NewString(), employee.RoleAdmin)
		svc.EXPECT().GetAll(gomock.Any(), gomock.Any()).Return(nil, errors.New("dial tcp 10.0.0.3:5432: i/o timeout"))

		w := serve(r, http.MethodGet, "/employees", "")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "An unexpected error occurred", decode(t, w).Error.Message)
		assert.NotContains(t, w.Body.String(), "10.0.0.3")
	})
}

func TestEmployeeHandler_GetById(t *testing.T) {
	targetID := uuid.NewString()

	t.Run("manager lookups are scoped to the caller", func(t *testing.T) {
		managerID := uuid.NewString()
		r, svc := newRouter(t, managerID, employee.RoleManager)
		svc.EXPECT().
			GetByID(gomock.Any(), targetID, managerID).
			Return(employee.EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound)

		w := serve(r, http.MethodGet, "/employees/"+targetID, "")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Employee not found", decode(t, w).Error.Message)
	})

	t.Run("admin lookups are unscoped", func(t *testing.T) {
		r, svc := newRouter(t, uuid.NewString(), employee.RoleAdmin)
		svc.EXPECT().
			GetByID(gomock.Any(), targetID, "").
			Return(employee.EmployeeResponse{ID: targetID}, nil)

		w := serve(r, http.MethodGet, "/employees/"+targetID, "")

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("invalid uuid", func(t *testing.T) {
		r, svc := newRouter(t, uuid.NewString(), employee.RoleAdmin)
		svc.EXPECT().GetByID(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		w := serve(r, http.MethodGet, "/employees/42", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INVALID_INPUT", decode(t, w).Error.Code)
	})
}

func TestEmployeeHandler_Update(t *testing.T) {
	id := uuid.NewString()

	t.Run("department id is optional", func(t *testing.T) {
		r, svc := newRouter(t, uuid.NewString(), employee.RoleAdmin)
		svc.EXPECT().
			Update(gomock.Any(), id, gomock.Any()).
			DoAndReturn(func(_ any, _ string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
				assert.Nil(t, req.DepartmentID)
				return employee.EmployeeResponse{ID: id}, nil
			})

		w := serve(r, http.MethodPut, "/employees/"+id, `{"first_name":"A","last_name":"B","email":"a@x.com","role":"MANAGER"}`)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("malformed department id is rejected", func(t *testing.T) {
		r, svc := newRouter(t, uuid.NewString(), employee.RoleAdmin)
		svc.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		w := serve(r, http.MethodPut, "/employees/"+id, `{"first_name":"A","last_name":"B","email":"a@x.com","role":"MANAGER","department_id":"nope"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decode(t, w).Error.Details, "department_id")
	})

	t.Run("blank first name is rejected", func(t *testing.T) {
		r, svc := newRouter(t, uuid.NewString(), employee.RoleAdmin)
		svc.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		w := serve(r, http.MethodPut, "/employees/"+id, `{"first_name":" ","last_name":"B","email":"a@x.com","role":"MANAGER"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "First Name must not be blank", decode(t, w).Error.Details["first_name"])
	})
}

func TestEmployeeHandler_Delete(t *testing.T) {
	id := uuid.NewString()
	r, svc := newRouter(t, uuid.NewString(), employee.RoleAdmin)
	svc.EXPECT().Delete(gomock.Any(), id).Return(nil)

	w := serve(r, http.MethodDelete, "/employees/"+id, "")

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestEmployeeHandler_GetByEmail(t *testing.T) {
	t.Run("returns the projection", func(t *testing.T) {
		r, svc := newRouter(t, "", "")
		svc.EXPECT().
			GetByEmail(gomock.Any(), "a@x.com").
			Return(employee.AuthServiceEmployeeResponse{ID: "1", Email: "a@x.com", Password: "hashed"}, nil)

		w := serve(r, http.MethodGet, "/internal/employees/by-email?email=a@x.com", "")

		assert.Equal(t, http.StatusOK, w.Code)
		var data map[string]any
		assert.NoError(t, json.Unmarshal(decode(t, w).Data, &data))
		assert.ElementsMatch(t, []string{"id", "email", "password", "role", "status"}, keys(data))
	})

	t.Run("email is required", func(t *testing.T) {
		r, svc := newRouter(t, "", "")
		svc.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Times(0)

		w := serve(r, http.MethodGet, "/internal/employees/by-email", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "email is required", decode(t, w).Error.Message)
	})
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
