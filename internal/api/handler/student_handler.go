package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/edupay/tuition-system/internal/api/metrics"
	"github.com/edupay/tuition-system/internal/core/domain"
	"github.com/edupay/tuition-system/internal/core/ports"
)

// StudentHandler handles HTTP requests for student operations. Every route is
// mounted behind the Auth middleware; the tenant identity from the context
// scopes each call.
type StudentHandler struct {
	service ports.StudentService
}

func NewStudentHandler(service ports.StudentService) *StudentHandler {
	return &StudentHandler{service: service}
}

// Create handles POST /v1/students.
//
// @Summary      Create a student record
// @Tags         students
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createStudentRequest  true  "Student details"
// @Success      201   {object}  domain.Student
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/students [post]
func (h *StudentHandler) Create(c echo.Context) error {
	schoolID, _, err := ctxSchool(c)
	if err != nil {
		return err
	}

	var req createStudentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	}

	student, err := h.service.Create(c.Request().Context(), schoolID, ports.CreateStudentInput{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Department: req.Department,
	})
	if err != nil {
		return err
	}

	metrics.StudentsCreatedTotal.WithLabelValues(student.Department).Inc()
	return c.JSON(http.StatusCreated, student)
}

// List handles GET /v1/students.
//
// @Summary      List the caller's students
// @Tags         students
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Student
// @Failure      401  {object}  map[string]string
// @Router       /v1/students [get]
func (h *StudentHandler) List(c echo.Context) error {
	schoolID, _, err := ctxSchool(c)
	if err != nil {
		return err
	}

	students, err := h.service.List(c.Request().Context(), schoolID)
	if err != nil {
		return err
	}
	if students == nil {
		students = []*domain.Student{}
	}
	return c.JSON(http.StatusOK, students)
}

// Get handles GET /v1/students/:id.
//
// @Summary      Get a student by id
// @Tags         students
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Student id"
// @Success      200  {object}  domain.Student
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/students/{id} [get]
func (h *StudentHandler) Get(c echo.Context) error {
	schoolID, _, err := ctxSchool(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid student id"})
	}

	student, err := h.service.Get(c.Request().Context(), schoolID, id)
	if err != nil {
		if errors.Is(err, domain.ErrStudentNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "student not found"})
		}
		return err
	}
	return c.JSON(http.StatusOK, student)
}

// Delete handles DELETE /v1/students/:id.
//
// @Summary      Delete a student
// @Tags         students
// @Security     BearerAuth
// @Param        id  path  string  true  "Student id"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/students/{id} [delete]
func (h *StudentHandler) Delete(c echo.Context) error {
	schoolID, _, err := ctxSchool(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid student id"})
	}

	if err := h.service.Delete(c.Request().Context(), schoolID, id); err != nil {
		if errors.Is(err, domain.ErrStudentNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "student not found"})
		}
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
