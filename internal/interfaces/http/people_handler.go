package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Backoffice-api/internal/application/dto"
	"github.com/jhoicas/Backoffice-api/internal/application/usecase"
)

// PeopleHandler clientes, empleados, repartidores y gastos.
type PeopleHandler struct {
	clients   *usecase.ClientUseCase
	employees *usecase.EmployeeUseCase
	handlers  *usecase.DeliveryHandlerUseCase
	expenses  *usecase.ExpenseUseCase
}

// NewPeopleHandler construye el handler.
func NewPeopleHandler(
	clients *usecase.ClientUseCase,
	employees *usecase.EmployeeUseCase,
	handlers *usecase.DeliveryHandlerUseCase,
	expenses *usecase.ExpenseUseCase,
) *PeopleHandler {
	return &PeopleHandler{clients: clients, employees: employees, handlers: handlers, expenses: expenses}
}

// ── Clientes ─────────────────────────────────────────────────────────────────

// CreateClient godoc
// @Summary      Crear cliente
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  dto.CreateClientRequest  true  "cliente"
// @Success      201   {object}  dto.ClientResponse
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Router       /api/clients [post]
func (h *PeopleHandler) CreateClient(c *fiber.Ctx) error {
	var in dto.CreateClientRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.clients.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetClient godoc
// @Summary      Obtener cliente
// @Tags         clients
// @Produce      json
// @Security     Bearer
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.ClientResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/clients/{id} [get]
func (h *PeopleHandler) GetClient(c *fiber.Ctx) error {
	out, err := h.clients.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateClient godoc
// @Summary      Actualizar cliente
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id    path  string                   true  "ID"
// @Param        body  body  dto.UpdateClientRequest  true  "campos a cambiar"
// @Success      200   {object}  dto.ClientResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/clients/{id} [put]
func (h *PeopleHandler) UpdateClient(c *fiber.Ctx) error {
	var in dto.UpdateClientRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.clients.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListClients godoc
// @Summary      Listar clientes
// @Tags         clients
// @Produce      json
// @Security     Bearer
// @Param        search     query  string  false  "nombre, teléfono o email"
// @Param        page       query  int     false  "página"
// @Param        page_size  query  int     false  "tamaño"
// @Success      200  {object}  dto.ListResponse[dto.ClientResponse]
// @Router       /api/clients [get]
func (h *PeopleHandler) ListClients(c *fiber.Ctx) error {
	f, ok, err := queryFilter(c)
	if !ok {
		return err
	}
	items, err := h.clients.List(c.UserContext(), f.ListFilter())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(listOf(items, f, 0))
}

// ── Empleados ────────────────────────────────────────────────────────────────

// CreateEmployee godoc
// @Summary      Crear empleado
// @Tags         employees
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  dto.CreateEmployeeRequest  true  "empleado"
// @Success      201   {object}  dto.EmployeeResponse
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Router       /api/employees [post]
func (h *PeopleHandler) CreateEmployee(c *fiber.Ctx) error {
	var in dto.CreateEmployeeRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.employees.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetEmployee godoc
// @Summary      Obtener empleado
// @Tags         employees
// @Produce      json
// @Security     Bearer
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.EmployeeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/employees/{id} [get]
func (h *PeopleHandler) GetEmployee(c *fiber.Ctx) error {
	out, err := h.employees.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateEmployee godoc
// @Summary      Actualizar empleado
// @Tags         employees
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id    path  string                     true  "ID"
// @Param        body  body  dto.UpdateEmployeeRequest  true  "campos a cambiar"
// @Success      200   {object}  dto.EmployeeResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/employees/{id} [put]
func (h *PeopleHandler) UpdateEmployee(c *fiber.Ctx) error {
	var in dto.UpdateEmployeeRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.employees.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListEmployees godoc
// @Summary      Listar empleados
// @Tags         employees
// @Produce      json
// @Security     Bearer
// @Param        search  query  string  false  "nombre o teléfono"
// @Success      200  {object}  dto.ListResponse[dto.EmployeeResponse]
// @Router       /api/employees [get]
func (h *PeopleHandler) ListEmployees(c *fiber.Ctx) error {
	f, ok, err := queryFilter(c)
	if !ok {
		return err
	}
	items, err := h.employees.List(c.UserContext(), f.ListFilter())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(listOf(items, f, 0))
}

// ── Repartidores ─────────────────────────────────────────────────────────────

// CreateDeliveryHandler godoc
// @Summary      Crear repartidor
// @Description  type=EMPLOYEE con employee_id de un empleado activo, o type=AGENCY con agency.
// @Tags         delivery-handlers
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  dto.DeliveryHandlerRequest  true  "repartidor"
// @Success      201   {object}  dto.DeliveryHandlerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/delivery-handlers [post]
func (h *PeopleHandler) CreateDeliveryHandler(c *fiber.Ctx) error {
	var in dto.DeliveryHandlerRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.handlers.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateDeliveryHandler godoc
// @Summary      Actualizar repartidor
// @Tags         delivery-handlers
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id    path  string                      true  "ID"
// @Param        body  body  dto.DeliveryHandlerRequest  true  "repartidor"
// @Success      200   {object}  dto.DeliveryHandlerResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/delivery-handlers/{id} [put]
func (h *PeopleHandler) UpdateDeliveryHandler(c *fiber.Ctx) error {
	var in dto.DeliveryHandlerRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.handlers.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetDeliveryHandler godoc
// @Summary      Obtener repartidor
// @Tags         delivery-handlers
// @Produce      json
// @Security     Bearer
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.DeliveryHandlerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/delivery-handlers/{id} [get]
func (h *PeopleHandler) GetDeliveryHandler(c *fiber.Ctx) error {
	out, err := h.handlers.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListDeliveryHandlers godoc
// @Summary      Listar repartidores
// @Tags         delivery-handlers
// @Produce      json
// @Security     Bearer
// @Success      200  {object}  dto.ListResponse[dto.DeliveryHandlerResponse]
// @Router       /api/delivery-handlers [get]
func (h *PeopleHandler) ListDeliveryHandlers(c *fiber.Ctx) error {
	f, ok, err := queryFilter(c)
	if !ok {
		return err
	}
	items, err := h.handlers.List(c.UserContext(), f.ListFilter())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(listOf(items, f, 0))
}

// ── Gastos ───────────────────────────────────────────────────────────────────

// CreateExpense godoc
// @Summary      Registrar gasto
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  dto.CreateExpenseRequest  true  "gasto"
// @Success      201   {object}  dto.ExpenseResponse
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Router       /api/expenses [post]
func (h *PeopleHandler) CreateExpense(c *fiber.Ctx) error {
	var in dto.CreateExpenseRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.expenses.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListExpenses godoc
// @Summary      Listar gastos
// @Tags         expenses
// @Produce      json
// @Security     Bearer
// @Param        from         query  string  false  "desde"
// @Param        to           query  string  false  "hasta"
// @Param        category     query  string  false  "categoría"
// @Param        location_id  query  string  false  "ubicación"
// @Success      200  {object}  dto.ListResponse[dto.ExpenseResponse]
// @Router       /api/expenses [get]
func (h *PeopleHandler) ListExpenses(c *fiber.Ctx) error {
	f, ok, err := queryFilter(c)
	if !ok {
		return err
	}
	items, err := h.expenses.List(c.UserContext(), f.ListFilter())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(listOf(items, f, 0))
}

// DeleteExpense godoc
// @Summary      Eliminar gasto
// @Tags         expenses
// @Security     Bearer
// @Param        id   path  string  true  "ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/expenses/{id} [delete]
func (h *PeopleHandler) DeleteExpense(c *fiber.Ctx) error {
	if err := h.expenses.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
