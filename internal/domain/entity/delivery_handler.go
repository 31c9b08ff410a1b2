package entity

import "time"

// Tipos de repartidor.
const (
	DeliveryHandlerEmployee = "EMPLOYEE"
	DeliveryHandlerAgency   = "AGENCY"
)

// DeliveryHandler quien entrega las ventas en línea. Kind es EmployeeHandler o AgencyHandler.
type DeliveryHandler struct {
	ID        string
	Kind      DeliveryHandlerKind
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DeliveryHandlerKind unión cerrada de tipos de repartidor.
type DeliveryHandlerKind interface {
	HandlerType() string
	sealedDeliveryHandler()
}

// EmployeeHandler reparto hecho por un empleado propio.
type EmployeeHandler struct {
	EmployeeID string
}

// AgencyHandler reparto tercerizado a una agencia.
type AgencyHandler struct {
	Name    string
	Phone   string
	Address string
}

func (EmployeeHandler) HandlerType() string { return DeliveryHandlerEmployee }
func (AgencyHandler) HandlerType() string   { return DeliveryHandlerAgency }

func (EmployeeHandler) sealedDeliveryHandler() {}
func (AgencyHandler) sealedDeliveryHandler()   {}

// Type devuelve EMPLOYEE o AGENCY; vacío si Kind es nil.
func (h *DeliveryHandler) Type() string {
	if h == nil || h.Kind == nil {
		return ""
	}
	return h.Kind.HandlerType()
}
