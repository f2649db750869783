package payment

import "strings"

type Method string

const (
	MethodCash     Method = "EFECTIVO"
	MethodCard     Method = "TARJETA"
	MethodTransfer Method = "TRANSFERENCIA"
	MethodCheck    Method = "CHEQUE"
)

var methodLabels = map[Method]string{
	MethodCash:     "Efectivo",
	MethodCard:     "Tarjeta",
	MethodTransfer: "Transferencia",
	MethodCheck:    "Cheque",
}

func Methods() []Method {
	return []Method{MethodCash, MethodCard, MethodTransfer, MethodCheck}
}

func ParseMethod(raw string) (Method, bool) {
	m := Method(strings.ToUpper(strings.TrimSpace(raw)))
	_, ok := methodLabels[m]
	return m, ok
}

func (m Method) Label() string { return methodLabels[m] }

type Status string

const (
	StatusPaid      Status = "PAGADO"
	StatusPending   Status = "PENDIENTE"
	StatusCancelled Status = "CANCELADO"
)

var statusLabels = map[Status]string{
	StatusPaid:      "Pagado",
	StatusPending:   "Pendiente",
	StatusCancelled: "Cancelado",
}

func Statuses() []Status {
	return []Status{StatusPaid, StatusPending, StatusCancelled}
}

func ParseStatus(raw string) (Status, bool) {
	s := Status(strings.ToUpper(strings.TrimSpace(raw)))
	_, ok := statusLabels[s]
	return s, ok
}

func (s Status) Label() string { return statusLabels[s] }
