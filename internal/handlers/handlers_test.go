package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	"github.com/BruksfildServices01/salon-scheduler/internal/db/dbtest"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/routes"
	"github.com/BruksfildServices01/salon-scheduler/internal/session"
)

const (
	staffEmail    = "recepcion@salon.co"
	staffPassword = "s3cret-pass"
	futureSlot    = "2099-06-01T10:00"
)

type memRevoker map[string]time.Time

func (m memRevoker) Revoke(_ context.Context, jti string, until time.Time) error {
	m[jti] = until
	return nil
}

func (m memRevoker) IsRevoked(_ context.Context, jti string) (bool, error) {
	_, ok := m[jti]
	return ok, nil
}

type testAPI struct {
	t     *testing.T
	db    *gorm.DB
	r     *gin.Engine
	token string
}

func newAPI(t *testing.T, revoker session.Revoker) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := dbtest.Open(t)

	hash, err := bcrypt.GenerateFromPassword([]byte(staffPassword), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.User{
		Name:         "Recepción",
		Email:        staffEmail,
		PasswordHash: string(hash),
		Role:         "admin",
		Active:       true,
	}).Error)

	r := gin.New()
	routes.RegisterRoutes(r, routes.Deps{
		DB: db,
		Config: &config.Config{
			JWTSecret:     "test-secret",
			SalonTimezone: "America/Bogota",
		},
		Revoker: revoker,
	})

	a := &testAPI{t: t, db: db, r: r}
	a.token = a.login()
	return a
}

func (a *testAPI) login() string {
	w := a.do(http.MethodPost, "/api/auth/login", map[string]any{
		"email":    staffEmail,
		"password": staffPassword,
	})
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())
	return body(a.t, w)["token"].(string)
}

func (a *testAPI) do(method, path string, payload any) *httptest.ResponseRecorder {
	a.t.Helper()

	var buf bytes.Buffer
	if payload != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(payload))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}

	w := httptest.NewRecorder()
	a.r.ServeHTTP(w, req)
	return w
}

func (a *testAPI) create(path string, payload any) map[string]any {
	a.t.Helper()
	w := a.do(http.MethodPost, path, payload)
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	return body(a.t, w)
}

func body(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func id(m map[string]any) uint {
	return uint(m["id"].(float64))
}

// seed creates an active client and a 25000 haircut.
func (a *testAPI) seed() (client, service map[string]any) {
	client = a.create("/api/clientes", map[string]any{
		"nombre":   "Laura",
		"apellido": "Pérez",
		"telefono": "+573001112233",
		"email":    "laura@correo.co",
	})
	service = a.create("/api/servicios", map[string]any{
		"nombre_servicio":   "Corte dama",
		"precio":            25000,
		"duracion_estimada": "00:30",
		"categoria":         "Cabello",
	})
	return client, service
}

// ======================================================
// AUTH
// ======================================================

func TestAPIRequiresToken(t *testing.T) {
	a := newAPI(t, nil)

	a.token = ""
	w := a.do(http.MethodGet, "/api/clientes", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = a.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	a := newAPI(t, nil)

	w := a.do(http.MethodPost, "/api/auth/login", map[string]any{
		"email":    staffEmail,
		"password": "nope",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid_credentials", body(t, w)["error_code"])
}

func TestLogoutRevokesToken(t *testing.T) {
	revoked := memRevoker{}
	a := newAPI(t, revoked)

	w := a.do(http.MethodGet, "/api/me", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, staffEmail, body(t, w)["user"].(map[string]any)["email"])

	w = a.do(http.MethodPost, "/api/auth/logout", nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Len(t, revoked, 1)

	w = a.do(http.MethodGet, "/api/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "token_revoked", body(t, w)["error_code"])
}

// ======================================================
// CLIENTES
// ======================================================

func TestClientUniquenessAmongActive(t *testing.T) {
	a := newAPI(t, nil)
	first := a.create("/api/clientes", map[string]any{"nombre": "Laura", "email": "laura@correo.co"})

	w := a.do(http.MethodPost, "/api/clientes", map[string]any{"nombre": "Otra", "email": "LAURA@correo.co"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	errs := body(t, w)["errors"].(map[string]any)
	assert.Contains(t, errs, "email")

	w = a.do(http.MethodPost, fmt.Sprintf("/api/clientes/%d/desactivar", id(first)), nil)
	require.Equal(t, http.StatusOK, w.Code)

	a.create("/api/clientes", map[string]any{"nombre": "Otra", "email": "laura@correo.co"})

	w = a.do(http.MethodGet, "/api/clientes?activo=true&q=otra", nil)
	require.Equal(t, http.StatusOK, w.Code)
	page := body(t, w)
	assert.EqualValues(t, 1, page["total"])
}

func TestClientRequiresName(t *testing.T) {
	a := newAPI(t, nil)

	w := a.do(http.MethodPost, "/api/clientes", map[string]any{"apellido": "Sin nombre"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, body(t, w)["errors"], "nombre")
}

func TestDeleteClientCascades(t *testing.T) {
	a := newAPI(t, nil)
	client, service := a.seed()

	ap := a.create("/api/citas", map[string]any{
		"cliente_id":      id(client),
		"fecha_hora_cita": futureSlot,
		"detalles":        []map[string]any{{"servicio_id": id(service)}},
	})
	a.create("/api/pagos", map[string]any{"cita_id": id(ap), "monto_total": 1000, "metodo_pago": "EFECTIVO"})

	w := a.do(http.MethodDelete, fmt.Sprintf("/api/clientes/%d", id(client)), nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	var count int64
	a.db.Model(&models.Appointment{}).Count(&count)
	assert.Zero(t, count)
	a.db.Model(&models.Payment{}).Count(&count)
	assert.Zero(t, count)
	a.db.Model(&models.AppointmentItem{}).Count(&count)
	assert.Zero(t, count)
}

// ======================================================
// SERVICIOS
// ======================================================

func TestServiceValidation(t *testing.T) {
	a := newAPI(t, nil)

	w := a.do(http.MethodPost, "/api/servicios", map[string]any{
		"nombre_servicio":   "Tinte",
		"precio":            -1,
		"duracion_estimada": "01:75",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	errs := body(t, w)["errors"].(map[string]any)
	assert.Contains(t, errs, "precio")
	assert.Contains(t, errs, "duracion_estimada")

	for _, price := range []string{"0.004", "123456789012.5"} {
		w = a.do(http.MethodPost, "/api/servicios", map[string]any{
			"nombre_servicio":   "Tinte",
			"precio":            price,
			"duracion_estimada": "5124095576030432:00",
		})
		require.Equal(t, http.StatusBadRequest, w.Code, price)
		errs = body(t, w)["errors"].(map[string]any)
		assert.Contains(t, errs, "precio", price)
		assert.Contains(t, errs, "duracion_estimada", price)
	}

	svc := a.create("/api/servicios", map[string]any{
		"nombre_servicio":   "Tinte",
		"precio":            35000,
		"duracion_estimada": "01:30",
	})
	assert.Equal(t, "01:30:00", svc["duracion_estimada"])
	assert.EqualValues(t, 90, svc["duracion_en_minutos"])

	w = a.do(http.MethodPost, "/api/servicios", map[string]any{
		"nombre_servicio":   "Tinte",
		"precio":            1,
		"duracion_estimada": "00:10",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, body(t, w)["errors"], "nombre_servicio")
}

func TestServiceInUseRules(t *testing.T) {
	a := newAPI(t, nil)
	client, service := a.seed()
	svcPath := fmt.Sprintf("/api/servicios/%d", id(service))

	ap := a.create("/api/citas", map[string]any{
		"cliente_id":      id(client),
		"fecha_hora_cita": futureSlot,
		"detalles":        []map[string]any{{"servicio_id": id(service)}},
	})

	w := a.do(http.MethodPost, svcPath+"/desactivar", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "service_has_active_bookings", body(t, w)["error_code"])

	w = a.do(http.MethodPatch, svcPath, map[string]any{"activo": false})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "service_has_active_bookings", body(t, w)["error_code"])

	w = a.do(http.MethodPost, fmt.Sprintf("/api/citas/%d/cancelar", id(ap)), map[string]any{"motivo": "viaje"})
	require.Equal(t, http.StatusOK, w.Code)

	w = a.do(http.MethodPost, svcPath+"/desactivar", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = a.do(http.MethodDelete, svcPath, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "service_in_use", body(t, w)["error_code"])
}

func TestServiceImageWithoutStorage(t *testing.T) {
	a := newAPI(t, nil)
	_, service := a.seed()

	w := a.do(http.MethodPost, fmt.Sprintf("/api/servicios/%d/imagen", id(service)), nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "storage_not_configured", body(t, w)["error_code"])
}

// ======================================================
// CITAS + PAGOS
// ======================================================

func TestAppointmentLifecycle(t *testing.T) {
	a := newAPI(t, nil)
	client, service := a.seed()

	ap := a.create("/api/citas", map[string]any{
		"cliente_id":      id(client),
		"fecha_hora_cita": futureSlot,
		"detalles": []map[string]any{
			{"servicio_id": id(service), "cantidad_servicios": 2, "descuento": 10},
		},
	})
	assert.Equal(t, "PENDIENTE", ap["estado_cita"])
	assert.Equal(t, "45000", ap["monto_total"])
	path := fmt.Sprintf("/api/citas/%d", id(ap))

	w := a.do(http.MethodPost, path+"/completar", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = a.do(http.MethodPost, path+"/confirmar", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = a.do(http.MethodGet, path+"/servicios", nil)
	require.Equal(t, http.StatusOK, w.Code)
	svc := body(t, w)
	assert.EqualValues(t, 1, svc["cantidad_servicios"])
	assert.Equal(t, "$45,000", svc["monto_total_formateado"])

	w = a.do(http.MethodGet, "/api/citas?estado=CONFIRMADA&fecha_desde=2099-06-01&fecha_hasta=2099-06-01", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, body(t, w)["total"])

	w = a.do(http.MethodGet, "/api/citas/mes?year=2099&month=6", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body(t, w)["citas"], 1)

	w = a.do(http.MethodGet, "/api/citas?estado=RARO", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAppointmentRejectsPastDate(t *testing.T) {
	a := newAPI(t, nil)
	client, _ := a.seed()

	w := a.do(http.MethodPost, "/api/citas", map[string]any{
		"cliente_id":      id(client),
		"fecha_hora_cita": "2001-01-01T10:00",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, body(t, w)["errors"], "fecha_hora_cita")
}

func TestDuplicateLineItem(t *testing.T) {
	a := newAPI(t, nil)
	client, service := a.seed()

	ap := a.create("/api/citas", map[string]any{
		"cliente_id":      id(client),
		"fecha_hora_cita": futureSlot,
		"detalles":        []map[string]any{{"servicio_id": id(service)}},
	})

	w := a.do(http.MethodPost, "/api/detalles", map[string]any{"cita_id": id(ap), "servicio_id": id(service)})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, body(t, w)["errors"], "servicio_id")

	w = a.do(http.MethodGet, fmt.Sprintf("/api/detalles?cita_id=%d", id(ap)), nil)
	require.Equal(t, http.StatusOK, w.Code)
	items := body(t, w)["data"].([]any)
	require.Len(t, items, 1)

	itemID := uint(items[0].(map[string]any)["id"].(float64))
	w = a.do(http.MethodPost, fmt.Sprintf("/api/detalles/%d/aplicar-descuento", itemID), map[string]any{"descuento": 20})
	require.Equal(t, http.StatusOK, w.Code)
	detail := body(t, w)["detalle"].(map[string]any)
	assert.Equal(t, "20000", detail["subtotal"])
}

func TestFullPaymentCompletesAppointment(t *testing.T) {
	a := newAPI(t, nil)
	client, service := a.seed()

	ap := a.create("/api/citas", map[string]any{
		"cliente_id":      id(client),
		"fecha_hora_cita": futureSlot,
		"detalles":        []map[string]any{{"servicio_id": id(service)}},
	})

	pending := a.create("/api/pagos", map[string]any{
		"cita_id":     id(ap),
		"monto_total": 25000,
		"metodo_pago": "tarjeta",
	})
	assert.Equal(t, "PENDIENTE", pending["estado_pago"])

	w := a.do(http.MethodPost, fmt.Sprintf("/api/pagos/%d/marcar-pagado", id(pending)), nil)
	require.Equal(t, http.StatusOK, w.Code)
	res := body(t, w)
	assert.Equal(t, true, res["cita_completada"])
	assert.Equal(t, "PENDIENTE", res["estado_anterior"])

	w = a.do(http.MethodGet, fmt.Sprintf("/api/citas/%d", id(ap)), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "COMPLETADA", body(t, w)["estado_cita"])

	w = a.do(http.MethodPost, fmt.Sprintf("/api/pagos/%d/marcar-pagado", id(pending)), nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "payment_already_paid", body(t, w)["error_code"])

	w = a.do(http.MethodGet, fmt.Sprintf("/api/pagos/por-cita?cita_id=%d", id(ap)), nil)
	require.Equal(t, http.StatusOK, w.Code)
	totals := body(t, w)["totales"].(map[string]any)
	assert.Equal(t, "25000", totals["total_pagado"])

	w = a.do(http.MethodGet, "/api/pagos/estadisticas", nil)
	require.Equal(t, http.StatusOK, w.Code)
	summary := body(t, w)["resumen"].(map[string]any)
	assert.EqualValues(t, 1, summary["total_pagos"])

	w = a.do(http.MethodPost, fmt.Sprintf("/api/pagos/%d/checkout", id(pending)), nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestPaymentRefund(t *testing.T) {
	a := newAPI(t, nil)
	client, service := a.seed()

	ap := a.create("/api/citas", map[string]any{
		"cliente_id":      id(client),
		"fecha_hora_cita": futureSlot,
		"detalles":        []map[string]any{{"servicio_id": id(service)}},
	})
	paid := a.create("/api/pagos", map[string]any{
		"cita_id":     id(ap),
		"monto_total": 10000,
		"metodo_pago": "EFECTIVO",
		"estado_pago": "PAGADO",
	})

	w := a.do(http.MethodPost, fmt.Sprintf("/api/pagos/%d/reembolsar", id(paid)), map[string]any{"motivo": "error de cobro"})
	require.Equal(t, http.StatusOK, w.Code)
	p := body(t, w)["pago"].(map[string]any)
	assert.Equal(t, "CANCELADO", p["estado_pago"])
	assert.Contains(t, p["notas_pago"], "[REEMBOLSO] error de cobro")

	w = a.do(http.MethodGet, "/api/pagos?estado_pago=CANCELADO&monto_minimo=10000", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, body(t, w)["total"])
}

// ======================================================
// CONFIGURACION / AUDITORIA
// ======================================================

func TestSettingsTimezone(t *testing.T) {
	a := newAPI(t, nil)

	w := a.do(http.MethodGet, "/api/configuracion", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "America/Bogota", body(t, w)["timezone"])

	w = a.do(http.MethodPatch, "/api/configuracion", map[string]any{"timezone": "Mars/Olympus"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = a.do(http.MethodPatch, "/api/configuracion", map[string]any{"timezone": "America/Mexico_City", "nombre_salon": "Bella"})
	require.Equal(t, http.StatusOK, w.Code)
	s := body(t, w)
	assert.Equal(t, "America/Mexico_City", s["timezone"])
	assert.Equal(t, "Bella", s["nombre_salon"])
}

func TestAuditLogsPaging(t *testing.T) {
	a := newAPI(t, nil)
	for i := 0; i < 3; i++ {
		require.NoError(t, a.db.Create(&models.AuditLog{Action: "client_created", Entity: "client"}).Error)
	}
	require.NoError(t, a.db.Create(&models.AuditLog{Action: "login", Entity: "user"}).Error)

	w := a.do(http.MethodGet, "/api/audit-logs?entity=client&limit=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	out := body(t, w)
	assert.EqualValues(t, 3, out["total"])
	assert.Len(t, out["logs"], 2)
}

// ======================================================
// WEB
// ======================================================

func TestWebLoginAndAgenda(t *testing.T) {
	a := newAPI(t, nil)
	a.seed()

	w := httptest.NewRecorder()
	a.r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/web/agenda", nil))
	require.Equal(t, http.StatusSeeOther, w.Code)

	form := url.Values{"email": {staffEmail}, "password": {staffPassword}}
	req := httptest.NewRequest(http.MethodPost, "/web/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w = httptest.NewRecorder()
	a.r.ServeHTTP(w, req)
	require.Equal(t, http.StatusSeeOther, w.Code)

	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.AccessTokenCookie {
			cookie = c
		}
	}
	require.NotNil(t, cookie)

	for _, path := range []string{"/web/agenda?mes=2099-06", "/web/clientes?estado=active", "/web/servicios"} {
		req = httptest.NewRequest(http.MethodGet, path, nil)
		req.AddCookie(cookie)
		w = httptest.NewRecorder()
		a.r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
	assert.Contains(t, w.Body.String(), "Corte dama")
	assert.Contains(t, w.Body.String(), "$25,000")
}
