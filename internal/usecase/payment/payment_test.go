package payment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/checkout"
	"github.com/BruksfildServices01/salon-scheduler/internal/db/dbtest"
	apdomain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/payment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

var fixedNow = time.Date(2030, 5, 10, 14, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

type fixture struct {
	db   *gorm.DB
	repo domain.Repository
	ap   models.Appointment
}

// setup creates an appointment worth 80000 in the given status.
func setup(t *testing.T, status apdomain.Status) *fixture {
	t.Helper()

	db := dbtest.Open(t)
	f := &fixture{db: db, repo: repository.NewPaymentGormRepository(db)}

	client := models.Client{FirstName: "Ana", LastName: "Gómez", Active: true}
	require.NoError(t, db.Create(&client).Error)

	corte := models.Service{Name: "Corte", Price: dec(25000), DurationSeconds: 1800, Active: true}
	tinte := models.Service{Name: "Tinte", Price: dec(35000), DurationSeconds: 3600, Active: true}
	require.NoError(t, db.Create(&corte).Error)
	require.NoError(t, db.Create(&tinte).Error)

	f.ap = models.Appointment{
		ClientID:    client.ID,
		ScheduledAt: fixedNow.Add(time.Hour),
		Status:      string(status),
	}
	require.NoError(t, db.Create(&f.ap).Error)
	require.NoError(t, db.Create(&models.AppointmentItem{
		AppointmentID: f.ap.ID, ServiceID: corte.ID, AgreedPrice: dec(25000), Quantity: 2, Discount: dec(10),
	}).Error)
	require.NoError(t, db.Create(&models.AppointmentItem{
		AppointmentID: f.ap.ID, ServiceID: tinte.ID, AgreedPrice: dec(35000), Quantity: 1,
	}).Error)

	return f
}

func (f *fixture) appointmentStatus(t *testing.T) string {
	t.Helper()
	var ap models.Appointment
	require.NoError(t, f.db.First(&ap, f.ap.ID).Error)
	return ap.Status
}

func (f *fixture) record(t *testing.T, amount int64, status domain.Status) *models.Payment {
	t.Helper()
	uc := NewRecordPayment(f.repo, nil, nil)
	uc.now = clock
	p, err := uc.Execute(context.Background(), RecordPaymentInput{
		AppointmentID: f.ap.ID,
		Amount:        dec(amount),
		Method:        "efectivo",
		Status:        string(status),
	})
	require.NoError(t, err)
	return p
}

// ======================================================
// Completion side effect
// ======================================================

func TestMarkPaidFullAmountCompletesAppointment(t *testing.T) {
	f := setup(t, apdomain.StatusPending)
	p := f.record(t, 80000, domain.StatusPending)
	assert.Equal(t, string(apdomain.StatusPending), f.appointmentStatus(t))

	uc := NewMarkPaid(f.repo, nil, nil)
	uc.now = clock
	res, err := uc.Execute(context.Background(), p.ID, nil)
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusPending), res.PreviousStatus)
	assert.Equal(t, string(domain.StatusPaid), res.Payment.Status)
	assert.True(t, res.AppointmentCompleted)
	assert.Equal(t, string(apdomain.StatusCompleted), f.appointmentStatus(t))
}

func TestPartialPaymentLeavesAppointmentOpen(t *testing.T) {
	f := setup(t, apdomain.StatusConfirmed)
	f.record(t, 50000, domain.StatusPaid)

	assert.Equal(t, string(apdomain.StatusConfirmed), f.appointmentStatus(t))
}

func TestCreatePaidCompletesAppointment(t *testing.T) {
	f := setup(t, apdomain.StatusConfirmed)
	p := f.record(t, 90000, domain.StatusPaid)

	assert.Equal(t, string(apdomain.StatusCompleted), f.appointmentStatus(t))
	assert.Equal(t, string(apdomain.StatusCompleted), p.Appointment.Status)
}

func TestUpdateToPaidCompletesAppointment(t *testing.T) {
	f := setup(t, apdomain.StatusConfirmed)
	p := f.record(t, 80000, domain.StatusPending)

	uc := NewUpdatePayment(f.repo, nil, nil)
	uc.now = clock
	paid := "PAGADO"
	_, err := uc.Execute(context.Background(), UpdatePaymentInput{ID: p.ID, Status: &paid})
	require.NoError(t, err)

	assert.Equal(t, string(apdomain.StatusCompleted), f.appointmentStatus(t))

	pending := "PENDIENTE"
	_, err = uc.Execute(context.Background(), UpdatePaymentInput{ID: p.ID, Status: &pending})
	assert.True(t, httperr.IsBusiness(err, "payment_already_paid"))
}

func TestPaidPaymentCannotMoveToAnotherAppointment(t *testing.T) {
	f := setup(t, apdomain.StatusConfirmed)
	p := f.record(t, 80000, domain.StatusPaid)

	other := models.Appointment{ClientID: f.ap.ClientID, ScheduledAt: fixedNow.Add(2 * time.Hour), Status: string(apdomain.StatusPending)}
	require.NoError(t, f.db.Create(&other).Error)

	uc := NewUpdatePayment(f.repo, nil, nil)
	uc.now = clock
	_, err := uc.Execute(context.Background(), UpdatePaymentInput{ID: p.ID, AppointmentID: &other.ID})

	fe, ok := httperr.AsFieldErrors(err)
	require.True(t, ok, "expected field errors, got %v", err)
	assert.Equal(t, []string{msgPaidMove}, fe["cita_id"])

	var stored models.Payment
	require.NoError(t, f.db.First(&stored, p.ID).Error)
	assert.Equal(t, f.ap.ID, stored.AppointmentID)
}

func TestCompletedAppointmentStaysCompleted(t *testing.T) {
	f := setup(t, apdomain.StatusCompleted)
	p := f.record(t, 80000, domain.StatusPending)

	res, err := NewMarkPaid(f.repo, nil, nil).Execute(context.Background(), p.ID, nil)
	require.NoError(t, err)

	assert.False(t, res.AppointmentCompleted)
	assert.Equal(t, string(apdomain.StatusCompleted), f.appointmentStatus(t))
}

func TestMarkPaidOnCancelledAppointmentRollsBack(t *testing.T) {
	f := setup(t, apdomain.StatusConfirmed)
	p := f.record(t, 80000, domain.StatusPending)
	require.NoError(t, f.db.Model(&models.Appointment{}).Where("id = ?", f.ap.ID).
		Update("status", string(apdomain.StatusCancelled)).Error)

	_, err := NewMarkPaid(f.repo, nil, nil).Execute(context.Background(), p.ID, nil)
	assert.True(t, httperr.IsBusiness(err, "appointment_cancelled"))

	var stored models.Payment
	require.NoError(t, f.db.First(&stored, p.ID).Error)
	assert.Equal(t, string(domain.StatusPending), stored.Status)
}

func TestMarkPaidTwiceIsRejected(t *testing.T) {
	f := setup(t, apdomain.StatusConfirmed)
	p := f.record(t, 10000, domain.StatusPaid)

	_, err := NewMarkPaid(f.repo, nil, nil).Execute(context.Background(), p.ID, nil)
	assert.True(t, httperr.IsBusiness(err, "payment_already_paid"))
}

// ======================================================
// Record / refund
// ======================================================

func TestRecordRejectsCancelledAppointment(t *testing.T) {
	f := setup(t, apdomain.StatusCancelled)

	_, err := NewRecordPayment(f.repo, nil, nil).Execute(context.Background(), RecordPaymentInput{
		AppointmentID: f.ap.ID,
		Amount:        dec(1000),
		Method:        "EFECTIVO",
	})

	fe, ok := httperr.AsFieldErrors(err)
	require.True(t, ok)
	assert.Contains(t, fe, "cita_id")
}

func TestRecordValidatesFields(t *testing.T) {
	f := setup(t, apdomain.StatusPending)

	_, err := NewRecordPayment(f.repo, nil, nil).Execute(context.Background(), RecordPaymentInput{
		AppointmentID: f.ap.ID,
		Amount:        dec(0),
		Method:        "bitcoin",
		Status:        "perdido",
	})

	fe, ok := httperr.AsFieldErrors(err)
	require.True(t, ok)
	assert.Contains(t, fe, "monto_total")
	assert.Contains(t, fe, "metodo_pago")
	assert.Contains(t, fe, "estado_pago")
}

func TestRecordDefaultsPaidAtToNow(t *testing.T) {
	f := setup(t, apdomain.StatusPending)
	p := f.record(t, 1000, "")

	assert.Equal(t, string(domain.StatusPending), p.Status)
	assert.True(t, p.PaidAt.Equal(fixedNow))
}

func TestRefundOnlyFromPaid(t *testing.T) {
	f := setup(t, apdomain.StatusConfirmed)
	pending := f.record(t, 1000, domain.StatusPending)
	paid := f.record(t, 2000, domain.StatusPaid)
	uc := NewRefund(f.repo, nil, nil)

	_, err := uc.Execute(context.Background(), pending.ID, "x", nil)
	assert.True(t, httperr.IsBusiness(err, "payment_not_paid"))

	out, err := uc.Execute(context.Background(), paid.ID, "cliente insatisfecho", nil)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), out.Status)
	assert.Contains(t, out.Notes, "[REEMBOLSO] cliente insatisfecho")

	update := NewUpdatePayment(f.repo, nil, nil)
	notes := "editado"
	_, err = update.Execute(context.Background(), UpdatePaymentInput{ID: paid.ID, Notes: &notes})
	assert.True(t, httperr.IsBusiness(err, "payment_cancelled"))
}

// ======================================================
// Aggregates
// ======================================================

func TestStatsAndTotalsByAppointment(t *testing.T) {
	f := setup(t, apdomain.StatusConfirmed)
	f.record(t, 10000, domain.StatusPaid)
	f.record(t, 20000, domain.StatusPending)
	refunded := f.record(t, 30000, domain.StatusPaid)
	_, err := NewRefund(f.repo, nil, nil).Execute(context.Background(), refunded.ID, "", nil)
	require.NoError(t, err)

	stats, err := NewPaymentStats(f.repo).Execute(context.Background(), ListPaymentsInput{})
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.Summary.Count)
	assert.True(t, dec(60000).Equal(stats.Summary.Total), stats.Summary.Total.String())
	assert.True(t, dec(20000).Equal(stats.Summary.Average))
	assert.Equal(t, int64(1), stats.ByStatus["PAGADO"].Count)
	assert.Equal(t, int64(1), stats.ByStatus["CANCELADO"].Count)
	assert.Equal(t, int64(3), stats.ByMethod["EFECTIVO"].Count)
	assert.Zero(t, stats.ByMethod["CHEQUE"].Count)

	payments, totals, err := NewPaymentsByAppointment(f.repo).Execute(context.Background(), f.ap.ID)
	require.NoError(t, err)
	assert.Len(t, payments, 3)
	assert.True(t, dec(10000).Equal(totals.Paid))
	assert.True(t, dec(20000).Equal(totals.Pending))
	assert.True(t, dec(30000).Equal(totals.Overall))
}

func TestListFilters(t *testing.T) {
	f := setup(t, apdomain.StatusConfirmed)
	f.record(t, 10000, domain.StatusPaid)
	f.record(t, 20000, domain.StatusPending)
	uc := NewListPayments(f.repo)
	ctx := context.Background()

	minAmount := dec(15000)
	out, total, err := uc.Execute(ctx, ListPaymentsInput{MinAmount: &minAmount})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.True(t, dec(20000).Equal(out[0].Amount))

	_, total, err = uc.Execute(ctx, ListPaymentsInput{Status: "pagado", Query: "gómez"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	_, _, err = uc.Execute(ctx, ListPaymentsInput{Method: "oro"})
	_, ok := httperr.AsFieldErrors(err)
	assert.True(t, ok)
}

// ======================================================
// Checkout
// ======================================================

type fakeProvider struct {
	got checkout.Request
	err error
}

func (p *fakeProvider) CreatePreference(_ context.Context, req checkout.Request) (*checkout.Result, error) {
	p.got = req
	if p.err != nil {
		return nil, p.err
	}
	return &checkout.Result{PreferenceID: "pref-123", InitPoint: "https://mp.example/init"}, nil
}

func TestCheckoutStoresPreference(t *testing.T) {
	f := setup(t, apdomain.StatusConfirmed)
	p := f.record(t, 80000, domain.StatusPending)
	provider := &fakeProvider{}

	res, err := NewCreateCheckout(f.repo, provider, nil).Execute(context.Background(), p.ID, nil)
	require.NoError(t, err)

	assert.Equal(t, "https://mp.example/init", res.InitPoint)
	require.Len(t, provider.got.Lines, 1)
	assert.True(t, dec(80000).Equal(provider.got.Lines[0].UnitPrice))

	var stored models.Payment
	require.NoError(t, f.db.First(&stored, p.ID).Error)
	assert.Equal(t, "pref-123", stored.Reference)
}

func TestCheckoutRequiresPendingAndProvider(t *testing.T) {
	f := setup(t, apdomain.StatusConfirmed)
	paid := f.record(t, 1000, domain.StatusPaid)
	pending := f.record(t, 1000, domain.StatusPending)

	_, err := NewCreateCheckout(f.repo, &fakeProvider{}, nil).Execute(context.Background(), paid.ID, nil)
	assert.True(t, httperr.IsBusiness(err, "payment_not_pending"))

	_, err = NewCreateCheckout(f.repo, nil, nil).Execute(context.Background(), pending.ID, nil)
	assert.True(t, httperr.IsBusiness(err, "checkout_not_configured"))

	boom := errors.New("mp down")
	_, err = NewCreateCheckout(f.repo, &fakeProvider{err: boom}, nil).Execute(context.Background(), pending.ID, nil)
	assert.ErrorIs(t, err, boom)
}
