package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/snehasingla/Hospital-Management-System/internal/domain"
	"github.com/snehasingla/Hospital-Management-System/internal/handler"
	"github.com/snehasingla/Hospital-Management-System/internal/models"
	"github.com/snehasingla/Hospital-Management-System/internal/repository"
	"github.com/snehasingla/Hospital-Management-System/internal/router"
	"github.com/snehasingla/Hospital-Management-System/internal/service"
	"github.com/snehasingla/Hospital-Management-System/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type apptFixture struct {
	db        *gorm.DB
	apptRepo  *repository.AppointmentRepository
	notifRepo *repository.NotificationRepository
	handler   *handler.AppointmentHandler
	patient   *models.User
	doctor    *models.User
}

func newApptFixture(t *testing.T) *apptFixture {
	t.Helper()
	router.RegisterValidations()
	db := newTestDB(t)
	userRepo := repository.NewUserRepository(db)
	apptRepo := repository.NewAppointmentRepository(db)
	notifRepo := repository.NewNotificationRepository(db)
	notifSvc := service.NewNotificationService(notifRepo, ws.NewHub(), ws.NewRegistry())

	patient := &models.User{Name: "Jane Doe", Email: "jane@test.local", Role: domain.RolePatient}
	require.NoError(t, userRepo.Create(patient))
	doctor := &models.User{Name: "Dr. Gray", Email: "gray@test.local", Role: domain.RoleDoctor, Specialization: "Cardiology"}
	require.NoError(t, userRepo.Create(doctor))

	return &apptFixture{
		db:        db,
		apptRepo:  apptRepo,
		notifRepo: notifRepo,
		handler:   handler.NewAppointmentHandler(apptRepo, userRepo, notifSvc),
		patient:   patient,
		doctor:    doctor,
	}
}

func doJSON(r *gin.Engine, method, path string, payload interface{}) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func (f *apptFixture) bookRouter(userID uint) *gin.Engine {
	r := gin.New()
	r.POST("/api/appointments/book", authAs(userID, domain.RolePatient), f.handler.Book)
	return r
}

func (f *apptFixture) updateRouter(userID uint) *gin.Engine {
	r := gin.New()
	r.PATCH("/api/doctor/appointments/update/:id", authAs(userID, domain.RoleDoctor), f.handler.Update)
	return r
}

func TestBookCreatesPendingAppointmentAndNotifiesDoctor(t *testing.T) {
	f := newApptFixture(t)
	r := f.bookRouter(f.patient.ID)

	w := doJSON(r, http.MethodPost, "/api/appointments/book", gin.H{
		"doctorId": f.doctor.ID,
		"date":     "2026-09-10",
		"time":     "14:30",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	appts, err := f.apptRepo.ListByDoctor(f.doctor.ID)
	require.NoError(t, err)
	require.Len(t, appts, 1)
	assert.Equal(t, domain.AppointmentPending, appts[0].Status)
	assert.Equal(t, "14:30", appts[0].Time)

	// The doctor was offline: the push was a no-op but the feed recorded it.
	count, err := f.notifRepo.CountUnread(f.doctor.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	list, err := f.notifRepo.ListRecent(f.doctor.ID, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, domain.NotifAppointmentBooked, list[0].Type)
	assert.Contains(t, list[0].Message, "Jane Doe")
	require.NotNil(t, list[0].AppointmentID)
	assert.Equal(t, appts[0].ID, *list[0].AppointmentID)
}

func TestBookRejectsBadTimeSlot(t *testing.T) {
	f := newApptFixture(t)
	r := f.bookRouter(f.patient.ID)

	w := doJSON(r, http.MethodPost, "/api/appointments/book", gin.H{
		"doctorId": f.doctor.ID,
		"date":     "2026-09-10",
		"time":     "25:99",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBookUnknownDoctor(t *testing.T) {
	f := newApptFixture(t)
	r := f.bookRouter(f.patient.ID)

	w := doJSON(r, http.MethodPost, "/api/appointments/book", gin.H{
		"doctorId": 999,
		"date":     "2026-09-10",
		"time":     "14:30",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBookRefusesNonDoctorTarget(t *testing.T) {
	f := newApptFixture(t)
	r := f.bookRouter(f.patient.ID)

	// Booking "with" another patient must fail.
	w := doJSON(r, http.MethodPost, "/api/appointments/book", gin.H{
		"doctorId": f.patient.ID,
		"date":     "2026-09-10",
		"time":     "14:30",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateConfirmNotifiesPatient(t *testing.T) {
	f := newApptFixture(t)
	appt := &models.Appointment{PatientID: f.patient.ID, DoctorID: f.doctor.ID, Time: "10:00", Status: domain.AppointmentPending}
	require.NoError(t, f.apptRepo.Create(appt))

	r := f.updateRouter(f.doctor.ID)
	w := doJSON(r, http.MethodPatch, "/api/doctor/appointments/update/1", gin.H{"status": "confirmed"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	got, err := f.apptRepo.GetByID(appt.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.AppointmentConfirmed, got.Status)

	list, err := f.notifRepo.ListRecent(f.patient.ID, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, domain.NotifAppointmentConfirmed, list[0].Type)
}

func TestUpdateRescheduleKeepsMessageAndNewSlot(t *testing.T) {
	f := newApptFixture(t)
	appt := &models.Appointment{PatientID: f.patient.ID, DoctorID: f.doctor.ID, Time: "10:00", Status: domain.AppointmentPending}
	require.NoError(t, f.apptRepo.Create(appt))

	r := f.updateRouter(f.doctor.ID)
	w := doJSON(r, http.MethodPatch, "/api/doctor/appointments/update/1", gin.H{
		"status":            "rescheduled",
		"newDate":           "2026-09-12",
		"newTime":           "16:00",
		"rescheduleMessage": "Called away to surgery, moved to Saturday",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	got, err := f.apptRepo.GetByID(appt.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.AppointmentRescheduled, got.Status)
	assert.Equal(t, "16:00", got.Time)
	assert.Contains(t, got.RescheduleMessage, "Saturday")

	list, err := f.notifRepo.ListRecent(f.patient.ID, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, domain.NotifAppointmentRescheduled, list[0].Type)
}

func TestUpdateForeignAppointmentForbidden(t *testing.T) {
	f := newApptFixture(t)
	appt := &models.Appointment{PatientID: f.patient.ID, DoctorID: f.doctor.ID, Time: "10:00", Status: domain.AppointmentPending}
	require.NoError(t, f.apptRepo.Create(appt))

	otherDoctor := uint(777)
	r := f.updateRouter(otherDoctor)
	w := doJSON(r, http.MethodPatch, "/api/doctor/appointments/update/1", gin.H{"status": "confirmed"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// No notification was dispatched for the refused update.
	count, err := f.notifRepo.CountUnread(f.patient.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
