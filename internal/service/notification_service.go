package service

import (
	"log"

	"github.com/snehasingla/Hospital-Management-System/internal/domain"
	"github.com/snehasingla/Hospital-Management-System/internal/models"
	"github.com/snehasingla/Hospital-Management-System/internal/repository"
	"github.com/snehasingla/Hospital-Management-System/internal/ws"
)

// NotificationService is the single integration point between domain actions
// and the notification pipeline: it persists the record, then attempts live
// delivery. The two steps fail independently; neither failure propagates back
// to the domain action that triggered the notification.
type NotificationService struct {
	repo     *repository.NotificationRepository
	hub      *ws.Hub
	registry *ws.Registry
}

func NewNotificationService(repo *repository.NotificationRepository, hub *ws.Hub, registry *ws.Registry) *NotificationService {
	return &NotificationService{repo: repo, hub: hub, registry: registry}
}

// Notify creates and persists a notification, then pushes it to the user's
// delivery group if any session is connected. Persistence failures are logged
// and swallowed: the record is lost but the triggering action already
// succeeded. Pushing to an offline user is a silent no-op.
func (s *NotificationService) Notify(userID uint, notifType, title, message string, appointmentID *uint) *models.Notification {
	n := &models.Notification{
		UserID:        userID,
		Type:          notifType,
		Title:         title,
		Message:       message,
		AppointmentID: appointmentID,
	}
	if err := s.repo.Create(n); err != nil {
		log.Printf("[notify] persist failed for user %d (%s): %v", userID, notifType, err)
	}
	if s.registry == nil || s.hub == nil || !s.registry.IsOnline(userID) {
		return n
	}
	s.hub.PushToUser(userID, map[string]interface{}{
		"type":         "notification",
		"notification": n,
	})
	return n
}

// NotifyAppointmentBooked informs the doctor of a new booking.
func (s *NotificationService) NotifyAppointmentBooked(doctorID uint, patientName string, appointmentID uint) {
	s.Notify(doctorID, domain.NotifAppointmentBooked, "New Appointment Booked",
		patientName+" has booked an appointment with you", &appointmentID)
}

// NotifyAppointmentStatus informs the patient of a confirm/reject/reschedule
// decision on their appointment.
func (s *NotificationService) NotifyAppointmentStatus(patientID uint, status string, appointmentID uint) {
	var notifType, title, message string
	switch status {
	case domain.AppointmentConfirmed:
		notifType = domain.NotifAppointmentConfirmed
		title = "Appointment confirmed"
		message = "Your appointment has been confirmed"
	case domain.AppointmentRejected:
		notifType = domain.NotifAppointmentRejected
		title = "Appointment rejected"
		message = "Your appointment has been rejected"
	case domain.AppointmentRescheduled:
		notifType = domain.NotifAppointmentRescheduled
		title = "Appointment rescheduled"
		message = "Your appointment has been rescheduled"
	default:
		return
	}
	s.Notify(patientID, notifType, title, message, &appointmentID)
}
