package domain

const (
	RolePatient = "patient"
	RoleDoctor  = "doctor"
	RoleAdmin   = "admin"
)

const (
	AppointmentPending     = "pending"
	AppointmentConfirmed   = "confirmed"
	AppointmentRescheduled = "rescheduled"
	AppointmentRejected    = "rejected"
)

// Notification types stored in the feed and pushed over the live channel.
const (
	NotifAppointmentBooked      = "appointment_booked"
	NotifAppointmentConfirmed   = "appointment_confirmed"
	NotifAppointmentRejected    = "appointment_rejected"
	NotifAppointmentRescheduled = "appointment_rescheduled"
)

// DefaultNotificationLimit caps the recent-notifications feed.
const DefaultNotificationLimit = 20

func ValidRole(role string) bool {
	return role == RolePatient || role == RoleDoctor || role == RoleAdmin
}
