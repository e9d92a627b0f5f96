package domain

import "time"

// AssessmentRecord guarda el resultado de una clasificacion para reportes.
type AssessmentRecord struct {
	ID        string              `json:"id"`
	UserID    string              `json:"userId,omitempty"`
	Variant   AssessmentVariant   `json:"variant"`
	Profile   ConstitutionProfile `json:"profile"`
	CreatedAt time.Time           `json:"createdAt"`
}

// BookingEvent llega desde el servicio de reservas cuando una cita se confirma.
type BookingEvent struct {
	Type          string `json:"type"`
	BookingID     string `json:"bookingId"`
	PatientID     string `json:"patientId"`
	TemplateID    string `json:"templateId"`
	ClinicName    string `json:"clinicName"`
	ScheduledDate string `json:"scheduledDate"`
	ScheduledTime string `json:"scheduledTime"`
}

const BookingEventConfirmed = "booking.confirmed"
