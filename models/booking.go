package models

import "time"

// BookingStatusConfirmed is the only status this system ever writes.
const BookingStatusConfirmed = "CONFIRMED"

// Booking represents a confirmed appointment record. Records are append-only:
// no two confirmed records may share the same (Date, Time, Officer).
type Booking struct {
	ID        string    `bson:"id" json:"id"`                 // Unique booking identifier (UUID)
	UserID    string    `bson:"user_id" json:"user_id"`       // Chat identifier of the citizen
	Name      string    `bson:"name" json:"name"`             // Full name as entered
	Phone     string    `bson:"phone" json:"phone"`           // Contact number, stored verbatim
	Email     string    `bson:"email" json:"email"`           // Email address, stored verbatim
	Officer   string    `bson:"officer" json:"officer"`       // "DO" or "ADO"
	Purpose   string    `bson:"purpose" json:"purpose"`       // Stated purpose of the visit
	Date      string    `bson:"date" json:"date"`             // Appointment date in "DD/MM/YYYY" format
	Time      string    `bson:"time" json:"time"`             // Appointment time in "HH:MM" (24-hour)
	Status    string    `bson:"status" json:"status"`         // Always "CONFIRMED"
	CreatedAt time.Time `bson:"created_at" json:"created_at"` // Timestamp when the record was written
}
