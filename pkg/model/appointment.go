package model

import (
	"time"
)

const (
	AppointmentStatusScheduled = "scheduled"
	AppointmentStatusCompleted = "completed"
	AppointmentStatusCancelled = "cancelled"
)

type Appointment struct {
	ID         string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	PatientID  string    `json:"patient_id" bson:"patient_id" validate:"required,mongodb"`
	Department string    `json:"department" bson:"department" validate:"required,min=2,max=100"`
	Reason     string    `json:"reason,omitempty" bson:"reason,omitempty" validate:"omitempty,max=500"`
	StartTime  time.Time `json:"start_time" bson:"start_time" validate:"required"`
	EndTime    time.Time `json:"end_time" bson:"end_time" validate:"required,gtfield=StartTime"`
	Status     string    `json:"status" bson:"status" validate:"required,oneof=scheduled completed cancelled"`
	Notes      string    `json:"notes,omitempty" bson:"notes,omitempty" validate:"omitempty,max=1000"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

type AppointmentUpdate struct {
	Department string     `json:"department,omitempty" validate:"omitempty,min=2,max=100"`
	Reason     *string    `json:"reason,omitempty" validate:"omitempty,max=500"`
	StartTime  *time.Time `json:"start_time,omitempty" validate:"omitempty"`
	EndTime    *time.Time `json:"end_time,omitempty" validate:"omitempty"`
	Status     string     `json:"status,omitempty" validate:"omitempty,oneof=scheduled completed cancelled"`
	Notes      *string    `json:"notes,omitempty" validate:"omitempty,max=1000"`
}
