package model

import (
	"time"
)

// Treatment is one course of treatment delivered to a patient.
type Treatment struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	PatientID string    `json:"patient_id" bson:"patient_id" validate:"required,mongodb"`
	Modality  string    `json:"modality" bson:"modality" validate:"required,min=2,max=100"`
	StartedAt time.Time `json:"started_at" bson:"started_at" validate:"required"`
	Notes     string    `json:"notes,omitempty" bson:"notes,omitempty" validate:"omitempty,max=1000"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

type TreatmentUpdate struct {
	Modality  string     `json:"modality,omitempty" validate:"omitempty,min=2,max=100"`
	StartedAt *time.Time `json:"started_at,omitempty" validate:"omitempty"`
	Notes     *string    `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

// Investigation is one diagnostic test and its reported result.
type Investigation struct {
	ID         string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	PatientID  string    `json:"patient_id" bson:"patient_id" validate:"required,mongodb"`
	Name       string    `json:"name" bson:"name" validate:"required,min=2,max=200"`
	Result     string    `json:"result,omitempty" bson:"result,omitempty" validate:"omitempty,max=2000"`
	ReportedAt time.Time `json:"reported_at" bson:"reported_at" validate:"required"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

type InvestigationUpdate struct {
	Name       string     `json:"name,omitempty" validate:"omitempty,min=2,max=200"`
	Result     *string    `json:"result,omitempty" validate:"omitempty,max=2000"`
	ReportedAt *time.Time `json:"reported_at,omitempty" validate:"omitempty"`
}
