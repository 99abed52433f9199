package model

import (
	"time"
)

type Patient struct {
	ID               string     `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	PatientID        string     `json:"patient_id" bson:"patient_id" validate:"required,min=3,max=20"`
	MRN              string     `json:"mrn" bson:"mrn" validate:"required,min=1,max=50"`
	FirstName        string     `json:"first_name" bson:"first_name" validate:"required,min=1,max=100"`
	LastName         string     `json:"last_name" bson:"last_name" validate:"omitempty,max=100"`
	Age              *int       `json:"age,omitempty" bson:"age,omitempty" validate:"omitempty,min=0,max=150"`
	Gender           string     `json:"gender" bson:"gender" validate:"required,oneof=Male Female Other"`
	Phone            string     `json:"phone,omitempty" bson:"phone,omitempty" validate:"omitempty,max=50"`
	AltPhone1        string     `json:"alt_phone_1,omitempty" bson:"alt_phone_1,omitempty" validate:"omitempty,max=50"`
	AltPhone2        string     `json:"alt_phone_2,omitempty" bson:"alt_phone_2,omitempty" validate:"omitempty,max=50"`
	CancerSite       string     `json:"cancer_site,omitempty" bson:"cancer_site,omitempty" validate:"omitempty,max=50"`
	Stage            string     `json:"stage,omitempty" bson:"stage,omitempty" validate:"omitempty,max=20"`
	Diagnosis        string     `json:"diagnosis,omitempty" bson:"diagnosis,omitempty" validate:"omitempty,max=500"`
	RegistrationYear *int       `json:"registration_year,omitempty" bson:"registration_year,omitempty" validate:"omitempty,min=1900"`
	Address          string     `json:"address,omitempty" bson:"address,omitempty" validate:"omitempty,max=500"`
	City             string     `json:"city,omitempty" bson:"city,omitempty" validate:"omitempty,max=50"`
	State            string     `json:"state,omitempty" bson:"state,omitempty" validate:"omitempty,max=50"`
	EstimatedDOB     time.Time  `json:"estimated_dob" bson:"estimated_dob" validate:"omitempty"`
	LoggedAt         *time.Time `json:"logged_at,omitempty" bson:"logged_at,omitempty" validate:"omitempty"`
	CreatedAt        time.Time  `json:"created_at" bson:"created_at" validate:"omitempty"`
}

type PatientUpdate struct {
	FirstName        string     `json:"first_name,omitempty" validate:"omitempty,min=1,max=100"`
	LastName         *string    `json:"last_name,omitempty" validate:"omitempty,max=100"`
	Age              *int       `json:"age,omitempty" validate:"omitempty,min=0,max=150"`
	Gender           string     `json:"gender,omitempty" validate:"omitempty,oneof=Male Female Other"`
	Phone            *string    `json:"phone,omitempty" validate:"omitempty,max=50"`
	AltPhone1        *string    `json:"alt_phone_1,omitempty" validate:"omitempty,max=50"`
	AltPhone2        *string    `json:"alt_phone_2,omitempty" validate:"omitempty,max=50"`
	CancerSite       string     `json:"cancer_site,omitempty" validate:"omitempty,max=50"`
	Stage            *string    `json:"stage,omitempty" validate:"omitempty,max=20"`
	Diagnosis        *string    `json:"diagnosis,omitempty" validate:"omitempty,max=500"`
	RegistrationYear *int       `json:"registration_year,omitempty" validate:"omitempty,min=1900"`
	Address          *string    `json:"address,omitempty" validate:"omitempty,max=500"`
	City             *string    `json:"city,omitempty" validate:"omitempty,max=50"`
	State            *string    `json:"state,omitempty" validate:"omitempty,max=50"`
	LoggedAt         *time.Time `json:"logged_at,omitempty" validate:"omitempty"`
}
