package models

import (
	"time"
)

// Roles recognised by the login flow. Admin and pharmacy accounts live in the
// users table, doctors and nurses in staff, patients in patient.
const (
	RoleAdmin    = "admin"
	RolePharmacy = "pharmacy"
	RoleDoctor   = "doctor"
	RoleNurse    = "nurse"
	RolePatient  = "patient"
)

// Staff statuses.
const (
	StaffActive      = "active"
	StaffInactive    = "inactive"
	StaffUnavailable = "unavailable"
)

// Patient statuses.
const (
	PatientRegistered = "registered"
	PatientAdmitted   = "admitted"
	PatientDischarged = "discharged"
)

// User is a generic account (admin, pharmacy).
type User struct {
	ID        string    `gorm:"primaryKey;column:id" json:"id"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	Email     string    `gorm:"size:255;not null;unique;index;column:email" json:"email"`
	Password  string    `gorm:"size:255;not null;column:password" json:"-"`
	Role      string    `gorm:"size:50;not null;column:role" json:"role"`
	CreatedAt time.Time `gorm:"autoCreateTime;column:created_at" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

// Staff model (doctors and nurses).
type Staff struct {
	ID             string    `gorm:"primaryKey;column:id" json:"id"`
	StaffID        string    `gorm:"column:staff_id;index" json:"staffId"`
	Name           string    `gorm:"column:name;not null" json:"name"`
	Role           string    `gorm:"column:role;not null;index" json:"role"`
	Department     string    `gorm:"column:department;index" json:"department"`
	Specialization string    `gorm:"column:specialization" json:"specialization"`
	Qualifications string    `gorm:"column:qualifications" json:"qualifications"`
	Email          string    `gorm:"size:255;column:email;index" json:"email"`
	Phone          string    `gorm:"column:phone" json:"phone"`
	Status         string    `gorm:"column:status;not null;default:active" json:"status"`
	Password       string    `gorm:"size:255;column:password" json:"-"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Staff) TableName() string {
	return "staff"
}

// Contact is the nested contact block on a patient record.
type Contact struct {
	Email   string `gorm:"column:email;index" json:"email"`
	Phone   string `gorm:"column:phone" json:"phone"`
	Address string `gorm:"column:address" json:"address"`
}

// Insurance is the nested insurance block on a patient record.
type Insurance struct {
	Provider     string `gorm:"column:provider" json:"provider"`
	PolicyNumber string `gorm:"column:policy_number" json:"policyNumber"`
}

// Patient model. PatientID is the public identifier (P-xxxxxxxx, or
// EM-<date>-<code> for emergency admissions); ID is internal and never leaves
// the API un-stringified.
type Patient struct {
	ID               string    `gorm:"primaryKey;column:id" json:"id"`
	PatientID        string    `gorm:"column:patient_id;not null;unique;index" json:"patientId"`
	Name             string    `gorm:"column:name;not null" json:"name"`
	Age              int       `gorm:"column:age" json:"age"`
	Gender           string    `gorm:"column:gender" json:"gender"`
	BloodGroup       string    `gorm:"column:blood_group" json:"bloodGroup"`
	Type             string    `gorm:"column:type;not null;default:OPD" json:"type"`
	MedicalSpecialty string    `gorm:"column:medical_specialty" json:"medicalSpecialty"`
	Description      string    `gorm:"column:description" json:"description"`
	// Email is the legacy top-level field; newer records carry it under
	// Contact. Login matches either.
	Email          string    `gorm:"size:255;column:email;index" json:"email,omitempty"`
	Password       string    `gorm:"size:255;column:password" json:"-"`
	Contact        Contact   `gorm:"embedded;embeddedPrefix:contact_" json:"contact"`
	Insurance      Insurance `gorm:"embedded;embeddedPrefix:insurance_" json:"insurance"`
	Status         string    `gorm:"column:status;not null;default:registered;index" json:"status"`
	AssignedDoctor string    `gorm:"column:assigned_doctor;index" json:"assignedDoctor"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	Prescriptions []Prescription `gorm:"foreignKey:PatientID;references:PatientID" json:"-"`
	LabReports    []LabReport    `gorm:"foreignKey:PatientID;references:PatientID" json:"-"`
}

func (Patient) TableName() string {
	return "patient"
}

// InferredRole returns the stored role, falling back to patient for records
// that never carried one.
func (p *Patient) InferredRole() string {
	return RolePatient
}
