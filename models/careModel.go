package models

import (
	"time"
)

// Admission types.
const (
	AdmissionOPD       = "OPD"
	AdmissionIPD       = "IPD"
	AdmissionEmergency = "emergency"
)

// Admission statuses.
const (
	AdmissionAdmitted   = "admitted"
	AdmissionDischarged = "discharged"
)

// Ward model. BedsTotal fixes the bed range for the occupancy grid; the
// baseline seed is 5 wards of 10 beds.
type Ward struct {
	ID        int    `gorm:"primaryKey;column:id" json:"id"`
	Name      string `gorm:"column:name;not null" json:"name"`
	Specialty string `gorm:"column:specialty;not null;default:General" json:"specialty"`
	Type      string `gorm:"column:type;not null;default:general" json:"type"`
	BedsTotal int    `gorm:"column:beds_total;not null" json:"bedsTotal"`
}

func (Ward) TableName() string {
	return "ward"
}

// Admission records a patient occupying a (ward, bed) slot. AssignedDoctor is
// a weak reference into staff, resolved by lookup. A partial unique index on
// (ward_number, bed_number) where status = 'admitted' makes the insert the
// conflict check; see database.InitDB.
type Admission struct {
	ID              uint       `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	PatientID       string     `gorm:"column:patient_id;not null;index" json:"patientId"`
	WardNumber      int        `gorm:"column:ward_number;not null" json:"wardNumber"`
	BedNumber       int        `gorm:"column:bed_number;not null" json:"bedNumber"`
	Type            string     `gorm:"column:type;not null" json:"type"`
	Status          string     `gorm:"column:status;not null;default:admitted;index" json:"status"`
	AssignedDoctor  string     `gorm:"column:assigned_doctor" json:"assignedDoctor"`
	EmergencyCaseID string     `gorm:"column:emergency_case_id;index" json:"emergencyCaseId"`
	AdmittedAt      time.Time  `gorm:"column:admitted_at;autoCreateTime" json:"admittedAt"`
	DischargedAt    *time.Time `gorm:"column:discharged_at" json:"dischargedAt"`
}

func (Admission) TableName() string {
	return "admission"
}

// Appointment statuses.
const (
	AppointmentPending   = "pending"
	AppointmentApproved  = "approved"
	AppointmentCancelled = "cancelled"
	AppointmentCompleted = "completed"
)

// appointmentTransitions maps each status to the statuses it may move to.
// Cancelled and completed are terminal.
var appointmentTransitions = map[string][]string{
	AppointmentPending:  {AppointmentApproved, AppointmentCancelled},
	AppointmentApproved: {AppointmentCompleted, AppointmentCancelled},
}

// CanTransition reports whether an appointment may move from one status to
// another.
func CanTransition(from, to string) bool {
	for _, next := range appointmentTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Appointment links a patient and a doctor (both weak references).
type Appointment struct {
	ID          string    `gorm:"primaryKey;column:id" json:"id"`
	PatientID   string    `gorm:"column:patient_id;not null;index" json:"patientId"`
	DoctorID    string    `gorm:"column:doctor_id;not null;index" json:"doctorId"`
	Date        string    `gorm:"column:date;not null" json:"date"`
	Description string    `gorm:"column:description" json:"description"`
	Notes       string    `gorm:"column:notes" json:"notes"`
	Status      string    `gorm:"column:status;not null;default:pending" json:"status"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Appointment) TableName() string {
	return "appointment"
}

// Medicine is one line of a prescription.
type Medicine struct {
	Name   string `json:"name"`
	Dosage string `json:"dosage"`
	Time   string `json:"time"`
}

// Prescription entries are append-only; Seq preserves the original order.
type Prescription struct {
	ID        string     `gorm:"primaryKey;column:id" json:"id"`
	PatientID string     `gorm:"column:patient_id;not null;index" json:"patientId"`
	DoctorID  string     `gorm:"column:doctor_id" json:"doctorId"`
	Date      string     `gorm:"column:date;not null" json:"date"`
	Medicines []Medicine `gorm:"serializer:json;column:medicines" json:"medicines"`
	Seq       int        `gorm:"column:seq;not null" json:"-"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Prescription) TableName() string {
	return "prescription"
}

// LabReport entries are append-only. File holds the virtual upload path
// (/uploads/<name>), never the filesystem location.
type LabReport struct {
	ID        string    `gorm:"primaryKey;column:id" json:"id"`
	PatientID string    `gorm:"column:patient_id;not null;index" json:"patientId"`
	Date      string    `gorm:"column:date;not null" json:"date"`
	TestName  string    `gorm:"column:test_name;not null" json:"testName"`
	Results   string    `gorm:"column:results" json:"results"`
	File      string    `gorm:"column:file" json:"file"`
	Seq       int       `gorm:"column:seq;not null" json:"-"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (LabReport) TableName() string {
	return "lab_report"
}

// Emergency case statuses and priorities.
const (
	EmergencyActive = "active"
	EmergencyClosed = "closed"

	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// EmergencyCase is a standalone record. Creating one also materializes a
// derived Admission (type emergency) cross-linked by the case id; the two are
// written in one transaction.
type EmergencyCase struct {
	ID             string    `gorm:"primaryKey;column:id" json:"id"`
	PatientName    string    `gorm:"column:patient_name;not null" json:"patientName"`
	Age            int       `gorm:"column:age" json:"age"`
	Gender         string    `gorm:"column:gender" json:"gender"`
	Condition      string    `gorm:"column:condition;not null" json:"condition"`
	Priority       string    `gorm:"column:priority;not null;default:medium" json:"priority"`
	Description    string    `gorm:"column:description" json:"description"`
	WardNumber     int       `gorm:"column:ward_number" json:"wardNumber"`
	BedNumber      int       `gorm:"column:bed_number" json:"bedNumber"`
	AssignedDoctor string    `gorm:"column:assigned_doctor" json:"assignedDoctor"`
	Status         string    `gorm:"column:status;not null;default:active;index" json:"status"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (EmergencyCase) TableName() string {
	return "emergency_case"
}

// StockItem is a pharmacy inventory line. Quantity below LowStockThreshold
// counts toward the dashboard lowStock figure.
type StockItem struct {
	MedicineID   string    `gorm:"primaryKey;column:medicine_id" json:"medicineId"`
	Name         string    `gorm:"column:name;not null" json:"name"`
	SKU          string    `gorm:"column:sku" json:"sku"`
	Type         string    `gorm:"column:type" json:"type"`
	Manufacturer string    `gorm:"column:manufacturer" json:"manufacturer"`
	Price        float64   `gorm:"column:price" json:"price"`
	Quantity     int       `gorm:"column:quantity;not null" json:"quantity"`
	ExpiryDate   string    `gorm:"column:expiry_date" json:"expiryDate"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (StockItem) TableName() string {
	return "stock"
}

const LowStockThreshold = 10
