// Package occupancy computes the ward/bed occupancy grid from the current
// admission snapshot. It holds no state and performs no I/O; callers feed it
// the ward topology and the active admissions and get the full grid back.
package occupancy

import (
	"time"
)

// Bed statuses in the grid.
const (
	StatusAdmitted  = "Admitted"
	StatusAvailable = "Available"
)

// WardDef is one ward of the topology, with a fixed bed count.
type WardDef struct {
	ID        int    `json:"wardId"`
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
	BedsTotal int    `json:"bedsTotal"`
}

// Admission is an active (non-discharged) slot occupation. Ward and bed must
// already be normalized to ints; DoctorRef is a weak staff reference resolved
// through the caller's resolver.
type Admission struct {
	Ward       int
	Bed        int
	AdmittedAt time.Time
	Patient    Occupant
	DoctorRef  string
}

// Occupant is the patient summary attached to an occupied bed.
type Occupant struct {
	PatientID string `json:"patientId"`
	Name      string `json:"name"`
	Age       int    `json:"age"`
	Gender    string `json:"gender"`
	Diagnosis string `json:"diagnosis"`
}

// PatientSummary is an Occupant plus the resolved doctor name.
type PatientSummary struct {
	Occupant
	Doctor *string `json:"doctor"`
}

// BedView is one slot of the grid.
type BedView struct {
	BedNumber     int             `json:"bedNumber"`
	Status        string          `json:"status"`
	AdmissionDate *time.Time      `json:"admissionDate"`
	Patient       *PatientSummary `json:"patient"`
}

// WardView is one ward of the grid, beds in bed-number order.
type WardView struct {
	WardID    int       `json:"wardId"`
	Name      string    `json:"name"`
	Specialty string    `json:"specialty"`
	Beds      []BedView `json:"beds"`
}

// DoctorNameResolver maps a staff reference to a display name. Returning
// ok=false (or a nil resolver) leaves the doctor unset; resolution failures
// never surface as errors.
type DoctorNameResolver func(ref string) (string, bool)

type slot struct {
	ward, bed int
}

// ComputeOccupancy materializes one WardView per ward, in ward order, with
// exactly BedsTotal beds each. An admission occupies a slot only when its
// (ward, bed) pair falls inside the topology; out-of-range admissions are
// dropped from the grid and from the counts derived from it.
func ComputeOccupancy(wards []WardDef, admissions []Admission, resolve DoctorNameResolver) []WardView {
	occupied := make(map[slot]Admission, len(admissions))
	for _, adm := range admissions {
		occupied[slot{adm.Ward, adm.Bed}] = adm
	}

	views := make([]WardView, 0, len(wards))
	for _, ward := range wards {
		beds := make([]BedView, 0, ward.BedsTotal)
		for bedNum := 1; bedNum <= ward.BedsTotal; bedNum++ {
			bed := BedView{BedNumber: bedNum, Status: StatusAvailable}
			if adm, ok := occupied[slot{ward.ID, bedNum}]; ok {
				at := adm.AdmittedAt
				bed.Status = StatusAdmitted
				bed.AdmissionDate = &at
				summary := &PatientSummary{Occupant: adm.Patient}
				if resolve != nil && adm.DoctorRef != "" {
					if name, ok := resolve(adm.DoctorRef); ok {
						summary.Doctor = &name
					}
				}
				bed.Patient = summary
			}
			beds = append(beds, bed)
		}
		views = append(views, WardView{
			WardID:    ward.ID,
			Name:      ward.Name,
			Specialty: ward.Specialty,
			Beds:      beds,
		})
	}
	return views
}

// CountOccupied counts grid slots with status Admitted.
func CountOccupied(views []WardView) int {
	n := 0
	for _, ward := range views {
		for _, bed := range ward.Beds {
			if bed.Status == StatusAdmitted {
				n++
			}
		}
	}
	return n
}

// TotalBeds sums BedsTotal over the topology.
func TotalBeds(wards []WardDef) int {
	n := 0
	for _, ward := range wards {
		n += ward.BedsTotal
	}
	return n
}

// Percent renders occupied/total as an integer percentage, truncated the way
// the dashboard reports it. A zero-bed topology is 0%.
func Percent(occupied, total int) int {
	if total == 0 {
		return 0
	}
	return occupied * 100 / total
}
