package appointment

import "github.com/medicore/hms/internal/platform/recordstore"

// TableName is the appointment collection in the record store.
const TableName = "appointment_c"

var fieldNames = []string{
	"appointment_id_c",
	"patient_id_c",
	"patient_name_c",
	"doctor_id_c",
	"doctor_name_c",
	"date_c",
	"time_c",
	"department_c",
	"reason_c",
	"notes_c",
	"duration_c",
	"status_c",
}

var writableFields = map[string]bool{
	"appointment_id_c": true,
	"patient_id_c":     true,
	"patient_name_c":   true,
	"doctor_id_c":      true,
	"doctor_name_c":    true,
	"date_c":           true,
	"time_c":           true,
	"department_c":     true,
	"reason_c":         true,
	"notes_c":          true,
	"duration_c":       true,
	"status_c":         true,
}

// Appointment links a patient and a doctor at a date and time. Patient and
// doctor display names are denormalized onto the record.
type Appointment struct {
	ID            int    `json:"Id"`
	AppointmentID string `json:"appointment_id_c"`
	PatientID     string `json:"patient_id_c"`
	PatientName   string `json:"patient_name_c"`
	DoctorID      string `json:"doctor_id_c"`
	DoctorName    string `json:"doctor_name_c"`
	Date          string `json:"date_c"`
	Time          string `json:"time_c"`
	Department    string `json:"department_c"`
	Reason        string `json:"reason_c"`
	Notes         string `json:"notes_c"`
	Duration      int    `json:"duration_c"`
	Status        string `json:"status_c"`
}

// Appointment statuses.
const (
	StatusScheduled = "Scheduled"
	StatusConfirmed = "Confirmed"
	StatusCompleted = "Completed"
	StatusCancelled = "Cancelled"
	StatusPending   = "Pending"
)

func fromRecord(r recordstore.Record) *Appointment {
	if r == nil {
		return nil
	}
	var a Appointment
	if err := recordstore.Decode(r, &a); err != nil {
		return nil
	}
	return &a
}

func fromRecords(records []recordstore.Record) []*Appointment {
	out := make([]*Appointment, 0, len(records))
	for _, r := range records {
		if a := fromRecord(r); a != nil {
			out = append(out, a)
		}
	}
	return out
}
