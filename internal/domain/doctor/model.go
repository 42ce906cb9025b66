package doctor

import "github.com/medicore/hms/internal/platform/recordstore"

// TableName is the doctor collection in the record store.
const TableName = "doctor_c"

var fieldNames = []string{
	"doctor_id_c",
	"name_c",
	"specialization_c",
	"department_c",
	"phone_c",
	"email_c",
	"current_patients_c",
	"experience_c",
	"status_c",
}

var writableFields = map[string]bool{
	"doctor_id_c":        true,
	"name_c":             true,
	"specialization_c":   true,
	"department_c":       true,
	"phone_c":            true,
	"email_c":            true,
	"current_patients_c": true,
	"experience_c":       true,
	"status_c":           true,
}

// Doctor is a staff physician in the directory.
type Doctor struct {
	ID              int    `json:"Id"`
	DoctorID        string `json:"doctor_id_c"`
	Name            string `json:"name_c"`
	Specialization  string `json:"specialization_c"`
	Department      string `json:"department_c"`
	Phone           string `json:"phone_c"`
	Email           string `json:"email_c"`
	CurrentPatients int    `json:"current_patients_c"`
	Experience      int    `json:"experience_c"`
	Status          string `json:"status_c"`
}

// Doctor statuses.
const (
	StatusAvailable = "Available"
	StatusBusy      = "Busy"
	StatusOnDuty    = "On Duty"
	StatusOffDuty   = "Off Duty"
)

func fromRecord(r recordstore.Record) *Doctor {
	if r == nil {
		return nil
	}
	var d Doctor
	if err := recordstore.Decode(r, &d); err != nil {
		return nil
	}
	return &d
}

func fromRecords(records []recordstore.Record) []*Doctor {
	out := make([]*Doctor, 0, len(records))
	for _, r := range records {
		if d := fromRecord(r); d != nil {
			out = append(out, d)
		}
	}
	return out
}
