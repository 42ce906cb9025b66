package visit

import "github.com/medicore/hms/internal/platform/recordstore"

// TableName is the visit collection in the record store.
const TableName = "visit_c"

var fieldNames = []string{
	"visit_id_c",
	"patient_id_c",
	"patient_name_c",
	"check_in_time_c",
	"check_out_time_c",
	"department_c",
	"reason_c",
	"doctor_c",
	"diagnosis_c",
	"prescription_c",
	"bill_amount_c",
	"status_c",
}

var writableFields = map[string]bool{
	"visit_id_c":       true,
	"patient_id_c":     true,
	"patient_name_c":   true,
	"check_in_time_c":  true,
	"check_out_time_c": true,
	"department_c":     true,
	"reason_c":         true,
	"doctor_c":         true,
	"diagnosis_c":      true,
	"prescription_c":   true,
	"bill_amount_c":    true,
	"status_c":         true,
}

// Visit is a patient encounter from check-in to check-out. Check-out time
// and Completed status are set together.
type Visit struct {
	ID           int     `json:"Id"`
	VisitID      string  `json:"visit_id_c"`
	PatientID    string  `json:"patient_id_c"`
	PatientName  string  `json:"patient_name_c"`
	CheckInTime  string  `json:"check_in_time_c"`
	CheckOutTime string  `json:"check_out_time_c"`
	Department   string  `json:"department_c"`
	Reason       string  `json:"reason_c"`
	Doctor       string  `json:"doctor_c"`
	Diagnosis    string  `json:"diagnosis_c"`
	Prescription string  `json:"prescription_c"`
	BillAmount   float64 `json:"bill_amount_c"`
	Status       string  `json:"status_c"`
}

// Visit statuses.
const (
	StatusInProgress = "In Progress"
	StatusCritical   = "Critical"
	StatusCompleted  = "Completed"
)

func fromRecord(r recordstore.Record) *Visit {
	if r == nil {
		return nil
	}
	var v Visit
	if err := recordstore.Decode(r, &v); err != nil {
		return nil
	}
	return &v
}

func fromRecords(records []recordstore.Record) []*Visit {
	out := make([]*Visit, 0, len(records))
	for _, r := range records {
		if v := fromRecord(r); v != nil {
			out = append(out, v)
		}
	}
	return out
}
