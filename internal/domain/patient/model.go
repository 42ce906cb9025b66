package patient

import "github.com/medicore/hms/internal/platform/recordstore"

// TableName is the patient collection in the record store. The _c suffix
// marks dynamically declared schema columns and must be preserved for
// compatibility with the existing store.
const TableName = "patient_c"

// fieldNames is the projection requested on every patient read.
var fieldNames = []string{
	"patient_id_c",
	"name_c",
	"age_c",
	"gender_c",
	"phone_c",
	"email_c",
	"address_c",
	"blood_group_c",
	"allergies_c",
	"medical_history_c",
	"emergency_contact_name_c",
	"emergency_contact_relation_c",
	"emergency_contact_phone_c",
	"registration_date_c",
	"status_c",
	"last_visit_c",
	"total_visits_c",
}

// writableFields are the columns a create or partial update may touch.
var writableFields = map[string]bool{
	"patient_id_c":                 true,
	"name_c":                       true,
	"age_c":                        true,
	"gender_c":                     true,
	"phone_c":                      true,
	"email_c":                      true,
	"address_c":                    true,
	"blood_group_c":                true,
	"allergies_c":                  true,
	"medical_history_c":            true,
	"emergency_contact_name_c":     true,
	"emergency_contact_relation_c": true,
	"emergency_contact_phone_c":    true,
	"registration_date_c":          true,
	"status_c":                     true,
	"last_visit_c":                 true,
	"total_visits_c":               true,
}

// Patient is a registered patient. Allergies is a delimited string; when
// present it is non-empty after trimming.
type Patient struct {
	ID                       int    `json:"Id"`
	PatientID                string `json:"patient_id_c"`
	Name                     string `json:"name_c"`
	Age                      int    `json:"age_c"`
	Gender                   string `json:"gender_c"`
	Phone                    string `json:"phone_c"`
	Email                    string `json:"email_c"`
	Address                  string `json:"address_c"`
	BloodGroup               string `json:"blood_group_c"`
	Allergies                string `json:"allergies_c"`
	MedicalHistory           string `json:"medical_history_c"`
	EmergencyContactName     string `json:"emergency_contact_name_c"`
	EmergencyContactRelation string `json:"emergency_contact_relation_c"`
	EmergencyContactPhone    string `json:"emergency_contact_phone_c"`
	RegistrationDate         string `json:"registration_date_c"`
	Status                   string `json:"status_c"`
	LastVisit                string `json:"last_visit_c"`
	TotalVisits              int    `json:"total_visits_c"`
}

// Patient statuses.
const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
	StatusPending  = "Pending"
)

func fromRecord(r recordstore.Record) *Patient {
	if r == nil {
		return nil
	}
	var p Patient
	if err := recordstore.Decode(r, &p); err != nil {
		return nil
	}
	return &p
}

func fromRecords(records []recordstore.Record) []*Patient {
	out := make([]*Patient, 0, len(records))
	for _, r := range records {
		if p := fromRecord(r); p != nil {
			out = append(out, p)
		}
	}
	return out
}
