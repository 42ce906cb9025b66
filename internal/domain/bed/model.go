package bed

import "github.com/medicore/hms/internal/platform/recordstore"

// TableName is the bed collection in the record store.
const TableName = "bed_c"

var fieldNames = []string{
	"bed_id_c",
	"ward_c",
	"floor_c",
	"type_c",
	"status_c",
	"patient_id_c",
	"patient_name_c",
	"assigned_date_c",
	"estimated_discharge_c",
}

var writableFields = map[string]bool{
	"bed_id_c":              true,
	"ward_c":                true,
	"floor_c":               true,
	"type_c":                true,
	"status_c":              true,
	"patient_id_c":          true,
	"patient_name_c":        true,
	"assigned_date_c":       true,
	"estimated_discharge_c": true,
}

// Bed is a ward bed. The patient linkage fields are populated iff the bed
// is Occupied or Reserved; discharge clears them.
type Bed struct {
	ID                 int    `json:"Id"`
	BedID              string `json:"bed_id_c"`
	Ward               string `json:"ward_c"`
	Floor              int    `json:"floor_c"`
	Type               string `json:"type_c"`
	Status             string `json:"status_c"`
	PatientID          string `json:"patient_id_c"`
	PatientName        string `json:"patient_name_c"`
	AssignedDate       string `json:"assigned_date_c"`
	EstimatedDischarge string `json:"estimated_discharge_c"`
}

// Bed statuses.
const (
	StatusAvailable   = "Available"
	StatusOccupied    = "Occupied"
	StatusReserved    = "Reserved"
	StatusMaintenance = "Maintenance"
)

// Bed types.
const (
	TypeICU     = "ICU"
	TypePrivate = "Private"
	TypeGeneral = "General"
)

func fromRecord(r recordstore.Record) *Bed {
	if r == nil {
		return nil
	}
	var b Bed
	if err := recordstore.Decode(r, &b); err != nil {
		return nil
	}
	return &b
}

func fromRecords(records []recordstore.Record) []*Bed {
	out := make([]*Bed, 0, len(records))
	for _, r := range records {
		if b := fromRecord(r); b != nil {
			out = append(out, b)
		}
	}
	return out
}
