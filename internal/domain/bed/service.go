package bed

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/medicore/hms/internal/platform/notification"
	"github.com/medicore/hms/internal/platform/recordstore"
)

// Service owns bed data access. Beds are never deleted; assignment and
// discharge transition the status and linkage fields instead. Failures
// terminate here and yield nil or an empty list.
type Service struct {
	gw   *recordstore.Gateway
	feed *notification.Feed
	log  zerolog.Logger
}

func NewService(client recordstore.Client, feed *notification.Feed, log zerolog.Logger) *Service {
	return &Service{
		gw:   recordstore.NewGateway(client, TableName, fieldNames, log),
		feed: feed,
		log:  log.With().Str("service", "bed").Logger(),
	}
}

// GetAll returns every bed, or an empty list on failure.
func (s *Service) GetAll(ctx context.Context) []*Bed {
	records, err := s.gw.List(ctx)
	if err != nil {
		s.feed.Failure("bed", "Failed to fetch beds")
		return []*Bed{}
	}
	return fromRecords(records)
}

// GetByID returns one bed, or nil when missing or on any failure.
func (s *Service) GetByID(ctx context.Context, id int) *Bed {
	return fromRecord(s.gw.GetByID(ctx, id))
}

// GetByWard returns beds filtered server-side by ward.
func (s *Service) GetByWard(ctx context.Context, ward string) []*Bed {
	records, err := s.gw.List(ctx, recordstore.Equals("ward_c", ward))
	if err != nil {
		return []*Bed{}
	}
	return fromRecords(records)
}

// GetAvailable returns beds whose status is Available.
func (s *Service) GetAvailable(ctx context.Context) []*Bed {
	records, err := s.gw.List(ctx, recordstore.Equals("status_c", StatusAvailable))
	if err != nil {
		return []*Bed{}
	}
	return fromRecords(records)
}

// GetOccupied returns beds whose status is Occupied.
func (s *Service) GetOccupied(ctx context.Context) []*Bed {
	records, err := s.gw.List(ctx, recordstore.Equals("status_c", StatusOccupied))
	if err != nil {
		return []*Bed{}
	}
	return fromRecords(records)
}

// Create registers a bed, defaulting status to Available.
func (s *Service) Create(ctx context.Context, fields recordstore.Fields) *Bed {
	payload := filterWritable(fields)
	if _, ok := payload["status_c"]; !ok {
		payload["status_c"] = StatusAvailable
	}

	results, err := s.gw.Create(ctx, payload)
	if err != nil {
		s.feed.Failure("bed", "Failed to create bed")
		return nil
	}
	record, failures := recordstore.FirstSuccess(results)
	for _, msg := range failures {
		s.log.Error().Str("message", msg).Msg("create bed failed")
		s.feed.Failure("bed", msg)
	}
	if record == nil {
		return nil
	}
	s.feed.Success("bed", "Bed created successfully")
	return fromRecord(record)
}

// Update forwards exactly the fields present in the payload.
func (s *Service) Update(ctx context.Context, id int, fields recordstore.Fields) *Bed {
	b := s.applyUpdate(ctx, id, fields)
	if b != nil {
		s.feed.Success("bed", "Bed updated successfully")
	}
	return b
}

func (s *Service) applyUpdate(ctx context.Context, id int, fields recordstore.Fields) *Bed {
	results, err := s.gw.Update(ctx, id, filterWritable(fields))
	if err != nil {
		s.feed.Failure("bed", "Failed to update bed")
		return nil
	}
	record, failures := recordstore.FirstSuccess(results)
	for _, msg := range failures {
		s.log.Error().Str("message", msg).Msg("update bed failed")
		s.feed.Failure("bed", msg)
	}
	return fromRecord(record)
}

// AssignPatient occupies an Available bed and populates the patient
// linkage fields; the assignment date is today. Assigning a bed that is
// not Available fails without touching the record.
func (s *Service) AssignPatient(ctx context.Context, bedID int, patientID, patientName, estimatedDischarge string) *Bed {
	current := s.GetByID(ctx, bedID)
	if current == nil {
		s.feed.Failure("bed", "Bed not found")
		return nil
	}
	if current.Status != StatusAvailable {
		s.log.Warn().Int("bed_id", bedID).Str("status", current.Status).Msg("assign rejected, bed not available")
		s.feed.Failure("bed", "Bed is not available")
		return nil
	}

	b := s.applyUpdate(ctx, bedID, recordstore.Fields{
		"status_c":              StatusOccupied,
		"patient_id_c":          patientID,
		"patient_name_c":        patientName,
		"assigned_date_c":       time.Now().Format("2006-01-02"),
		"estimated_discharge_c": estimatedDischarge,
	})
	if b != nil {
		s.feed.Success("bed", "Patient assigned to bed")
	}
	return b
}

// Discharge frees a bed: status back to Available and all four patient
// linkage fields cleared.
func (s *Service) Discharge(ctx context.Context, bedID int) *Bed {
	b := s.applyUpdate(ctx, bedID, recordstore.Fields{
		"status_c":              StatusAvailable,
		"patient_id_c":          nil,
		"patient_name_c":        nil,
		"assigned_date_c":       nil,
		"estimated_discharge_c": nil,
	})
	if b != nil {
		s.feed.Success("bed", "Bed discharged successfully")
	}
	return b
}

func filterWritable(fields recordstore.Fields) recordstore.Fields {
	out := recordstore.Fields{}
	for k, v := range fields {
		if writableFields[k] {
			out[k] = v
		}
	}
	return out
}
