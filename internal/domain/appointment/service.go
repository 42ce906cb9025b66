package appointment

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/medicore/hms/internal/platform/notification"
	"github.com/medicore/hms/internal/platform/recordstore"
)

// Service owns appointment data access. Failures terminate here: calls
// log, notify where user-visible, and return nil or an empty list.
type Service struct {
	gw   *recordstore.Gateway
	feed *notification.Feed
	log  zerolog.Logger
}

func NewService(client recordstore.Client, feed *notification.Feed, log zerolog.Logger) *Service {
	return &Service{
		gw:   recordstore.NewGateway(client, TableName, fieldNames, log),
		feed: feed,
		log:  log.With().Str("service", "appointment").Logger(),
	}
}

// GetAll returns every appointment, or an empty list on failure.
func (s *Service) GetAll(ctx context.Context) []*Appointment {
	records, err := s.gw.List(ctx)
	if err != nil {
		s.feed.Failure("appointment", "Failed to fetch appointments")
		return []*Appointment{}
	}
	return fromRecords(records)
}

// GetByID returns one appointment, or nil when missing or on any failure.
func (s *Service) GetByID(ctx context.Context, id int) *Appointment {
	return fromRecord(s.gw.GetByID(ctx, id))
}

// GetByDate returns appointments on a calendar date (YYYY-MM-DD).
func (s *Service) GetByDate(ctx context.Context, date string) []*Appointment {
	records, err := s.gw.List(ctx, recordstore.Equals("date_c", date))
	if err != nil {
		return []*Appointment{}
	}
	return fromRecords(records)
}

// GetByPatientID returns appointments for one patient business id.
func (s *Service) GetByPatientID(ctx context.Context, patientID string) []*Appointment {
	records, err := s.gw.List(ctx, recordstore.Equals("patient_id_c", patientID))
	if err != nil {
		return []*Appointment{}
	}
	return fromRecords(records)
}

// Create schedules an appointment, defaulting status to Scheduled. A
// missing business id is backfilled from the store-assigned numeric id.
func (s *Service) Create(ctx context.Context, fields recordstore.Fields) *Appointment {
	payload := filterWritable(fields)
	if _, ok := payload["status_c"]; !ok {
		payload["status_c"] = StatusScheduled
	}
	_, hasBusinessID := payload["appointment_id_c"]

	results, err := s.gw.Create(ctx, payload)
	if err != nil {
		s.feed.Failure("appointment", "Failed to create appointment")
		return nil
	}
	record, failures := recordstore.FirstSuccess(results)
	for _, msg := range failures {
		s.log.Error().Str("message", msg).Msg("create appointment failed")
		s.feed.Failure("appointment", msg)
	}
	if record == nil {
		return nil
	}

	a := fromRecord(record)
	if a != nil && !hasBusinessID {
		patch := recordstore.Fields{"appointment_id_c": fmt.Sprintf("APT%03d", a.ID)}
		if results, err := s.gw.Update(ctx, a.ID, patch); err == nil {
			if patched, _ := recordstore.FirstSuccess(results); patched != nil {
				a = fromRecord(patched)
			}
		}
	}
	s.feed.Success("appointment", "Appointment created successfully")
	return a
}

// Update forwards exactly the fields present in the payload.
func (s *Service) Update(ctx context.Context, id int, fields recordstore.Fields) *Appointment {
	results, err := s.gw.Update(ctx, id, filterWritable(fields))
	if err != nil {
		s.feed.Failure("appointment", "Failed to update appointment")
		return nil
	}
	record, failures := recordstore.FirstSuccess(results)
	for _, msg := range failures {
		s.log.Error().Str("message", msg).Msg("update appointment failed")
		s.feed.Failure("appointment", msg)
	}
	if record == nil {
		return nil
	}
	s.feed.Success("appointment", "Appointment updated successfully")
	return fromRecord(record)
}

// UpdateStatus transitions an appointment's status only.
func (s *Service) UpdateStatus(ctx context.Context, id int, status string) *Appointment {
	return s.Update(ctx, id, recordstore.Fields{"status_c": status})
}

// Delete removes an appointment. Returns false on any failure.
func (s *Service) Delete(ctx context.Context, id int) bool {
	results, err := s.gw.Delete(ctx, id)
	if err != nil {
		s.feed.Failure("appointment", "Failed to delete appointment")
		return false
	}
	_, failures := recordstore.FirstSuccess(results)
	for _, msg := range failures {
		s.log.Error().Str("message", msg).Msg("delete appointment failed")
		s.feed.Failure("appointment", msg)
	}
	if len(failures) > 0 {
		return false
	}
	s.feed.Success("appointment", "Appointment deleted successfully")
	return true
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
