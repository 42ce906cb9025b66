package doctor

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/medicore/hms/internal/platform/notification"
	"github.com/medicore/hms/internal/platform/recordstore"
)

// Service owns doctor data access. Failures terminate here: calls log,
// notify where user-visible, and return nil or an empty list.
type Service struct {
	gw   *recordstore.Gateway
	feed *notification.Feed
	log  zerolog.Logger
}

func NewService(client recordstore.Client, feed *notification.Feed, log zerolog.Logger) *Service {
	return &Service{
		gw:   recordstore.NewGateway(client, TableName, fieldNames, log),
		feed: feed,
		log:  log.With().Str("service", "doctor").Logger(),
	}
}

// GetAll returns the full directory, or an empty list on failure.
func (s *Service) GetAll(ctx context.Context) []*Doctor {
	records, err := s.gw.List(ctx)
	if err != nil {
		s.feed.Failure("doctor", "Failed to fetch doctors")
		return []*Doctor{}
	}
	return fromRecords(records)
}

// GetByID returns one doctor, or nil when missing or on any failure.
func (s *Service) GetByID(ctx context.Context, id int) *Doctor {
	return fromRecord(s.gw.GetByID(ctx, id))
}

// GetByDepartment returns doctors filtered server-side by department.
func (s *Service) GetByDepartment(ctx context.Context, department string) []*Doctor {
	records, err := s.gw.List(ctx, recordstore.Equals("department_c", department))
	if err != nil {
		return []*Doctor{}
	}
	return fromRecords(records)
}

// GetAvailable returns doctors whose status is Available.
func (s *Service) GetAvailable(ctx context.Context) []*Doctor {
	records, err := s.gw.List(ctx, recordstore.Equals("status_c", StatusAvailable))
	if err != nil {
		return []*Doctor{}
	}
	return fromRecords(records)
}

// Create inserts a doctor, defaulting status and patient load when absent.
// A missing business id is backfilled from the store-assigned numeric id
// with a follow-up update.
func (s *Service) Create(ctx context.Context, fields recordstore.Fields) *Doctor {
	payload := filterWritable(fields)
	if _, ok := payload["status_c"]; !ok {
		payload["status_c"] = StatusAvailable
	}
	if _, ok := payload["current_patients_c"]; !ok {
		payload["current_patients_c"] = 0
	}
	_, hasBusinessID := payload["doctor_id_c"]

	results, err := s.gw.Create(ctx, payload)
	if err != nil {
		s.feed.Failure("doctor", "Failed to create doctor")
		return nil
	}
	record, failures := recordstore.FirstSuccess(results)
	for _, msg := range failures {
		s.log.Error().Str("message", msg).Msg("create doctor failed")
		s.feed.Failure("doctor", msg)
	}
	if record == nil {
		return nil
	}

	d := fromRecord(record)
	if d != nil && !hasBusinessID {
		// Backfill a readable business id from the store-assigned one.
		patch := recordstore.Fields{"doctor_id_c": fmt.Sprintf("DOC%03d", d.ID)}
		if results, err := s.gw.Update(ctx, d.ID, patch); err == nil {
			if patched, _ := recordstore.FirstSuccess(results); patched != nil {
				d = fromRecord(patched)
			}
		}
	}
	s.feed.Success("doctor", "Doctor created successfully")
	return d
}

// Update forwards exactly the fields present in the payload.
func (s *Service) Update(ctx context.Context, id int, fields recordstore.Fields) *Doctor {
	results, err := s.gw.Update(ctx, id, filterWritable(fields))
	if err != nil {
		s.feed.Failure("doctor", "Failed to update doctor")
		return nil
	}
	record, failures := recordstore.FirstSuccess(results)
	for _, msg := range failures {
		s.log.Error().Str("message", msg).Msg("update doctor failed")
		s.feed.Failure("doctor", msg)
	}
	if record == nil {
		return nil
	}
	s.feed.Success("doctor", "Doctor updated successfully")
	return fromRecord(record)
}

// Delete removes a doctor. Returns false on any failure.
func (s *Service) Delete(ctx context.Context, id int) bool {
	results, err := s.gw.Delete(ctx, id)
	if err != nil {
		s.feed.Failure("doctor", "Failed to delete doctor")
		return false
	}
	_, failures := recordstore.FirstSuccess(results)
	for _, msg := range failures {
		s.log.Error().Str("message", msg).Msg("delete doctor failed")
		s.feed.Failure("doctor", msg)
	}
	if len(failures) > 0 {
		return false
	}
	s.feed.Success("doctor", "Doctor deleted successfully")
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
