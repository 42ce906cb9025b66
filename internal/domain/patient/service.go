package patient

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/medicore/hms/internal/platform/notification"
	"github.com/medicore/hms/internal/platform/recordstore"
)

// searchFields are the columns the server-side patient search scans.
var searchFields = []string{"name_c", "patient_id_c", "phone_c", "email_c"}

// Service owns patient data access. Every failure terminates here: calls
// log, emit a notification where the outcome is user-visible, and return
// nil or an empty list. Callers never see an error.
type Service struct {
	gw   *recordstore.Gateway
	feed *notification.Feed
	log  zerolog.Logger
}

func NewService(client recordstore.Client, feed *notification.Feed, log zerolog.Logger) *Service {
	return &Service{
		gw:   recordstore.NewGateway(client, TableName, fieldNames, log),
		feed: feed,
		log:  log.With().Str("service", "patient").Logger(),
	}
}

// GetAll returns every patient, or an empty list on failure.
func (s *Service) GetAll(ctx context.Context) []*Patient {
	records, err := s.gw.List(ctx)
	if err != nil {
		s.feed.Failure("patient", "Failed to fetch patients")
		return []*Patient{}
	}
	return fromRecords(records)
}

// GetByID returns one patient, or nil when missing or on any failure.
func (s *Service) GetByID(ctx context.Context, id int) *Patient {
	return fromRecord(s.gw.GetByID(ctx, id))
}

// Search runs a server-side substring search over name, business id, phone
// and email.
func (s *Service) Search(ctx context.Context, query string) []*Patient {
	records, err := s.gw.List(ctx, recordstore.ContainsAny(query, searchFields...))
	if err != nil {
		return []*Patient{}
	}
	return fromRecords(records)
}

// Create inserts a patient, filling defaults for registration date, status
// and visit counter when absent. Only fields present in the payload are
// sent beyond those defaults.
func (s *Service) Create(ctx context.Context, fields recordstore.Fields) *Patient {
	payload := filterWritable(fields)
	if _, ok := payload["registration_date_c"]; !ok {
		payload["registration_date_c"] = time.Now().Format("2006-01-02")
	}
	if _, ok := payload["status_c"]; !ok {
		payload["status_c"] = StatusActive
	}
	if _, ok := payload["total_visits_c"]; !ok {
		payload["total_visits_c"] = 0
	}

	results, err := s.gw.Create(ctx, payload)
	if err != nil {
		s.feed.Failure("patient", "Failed to create patient")
		return nil
	}
	record, failures := recordstore.FirstSuccess(results)
	for _, msg := range failures {
		s.log.Error().Str("message", msg).Msg("create patient failed")
		s.feed.Failure("patient", msg)
	}
	if record == nil {
		return nil
	}
	s.feed.Success("patient", "Patient created successfully")
	return fromRecord(record)
}

// Update forwards exactly the fields present in the payload; absent fields
// are left untouched server-side. Clearing a field to "" or 0 is still
// forwarded because presence, not truthiness, decides.
func (s *Service) Update(ctx context.Context, id int, fields recordstore.Fields) *Patient {
	results, err := s.gw.Update(ctx, id, filterWritable(fields))
	if err != nil {
		s.feed.Failure("patient", "Failed to update patient")
		return nil
	}
	record, failures := recordstore.FirstSuccess(results)
	for _, msg := range failures {
		s.log.Error().Str("message", msg).Msg("update patient failed")
		s.feed.Failure("patient", msg)
	}
	if record == nil {
		return nil
	}
	s.feed.Success("patient", "Patient updated successfully")
	return fromRecord(record)
}

// Delete removes a patient. Returns false on any failure.
func (s *Service) Delete(ctx context.Context, id int) bool {
	results, err := s.gw.Delete(ctx, id)
	if err != nil {
		s.feed.Failure("patient", "Failed to delete patient")
		return false
	}
	_, failures := recordstore.FirstSuccess(results)
	for _, msg := range failures {
		s.log.Error().Str("message", msg).Msg("delete patient failed")
		s.feed.Failure("patient", msg)
	}
	if len(failures) > 0 {
		return false
	}
	s.feed.Success("patient", "Patient deleted successfully")
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
