package visit

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/medicore/hms/internal/platform/notification"
	"github.com/medicore/hms/internal/platform/recordstore"
)

// Service owns visit data access. Visits are never deleted; check-out
// completes them instead. Failures terminate here and yield nil or an
// empty list.
type Service struct {
	gw   *recordstore.Gateway
	feed *notification.Feed
	log  zerolog.Logger
}

func NewService(client recordstore.Client, feed *notification.Feed, log zerolog.Logger) *Service {
	return &Service{
		gw:   recordstore.NewGateway(client, TableName, fieldNames, log),
		feed: feed,
		log:  log.With().Str("service", "visit").Logger(),
	}
}

// GetAll returns every visit, or an empty list on failure.
func (s *Service) GetAll(ctx context.Context) []*Visit {
	records, err := s.gw.List(ctx)
	if err != nil {
		s.feed.Failure("visit", "Failed to fetch visits")
		return []*Visit{}
	}
	return fromRecords(records)
}

// GetByID returns one visit, or nil when missing or on any failure.
func (s *Service) GetByID(ctx context.Context, id int) *Visit {
	return fromRecord(s.gw.GetByID(ctx, id))
}

// GetByPatientID returns visits for one patient business id.
func (s *Service) GetByPatientID(ctx context.Context, patientID string) []*Visit {
	records, err := s.gw.List(ctx, recordstore.Equals("patient_id_c", patientID))
	if err != nil {
		return []*Visit{}
	}
	return fromRecords(records)
}

// GetActive returns visits still on the floor: In Progress or Critical.
func (s *Service) GetActive(ctx context.Context) []*Visit {
	records, err := s.gw.List(ctx, recordstore.In("status_c", StatusInProgress, StatusCritical))
	if err != nil {
		return []*Visit{}
	}
	return fromRecords(records)
}

// Create opens a visit, defaulting status to In Progress and check-in to
// now. A missing business id is backfilled from the store-assigned
// numeric id.
func (s *Service) Create(ctx context.Context, fields recordstore.Fields) *Visit {
	payload := filterWritable(fields)
	if _, ok := payload["status_c"]; !ok {
		payload["status_c"] = StatusInProgress
	}
	if _, ok := payload["check_in_time_c"]; !ok {
		payload["check_in_time_c"] = time.Now().Format(time.RFC3339)
	}
	_, hasBusinessID := payload["visit_id_c"]

	results, err := s.gw.Create(ctx, payload)
	if err != nil {
		s.feed.Failure("visit", "Failed to create visit")
		return nil
	}
	record, failures := recordstore.FirstSuccess(results)
	for _, msg := range failures {
		s.log.Error().Str("message", msg).Msg("create visit failed")
		s.feed.Failure("visit", msg)
	}
	if record == nil {
		return nil
	}

	v := fromRecord(record)
	if v != nil && !hasBusinessID {
		patch := recordstore.Fields{"visit_id_c": fmt.Sprintf("VIS%03d", v.ID)}
		if results, err := s.gw.Update(ctx, v.ID, patch); err == nil {
			if patched, _ := recordstore.FirstSuccess(results); patched != nil {
				v = fromRecord(patched)
			}
		}
	}
	s.feed.Success("visit", "Visit created successfully")
	return v
}

// Update forwards exactly the fields present in the payload.
func (s *Service) Update(ctx context.Context, id int, fields recordstore.Fields) *Visit {
	v := s.applyUpdate(ctx, id, fields)
	if v != nil {
		s.feed.Success("visit", "Visit updated successfully")
	}
	return v
}

// CheckOut completes a visit: check-out time is stamped now and status
// becomes Completed in the same update, alongside any supplied
// diagnosis, prescription or bill fields.
func (s *Service) CheckOut(ctx context.Context, id int, fields recordstore.Fields) *Visit {
	payload := filterWritable(fields)
	payload["check_out_time_c"] = time.Now().Format(time.RFC3339)
	payload["status_c"] = StatusCompleted

	v := s.applyUpdate(ctx, id, payload)
	if v != nil {
		s.feed.Success("visit", "Patient checked out successfully")
	}
	return v
}

func (s *Service) applyUpdate(ctx context.Context, id int, fields recordstore.Fields) *Visit {
	results, err := s.gw.Update(ctx, id, filterWritable(fields))
	if err != nil {
		s.feed.Failure("visit", "Failed to update visit")
		return nil
	}
	record, failures := recordstore.FirstSuccess(results)
	for _, msg := range failures {
		s.log.Error().Str("message", msg).Msg("update visit failed")
		s.feed.Failure("visit", msg)
	}
	return fromRecord(record)
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
