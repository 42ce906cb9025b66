package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/medicore/hms/internal/domain/appointment"
	"github.com/medicore/hms/internal/domain/bed"
	"github.com/medicore/hms/internal/domain/patient"
	"github.com/medicore/hms/internal/domain/visit"
	"github.com/medicore/hms/pkg/listview"
)

// previewSize caps the record lists embedded in the overview.
const previewSize = 5

// Stats are the headline counters on the dashboard.
type Stats struct {
	TotalPatients     int `json:"total_patients"`
	TodayAppointments int `json:"today_appointments"`
	AvailableBeds     int `json:"available_beds"`
	ActiveVisits      int `json:"active_visits"`
	OccupancyRate     int `json:"occupancy_rate"`
}

// Overview is the aggregated dashboard payload: counters plus short
// previews of today's appointments and the visits still on the floor.
type Overview struct {
	Stats        Stats                      `json:"stats"`
	Appointments []*appointment.Appointment `json:"appointments"`
	Visits       []*visit.Visit             `json:"visits"`
}

// Service aggregates the four entity services into one overview. Each
// source keeps its own fail-soft contract, so a failed load contributes
// zeros rather than failing the whole dashboard.
type Service struct {
	patients     *patient.Service
	appointments *appointment.Service
	beds         *bed.Service
	visits       *visit.Service
	log          zerolog.Logger
}

func NewService(
	patients *patient.Service,
	appointments *appointment.Service,
	beds *bed.Service,
	visits *visit.Service,
	log zerolog.Logger,
) *Service {
	return &Service{
		patients:     patients,
		appointments: appointments,
		beds:         beds,
		visits:       visits,
		log:          log.With().Str("service", "dashboard").Logger(),
	}
}

// Overview loads the four sources concurrently and derives the counters.
// The loads are independent; one failing leaves the others intact.
func (s *Service) Overview(ctx context.Context) *Overview {
	today := time.Now().Format("2006-01-02")

	var (
		wg           sync.WaitGroup
		patients     []*patient.Patient
		appointments []*appointment.Appointment
		beds         []*bed.Bed
		visits       []*visit.Visit
	)
	wg.Add(4)
	go func() {
		defer wg.Done()
		patients = s.patients.GetAll(ctx)
	}()
	go func() {
		defer wg.Done()
		appointments = s.appointments.GetByDate(ctx, today)
	}()
	go func() {
		defer wg.Done()
		beds = s.beds.GetAll(ctx)
	}()
	go func() {
		defer wg.Done()
		visits = s.visits.GetActive(ctx)
	}()
	wg.Wait()

	available := listview.Partition(beds, func(b *bed.Bed) string { return b.Status }, bed.StatusAvailable)
	occupied := listview.Partition(beds, func(b *bed.Bed) string { return b.Status }, bed.StatusOccupied)

	return &Overview{
		Stats: Stats{
			TotalPatients:     len(patients),
			TodayAppointments: len(appointments),
			AvailableBeds:     len(available),
			ActiveVisits:      len(visits),
			OccupancyRate:     listview.Rate(len(occupied), len(beds)),
		},
		Appointments: preview(appointments),
		Visits:       preview(visits),
	}
}

func preview[T any](items []T) []T {
	if len(items) <= previewSize {
		return items
	}
	return items[:previewSize]
}
