// Package sandbox generates synthetic hospital records for demo and
// development environments. Data flows through the regular entity
// services so every seeded record gets the same defaults and business-id
// backfill as one created over the API.
package sandbox

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/medicore/hms/internal/domain/appointment"
	"github.com/medicore/hms/internal/domain/bed"
	"github.com/medicore/hms/internal/domain/doctor"
	"github.com/medicore/hms/internal/domain/patient"
	"github.com/medicore/hms/internal/domain/visit"
	"github.com/medicore/hms/internal/platform/recordstore"
)

// SeedConfig controls the volume of generated data.
type SeedConfig struct {
	PatientCount     int   `json:"patientCount"`
	DoctorCount      int   `json:"doctorCount"`
	AppointmentCount int   `json:"appointmentCount"`
	BedCount         int   `json:"bedCount"`
	VisitCount       int   `json:"visitCount"`
	Seed             int64 `json:"seed"`
}

// DefaultSeedConfig returns a config sized for a usable demo dashboard.
func DefaultSeedConfig() SeedConfig {
	return SeedConfig{
		PatientCount:     25,
		DoctorCount:      8,
		AppointmentCount: 12,
		BedCount:         20,
		VisitCount:       10,
	}
}

// SeedResult summarizes one seed run.
type SeedResult struct {
	Patients     int           `json:"patients"`
	Doctors      int           `json:"doctors"`
	Appointments int           `json:"appointments"`
	Beds         int           `json:"beds"`
	Visits       int           `json:"visits"`
	Duration     time.Duration `json:"duration"`
}

var (
	firstNames = []string{
		"James", "Mary", "Robert", "Patricia", "John", "Jennifer", "Michael",
		"Linda", "David", "Elizabeth", "William", "Barbara", "Richard",
		"Susan", "Joseph", "Jessica", "Thomas", "Sarah", "Daniel", "Karen",
		"Matthew", "Lisa", "Anthony", "Nancy", "Mark", "Betty",
	}
	lastNames = []string{
		"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller",
		"Davis", "Rodriguez", "Martinez", "Wilson", "Anderson", "Taylor",
		"Thomas", "Moore", "Jackson", "Martin", "Lee", "Thompson", "White",
	}
	departments = []string{
		"Cardiology", "Neurology", "Orthopedics", "Pediatrics", "Oncology",
		"Emergency", "General Medicine",
	}
	wards = []string{
		"General Ward", "ICU", "Pediatric Ward", "Maternity Ward", "Surgical Ward",
	}
	bedTypes    = []string{bed.TypeGeneral, bed.TypeICU, bed.TypePrivate}
	bloodGroups = []string{"A+", "A-", "B+", "B-", "O+", "O-", "AB+", "AB-"}
	genders     = []string{"Male", "Female"}
	visitReasons = []string{
		"Chest pain", "Routine checkup", "Fever", "Fracture follow-up",
		"Migraine", "Abdominal pain", "Shortness of breath",
	}
	timeSlots = []string{"09:00", "09:30", "10:00", "10:30", "11:00", "14:00", "14:30", "15:00"}
)

// Seeder writes synthetic records through the entity services.
type Seeder struct {
	patients     *patient.Service
	doctors      *doctor.Service
	appointments *appointment.Service
	beds         *bed.Service
	visits       *visit.Service
	rng          *rand.Rand
	log          zerolog.Logger
}

func NewSeeder(
	patients *patient.Service,
	doctors *doctor.Service,
	appointments *appointment.Service,
	beds *bed.Service,
	visits *visit.Service,
	cfgSeed int64,
	log zerolog.Logger,
) *Seeder {
	if cfgSeed == 0 {
		cfgSeed = time.Now().UnixNano()
	}
	return &Seeder{
		patients:     patients,
		doctors:      doctors,
		appointments: appointments,
		beds:         beds,
		visits:       visits,
		rng:          rand.New(rand.NewSource(cfgSeed)),
		log:          log.With().Str("component", "sandbox").Logger(),
	}
}

func (s *Seeder) pick(pool []string) string {
	return pool[s.rng.Intn(len(pool))]
}

func (s *Seeder) fullName() string {
	return s.pick(firstNames) + " " + s.pick(lastNames)
}

func (s *Seeder) phone() string {
	return fmt.Sprintf("(%03d) %03d-%04d",
		200+s.rng.Intn(800), 200+s.rng.Intn(800), s.rng.Intn(10000))
}

// Seed generates a full demo data set. It is not transactional: a failed
// create is logged and skipped, matching the fail-soft service contract.
func (s *Seeder) Seed(ctx context.Context, cfg SeedConfig) *SeedResult {
	start := time.Now()
	result := &SeedResult{}

	seededDoctors := make([]*doctor.Doctor, 0, cfg.DoctorCount)
	for i := 0; i < cfg.DoctorCount; i++ {
		dept := s.pick(departments)
		d := s.doctors.Create(ctx, recordstore.Fields{
			"name_c":           "Dr. " + s.fullName(),
			"specialization_c": dept,
			"department_c":     dept,
			"phone_c":          s.phone(),
			"experience_c":     1 + s.rng.Intn(30),
		})
		if d == nil {
			s.log.Warn().Int("index", i).Msg("doctor seed skipped")
			continue
		}
		seededDoctors = append(seededDoctors, d)
		result.Doctors++
	}

	seededPatients := make([]*patient.Patient, 0, cfg.PatientCount)
	for i := 0; i < cfg.PatientCount; i++ {
		name := s.fullName()
		p := s.patients.Create(ctx, recordstore.Fields{
			"patient_id_c":  fmt.Sprintf("PAT%03d", i+1),
			"name_c":        name,
			"age_c":         1 + s.rng.Intn(90),
			"gender_c":      s.pick(genders),
			"phone_c":       s.phone(),
			"blood_group_c": s.pick(bloodGroups),
		})
		if p == nil {
			s.log.Warn().Int("index", i).Msg("patient seed skipped")
			continue
		}
		seededPatients = append(seededPatients, p)
		result.Patients++
	}

	today := time.Now().Format("2006-01-02")
	for i := 0; i < cfg.AppointmentCount && len(seededPatients) > 0 && len(seededDoctors) > 0; i++ {
		p := seededPatients[s.rng.Intn(len(seededPatients))]
		d := seededDoctors[s.rng.Intn(len(seededDoctors))]
		date := today
		if s.rng.Intn(2) == 0 {
			date = time.Now().AddDate(0, 0, 1+s.rng.Intn(7)).Format("2006-01-02")
		}
		a := s.appointments.Create(ctx, recordstore.Fields{
			"patient_id_c":   p.PatientID,
			"patient_name_c": p.Name,
			"doctor_id_c":    d.DoctorID,
			"doctor_name_c":  d.Name,
			"date_c":         date,
			"time_c":         s.pick(timeSlots),
			"department_c":   d.Department,
			"reason_c":       s.pick(visitReasons),
			"duration_c":     30,
		})
		if a == nil {
			s.log.Warn().Int("index", i).Msg("appointment seed skipped")
			continue
		}
		result.Appointments++
	}

	seededBeds := make([]*bed.Bed, 0, cfg.BedCount)
	for i := 0; i < cfg.BedCount; i++ {
		ward := wards[i%len(wards)]
		b := s.beds.Create(ctx, recordstore.Fields{
			"bed_id_c": fmt.Sprintf("BED-%d%02d", i/len(wards)+1, i%len(wards)+1),
			"ward_c":   ward,
			"floor_c":  1 + i/len(wards),
			"type_c":   s.pick(bedTypes),
		})
		if b == nil {
			s.log.Warn().Int("index", i).Msg("bed seed skipped")
			continue
		}
		seededBeds = append(seededBeds, b)
		result.Beds++
	}

	// Occupy roughly a third of the beds.
	for i := 0; i < len(seededBeds)/3 && i < len(seededPatients); i++ {
		p := seededPatients[i]
		discharge := time.Now().AddDate(0, 0, 2+s.rng.Intn(10)).Format("2006-01-02")
		s.beds.AssignPatient(ctx, seededBeds[i].ID, p.PatientID, p.Name, discharge)
	}

	for i := 0; i < cfg.VisitCount && len(seededPatients) > 0; i++ {
		p := seededPatients[s.rng.Intn(len(seededPatients))]
		fields := recordstore.Fields{
			"patient_id_c":   p.PatientID,
			"patient_name_c": p.Name,
			"department_c":   s.pick(departments),
			"reason_c":       s.pick(visitReasons),
		}
		if len(seededDoctors) > 0 {
			fields["doctor_c"] = seededDoctors[s.rng.Intn(len(seededDoctors))].Name
		}
		if s.rng.Intn(5) == 0 {
			fields["status_c"] = visit.StatusCritical
		}
		v := s.visits.Create(ctx, fields)
		if v == nil {
			s.log.Warn().Int("index", i).Msg("visit seed skipped")
			continue
		}
		result.Visits++
	}

	result.Duration = time.Since(start)
	s.log.Info().
		Int("patients", result.Patients).
		Int("doctors", result.Doctors).
		Int("appointments", result.Appointments).
		Int("beds", result.Beds).
		Int("visits", result.Visits).
		Dur("duration", result.Duration).
		Msg("sandbox data seeded")
	return result
}
