package usecase

import (
	"time"

	"pitch-booking/internal/data/repository"
	"pitch-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Session     SessionService
	Booking     BookingService
	Dashboard   DashboardService
	Reservation ReservationService
	Assisted    AssistedService
	Field       FieldService
	User        UserService

	storage repository.StorageRepository
	log     *zap.Logger
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	dashboards := newVisitorStore(newDashboardState)

	svc := &Service{
		Session:     NewSessionService(repo, log),
		Booking:     NewBookingService(repo, config, log),
		Dashboard:   NewDashboardService(repo, dashboards, log),
		Reservation: NewReservationService(repo, dashboards, log),
		Assisted:    NewAssistedService(repo, dashboards, config, log),
		Field:       NewFieldService(repo, dashboards, log),
		User:        NewUserService(repo, dashboards, log),
		storage:     repo.Storage,
		log:         log,
	}

	// the staff workspace never outlives the session that opened it
	svc.Session.Subscribe(func(ev SessionEvent) {
		switch ev.Type {
		case SessionLoggedOut, SessionInvalidated, SessionLoggedIn:
			svc.Dashboard.Reset(ev.VisitorID)
		}
	})

	return svc
}

// Sweep forgets the state of visitors idle for longer than idle.
func (s *Service) Sweep(idle time.Duration) {
	sessions := s.Session.Sweep(idle)
	flows := s.Booking.Sweep(idle)
	dashboards := s.Dashboard.Sweep(idle)

	stored := 0
	if sw, ok := s.storage.(repository.Sweeper); ok {
		stored = sw.Sweep()
	}

	if sessions+flows+dashboards+stored > 0 {
		s.log.Debug("Swept idle visitors",
			zap.Int("sessions", sessions),
			zap.Int("booking_flows", flows),
			zap.Int("dashboards", dashboards),
			zap.Int("stored", stored),
		)
	}
}
