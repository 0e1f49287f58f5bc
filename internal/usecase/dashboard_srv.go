package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"pitch-booking/internal/data/entity"
	"pitch-booking/internal/data/repository"
	"pitch-booking/internal/dto/response"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Tab string

const (
	TabAll          Tab = "all"
	TabSlots        Tab = "creneaux"
	TabReservations Tab = "reservations"
	TabFields       Tab = "terrain"
	TabUsers        Tab = "users"
)

// VisibleTabs lists the tabs a role may open, in display order.
func VisibleTabs(role entity.UserRole) []Tab {
	switch role {
	case entity.RoleAdmin:
		return []Tab{TabAll, TabSlots, TabReservations, TabFields, TabUsers}
	case entity.RoleManager:
		return []Tab{TabAll, TabSlots, TabReservations}
	default:
		return nil
	}
}

// Sections lists what a tab renders; "all" stacks every section the role can see.
func Sections(tab Tab, role entity.UserRole) []Tab {
	visible := VisibleTabs(role)
	if tab != TabAll {
		for _, t := range visible {
			if t == tab {
				return []Tab{tab}
			}
		}
		return nil
	}

	out := make([]Tab, 0, len(visible))
	for _, t := range visible {
		if t != TabAll {
			out = append(out, t)
		}
	}
	return out
}

func tabVisible(tab Tab, role entity.UserRole) bool {
	for _, t := range VisibleTabs(role) {
		if t == tab {
			return true
		}
	}
	return false
}

// dashboardState is everything one staff visitor has on screen.
type dashboardState struct {
	mu sync.Mutex

	mounted      bool
	tab          Tab
	reservations []entity.Reservation
	fields       []entity.Field
	users        []entity.User
	filters      response.ReservationFilters
	dialog       *paymentDialog
	assisted     assistedForm
}

func newDashboardState() *dashboardState {
	return &dashboardState{
		tab:      TabAll,
		filters:  response.ReservationFilters{Type: entity.FieldTypeAny},
		assisted: newAssistedForm(),
	}
}

func (d *dashboardState) findReservation(id entity.ID) (*entity.Reservation, bool) {
	for i := range d.reservations {
		if d.reservations[i].ID == id {
			return &d.reservations[i], true
		}
	}
	return nil, false
}

// DashboardService composes the staff workspace.
type DashboardService interface {
	View(ctx context.Context, sid string, session *entity.Session) (*response.DashboardView, error)
	SetTab(sid string, session *entity.Session, tab Tab) (*response.DashboardView, error)
	Reset(sid string)
	Sweep(idle time.Duration) int
}

type dashboardService struct {
	repo       *repository.Repository
	dashboards *visitorStore[dashboardState]
	log        *zap.Logger
}

func NewDashboardService(repo *repository.Repository, dashboards *visitorStore[dashboardState], log *zap.Logger) DashboardService {
	return &dashboardService{
		repo:       repo,
		dashboards: dashboards,
		log:        log.With(zap.String("service", "dashboard")),
	}
}

// View mounts the dashboard on first display and renders the active tab.
func (s *dashboardService) View(ctx context.Context, sid string, session *entity.Session) (*response.DashboardView, error) {
	d := s.dashboards.get(sid)

	d.mu.Lock()
	mounted := d.mounted
	d.mu.Unlock()

	var err error
	if !mounted {
		if err = loadDashboard(ctx, s.repo, d, session, s.log); err != nil {
			s.log.Warn("Dashboard load failed", zap.Error(err))
		}
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	return dashboardView(d, session), err
}

func (s *dashboardService) SetTab(sid string, session *entity.Session, tab Tab) (*response.DashboardView, error) {
	d := s.dashboards.get(sid)
	d.mu.Lock()
	defer d.mu.Unlock()

	if !tabVisible(tab, session.User.Role) {
		return dashboardView(d, session), ErrForbidden
	}
	d.tab = tab
	return dashboardView(d, session), nil
}

func (s *dashboardService) Reset(sid string) {
	s.dashboards.drop(sid)
}

func (s *dashboardService) Sweep(idle time.Duration) int {
	return s.dashboards.sweep(idle)
}

// loadDashboard fetches reservations and fields (and users for admins) side by side.
// Reservations and fields are replaced together or not at all. A failing user list
// only leaves the users panel as it was; the panel reloads it on its own.
func loadDashboard(ctx context.Context, repo *repository.Repository, d *dashboardState, session *entity.Session, log *zap.Logger) error {
	var (
		reservations []entity.Reservation
		fields       []entity.Field
		users        []entity.User
		usersErr     error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		reservations, err = repo.Reservation.List(gctx, session.Token)
		return err
	})
	g.Go(func() error {
		var err error
		fields, err = repo.Field.List(gctx, "")
		return err
	})
	if session.IsAdmin() {
		g.Go(func() error {
			users, usersErr = repo.Auth.ListUsers(gctx, session.Token)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("load dashboard: %w", err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.reservations = reservations
	d.fields = fields
	d.mounted = true

	if usersErr != nil {
		log.Warn("Dashboard users load failed", zap.Error(usersErr))
		return nil
	}
	d.users = users
	return nil
}

// dashboardView is called with d.mu held.
func dashboardView(d *dashboardState, session *entity.Session) *response.DashboardView {
	role := session.User.Role
	v := &response.DashboardView{
		Role:      role,
		ActiveTab: string(d.tab),
	}
	for _, t := range VisibleTabs(role) {
		v.Tabs = append(v.Tabs, string(t))
	}

	for _, section := range Sections(d.tab, role) {
		v.Sections = append(v.Sections, string(section))
		switch section {
		case TabSlots:
			v.Assisted = d.assisted.view()
		case TabReservations:
			v.Reservations = reservationListView(d, session)
		case TabFields:
			v.Fields = fieldPanelView(d, "")
		case TabUsers:
			v.Users = userPanelView(d, response.ManagerFormView{})
		}
	}
	return v
}
