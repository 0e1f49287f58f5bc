package usecase

import (
	"context"
	"sync"
	"testing"

	"pitch-booking/internal/data/entity"
	"pitch-booking/internal/data/repository"
	"pitch-booking/pkg/utils"

	"go.uber.org/zap/zaptest"
)

// fakeRemote stands in for the three remote repositories.
type fakeRemote struct {
	mu sync.Mutex

	users        map[string]*entity.User // by token
	accounts     map[string]*entity.Session
	meErr        error
	meCalls      int
	meHook       func()
	userList     []entity.User
	usersErr     error
	managerErr   error
	managers     []repository.CreateManagerInput
	fields       []entity.Field
	deleted      []entity.ID
	created      []repository.CreateFieldInput
	reservations []entity.Reservation
	slots        map[string][]entity.Slot // by date+type
	slotCalls    []string
	slotHook     func(key string)
	public       []repository.CreateReservationInput
	publicErr    error
	staff        []repository.CreateReservationInput
	patches      map[entity.ID][]repository.ReservationPatch
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{
		users:    make(map[string]*entity.User),
		accounts: make(map[string]*entity.Session),
		slots:    make(map[string][]entity.Slot),
		patches:  make(map[entity.ID][]repository.ReservationPatch),
	}
}

func (f *fakeRemote) Me(_ context.Context, token string) (*entity.User, error) {
	f.mu.Lock()
	f.meCalls++
	hook := f.meHook
	f.mu.Unlock()

	if hook != nil {
		hook()
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.meErr != nil {
		return nil, f.meErr
	}
	u, ok := f.users[token]
	if !ok {
		return nil, errUnauthorized
	}
	return u, nil
}

func (f *fakeRemote) Login(_ context.Context, email, _ string) (*entity.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.accounts[email]
	if !ok {
		return nil, errUnauthorized
	}
	return s, nil
}

func (f *fakeRemote) CreateManager(_ context.Context, _ string, in *repository.CreateManagerInput) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.managerErr != nil {
		return nil, f.managerErr
	}
	f.managers = append(f.managers, *in)
	u := entity.User{ID: entity.ID("m" + in.Email), Name: in.Name, Email: in.Email, Role: entity.RoleManager}
	f.userList = append(f.userList, u)
	return &u, nil
}

func (f *fakeRemote) ListUsers(context.Context, string) ([]entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.usersErr != nil {
		return nil, f.usersErr
	}
	return append([]entity.User(nil), f.userList...), nil
}

func (f *fakeRemote) List(_ context.Context, _ entity.FieldType) ([]entity.Field, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]entity.Field(nil), f.fields...), nil
}

func (f *fakeRemote) Create(_ context.Context, _ string, in *repository.CreateFieldInput) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, *in)
	f.fields = append(f.fields, entity.Field{ID: entity.ID("new"), Name: in.Name, Type: in.Type, PricePerHour: entity.Amount(in.PricePerHour)})
	return nil
}

func (f *fakeRemote) Delete(_ context.Context, _ string, id entity.ID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	return nil
}

// fakeReservations is a separate type because List clashes with the field repository.
type fakeReservations struct{ *fakeRemote }

func (f fakeReservations) Availability(ctx context.Context, date string, fieldType entity.FieldType) ([]entity.Slot, error) {
	key := date + "/" + string(fieldType)

	f.mu.Lock()
	f.slotCalls = append(f.slotCalls, key)
	hook := f.slotHook
	f.mu.Unlock()

	if hook != nil {
		hook(key)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]entity.Slot(nil), f.slots[key]...), nil
}

func (f fakeReservations) CreatePublic(_ context.Context, in *repository.CreateReservationInput) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.publicErr != nil {
		return f.publicErr
	}
	f.public = append(f.public, *in)
	return nil
}

func (f fakeReservations) CreateByStaff(_ context.Context, _ string, in *repository.CreateReservationInput) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.staff = append(f.staff, *in)
	return nil
}

func (f fakeReservations) List(context.Context, string) ([]entity.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]entity.Reservation(nil), f.reservations...), nil
}

func (f fakeReservations) Update(_ context.Context, _ string, id entity.ID, patch *repository.ReservationPatch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.patches[id] = append(f.patches[id], *patch)
	for i := range f.reservations {
		if f.reservations[i].ID != id {
			continue
		}
		if patch.Status != nil {
			f.reservations[i].Status = *patch.Status
		}
		if patch.PaymentStatus != nil {
			f.reservations[i].PaymentStatus = *patch.PaymentStatus
		}
		if patch.PaidAmount != nil {
			f.reservations[i].PaidAmount = entity.Amount(*patch.PaidAmount)
		}
		if patch.PaymentMethod != nil {
			m := *patch.PaymentMethod
			f.reservations[i].PaymentMethod = &m
		}
	}
	return nil
}

func (f *fakeRemote) patchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, p := range f.patches {
		n += len(p)
	}
	return n
}

type fakeErr string

func (e fakeErr) Error() string { return string(e) }

const errUnauthorized = fakeErr("unauthorized")

func newTestRepo(remote *fakeRemote) *repository.Repository {
	return &repository.Repository{
		Auth:        remote,
		Field:       remote,
		Reservation: fakeReservations{remote},
		Storage:     repository.NewMemoryStorage(),
	}
}

func newTestService(t *testing.T, remote *fakeRemote) (*Service, *repository.Repository) {
	t.Helper()
	repo := newTestRepo(remote)
	config := &utils.Config{Booking: utils.BookingConfig{PhoneCountryCode: "+221"}}
	return NewService(repo, config, zaptest.NewLogger(t)), repo
}

var (
	adminSession   = &entity.Session{Token: "admin-token", User: entity.User{ID: "a1", Name: "Admin", Role: entity.RoleAdmin}}
	managerSession = &entity.Session{Token: "manager-token", User: entity.User{ID: "g1", Name: "Gestion", Role: entity.RoleManager}}
)
