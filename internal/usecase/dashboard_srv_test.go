package usecase

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"pitch-booking/internal/data/entity"
	"pitch-booking/internal/dto/request"
)

func method(m entity.PaymentMethod) *entity.PaymentMethod { return &m }

func seedDashboard(remote *fakeRemote) {
	remote.fields = []entity.Field{
		{ID: "f1", Name: "Terrain A", Type: entity.FieldType5, PricePerHour: 15000},
		{ID: "f2", Name: "Terrain B", Type: entity.FieldType7, PricePerHour: 25000},
	}
	remote.reservations = []entity.Reservation{
		{ID: "r1", Field: entity.FieldRef{Field: entity.Field{ID: "f1"}}, Date: "2025-06-01T00:00:00.000Z", StartTime: "18:00",
			Status: entity.ReservationPending, PaymentStatus: entity.PaymentUnpaid, TotalPrice: 30001, CustomerName: "Awa"},
		{ID: "r2", Field: entity.FieldRef{Field: entity.Field{ID: "f2", Name: "Terrain B", Type: entity.FieldType7}}, Date: "2025-06-02",
			Status: entity.ReservationConfirmed, PaymentStatus: entity.PaymentPartial, PaymentMethod: method(entity.PaymentWave),
			PaidAmount: 12500, TotalPrice: 25000},
		{ID: "r3", Field: entity.FieldRef{Field: entity.Field{ID: "f1"}}, Date: "2025-06-01",
			Status: entity.ReservationPending, PaymentStatus: entity.PaymentPaid, TotalPrice: 15000},
	}
	remote.userList = []entity.User{
		{ID: "a1", Role: entity.RoleAdmin},
		{ID: "g1", Role: entity.RoleManager},
		{ID: "c1", Role: entity.RoleCustomer},
	}
}

func TestVisibleTabs(t *testing.T) {
	admin := []Tab{TabAll, TabSlots, TabReservations, TabFields, TabUsers}
	manager := []Tab{TabAll, TabSlots, TabReservations}

	if got := VisibleTabs(entity.RoleAdmin); !reflect.DeepEqual(got, admin) {
		t.Errorf("admin tabs = %v", got)
	}
	if got := VisibleTabs(entity.RoleManager); !reflect.DeepEqual(got, manager) {
		t.Errorf("manager tabs = %v", got)
	}
	if got := VisibleTabs(entity.RoleCustomer); len(got) != 0 {
		t.Errorf("customer tabs = %v", got)
	}

	if got := Sections(TabAll, entity.RoleManager); !reflect.DeepEqual(got, []Tab{TabSlots, TabReservations}) {
		t.Errorf("manager all sections = %v", got)
	}
	if got := Sections(TabUsers, entity.RoleManager); len(got) != 0 {
		t.Errorf("manager users sections = %v", got)
	}
}

func TestManagerCannotOpenAdminTabs(t *testing.T) {
	svc, _ := newTestService(t, newFakeRemote())

	for _, tab := range []Tab{TabFields, TabUsers} {
		if _, err := svc.Dashboard.SetTab("sid", managerSession, tab); !errors.Is(err, ErrForbidden) {
			t.Errorf("SetTab(%s) err = %v, want ErrForbidden", tab, err)
		}
	}
	view, err := svc.Dashboard.SetTab("sid", managerSession, TabReservations)
	if err != nil || view.ActiveTab != string(TabReservations) {
		t.Fatalf("SetTab(reservations) = %+v, %v", view, err)
	}
}

func TestDashboardMountLoadsEverything(t *testing.T) {
	remote := newFakeRemote()
	seedDashboard(remote)
	svc, _ := newTestService(t, remote)

	view, err := svc.Dashboard.View(context.Background(), "sid", adminSession)
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(view.Sections, []string{"creneaux", "reservations", "terrain", "users"}) {
		t.Errorf("sections = %v", view.Sections)
	}
	if view.Reservations == nil || view.Reservations.Total != 3 {
		t.Fatalf("reservations = %+v", view.Reservations)
	}
	if view.Fields == nil || len(view.Fields.Fields) != 2 {
		t.Errorf("fields = %+v", view.Fields)
	}
	if view.Users == nil || len(view.Users.Users) != 2 {
		t.Errorf("users should only list staff: %+v", view.Users)
	}
	if view.Assisted == nil || view.Assisted.PaymentMethod != entity.PaymentCash {
		t.Errorf("assisted = %+v", view.Assisted)
	}

	managerView, err := svc.Dashboard.View(context.Background(), "other", managerSession)
	if err != nil {
		t.Fatal(err)
	}
	if managerView.Fields != nil || managerView.Users != nil {
		t.Error("manager sees admin sections")
	}
}

func TestReservationRowsAndFilters(t *testing.T) {
	remote := newFakeRemote()
	seedDashboard(remote)
	svc, _ := newTestService(t, remote)
	ctx := context.Background()

	view, err := svc.Reservation.List(ctx, "sid", adminSession)
	if err != nil {
		t.Fatal(err)
	}

	rows := map[string]int{}
	for i, r := range view.Rows {
		rows[r.ID] = i
	}
	r1 := view.Rows[rows["r1"]]
	if r1.FieldName != "Terrain A" || r1.FieldType != entity.FieldType5 || r1.Date != "2025-06-01" {
		t.Errorf("r1 not enriched: %+v", r1)
	}
	if !r1.Actions.CanConfirm || !r1.Actions.CanCancel || r1.Actions.CanCompletePayment {
		t.Errorf("r1 actions = %+v", r1.Actions)
	}
	r2 := view.Rows[rows["r2"]]
	if r2.Actions.CanConfirm || r2.Actions.CanCancel || !r2.Actions.CanCompletePayment {
		t.Errorf("r2 actions = %+v", r2.Actions)
	}

	view = svc.Reservation.SetFilters("sid", adminSession, &request.ReservationFiltersRequest{Type: "5"})
	if view.Total != 2 {
		t.Errorf("type 5 rows = %d", view.Total)
	}
	view = svc.Reservation.SetFilters("sid", adminSession, &request.ReservationFiltersRequest{Type: "5", Date: "2025-06-02"})
	if view.Total != 0 {
		t.Errorf("type 5 on 06-02 rows = %d", view.Total)
	}
	view = svc.Reservation.SetFilters("sid", adminSession, &request.ReservationFiltersRequest{Date: "2025-06-02"})
	if view.Total != 1 || view.Rows[0].ID != "r2" {
		t.Errorf("06-02 rows = %+v", view.Rows)
	}

	managerView, _ := svc.Reservation.List(ctx, "m", managerSession)
	for _, row := range managerView.Rows {
		if row.Actions.CanCancel {
			t.Errorf("manager may cancel %s", row.ID)
		}
	}
}

func TestCancelGuards(t *testing.T) {
	remote := newFakeRemote()
	seedDashboard(remote)
	svc, _ := newTestService(t, remote)
	ctx := context.Background()

	svc.Reservation.List(ctx, "sid", adminSession)
	if _, err := svc.Reservation.Cancel(ctx, "sid", adminSession, "r3"); !errors.Is(err, ErrActionDisabled) {
		t.Errorf("cancel paid: err = %v", err)
	}

	svc.Reservation.List(ctx, "m", managerSession)
	if _, err := svc.Reservation.Cancel(ctx, "m", managerSession, "r1"); !errors.Is(err, ErrForbidden) {
		t.Errorf("manager cancel: err = %v", err)
	}
	if remote.patchCount() != 0 {
		t.Fatal("a disabled action reached the API")
	}

	view, err := svc.Reservation.Cancel(ctx, "sid", adminSession, "r1")
	if err != nil {
		t.Fatal(err)
	}
	patch := remote.patches["r1"][0]
	if patch.Status == nil || *patch.Status != entity.ReservationCancelled || patch.PaymentStatus != nil {
		t.Errorf("patch = %+v", patch)
	}
	for _, row := range view.Rows {
		if row.ID == "r1" && row.Status != entity.ReservationCancelled {
			t.Error("list not reconciled after cancel")
		}
	}
}

func TestConfirmAndCompletePayment(t *testing.T) {
	remote := newFakeRemote()
	seedDashboard(remote)
	svc, _ := newTestService(t, remote)
	ctx := context.Background()
	svc.Reservation.List(ctx, "sid", managerSession)

	if _, err := svc.Reservation.Confirm(ctx, "sid", managerSession, "r2"); !errors.Is(err, ErrActionDisabled) {
		t.Errorf("confirm confirmed: err = %v", err)
	}
	if _, err := svc.Reservation.CompletePayment(ctx, "sid", managerSession, "r1"); !errors.Is(err, ErrActionDisabled) {
		t.Errorf("complete unpaid: err = %v", err)
	}
	if _, err := svc.Reservation.Confirm(ctx, "sid", managerSession, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("confirm missing: err = %v", err)
	}

	if _, err := svc.Reservation.Confirm(ctx, "sid", managerSession, "r1"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Reservation.CompletePayment(ctx, "sid", managerSession, "r2"); err != nil {
		t.Fatal(err)
	}

	p := remote.patches["r2"][0]
	if p.PaymentStatus == nil || *p.PaymentStatus != entity.PaymentPaid || p.PaidAmount == nil || *p.PaidAmount != 25000 {
		t.Errorf("complete payment patch = %+v", p)
	}
}

func TestPaymentDialogHalf(t *testing.T) {
	remote := newFakeRemote()
	seedDashboard(remote)
	svc, _ := newTestService(t, remote)
	ctx := context.Background()
	svc.Reservation.List(ctx, "sid", adminSession)

	view, err := svc.Reservation.OpenPaymentDialog("sid", adminSession, "r1")
	if err != nil {
		t.Fatal(err)
	}
	if view.Dialog == nil || view.Dialog.Amount != 30001 || view.Dialog.PaymentMethod != entity.PaymentCash {
		t.Fatalf("dialog = %+v", view.Dialog)
	}

	view, err = svc.Reservation.UpdatePaymentDialog("sid", adminSession, &request.PaymentDialogRequest{PaymentMethod: "orange_money", Mode: "half"})
	if err != nil {
		t.Fatal(err)
	}
	if view.Dialog.Amount != 15001 {
		t.Errorf("half amount = %v", view.Dialog.Amount)
	}

	view, err = svc.Reservation.CommitPaymentDialog(ctx, "sid", adminSession)
	if err != nil {
		t.Fatal(err)
	}
	if view.Dialog != nil {
		t.Error("dialog still open after commit")
	}

	p := remote.patches["r1"][0]
	if *p.PaymentStatus != entity.PaymentPartial || *p.PaidAmount != 15001 || *p.PaymentMethod != entity.PaymentOrangeMoney {
		t.Errorf("patch = status %v amount %v method %v", *p.PaymentStatus, *p.PaidAmount, *p.PaymentMethod)
	}
}

func TestClosePaymentDialogSendsNothing(t *testing.T) {
	remote := newFakeRemote()
	seedDashboard(remote)
	svc, _ := newTestService(t, remote)
	svc.Reservation.List(context.Background(), "sid", adminSession)

	svc.Reservation.OpenPaymentDialog("sid", adminSession, "r1")
	view := svc.Reservation.ClosePaymentDialog("sid", adminSession)

	if view.Dialog != nil || remote.patchCount() != 0 {
		t.Fatalf("dialog = %+v, patches = %d", view.Dialog, remote.patchCount())
	}
}

func TestSetPaymentMethod(t *testing.T) {
	remote := newFakeRemote()
	seedDashboard(remote)
	svc, _ := newTestService(t, remote)
	ctx := context.Background()
	svc.Reservation.List(ctx, "sid", managerSession)

	view, err := svc.Reservation.SetPaymentMethod(ctx, "sid", managerSession, "r1", entity.PaymentCash)
	if err != nil {
		t.Fatal(err)
	}
	for _, row := range view.Rows {
		if row.ID == "r1" && (row.PaymentMethod == nil || *row.PaymentMethod != entity.PaymentCash) {
			t.Errorf("row r1 method = %v", row.PaymentMethod)
		}
	}
}

func TestAdminMountSurvivesUserListFailure(t *testing.T) {
	remote := newFakeRemote()
	seedDashboard(remote)
	remote.usersErr = fakeErr("users endpoint down")
	svc, _ := newTestService(t, remote)
	ctx := context.Background()

	view, err := svc.Reservation.List(ctx, "sid", adminSession)
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if view.Total != 3 {
		t.Fatalf("rows = %d, want 3", view.Total)
	}

	dash, err := svc.Dashboard.View(ctx, "sid", adminSession)
	if err != nil {
		t.Fatal(err)
	}
	if dash.Users == nil || len(dash.Users.Users) != 0 {
		t.Errorf("users = %+v", dash.Users)
	}

	// the users panel reloads on its own once the endpoint is back
	remote.mu.Lock()
	remote.usersErr = nil
	remote.mu.Unlock()
	users, err := svc.User.List(ctx, "sid", adminSession)
	if err != nil || len(users.Users) != 2 {
		t.Fatalf("users = %+v, err = %v", users, err)
	}
}

func TestNoPaymentOnCancelledReservation(t *testing.T) {
	remote := newFakeRemote()
	seedDashboard(remote)
	remote.reservations = append(remote.reservations, entity.Reservation{
		ID: "r4", Field: entity.FieldRef{Field: entity.Field{ID: "f2"}}, Date: "2025-06-03",
		Status: entity.ReservationCancelled, PaymentStatus: entity.PaymentUnpaid, TotalPrice: 25000,
	})
	svc, _ := newTestService(t, remote)
	ctx := context.Background()

	view, err := svc.Reservation.List(ctx, "sid", adminSession)
	if err != nil {
		t.Fatal(err)
	}
	for _, row := range view.Rows {
		if want := row.ID != "r4"; row.Actions.CanRecordPayment != want {
			t.Errorf("%s: CanRecordPayment = %v", row.ID, row.Actions.CanRecordPayment)
		}
	}

	if _, err := svc.Reservation.OpenPaymentDialog("sid", adminSession, "r4"); !errors.Is(err, ErrActionDisabled) {
		t.Errorf("open dialog on cancelled: err = %v", err)
	}

	// a row cancelled while its dialog was open is not paid either
	if _, err := svc.Reservation.OpenPaymentDialog("sid", adminSession, "r1"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Reservation.Cancel(ctx, "sid", adminSession, "r1"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Reservation.CommitPaymentDialog(ctx, "sid", adminSession); !errors.Is(err, ErrActionDisabled) {
		t.Errorf("commit on cancelled: err = %v", err)
	}
	if n := len(remote.patches["r1"]); n != 1 {
		t.Errorf("r1 patches = %d, want only the cancel", n)
	}
}
