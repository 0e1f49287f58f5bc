package repository

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"pitch-booking/internal/data/entity"
	"pitch-booking/pkg/apiclient"

	"go.uber.org/zap/zaptest"
)

// fakeAPI records calls and answers with a canned body.
type fakeAPI struct {
	calls []fakeCall
	reply string
	err   error
}

type fakeCall struct {
	method, path, token string
	body                any
}

func (f *fakeAPI) Do(_ context.Context, method, path, token string, body, out any) error {
	f.calls = append(f.calls, fakeCall{method: method, path: path, token: token, body: body})
	if f.err != nil {
		return f.err
	}
	if out != nil && f.reply != "" {
		return json.Unmarshal([]byte(f.reply), out)
	}
	return nil
}

func TestDecodeList(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{"bare array", `[{"id":1},{"id":2}]`, 2},
		{"wrapped", `{"fields":[{"id":1}]}`, 1},
		{"data key", `{"data":[{"id":1},{"id":2},{"id":3}]}`, 3},
		{"null", `null`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeList[entity.Field](json.RawMessage(tt.raw), "fields")
			if err != nil {
				t.Fatalf("decodeList: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("len = %d, want %d", len(got), tt.want)
			}
		})
	}
}

func TestDecodeListRejectsUnknownShape(t *testing.T) {
	_, err := decodeList[entity.Field](json.RawMessage(`{"items":[]}`), "fields")
	if !errors.Is(err, apiclient.ErrInvalidResponse) {
		t.Fatalf("err = %v, want ErrInvalidResponse", err)
	}
}

func TestFieldListAddsTypeOnlyWhenConcrete(t *testing.T) {
	api := &fakeAPI{reply: `[]`}
	repo := NewFieldRepository(api, zaptest.NewLogger(t))

	if _, err := repo.List(context.Background(), entity.FieldTypeAny); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.List(context.Background(), entity.FieldType7); err != nil {
		t.Fatal(err)
	}

	if api.calls[0].path != "/fields" {
		t.Errorf("all types path = %q", api.calls[0].path)
	}
	if api.calls[1].path != "/fields?type=7" {
		t.Errorf("type 7 path = %q", api.calls[1].path)
	}
}

func TestAvailabilityQuery(t *testing.T) {
	api := &fakeAPI{reply: `{"slots":[{"fieldId":"f1","fieldName":"A","type":"5","pricePerHour":15000,"startTime":"18:00","endTime":"19:00"}]}`}
	repo := NewReservationRepository(api, zaptest.NewLogger(t))

	slots, err := repo.Availability(context.Background(), "2025-06-01", entity.FieldType5)
	if err != nil {
		t.Fatal(err)
	}

	if got := api.calls[0].path; got != "/reservations/availability?date=2025-06-01&type=5" {
		t.Errorf("path = %q", got)
	}
	if len(slots) != 1 || slots[0].FieldID != "f1" {
		t.Errorf("slots = %+v", slots)
	}
}

func TestReservationPatchOnlyCarriesChanges(t *testing.T) {
	status := entity.ReservationCancelled
	raw, err := json.Marshal(&ReservationPatch{Status: &status})
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != `{"status":"cancelled"}` {
		t.Fatalf("patch = %s", raw)
	}
}

func TestUpdateSendsPatchWithToken(t *testing.T) {
	api := &fakeAPI{}
	repo := NewReservationRepository(api, zaptest.NewLogger(t))

	status := entity.ReservationConfirmed
	if err := repo.Update(context.Background(), "tok", "r 1", &ReservationPatch{Status: &status}); err != nil {
		t.Fatal(err)
	}

	call := api.calls[0]
	if call.method != http.MethodPatch || call.path != "/reservations/r%201" || call.token != "tok" {
		t.Errorf("call = %+v", call)
	}
}

func TestCreateManagerAcceptsBothShapes(t *testing.T) {
	for _, reply := range []string{
		`{"user":{"id":"u1","name":"Moussa","role":"manager"}}`,
		`{"id":"u1","name":"Moussa","role":"manager"}`,
	} {
		api := &fakeAPI{reply: reply}
		repo := NewAuthRepository(api, zaptest.NewLogger(t))

		user, err := repo.CreateManager(context.Background(), "tok", &CreateManagerInput{Name: "Moussa"})
		if err != nil {
			t.Fatal(err)
		}
		if user == nil || user.ID != "u1" || user.Role != entity.RoleManager {
			t.Errorf("reply %s: user = %+v", reply, user)
		}
	}
}

func TestCreateManagerWithoutUserInBody(t *testing.T) {
	api := &fakeAPI{reply: `{"message":"Gestionnaire créé"}`}
	repo := NewAuthRepository(api, zaptest.NewLogger(t))

	user, err := repo.CreateManager(context.Background(), "tok", &CreateManagerInput{Name: "Moussa"})
	if err != nil || user != nil {
		t.Fatalf("CreateManager = %+v, %v", user, err)
	}
}

func TestMeRequiresUser(t *testing.T) {
	api := &fakeAPI{reply: `{}`}
	repo := NewAuthRepository(api, zaptest.NewLogger(t))

	_, err := repo.Me(context.Background(), "tok")
	if !errors.Is(err, apiclient.ErrInvalidResponse) {
		t.Fatalf("err = %v, want ErrInvalidResponse", err)
	}
}

func TestMemoryStorage(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStorage()

	if _, ok, _ := s.Get(ctx, "sid", StorageKeyToken); ok {
		t.Fatal("empty storage returned a value")
	}

	if err := s.Set(ctx, "sid", StorageKeyToken, "tok"); err != nil {
		t.Fatal(err)
	}
	if err := s.Set(ctx, "sid", StorageKeyUser, `{"id":"u1"}`); err != nil {
		t.Fatal(err)
	}
	if v, ok, _ := s.Get(ctx, "sid", StorageKeyToken); !ok || v != "tok" {
		t.Fatalf("Get = %q, %v", v, ok)
	}
	if _, ok, _ := s.Get(ctx, "other", StorageKeyToken); ok {
		t.Fatal("visitors must not share values")
	}

	if err := s.Delete(ctx, "sid", StorageKeyToken, StorageKeyUser); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := s.Get(ctx, "sid", StorageKeyUser); ok {
		t.Fatal("value survived Delete")
	}
}
