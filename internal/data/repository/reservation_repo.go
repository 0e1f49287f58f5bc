package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"pitch-booking/internal/data/entity"
	"pitch-booking/pkg/apiclient"

	"go.uber.org/zap"
)

type ReservationRepository interface {
	Availability(ctx context.Context, date string, fieldType entity.FieldType) ([]entity.Slot, error)
	CreatePublic(ctx context.Context, in *CreateReservationInput) error
	CreateByStaff(ctx context.Context, token string, in *CreateReservationInput) error
	List(ctx context.Context, token string) ([]entity.Reservation, error)
	Update(ctx context.Context, token string, id entity.ID, patch *ReservationPatch) error
}

// CreateReservationInput is shared by the public and the staff submissions.
// Email and address are left out when empty.
type CreateReservationInput struct {
	FieldID       entity.ID            `json:"fieldId"`
	Date          string               `json:"date"`
	StartTime     string               `json:"startTime"`
	EndTime       string               `json:"endTime"`
	Name          string               `json:"name"`
	Email         string               `json:"email,omitempty"`
	Phone         string               `json:"phone"`
	Address       string               `json:"address,omitempty"`
	PaymentMethod entity.PaymentMethod `json:"paymentMethod"`
}

// ReservationPatch only carries the fields being changed.
type ReservationPatch struct {
	Status        *entity.ReservationStatus `json:"status,omitempty"`
	PaymentMethod *entity.PaymentMethod     `json:"paymentMethod,omitempty"`
	PaymentStatus *entity.PaymentStatus     `json:"paymentStatus,omitempty"`
	PaidAmount    *float64                  `json:"paidAmount,omitempty"`
}

type reservationRepository struct {
	api apiclient.Doer
	log *zap.Logger
}

func NewReservationRepository(api apiclient.Doer, log *zap.Logger) ReservationRepository {
	return &reservationRepository{
		api: api,
		log: log.With(zap.String("repository", "reservation")),
	}
}

func (r *reservationRepository) Availability(ctx context.Context, date string, fieldType entity.FieldType) ([]entity.Slot, error) {
	query := url.Values{"date": {date}, "type": {string(fieldType)}}

	var raw json.RawMessage
	if err := r.api.Do(ctx, http.MethodGet, "/reservations/availability?"+query.Encode(), "", nil, &raw); err != nil {
		return nil, fmt.Errorf("availability %s type %s: %w", date, fieldType, err)
	}

	return decodeList[entity.Slot](raw, "slots")
}

func (r *reservationRepository) CreatePublic(ctx context.Context, in *CreateReservationInput) error {
	if err := r.api.Do(ctx, http.MethodPost, "/reservations/public", "", in, nil); err != nil {
		r.log.Warn("Public reservation rejected",
			zap.Error(err),
			zap.String("field_id", in.FieldID.String()),
			zap.String("date", in.Date),
			zap.String("start_time", in.StartTime),
		)
		return fmt.Errorf("create public reservation: %w", err)
	}

	r.log.Info("Public reservation created",
		zap.String("field_id", in.FieldID.String()),
		zap.String("date", in.Date),
		zap.String("start_time", in.StartTime),
		zap.String("payment_method", string(in.PaymentMethod)),
	)

	return nil
}

func (r *reservationRepository) CreateByStaff(ctx context.Context, token string, in *CreateReservationInput) error {
	if err := r.api.Do(ctx, http.MethodPost, "/reservations/admin-create", token, in, nil); err != nil {
		return fmt.Errorf("create staff reservation: %w", err)
	}

	return nil
}

func (r *reservationRepository) List(ctx context.Context, token string) ([]entity.Reservation, error) {
	var raw json.RawMessage
	if err := r.api.Do(ctx, http.MethodGet, "/reservations", token, nil, &raw); err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}

	return decodeList[entity.Reservation](raw, "reservations")
}

func (r *reservationRepository) Update(ctx context.Context, token string, id entity.ID, patch *ReservationPatch) error {
	path := "/reservations/" + url.PathEscape(id.String())
	if err := r.api.Do(ctx, http.MethodPatch, path, token, patch, nil); err != nil {
		r.log.Error("Failed to update reservation",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
		)
		return fmt.Errorf("update reservation %s: %w", id, err)
	}

	return nil
}
