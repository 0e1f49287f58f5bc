package repository

import (
	"pitch-booking/pkg/apiclient"

	"go.uber.org/zap"
)

// Repository groups the remote API resources and the visitor storage.
type Repository struct {
	Auth        AuthRepository
	Field       FieldRepository
	Reservation ReservationRepository
	Storage     StorageRepository
}

func NewRepository(api apiclient.Doer, storage StorageRepository, log *zap.Logger) *Repository {
	return &Repository{
		Auth:        NewAuthRepository(api, log),
		Field:       NewFieldRepository(api, log),
		Reservation: NewReservationRepository(api, log),
		Storage:     storage,
	}
}
