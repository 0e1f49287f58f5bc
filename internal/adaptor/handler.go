package adaptor

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"pitch-booking/internal/data/entity"
	"pitch-booking/internal/usecase"
	"pitch-booking/pkg/apiclient"
	"pitch-booking/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Session     *SessionHandler
	Booking     *BookingHandler
	Dashboard   *DashboardHandler
	Reservation *ReservationHandler
	Assisted    *AssistedHandler
	Field       *FieldHandler
	User        *UserHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Session:     NewSessionHandler(service.Session, log),
		Booking:     NewBookingHandler(service.Booking, log),
		Dashboard:   NewDashboardHandler(service.Dashboard, log),
		Reservation: NewReservationHandler(service.Reservation, log),
		Assisted:    NewAssistedHandler(service.Assisted, log),
		Field:       NewFieldHandler(service.Field, log),
		User:        NewUserHandler(service.User, log),
	}
}

const (
	msgInvalidBody     = "Requête invalide"
	msgValidation      = "Veuillez corriger les champs en erreur"
	msgNoSlot          = "Veuillez choisir un créneau"
	msgActionDisabled  = "Action indisponible pour cette réservation"
	msgBusy            = "Une soumission est déjà en cours"
	msgNotFound        = "Élément introuvable"
	msgForbidden       = "Accès réservé aux administrateurs"
	msgUnauthenticated = "Authentification requise"
)

// decodeBody reads a JSON body. An empty body leaves dst untouched.
func decodeBody(r *http.Request, dst any) error {
	if r.Body == nil || r.Body == http.NoBody {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(dst)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// decodeAndValidate answers 400 or 422 itself and reports whether the handler may go on.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := decodeBody(r, dst); err != nil {
		utils.ResponseBadRequest(w, msgInvalidBody, nil)
		return false
	}
	if errs := utils.ValidateStruct(dst); len(errs) > 0 {
		utils.ResponseInvalid(w, msgValidation, nil, errs)
		return false
	}
	return true
}

func visitorID(r *http.Request) string {
	sid, _ := utils.GetVisitorIDFromContext(r.Context())
	return sid
}

func staffSession(r *http.Request) *entity.Session {
	session, _ := utils.GetSessionFromContext(r.Context())
	return session
}

// respondError maps a service error to the response envelope. view is the state the
// page should keep showing; fallback is the text used when the server gave none.
func respondError(w http.ResponseWriter, log *zap.Logger, err error, operation, fallback string, view any) {
	var (
		vErr   *usecase.ValidationError
		apiErr *apiclient.APIError
	)

	switch {
	case errors.As(err, &vErr):
		utils.ResponseInvalid(w, msgValidation, view, vErr.Fields)

	case errors.Is(err, usecase.ErrNoSlotSelected):
		utils.ResponseJSON(w, http.StatusBadRequest, false, msgNoSlot, view, nil)

	case errors.Is(err, usecase.ErrUnauthenticated):
		utils.ResponseUnauthorized(w, msgUnauthenticated)

	case errors.Is(err, usecase.ErrForbidden):
		log.Warn(operation+" forbidden", zap.Error(err))
		utils.ResponseJSON(w, http.StatusForbidden, false, msgForbidden, view, nil)

	case errors.Is(err, usecase.ErrNotFound):
		utils.ResponseJSON(w, http.StatusNotFound, false, msgNotFound, view, nil)

	case errors.Is(err, usecase.ErrConfirmationRequired):
		utils.ResponseConflict(w, usecase.MsgDeleteFieldPrompt, view)

	case errors.Is(err, usecase.ErrActionDisabled):
		utils.ResponseConflict(w, msgActionDisabled, view)

	case errors.Is(err, usecase.ErrBusy):
		utils.ResponseConflict(w, msgBusy, view)

	case apiclient.IsTransport(err):
		log.Warn(operation+" failed - remote unreachable", zap.Error(err))
		utils.ResponseBadGateway(w, usecase.MsgConnectivity, view)

	case errors.Is(err, apiclient.ErrInvalidResponse):
		log.Warn(operation+" failed - invalid remote response", zap.Error(err))
		utils.ResponseBadGateway(w, apiclient.UserMessage(err, fallback), view)

	case errors.As(err, &apiErr):
		log.Warn(operation+" rejected by remote api",
			zap.Error(err),
			zap.Int("remote_status", apiErr.Status))
		msg := apiclient.UserMessage(err, fallback)
		if apiErr.Status >= http.StatusInternalServerError || apiErr.Status < http.StatusBadRequest {
			utils.ResponseBadGateway(w, msg, view)
			return
		}
		utils.ResponseJSON(w, apiErr.Status, false, msg, view, nil)

	default:
		log.Error(operation+" failed", zap.Error(err))
		utils.ResponseJSON(w, http.StatusInternalServerError, false, fallback, view, nil)
	}
}
