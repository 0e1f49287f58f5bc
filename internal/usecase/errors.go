package usecase

import (
	"errors"

	"pitch-booking/pkg/utils"
)

var (
	ErrNotStaff             = errors.New("account is not staff")
	ErrUnauthenticated      = errors.New("authentication required")
	ErrForbidden            = errors.New("admin access required")
	ErrNotFound             = errors.New("not found")
	ErrNoSlotSelected       = errors.New("no slot selected")
	ErrActionDisabled       = errors.New("action is disabled for this reservation")
	ErrConfirmationRequired = errors.New("confirmation required")
	ErrBusy                 = errors.New("a submission is already in progress")
)

// ValidationError carries inline field messages; nothing was sent to the API.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + utils.FormatValidationErrors(e.Fields)
}

func newValidationError(fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

// User facing texts.
const (
	MsgPhoneInvalid       = "Numéro invalide : 9 chiffres commençant par 7 ou 3"
	MsgNameRequired       = "Veuillez saisir votre nom"
	MsgConnectivity       = "Impossible de contacter le serveur"
	MsgReservationFailed  = "La réservation a échoué, veuillez réessayer"
	MsgAvailabilityFailed = "Impossible de charger les créneaux"
	MsgUpdateFailed       = "La mise à jour a échoué"
	MsgDeleteFieldPrompt  = "Supprimer ce terrain ? Les réservations associées seront conservées."
	MsgManagerCreated     = "Gestionnaire créé avec succès"
	MsgStaffBookingDone   = "Réservation enregistrée"
)
