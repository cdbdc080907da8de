package api

import (
	"net/http"

	"turnos-service/internal/domain/booking"
	"turnos-service/internal/handler/httperr"
	"turnos-service/internal/pkg/errs"
	"turnos-service/internal/usecase/shared"

	"github.com/gin-gonic/gin"
)

// User-facing messages. The public front-end shows them verbatim.
const (
	msgMissingFields      = "Todos los campos son requeridos"
	msgInvalidEmail       = "El formato del email no es válido"
	msgInvalidDateTime    = "La fecha u hora seleccionada no es válida"
	msgBookingsDisabled   = "Las reservas están deshabilitadas temporalmente"
	msgDayNotAllowed      = "El día seleccionado no está disponible para reservas"
	msgHourOutOfRange     = "El horario seleccionado está fuera del rango permitido"
	msgInvalidToken       = "Datos de confirmación inválidos o corruptos"
	msgIncompletePayload  = "Datos incompletos en la solicitud"
	msgSlotTakenOnConfirm = "El horario seleccionado ya no está disponible. Puede que haya sido reservado mientras procesabas la solicitud."
	msgSlotTaken          = "El horario seleccionado no está disponible"
	msgAdminEmailMissing  = "No se ha configurado el email del administrador"
	msgCalendarMissing    = "Configuración de Google Calendar no encontrada"
	msgCalendarFailed     = "Error al comunicarse con Google Calendar"
	msgDispatchFailed     = "Error al enviar el email. Por favor, verifica la configuración de email."
	msgSettingsRead       = "Error obteniendo configuración"
	msgSettingsWrite      = "Error actualizando configuración"
	msgSettingsConflict   = "La configuración fue modificada al mismo tiempo. Intente nuevamente."
	msgInternal           = "Error interno del servidor"
)

// abortBookingError maps a booking workflow error to its status and message.
// conflictMsg differs between the confirmation link and the other entry points.
func abortBookingError(c *gin.Context, err error, conflictMsg string) {
	status, msg := classify(err, conflictMsg)
	httperr.AbortWithError(c, status, err, msg, nil)
}

func classify(err error, conflictMsg string) (int, string) {
	switch {
	case errs.Is(err, shared.ErrInvalidToken):
		return http.StatusBadRequest, msgInvalidToken
	case errs.Is(err, shared.ErrCorruptPayload):
		if errs.Is(err, booking.ErrIncompletePayload) {
			return http.StatusBadRequest, msgIncompletePayload
		}
		return http.StatusBadRequest, msgInvalidToken
	case errs.Is(err, shared.ErrValidation):
		return http.StatusBadRequest, validationMessage(err)
	case errs.Is(err, shared.ErrConflict):
		return http.StatusConflict, conflictMsg
	case errs.Is(err, shared.ErrCalendarNotConfigured):
		return http.StatusInternalServerError, msgCalendarMissing
	case errs.Is(err, shared.ErrUpstream):
		return http.StatusBadGateway, msgCalendarFailed
	case errs.Is(err, shared.ErrAdminEmailNotConfigured):
		return http.StatusInternalServerError, msgAdminEmailMissing
	case errs.Is(err, shared.ErrDispatch):
		return http.StatusInternalServerError, msgDispatchFailed
	case errs.Is(err, shared.ErrSettingsUnavailable):
		return http.StatusInternalServerError, msgSettingsRead
	default:
		return http.StatusInternalServerError, msgInternal
	}
}

func validationMessage(err error) string {
	switch {
	case errs.Is(err, booking.ErrMissingField):
		return msgMissingFields
	case errs.Is(err, booking.ErrInvalidEmail):
		return msgInvalidEmail
	case errs.Is(err, booking.ErrBookingsDisabled):
		return msgBookingsDisabled
	case errs.Is(err, booking.ErrDayNotAllowed):
		return msgDayNotAllowed
	case errs.Is(err, booking.ErrHourOutOfRange):
		return msgHourOutOfRange
	default:
		return msgInvalidDateTime
	}
}

func abortBindError(c *gin.Context, err error) {
	httperr.AbortWithError(c, http.StatusBadRequest, err, msgMissingFields, nil)
}
