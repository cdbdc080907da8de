package api

import (
	"net/http"

	reqdto "turnos-service/internal/handler/dto/request"
	resdto "turnos-service/internal/handler/dto/response"
	"turnos-service/internal/usecase/commands"
	"turnos-service/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	commands commands.BookingCommands
	queries  queries.AvailabilityQueries
}

func NewBookingHandler(bookingCommands commands.BookingCommands, availabilityQueries queries.AvailabilityQueries) *BookingHandler {
	return &BookingHandler{
		commands: bookingCommands,
		queries:  availabilityQueries,
	}
}

// @Summary Request an appointment
// @Description Validates the request and emails the administrator a confirmation link
// @Tags turnos
// @Accept json
// @Produce json
// @Param request body reqdto.SubmitBookingRequest true "Booking request"
// @Success 200 {object} resdto.SubmitBookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /turnos/solicitar [post]
func (h *BookingHandler) Submit(c *gin.Context) {
	var req reqdto.SubmitBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBindError(c, err)
		return
	}

	if _, err := h.commands.SubmitRequest(c.Request.Context(), req); err != nil {
		abortBookingError(c, err, msgSlotTaken)
		return
	}

	c.JSON(http.StatusOK, resdto.SubmitBookingResponse{
		Success: true,
		Message: "Solicitud de turno enviada exitosamente",
	})
}

// @Summary Confirm an appointment
// @Description Redeems the token from the administrator's email and writes the calendar event
// @Tags turnos
// @Accept json
// @Produce json
// @Param request body reqdto.ConfirmBookingRequest true "Confirmation token"
// @Success 200 {object} resdto.BookingCommittedResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /turnos/confirmar [post]
func (h *BookingHandler) Confirm(c *gin.Context) {
	var req reqdto.ConfirmBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBindError(c, err)
		return
	}

	result, err := h.commands.Confirm(c.Request.Context(), req)
	if err != nil {
		abortBookingError(c, err, msgSlotTakenOnConfirm)
		return
	}

	c.JSON(http.StatusOK, resdto.BookingCommittedResponse{
		Success: true,
		Message: "Turno confirmado exitosamente. Se han enviado emails de confirmación.",
		EventID: result.EventID,
	})
}

// @Summary Check a slot
// @Tags turnos
// @Accept json
// @Produce json
// @Param request body reqdto.AvailabilityRequest true "Slot"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /turnos/disponibilidad [post]
func (h *BookingHandler) Availability(c *gin.Context) {
	var req reqdto.AvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBindError(c, err)
		return
	}

	view, err := h.queries.Check(c.Request.Context(), req)
	if err != nil {
		abortBookingError(c, err, msgSlotTaken)
		return
	}

	c.JSON(http.StatusOK, resdto.AvailabilityResponse{Available: view.Available})
}

// @Summary Book directly
// @Description Administrator booking without the email round trip
// @Tags turnos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.DirectBookingRequest true "Booking"
// @Success 200 {object} resdto.BookingCommittedResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} map[string]string
// @Failure 409 {object} httperr.Response
// @Router /turnos/reservar [post]
func (h *BookingHandler) Book(c *gin.Context) {
	var req reqdto.DirectBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBindError(c, err)
		return
	}

	result, err := h.commands.Book(c.Request.Context(), req)
	if err != nil {
		abortBookingError(c, err, msgSlotTaken)
		return
	}

	c.JSON(http.StatusOK, resdto.BookingCommittedResponse{
		Success: true,
		Message: "Turno reservado exitosamente",
		EventID: result.EventID,
	})
}
