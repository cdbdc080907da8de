package response

type SubmitBookingResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type BookingCommittedResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	EventID string `json:"eventId"`
}

type AvailabilityResponse struct {
	Available bool `json:"disponible"`
}
