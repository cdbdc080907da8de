package api

import (
	"net/http"

	reqdto "turnos-service/internal/handler/dto/request"
	resdto "turnos-service/internal/handler/dto/response"
	"turnos-service/internal/handler/httperr"
	"turnos-service/internal/pkg/errs"
	"turnos-service/internal/usecase/commands"
	"turnos-service/internal/usecase/queries"
	"turnos-service/internal/usecase/shared"

	"github.com/gin-gonic/gin"
)

type SettingsHandler struct {
	commands commands.SettingsCommands
	queries  queries.SettingsQueries
}

func NewSettingsHandler(settingsCommands commands.SettingsCommands, settingsQueries queries.SettingsQueries) *SettingsHandler {
	return &SettingsHandler{
		commands: settingsCommands,
		queries:  settingsQueries,
	}
}

// @Summary Read the booking policy
// @Tags config
// @Produce json
// @Success 200 {object} resdto.SettingsResponse
// @Failure 500 {object} httperr.Response
// @Router /config [get]
func (h *SettingsHandler) Get(c *gin.Context) {
	policy, err := h.queries.Get(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, msgSettingsRead, nil)
		return
	}
	c.JSON(http.StatusOK, resdto.NewSettingsResponse(policy))
}

// @Summary Update the booking policy
// @Description Partial update; omitted fields keep their value
// @Tags config
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.UpdateSettingsRequest true "Partial policy"
// @Success 200 {object} resdto.SettingsResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} map[string]string
// @Failure 409 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /config [put]
func (h *SettingsHandler) Update(c *gin.Context) {
	var req reqdto.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, msgSettingsWrite, nil)
		return
	}

	policy, err := h.commands.Update(c.Request.Context(), req)
	if err != nil {
		if errs.Is(err, commands.ErrInvalidSettings) {
			httperr.AbortWithError(c, http.StatusBadRequest, err, msgSettingsWrite, err.Error())
			return
		}
		if errs.Is(err, shared.ErrConflict) {
			httperr.AbortWithError(c, http.StatusConflict, err, msgSettingsConflict, nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, msgSettingsWrite, nil)
		return
	}
	c.JSON(http.StatusOK, resdto.NewSettingsResponse(policy))
}
