package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/carebook/internal/common"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgGeneric      = "Ha ocurrido un problema"
	msgUnknownUser  = "El user no existe"
	msgBadCreds     = "bad credentials"
	msgInvalidID    = "invalid id"
	msgInvalidBody  = "invalid request body"
	msgNotFound     = "not found"
	msgHelloUserGet = "Hello, this is your GET /user response "
)

func msg(text string) gin.H {
	return gin.H{"msg": text}
}

// fail maps service errors to status codes. Anything unrecognised is a 500
// and gets logged with its cause.
func (h *handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrValidation):
		c.JSON(http.StatusBadRequest, msg(err.Error()))
	case errors.Is(err, common.ErrDuplicateEmail):
		c.JSON(http.StatusConflict, msg(common.ErrDuplicateEmail.Error()))
	case errors.Is(err, common.ErrorNotFound):
		c.JSON(http.StatusNotFound, msg(msgNotFound))
	default:
		h.log.Error(c.Request.Context(), "request failed",
			"route", c.FullPath(),
			"request_id", c.GetString(ctxKeyRequestID),
			"error", err,
		)
		c.JSON(http.StatusInternalServerError, msg(msgGeneric))
	}
}

// pathID returns the :id parameter when it is a uuid, otherwise it answers
// 400 and reports false.
func pathID(c *gin.Context) (string, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, msg(msgInvalidID))
		return "", false
	}
	return id.String(), true
}
