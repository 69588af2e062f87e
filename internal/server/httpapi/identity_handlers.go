package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/carebook/internal/common"
	"github.com/dmitrijs2005/carebook/internal/server/models"
	"github.com/dmitrijs2005/carebook/internal/server/services"
	"github.com/gin-gonic/gin"
)

type signUpRequest struct {
	Name       string `json:"name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	IsVerified bool   `json:"is_verified"`
}

type logInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type logInResponse struct {
	User  models.PublicIdentity `json:"user"`
	Token string                `json:"token"`
}

func (h *handler) hello(c *gin.Context) {
	c.JSON(http.StatusOK, msg(msgHelloUserGet))
}

func (h *handler) signUp(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req signUpRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, msg(msgInvalidBody))
			return
		}

		in := services.RegisterInput{
			Name:     req.Name,
			LastName: req.LastName,
			Email:    req.Email,
			Password: req.Password,
		}
		if role == models.RoleProfesional {
			in.IsVerified = req.IsVerified
		}

		identity, err := h.identities.RegisterIdentity(c.Request.Context(), in, role)
		if err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, identity.Public())
	}
}

func (h *handler) logIn(c *gin.Context) {
	var req logInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, msg(msgInvalidBody))
		return
	}

	res, err := h.identities.Authenticate(c.Request.Context(), req.Email, req.Password)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, logInResponse{User: res.Identity.Public(), Token: res.Token})
	case errors.Is(err, common.ErrorNotFound):
		c.JSON(http.StatusNotFound, msg(msgUnknownUser))
	case errors.Is(err, common.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, msg(msgBadCreds))
	default:
		h.fail(c, err)
	}
}

func (h *handler) me(c *gin.Context) {
	identity, err := h.identities.GetIdentity(c.Request.Context(), c.GetString(ctxKeyIdentityID))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			c.JSON(http.StatusUnauthorized, msg(common.ErrInvalidToken.Error()))
			return
		}
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, identity.Public())
}

func (h *handler) listProfesionals(c *gin.Context) {
	list, err := h.identities.ListProfesionals(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, publicList(list))
}

// getProfesional answers with a list of zero or one practitioner.
func (h *handler) getProfesional(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	pro, err := h.identities.GetProfesional(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			c.JSON(http.StatusOK, []models.PublicIdentity{})
			return
		}
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, []models.PublicIdentity{pro.Public()})
}

func publicList(list []*models.Identity) []models.PublicIdentity {
	out := make([]models.PublicIdentity, 0, len(list))
	for _, i := range list {
		out = append(out, i.Public())
	}
	return out
}
