package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type credentialsRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

func (a *API) register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "email and a password of at least 8 characters are required")
		return
	}

	user, err := a.users.Register(c.Request.Context(), req.Email, []byte(req.Password))
	if err != nil {
		a.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": user.ID, "email": user.Email})
}

func (a *API) login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "email and password are required")
		return
	}

	pair, err := a.users.Login(c.Request.Context(), req.Email, []byte(req.Password))
	if err != nil {
		a.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	})
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

func (a *API) refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "refresh_token is required")
		return
	}

	pair, err := a.users.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		a.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	})
}

func (a *API) logout(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "refresh_token is required")
		return
	}

	if err := a.users.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		a.abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (a *API) me(c *gin.Context) {
	user, err := a.users.GetUser(c.Request.Context(), currentUserID(c))
	if err != nil {
		a.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":       user.ID,
		"email":    user.Email,
		"verified": user.Verified,
	})
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

func (a *API) updatePassword(c *gin.Context) {
	var req updatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "current_password and a new_password of at least 8 characters are required")
		return
	}

	err := a.users.UpdatePassword(c.Request.Context(), currentUserID(c),
		[]byte(req.CurrentPassword), []byte(req.NewPassword))
	if err != nil {
		a.abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type resetRequestRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func (a *API) passwordResetRequest(c *gin.Context) {
	var req resetRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "email is required")
		return
	}

	// Always answer 202 regardless of whether the account exists, so the
	// endpoint cannot be used to probe for registered emails.
	token, err := a.users.RequestPasswordReset(c.Request.Context(), req.Email)
	if err != nil {
		c.JSON(http.StatusAccepted, gin.H{})
		return
	}

	// Token delivery is out of scope; it is returned directly.
	c.JSON(http.StatusAccepted, gin.H{"reset_token": token})
}

type resetConfirmRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

func (a *API) passwordResetConfirm(c *gin.Context) {
	var req resetConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "token and a new_password of at least 8 characters are required")
		return
	}

	if err := a.users.ConfirmPasswordReset(c.Request.Context(), req.Token, []byte(req.NewPassword)); err != nil {
		a.abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
