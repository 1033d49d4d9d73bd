package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sarojnow24/smart-budget-tracker/internal/common"
	"github.com/sarojnow24/smart-budget-tracker/internal/server/models"
)

func walletJSON(w *models.Wallet) gin.H {
	return gin.H{
		"id":         w.ID,
		"name":       w.Name,
		"currency":   w.Currency,
		"created_by": w.CreatedBy,
		"created_at": w.CreatedAt,
	}
}

func (a *API) listWallets(c *gin.Context) {
	list, err := a.wallets.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		a.abortWithError(c, err)
		return
	}

	items := make([]gin.H, 0, len(list))
	for _, w := range list {
		items = append(items, walletJSON(w))
	}
	c.JSON(http.StatusOK, gin.H{"wallets": items})
}

type createWalletRequest struct {
	Name     string `json:"name" binding:"required"`
	Currency string `json:"currency" binding:"required"`
}

func (a *API) createWallet(c *gin.Context) {
	var req createWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "name and currency are required")
		return
	}

	w, err := a.wallets.Create(c.Request.Context(), currentUserID(c), req.Name, req.Currency)
	if err != nil {
		a.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, walletJSON(w))
}

func (a *API) getWallet(c *gin.Context) {
	w, err := a.wallets.Get(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		a.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, walletJSON(w))
}

func (a *API) deleteWallet(c *gin.Context) {
	if err := a.wallets.Delete(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		a.abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (a *API) getWalletData(c *gin.Context) {
	rec, err := a.wallets.GetData(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		a.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":       rec.Data,
		"updated_by": rec.UpdatedBy,
		"updated_at": rec.UpdatedAt,
	})
}

type putWalletDataRequest struct {
	Data json.RawMessage `json:"data" binding:"required"`
}

func (a *API) putWalletData(c *gin.Context) {
	var req putWalletDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "data is required")
		return
	}

	updatedAt, err := a.wallets.PutData(c.Request.Context(), currentUserID(c), c.Param("id"), req.Data)
	if err != nil {
		a.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated_at": updatedAt})
}

func (a *API) listMembers(c *gin.Context) {
	list, err := a.wallets.Members(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		a.abortWithError(c, err)
		return
	}

	items := make([]gin.H, 0, len(list))
	for _, m := range list {
		items = append(items, gin.H{"user_id": m.UserID, "role": m.Role})
	}
	c.JSON(http.StatusOK, gin.H{"members": items})
}

type inviteMemberRequest struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role" binding:"required"`
}

func (a *API) inviteMember(c *gin.Context) {
	var req inviteMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "email and role are required")
		return
	}

	// Owner is assigned at wallet creation and cannot be granted here.
	role := common.MembershipRole(req.Role)
	if role != common.RoleEditor && role != common.RoleViewer {
		badRequest(c, "role must be editor or viewer")
		return
	}

	m, err := a.wallets.Invite(c.Request.Context(), currentUserID(c), c.Param("id"), req.Email, role)
	if err != nil {
		a.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user_id": m.UserID, "role": m.Role})
}

func (a *API) removeMember(c *gin.Context) {
	err := a.wallets.RemoveMember(c.Request.Context(), currentUserID(c), c.Param("id"), c.Param("userID"))
	if err != nil {
		a.abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (a *API) lookupProfile(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		badRequest(c, "email query parameter is required")
		return
	}

	p, err := a.users.LookupProfile(c.Request.Context(), email)
	if err != nil {
		a.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user_id": p.UserID, "email": p.Email, "display_name": p.DisplayName})
}
