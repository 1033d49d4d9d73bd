package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// callInviteMember runs the invite handler directly with the given JSON
// body. Requests that fail validation never reach the wallet service, so a
// zero API is enough.
func callInviteMember(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, err := http.NewRequest(http.MethodPost, "/api/wallets/w1/members", strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "w1"}}

	a := &API{}
	a.inviteMember(c)
	return w
}

func TestInviteMemberRejectsOwnerRole(t *testing.T) {
	w := callInviteMember(t, `{"email":"friend@example.com","role":"owner"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "role must be editor or viewer")
}

func TestInviteMemberRejectsUnknownRole(t *testing.T) {
	w := callInviteMember(t, `{"email":"friend@example.com","role":"admin"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "role must be editor or viewer")
}

func TestInviteMemberRejectsMissingFields(t *testing.T) {
	w := callInviteMember(t, `{"email":"friend@example.com"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
