package ui

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSRF_CookieIssuedOnGet(t *testing.T) {
	f := newUIFixture(t)
	client := newBrowser(t, f.srv)

	token := csrfToken(t, client, f.srv)
	assert.NotEmpty(t, token)
}

func TestCSRF_PostWithoutTokenRejected(t *testing.T) {
	f := newUIFixture(t)
	client := newBrowser(t, f.srv)
	csrfToken(t, client, f.srv) // prime the cookie

	resp := postForm(t, client, f.srv, "/ui/register", url.Values{
		"username": {"alice"},
		"email":    {"alice@example.com"},
		"password": {"password1"},
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestCSRF_PostWithWrongTokenRejected(t *testing.T) {
	f := newUIFixture(t)
	client := newBrowser(t, f.srv)
	csrfToken(t, client, f.srv)

	resp := postForm(t, client, f.srv, "/ui/register", url.Values{
		"csrf_token": {"wrong-token"},
		"username":   {"alice"},
		"email":      {"alice@example.com"},
		"password":   {"password1"},
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestCSRF_GetIsExempt(t *testing.T) {
	f := newUIFixture(t)
	client := newBrowser(t, f.srv)

	resp, err := client.Get(f.srv.URL + "/ui/")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
