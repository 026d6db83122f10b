package webserver_test

import (
	"net/http"
	"net/url"
	"testing"
)

func TestAuthentication(t *testing.T) {
	var cases = []struct {
		name           string
		email          string
		password       string
		expectedStatus int
	}{
		{"Login successful", "admin@example.com", "admin", http.StatusOK},
		{"Wrong password", "admin@example.com", "wrong", http.StatusUnauthorized},
		{"Unknown user", "nobody@example.com", "admin", http.StatusUnauthorized},
	}

	app, _ := bootstrapApp(t)

	for _, tcase := range cases {
		t.Run(tcase.name, func(t *testing.T) {
			newClient(app).form(t, http.MethodPost, "/en/sessions", url.Values{
				"email":    {tcase.email},
				"password": {tcase.password},
			}, tcase.expectedStatus)
		})
	}
}

func TestAccountRequiresSignIn(t *testing.T) {
	app, _ := bootstrapApp(t)
	client := newClient(app)

	client.mustGet(t, "/en/account", http.StatusUnauthorized)

	client.signIn(t, "admin@example.com", "admin")
	var account struct{ Email string }
	client.getJSON(t, "/en/account", &account)
	if account.Email != "admin@example.com" {
		t.Errorf("Wrong account: %+v", account)
	}

	client.form(t, http.MethodPost, "/en/sessions", url.Values{"email": {"admin@example.com"}, "password": {"admin"}}, http.StatusForbidden)

	req, _ := http.NewRequest(http.MethodDelete, "/en/sessions", nil)
	expectStatus(t, client.do(t, req), http.StatusNoContent)
	client.mustGet(t, "/en/account", http.StatusUnauthorized)
}

func TestForgedToken(t *testing.T) {
	app, _ := bootstrapApp(t)

	req, _ := http.NewRequest(http.MethodGet, "/en/account", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: "eyJhbGciOiJIUzI1NiJ9.eyJ1c2VyZGF0YSI6e319.forged"})
	expectStatus(t, newClient(app).do(t, req), http.StatusUnauthorized)
}
