package twilio

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"ContactOutreach/internal/config"
	"ContactOutreach/internal/domain"
)

func TestSendCreated(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "AC123" || pass != "secret" {
			t.Errorf("unexpected basic auth: %s/%s", user, pass)
		}
		if r.URL.Path != "/2010-04-01/Accounts/AC123/Messages.json" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		if r.PostForm.Get("To") != "+12245004255" {
			t.Errorf("unexpected To: %s", r.PostForm.Get("To"))
		}
		if r.PostForm.Get("From") != "+13103614543" {
			t.Errorf("unexpected From: %s", r.PostForm.Get("From"))
		}
		if r.PostForm.Get("Body") == "" {
			t.Errorf("empty Body")
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	sender := NewSender(config.SMSConfig{
		BaseURL:    server.URL,
		AccountSID: "AC123",
		AuthToken:  "secret",
	})

	msg := domain.SMSMessage{From: "+13103614543", To: "+12245004255", Body: "hello"}
	if err := sender.Send(context.Background(), msg); err != nil {
		t.Fatalf("Send error: %v", err)
	}
}

func TestSendNon201IsError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message": "invalid number"}`, http.StatusBadRequest)
	}))
	defer server.Close()

	sender := NewSender(config.SMSConfig{BaseURL: server.URL, AccountSID: "AC123", AuthToken: "secret"})

	msg := domain.SMSMessage{From: "+1", To: "+2", Body: "hello"}
	if err := sender.Send(context.Background(), msg); err == nil {
		t.Fatalf("expected error for 400")
	}
}
