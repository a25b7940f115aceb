package anthropic

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTranslateToCommand(t *testing.T) {
	var got messageRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("path = %s, want /v1/messages", r.URL.Path)
		}
		if r.Header.Get("x-api-key") != "key" {
			t.Errorf("x-api-key = %q", r.Header.Get("x-api-key"))
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"content":[{"text":"sell | tshirts | 4 | 80\n"}]}`))
	}))
	defer srv.Close()

	client := NewClient("key", srv.URL)
	cmd, err := client.TranslateToCommand(context.Background(), "j'ai vendu 4 tshirts a 80")
	if err != nil {
		t.Fatalf("TranslateToCommand() error: %v", err)
	}
	if cmd != "sell | tshirts | 4 | 80" {
		t.Errorf("command = %q", cmd)
	}
	if len(got.Messages) != 1 || got.Messages[0].Content != "j'ai vendu 4 tshirts a 80" {
		t.Errorf("request messages = %+v", got.Messages)
	}
}

func TestTranslateToCommandAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"bad key"}}`))
	}))
	defer srv.Close()

	if _, err := NewClient("key", srv.URL).TranslateToCommand(context.Background(), "hi"); err == nil {
		t.Fatal("TranslateToCommand() error = nil, want api error")
	}
}

func TestCleanCommand(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr error
	}{
		{"profit", "profit", nil},
		{"```\nstock | caps\n```", "stock | caps", nil},
		{"  \"expense | rent | 200\"  ", "expense | rent | 200", nil},
		{"NONE", "", ErrNoCommand},
		{"   ", "", ErrNoCommand},
	}
	for _, tt := range tests {
		got, err := cleanCommand(tt.in)
		if !errors.Is(err, tt.wantErr) {
			t.Fatalf("cleanCommand(%q) error = %v, want %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("cleanCommand(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
