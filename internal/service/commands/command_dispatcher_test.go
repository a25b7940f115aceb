package commands

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/stockbot/internal/domain/models"
	"github.com/mamadbah2/stockbot/internal/repository/memory"
	"github.com/mamadbah2/stockbot/internal/service/accounting"
)

type stubTranslator struct {
	reply string
	err   error
	calls int
}

func (s *stubTranslator) TranslateToCommand(context.Context, string) (string, error) {
	s.calls++
	return s.reply, s.err
}

func newDispatcher(t *testing.T, translator Translator) (*Service, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	return NewService(accounting.NewEngine(store, nil, nil), translator, nil), store
}

func TestHandleCommandExecutes(t *testing.T) {
	ctx := context.Background()
	svc, store := newDispatcher(t, nil)

	if out := svc.HandleCommand(ctx, "buy | tshirt | 10 | 50", "224600"); !out.Success {
		t.Fatalf("buy outcome = %+v", out)
	}
	out := svc.HandleCommand(ctx, "sell | tshirt | 4 | 80", "224600")
	if !out.Success {
		t.Fatalf("sell outcome = %+v", out)
	}
	if !strings.Contains(out.Message, "Profit: 120") {
		t.Errorf("message = %q", out.Message)
	}

	summary, err := store.GetSummary(ctx)
	if err != nil {
		t.Fatalf("GetSummary() error: %v", err)
	}
	if !summary.Cash.Equal(decimal.NewFromInt(-180)) {
		t.Errorf("cash = %s, want -180", summary.Cash)
	}
}

func TestHandleCommandParseFailure(t *testing.T) {
	svc, _ := newDispatcher(t, nil)

	out := svc.HandleCommand(context.Background(), "sell | onlyitem", "224600")
	if out.Success || out.Kind != models.KindParse {
		t.Fatalf("outcome = %+v, want parse failure", out)
	}
	if !strings.Contains(out.Message, models.UsageSell) {
		t.Errorf("message = %q, want usage", out.Message)
	}
}

func TestHandleCommandTranslatesFreeText(t *testing.T) {
	translator := &stubTranslator{reply: "stock"}
	svc, _ := newDispatcher(t, translator)

	out := svc.HandleCommand(context.Background(), "what do I have left?", "224600")
	if !out.Success {
		t.Fatalf("outcome = %+v", out)
	}
	if !strings.HasPrefix(out.Message, "Understood: stock\n") {
		t.Errorf("message = %q", out.Message)
	}
	if translator.calls != 1 {
		t.Errorf("translator calls = %d, want 1", translator.calls)
	}
}

func TestHandleCommandTranslationFallbacks(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		translator *stubTranslator
		wantCalls  int
	}{
		{"translator error", "hello there", &stubTranslator{err: errors.New("timeout")}, 1},
		{"translation still invalid", "hello there", &stubTranslator{reply: "dance | now"}, 1},
		{"format errors are not translated", "sell | pen", &stubTranslator{reply: "profit"}, 0},
		{"empty text is not translated", "  ", &stubTranslator{reply: "profit"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newDispatcher(t, tt.translator)
			out := svc.HandleCommand(context.Background(), tt.text, "224600")
			if out.Success || out.Kind != models.KindParse {
				t.Errorf("outcome = %+v, want parse failure", out)
			}
			if tt.translator.calls != tt.wantCalls {
				t.Errorf("translator calls = %d, want %d", tt.translator.calls, tt.wantCalls)
			}
		})
	}
}
