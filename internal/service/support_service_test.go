package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/fandom-mart/internal/config"
	"github.com/fandom-mart/internal/constants"
	"github.com/fandom-mart/internal/repository"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

func TestCurrencyConverterReloadKeepsSite(t *testing.T) {
	converter := NewCurrencyConverter(config.CurrencyConfig{Site: "THB", Rates: map[string]string{"USD": "35"}})
	converter.Reload(config.CurrencyConfig{Site: "USD", Rates: map[string]string{"JPY": "0.25"}})

	if converter.Site() != "THB" {
		t.Fatalf("site changed to %s", converter.Site())
	}
	if diff := cmp.Diff([]string{"JPY", "THB"}, converter.Supported()); diff != "" {
		t.Fatalf("supported mismatch (-want +got):\n%s", diff)
	}
	if _, err := converter.ToSite(decimal.NewFromInt(1), "USD"); !errors.Is(err, ErrCurrencyUnsupported) {
		t.Fatalf("USD should be dropped after reload, got %v", err)
	}
}

func TestCurrencyConverter(t *testing.T) {
	converter := NewCurrencyConverter(config.CurrencyConfig{
		Site: "thb",
		Rates: map[string]string{
			"usd": "35.5",
			"JPY": "0.24",
			"EUR": "not-a-rate",
			"KRW": "-1",
		},
	})
	if diff := cmp.Diff([]string{"JPY", "THB", "USD"}, converter.Supported()); diff != "" {
		t.Fatalf("supported mismatch (-want +got):\n%s", diff)
	}

	cases := []struct {
		amount   string
		currency string
		want     string
		err      error
	}{
		{"10", "USD", "355.00", nil},
		{"1000", "jpy", "240.00", nil},
		{"99.999", "", "100.00", nil},
		{"5", "EUR", "", ErrCurrencyUnsupported},
		{"-1", "THB", "", ErrAmountInvalid},
	}
	for _, tc := range cases {
		got, err := converter.ToSite(decimal.RequireFromString(tc.amount), tc.currency)
		if !errors.Is(err, tc.err) {
			t.Fatalf("%s %s: want err %v got %v", tc.amount, tc.currency, tc.err, err)
		}
		if tc.err == nil && got.StringFixed(2) != tc.want {
			t.Fatalf("%s %s: want %s got %s", tc.amount, tc.currency, tc.want, got.StringFixed(2))
		}
	}
}

func TestTicketLifecycle(t *testing.T) {
	db := openServiceDB(t)
	svc := NewTicketService(repository.NewTicketRepository(db))

	if _, err := svc.Create(TicketInput{Name: "Kaeya", Email: "kaeya@mondstadt.io"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("want ErrInvalidInput, got %v", err)
	}
	ticket, err := svc.Create(TicketInput{
		UserID:  4,
		Name:    "Kaeya",
		Email:   "Kaeya@Mondstadt.io",
		OrderNo: "FM20261017120000123456",
		Subject: "Where is my figure?",
		Message: "Pre-order has not shipped yet.",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !strings.HasPrefix(ticket.TicketNo, constants.TicketNoPrefix) || ticket.Status != constants.TicketStatusOpen {
		t.Fatalf("unexpected ticket %+v", ticket)
	}

	steps := []struct {
		to   string
		want error
	}{
		{constants.TicketStatusInProgress, nil},
		{constants.TicketStatusOpen, ErrTicketStatusInvalid},
		{constants.TicketStatusResolved, nil},
		{constants.TicketStatusOpen, nil},
		{constants.TicketStatusClosed, nil},
		{constants.TicketStatusOpen, ErrTicketStatusInvalid},
	}
	for _, step := range steps {
		_, err := svc.Update(ticket.ID, TicketUpdateInput{Status: step.to})
		if !errors.Is(err, step.want) {
			t.Fatalf("-> %s: want %v got %v", step.to, step.want, err)
		}
	}

	note := "refunded shipping"
	updated, err := svc.Update(ticket.ID, TicketUpdateInput{AdminNote: &note})
	if err != nil || updated.AdminNote != note || updated.Status != constants.TicketStatusClosed {
		t.Fatalf("note update failed: %+v err=%v", updated, err)
	}
	mine, total, err := svc.ListByUser(4, 1, 20)
	if err != nil || total != 1 || mine[0].ID != ticket.ID {
		t.Fatalf("list by user failed: total=%d err=%v", total, err)
	}
	if _, err := svc.Get(999); !errors.Is(err, ErrTicketNotFound) {
		t.Fatalf("want ErrTicketNotFound, got %v", err)
	}
}

func TestCustomRequestConversionAndQuote(t *testing.T) {
	env := newTestEnv(t)
	fandom, _ := env.seedCatalog(t)
	converter := NewCurrencyConverter(config.CurrencyConfig{Site: "THB", Rates: map[string]string{"USD": "36"}})
	svc := NewCustomRequestService(repository.NewCustomRequestRepository(env.db), env.fandoms, converter)

	base := CustomRequestInput{
		Name:         "Noelle",
		Email:        "noelle@mondstadt.io",
		FandomID:     fandom.ID,
		Character:    "Noelle",
		ItemType:     "Acrylic_Stand",
		Description:  "Double sided stand, 15cm",
		BudgetAmount: decimal.RequireFromString("25.50"),
	}

	bad := base
	bad.BudgetCurrency = "GBP"
	if _, err := svc.Create(bad); !errors.Is(err, ErrCurrencyUnsupported) {
		t.Fatalf("want ErrCurrencyUnsupported, got %v", err)
	}
	bad = base
	bad.ItemType = "spaceship"
	if _, err := svc.Create(bad); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("want ErrInvalidInput, got %v", err)
	}
	bad = base
	bad.FandomID = 999
	if _, err := svc.Create(bad); !errors.Is(err, ErrFandomNotFound) {
		t.Fatalf("want ErrFandomNotFound, got %v", err)
	}

	input := base
	input.BudgetCurrency = "usd"
	request, err := svc.Create(input)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !strings.HasPrefix(request.RequestNo, constants.CustomRequestNoPrefix) {
		t.Fatalf("unexpected request no %s", request.RequestNo)
	}
	if request.BudgetCurrency != "USD" || request.SiteCurrency != "THB" || request.Quantity != 1 {
		t.Fatalf("unexpected request %+v", request)
	}
	if got := request.BudgetConverted.Decimal.StringFixed(2); got != "918.00" {
		t.Fatalf("converted budget want 918.00 got %s", got)
	}

	if _, err := svc.UpdateStatus(request.ID, constants.CustomRequestStatusAccepted, ""); !errors.Is(err, ErrCustomRequestStatusInvalid) {
		t.Fatalf("submitted -> accepted want ErrCustomRequestStatusInvalid, got %v", err)
	}
	if _, err := svc.Quote(request.ID, decimal.Zero, ""); !errors.Is(err, ErrCustomRequestQuoteInvalid) {
		t.Fatalf("zero quote want ErrCustomRequestQuoteInvalid, got %v", err)
	}
	quoted, err := svc.Quote(request.ID, decimal.NewFromInt(1100), "resin print")
	if err != nil {
		t.Fatalf("quote failed: %v", err)
	}
	if quoted.Status != constants.CustomRequestStatusQuoted || quoted.AdminNote != "resin print" {
		t.Fatalf("unexpected quoted request %+v", quoted)
	}
	accepted, err := svc.UpdateStatus(request.ID, constants.CustomRequestStatusAccepted, "")
	if err != nil || accepted.Status != constants.CustomRequestStatusAccepted {
		t.Fatalf("accept failed: %+v err=%v", accepted, err)
	}
	if _, err := svc.Quote(request.ID, decimal.NewFromInt(900), ""); !errors.Is(err, ErrCustomRequestStatusInvalid) {
		t.Fatalf("requote accepted want ErrCustomRequestStatusInvalid, got %v", err)
	}

	list, total, err := svc.List(repository.CustomRequestListFilter{Status: constants.CustomRequestStatusAccepted})
	if err != nil || total != 1 || list[0].ID != request.ID {
		t.Fatalf("list failed: total=%d err=%v", total, err)
	}
}

func TestCaptchaDisabledPassesThrough(t *testing.T) {
	svc := NewCaptchaService(config.CaptchaConfig{Enabled: false})
	if err := svc.Verify(CaptchaSceneTicket, CaptchaVerifyPayload{}); err != nil {
		t.Fatalf("disabled captcha should pass, got %v", err)
	}
	if _, err := svc.GenerateImageChallenge(); !errors.Is(err, ErrCaptchaConfigInvalid) {
		t.Fatalf("want ErrCaptchaConfigInvalid, got %v", err)
	}

	enabled := NewCaptchaService(config.CaptchaConfig{Enabled: true})
	if err := enabled.Verify(CaptchaSceneCustomRequest, CaptchaVerifyPayload{}); !errors.Is(err, ErrCaptchaRequired) {
		t.Fatalf("want ErrCaptchaRequired, got %v", err)
	}
	challenge, err := enabled.GenerateImageChallenge()
	if err != nil || challenge.CaptchaID == "" || challenge.ImageBase64 == "" {
		t.Fatalf("generate failed: %+v err=%v", challenge, err)
	}
	if err := enabled.Verify(CaptchaSceneTicket, CaptchaVerifyPayload{CaptchaID: challenge.CaptchaID, CaptchaCode: "wrong"}); !errors.Is(err, ErrCaptchaInvalid) {
		t.Fatalf("want ErrCaptchaInvalid, got %v", err)
	}
}
