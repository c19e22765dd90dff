package twocaptcha

import (
	"context"
	"errors"
	"net/http"
	"testing"
)

func TestBalance(t *testing.T) {
	vendor := &fakeVendor{
		onRes: func(r *http.Request) string {
			if got := r.URL.Query().Get("action"); got != "getbalance" {
				t.Errorf("action = %q", got)
			}
			return `{"status":1,"request":"42.57"}`
		},
	}
	client := newTestClient(t, vendor, nil)

	balance, err := client.Balance(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if balance != 42.57 {
		t.Fatalf("balance = %v", balance)
	}
}

func TestBalanceUnparsable(t *testing.T) {
	vendor := &fakeVendor{
		onRes: func(r *http.Request) string { return `{"status":1,"request":"not-a-number"}` },
	}
	client := newTestClient(t, vendor, nil)

	_, err := client.Balance(context.Background())
	var aerr *APIError
	if !errors.As(err, &aerr) {
		t.Fatalf("expected APIError, got %v", err)
	}
}

func TestReportActions(t *testing.T) {
	var lastAction, lastID string
	vendor := &fakeVendor{
		onRes: func(r *http.Request) string {
			lastAction = r.URL.Query().Get("action")
			lastID = r.URL.Query().Get("id")
			return `{"status":1,"request":"OK_REPORT_RECORDED"}`
		},
	}
	client := newTestClient(t, vendor, nil)

	if err := client.Report(context.Background(), "42", true); err != nil {
		t.Fatal(err)
	}
	if lastAction != "reportgood" || lastID != "42" {
		t.Fatalf("action=%q id=%q", lastAction, lastID)
	}

	if err := client.Report(context.Background(), "43", false); err != nil {
		t.Fatal(err)
	}
	if lastAction != "reportbad" || lastID != "43" {
		t.Fatalf("action=%q id=%q", lastAction, lastID)
	}
}

func TestReportUnknownTask(t *testing.T) {
	vendor := &fakeVendor{
		onRes: func(r *http.Request) string { return `{"status":0,"request":"ERROR_WRONG_CAPTCHA_ID"}` },
	}
	client := newTestClient(t, vendor, nil)

	err := client.Report(context.Background(), "no-such-task", false)
	var aerr *APIError
	if !errors.As(err, &aerr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if aerr.Code != "ERROR_WRONG_CAPTCHA_ID" {
		t.Fatalf("Code = %q", aerr.Code)
	}
}

func TestPingbackManagement(t *testing.T) {
	var lastAction, lastAddr string
	vendor := &fakeVendor{
		onRes: func(r *http.Request) string {
			lastAction = r.URL.Query().Get("action")
			lastAddr = r.URL.Query().Get("addr")
			if lastAction == "get_pingback" {
				return `{"status":1,"request":["https://a.example/hook","https://b.example/hook"]}`
			}
			return `{"status":1,"request":"OK"}`
		},
	}
	client := newTestClient(t, vendor, nil)
	ctx := context.Background()

	if err := client.AddPingback(ctx, "https://a.example/hook"); err != nil {
		t.Fatal(err)
	}
	if lastAction != "add_pingback" || lastAddr != "https://a.example/hook" {
		t.Fatalf("action=%q addr=%q", lastAction, lastAddr)
	}

	urls, err := client.GetPingbacks(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(urls) != 2 || urls[0] != "https://a.example/hook" {
		t.Fatalf("urls = %v", urls)
	}

	if err := client.DeletePingback(ctx, "all"); err != nil {
		t.Fatal(err)
	}
	if lastAction != "del_pingback" || lastAddr != "all" {
		t.Fatalf("action=%q addr=%q", lastAction, lastAddr)
	}
}

func TestGetPingbacksKeyedForm(t *testing.T) {
	vendor := &fakeVendor{
		onRes: func(r *http.Request) string {
			return `{"status":1,"request":{"1":"https://a.example/hook","2":"https://b.example/hook"}}`
		},
	}
	client := newTestClient(t, vendor, nil)

	urls, err := client.GetPingbacks(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(urls) != 2 {
		t.Fatalf("urls = %v", urls)
	}
}

func TestAddPingbackRequiresAddr(t *testing.T) {
	vendor := &fakeVendor{}
	client := newTestClient(t, vendor, nil)

	err := client.AddPingback(context.Background(), "")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}
