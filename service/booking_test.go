package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"

	"showtime-tix-cli/model"
)

func TestCreateBooking_EmptySelectionNeverSent(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()

	client := testClient(server)
	_, err := client.CreateBooking(context.Background(), BookingRequest{ShowId: 3})
	if err == nil {
		t.Fatal("expected a validation error")
	}
	if requests != 0 {
		t.Fatalf("expected no HTTP requests for an empty selection, got %d", requests)
	}
}

func TestCreateBooking_SendsSeatIdsAndDecodesHandle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/booking/createbooking" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		var req BookingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.ShowId != 3 || !slices.Equal(req.ShowSeatIds, []int64{11, 12}) {
			t.Fatalf("unexpected payload: %+v", req)
		}
		_, _ = w.Write([]byte(`{"id":42,"totalAmount":400,"clientSecret":"cs_test_1"}`))
	}))
	defer server.Close()

	client := testClient(server)
	pending, err := client.CreateBooking(context.Background(), BookingRequest{ShowId: 3, ShowSeatIds: []int64{11, 12}})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if pending.Id != 42 || pending.TotalAmount != 400 || pending.ClientSecret != "cs_test_1" {
		t.Fatalf("unexpected pending booking: %+v", pending)
	}
}

func TestCreateBooking_SurfacesSeatConflict(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"Seat A2 is no longer available"}`))
	}))
	defer server.Close()

	client := testClient(server)
	_, err := client.CreateBooking(context.Background(), BookingRequest{ShowId: 3, ShowSeatIds: []int64{11}})
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsConflict(err) {
		t.Fatalf("expected a conflict error, got %v", err)
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Message() != "Seat A2 is no longer available" {
		t.Fatalf("expected the backend reason to survive, got %v", err)
	}
}

func TestConfirmBooking_PostsToConfirmEndpoint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/booking/42/confirm" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"id":42,"movieTitle":"Dune","bookedSeats":["A1","A2"],"totalAmount":400,"status":"CONFIRMED"}`))
	}))
	defer server.Close()

	client := testClient(server)
	booking, err := client.ConfirmBooking(context.Background(), 42)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if booking.Status != "CONFIRMED" || len(booking.BookedSeats) != 2 {
		t.Fatalf("unexpected booking: %+v", booking)
	}
}

func TestCheckoutURL(t *testing.T) {
	client := NewClient(nil, "http://localhost:8080/api")

	url, err := client.CheckoutURL(model.PendingBooking{Id: 9, ClientSecret: "cs_abc"})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !strings.Contains(url, "bookingId=9") || !strings.Contains(url, "session=cs_abc") {
		t.Fatalf("unexpected checkout url %q", url)
	}

	if _, err := client.CheckoutURL(model.PendingBooking{Id: 9}); err == nil {
		t.Fatal("expected an error without a payment session handle")
	}
}
