package offerapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"jobmate/posting-service/internal/offer"
	"jobmate/posting-service/internal/offerapi"
)

const recruiter = "3823eb09-f9f6-4bc7-a8f3-49e9aea76e1a"

// ── Success path ───────────────────────────────────────────────────────────

func TestSubmit_SendsPayloadAndHeaders(t *testing.T) {
	var got offer.Payload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/offers/create" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		if id := r.Header.Get("X-Recruiter-ID"); id != recruiter {
			t.Errorf("X-Recruiter-ID = %q", id)
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Errorf("body is not a payload: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"id": 42}`)
	}))
	defer srv.Close()

	c := offerapi.New(srv.URL+"/", recruiter)
	p := offer.Payload{Title: "Cook", Requirements: []string{"knives"}, Salary: 1200}

	res, err := c.Submit(context.Background(), p)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if string(res) != `{"id": 42}` {
		t.Errorf("result = %s", res)
	}
	if got.Title != "Cook" || got.Salary != 1200 || len(got.Requirements) != 1 {
		t.Errorf("server received %+v", got)
	}
}

// ── Categorised failures ───────────────────────────────────────────────────

func TestSubmit_StatusCategories(t *testing.T) {
	cases := []struct {
		status int
		kind   offerapi.Kind
	}{
		{415, offerapi.KindUnsupportedMediaType},
		{401, offerapi.KindUnauthenticated},
		{403, offerapi.KindForbidden},
		{500, offerapi.KindServerError},
		{404, offerapi.KindHTTPStatus},
		{502, offerapi.KindHTTPStatus},
	}
	for _, c := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(c.status)
			io.WriteString(w, `{"error":"nope"}`)
		}))

		_, err := offerapi.New(srv.URL, recruiter).Submit(context.Background(), offer.Payload{})
		srv.Close()

		var apiErr *offerapi.Error
		if !errors.As(err, &apiErr) {
			t.Errorf("status %d: err = %v, want *offerapi.Error", c.status, err)
			continue
		}
		if apiErr.Kind != c.kind || apiErr.Status != c.status {
			t.Errorf("status %d: got kind=%s status=%d, want kind=%s", c.status, apiErr.Kind, apiErr.Status, c.kind)
		}
		if string(apiErr.Body) != `{"error":"nope"}` {
			t.Errorf("status %d: Body = %s", c.status, apiErr.Body)
		}
	}
}

func TestSubmit_NonJSONErrorBodyIsDropped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := offerapi.New(srv.URL, recruiter).Submit(context.Background(), offer.Payload{})
	var apiErr *offerapi.Error
	if !errors.As(err, &apiErr) || apiErr.Body != nil {
		t.Errorf("err = %v, want *Error with nil Body", err)
	}
}

func TestSubmit_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c := offerapi.New(srv.URL, recruiter)
	c.Timeout = 50 * time.Millisecond

	_, err := c.Submit(context.Background(), offer.Payload{})
	if !offerapi.IsKind(err, offerapi.KindTimeout) {
		t.Errorf("err = %v, want timeout", err)
	}
}

func TestSubmit_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := offerapi.New(url, recruiter).Submit(context.Background(), offer.Payload{})
	if !offerapi.IsKind(err, offerapi.KindConnection) {
		t.Errorf("err = %v, want connection error", err)
	}
}

func TestSubmit_InvalidSuccessBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "created")
	}))
	defer srv.Close()

	_, err := offerapi.New(srv.URL, recruiter).Submit(context.Background(), offer.Payload{})
	if !offerapi.IsKind(err, offerapi.KindInvalidResponse) {
		t.Errorf("err = %v, want invalid response", err)
	}
}
