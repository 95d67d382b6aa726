package places

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/aboodsamad/TravelMateV0/client/api"
)

func TestNewHasNoRequestTimeout(t *testing.T) {
	c := New("http://example.com")
	if c.HTTP.Timeout != 0 {
		t.Fatalf("requests must hang as long as the transport allows, got timeout %v", c.HTTP.Timeout)
	}
}

func TestList(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/places" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"data": [{"id":1,"location":"Petra","country":"Jordan","rating":4.6}],
			"pagination": {"page":2,"totalPages":8,"totalRecords":73}
		}`))
	}))
	defer srv.Close()

	params := url.Values{}
	params.Set("page", "2")
	params.Set("country", "Jordan")

	c := New(srv.URL)
	page, err := c.List(context.Background(), params)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page.Places) != 1 || page.Places[0].Location != "Petra" {
		t.Fatalf("unexpected places: %+v", page.Places)
	}
	if *page.Places[0].Rating != 4.6 {
		t.Fatalf("unexpected rating")
	}
	if page.TotalPages != 8 || page.TotalRecords != 73 || page.Page != 2 {
		t.Fatalf("unexpected pagination: %+v", page)
	}
	if gotQuery.Get("country") != "Jordan" {
		t.Fatalf("query not forwarded: %v", gotQuery)
	}
}

func TestListEmptyData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": null, "pagination": {"page":1,"totalPages":1,"totalRecords":0}}`))
	}))
	defer srv.Close()

	page, err := New(srv.URL).List(context.Background(), nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Places == nil || len(page.Places) != 0 {
		t.Fatalf("expected empty slice, got %#v", page.Places)
	}
}

func TestListServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"db down"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).List(context.Background(), nil)
	var fe *api.FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FetchError, got %v", err)
	}
	if fe.Status != 500 || fe.Message != "db down" {
		t.Fatalf("unexpected error: %+v", fe)
	}
}

func TestListTransportError(t *testing.T) {
	c := New("http://127.0.0.1:1")
	_, err := c.List(context.Background(), nil)
	var fe *api.FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FetchError, got %v", err)
	}
	if fe.Status != 0 {
		t.Fatalf("transport error should carry no status: %+v", fe)
	}
}

func TestFilterOptions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/places/filters" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"filters":{"countries":["Jordan","Lebanon"],"categories":["Historical"],"accommodations":["Yes","No"]}}`))
	}))
	defer srv.Close()

	opts, err := New(srv.URL).FilterOptions(context.Background())
	if err != nil {
		t.Fatalf("filters: %v", err)
	}
	if len(opts.Countries) != 2 || opts.Categories[0] != "Historical" || len(opts.Accommodations) != 2 {
		t.Fatalf("unexpected options: %+v", opts)
	}
}

func TestTopPlaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("topOnly") != "true" || q.Get("country") != "Jordan" {
			t.Fatalf("unexpected query: %v", q)
		}
		if q.Has("category") {
			t.Fatalf("empty category must be omitted")
		}
		w.Write([]byte(`{"data":[{"id":1,"location":"Petra","visitors":900000}]}`))
	}))
	defer srv.Close()

	top, err := New(srv.URL).TopPlaces(context.Background(), "Jordan", "")
	if err != nil {
		t.Fatalf("top places: %v", err)
	}
	if len(top) != 1 || top[0].Visitors != 900000 {
		t.Fatalf("unexpected result: %+v", top)
	}
}

func TestStats(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/places/stats" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"stats":{"avgRating":4.1,"avgVisitors":52000,"minRating":2.0,"maxRating":5.0,"totalPlaces":73}}`))
	}))
	defer srv.Close()

	stats, err := New(srv.URL).Stats(context.Background(), "", "Historical")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.AvgRating != 4.1 || stats.TotalPlaces != 73 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).Stats(context.Background(), "", "")
	var fe *api.FetchError
	if !errors.As(err, &fe) || fe.Message != "malformed response" {
		t.Fatalf("expected malformed response error, got %v", err)
	}
}
