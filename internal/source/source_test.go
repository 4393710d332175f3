package source

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/JonMunkholm/committees/internal/store"
	"github.com/JonMunkholm/committees/internal/table"
)

func TestHTTPSource_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/committee-member" {
			http.NotFound(w, r)
			return
		}
		if r.Header.Get("X-API-Key") != "k1" {
			http.Error(w, `{"error":"missing API key"}`, http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[{"Individual":"Alice","State":"VA","Seats":12},{"Individual":"Ben","State":null}]`)
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL+"/", "k1", 5*time.Second)
	recs, err := src.Fetch(context.Background(), "committee-member")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("len = %d, want 2", len(recs))
	}
	if recs[0]["Individual"] != "Alice" {
		t.Errorf("Individual = %v", recs[0]["Individual"])
	}
	if n, ok := recs[0]["Seats"].(json.Number); !ok || n.String() != "12" {
		t.Errorf("Seats = %#v, want json.Number 12", recs[0]["Seats"])
	}
	if v, ok := recs[1]["State"]; !ok || v != nil {
		t.Errorf("State = %#v, want present nil", v)
	}
}

func TestHTTPSource_FetchErrors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
		wantErr    error
	}{
		{"non-array object", 200, `{"rows":[]}`, 200, ErrUnexpectedPayload},
		{"array of scalars", 200, `[1,2,3]`, 200, ErrUnexpectedPayload},
		{"string payload", 200, `"oops"`, 200, ErrUnexpectedPayload},
		{"server error", 500, `Internal Server Error`, 500, nil},
		{"json error body", 404, `{"error":"not_found","message":"unknown endpoint"}`, 404, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			_, err := NewHTTPSource(srv.URL, "", 0).Fetch(context.Background(), "committees")
			var fe *FetchError
			if !errors.As(err, &fe) {
				t.Fatalf("err = %v, want *FetchError", err)
			}
			if fe.Status != tt.wantStatus {
				t.Errorf("Status = %d, want %d", fe.Status, tt.wantStatus)
			}
			if fe.Endpoint != "committees" {
				t.Errorf("Endpoint = %q", fe.Endpoint)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestHTTPSource_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewHTTPSource(url, "", time.Second).Fetch(context.Background(), "committees")
	var fe *FetchError
	if !errors.As(err, &fe) || fe.Status != 0 {
		t.Fatalf("err = %v, want FetchError without status", err)
	}
}

func TestHTTPSource_FeedsLoad(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"not":"an array"}`)
	}))
	defer srv.Close()

	res := table.Load(context.Background(), NewHTTPSource(srv.URL, "", 0), "committees", nil)
	if res.Outcome != table.LoadFailed || len(res.Records) != 0 || res.Records == nil {
		t.Errorf("Load = %v / %d records, want failed and empty", res.Outcome, len(res.Records))
	}
}

func TestHTTPSource_SetRecommendation(t *testing.T) {
	var gotPath, gotMethod string
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotMethod = r.URL.Path, r.Method
		json.NewDecoder(r.Body).Decode(&gotBody)
		if r.URL.Path == "/api/applicant-review/missing/recommendation" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL, "", 0)
	if err := src.SetRecommendation(context.Background(), "APP-1002", "Vice Chair"); err != nil {
		t.Fatalf("SetRecommendation: %v", err)
	}
	if gotMethod != http.MethodPut || gotPath != "/api/applicant-review/APP-1002/recommendation" {
		t.Errorf("request = %s %s", gotMethod, gotPath)
	}
	if gotBody["recommendation"] != "Vice Chair" {
		t.Errorf("body = %v", gotBody)
	}

	if err := src.SetRecommendation(context.Background(), "missing", "Member"); !errors.Is(err, ErrNotFound) {
		t.Errorf("SetRecommendation(missing) = %v, want ErrNotFound", err)
	}
}

func TestLocal(t *testing.T) {
	st, err := store.OpenSQLite(context.Background(), ":memory:", store.Options{Seed: true})
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer st.Close()
	l := NewLocal(st)
	ctx := context.Background()

	recs, err := l.Fetch(ctx, "committees")
	if err != nil || len(recs) != 4 {
		t.Fatalf("Fetch = %d records, %v", len(recs), err)
	}

	_, err = l.Fetch(ctx, "nope")
	var fe *FetchError
	if !errors.As(err, &fe) || fe.Status != http.StatusNotFound {
		t.Errorf("Fetch(nope) = %v, want 404 FetchError", err)
	}
	if !errors.Is(err, store.ErrUnknownEndpoint) {
		t.Errorf("Fetch(nope) does not wrap ErrUnknownEndpoint")
	}

	if err := l.SetRecommendation(ctx, "APP-1001", "Member"); err != nil {
		t.Errorf("SetRecommendation: %v", err)
	}
	if err := l.SetRecommendation(ctx, "APP-0000", "Member"); !errors.Is(err, ErrNotFound) {
		t.Errorf("SetRecommendation(unknown) = %v, want ErrNotFound", err)
	}
}
