package server_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/goliatone/go-dynform/internal/server"
	"github.com/goliatone/go-dynform/pkg/form"
	"github.com/goliatone/go-dynform/pkg/model"
)

func newTestServer(t *testing.T) (*server.Server, *httptest.Server) {
	t.Helper()
	schema, err := model.NewSchema(
		model.FieldDescriptor{Name: "name", Type: model.FieldTypeText, Label: "Name"},
		model.FieldDescriptor{Name: "age", Type: model.FieldTypeNumber, Label: "Age"},
		model.FieldDescriptor{Name: "newsletter", Type: model.FieldTypeCheckbox, Label: "Newsletter"},
		model.FieldDescriptor{Name: "regions", Type: model.FieldTypeMultiSelect, Label: "Regions", AddNewOption: true, Options: []model.Option{
			{Label: "Europe", Value: "europe"},
		}},
	)
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	srv, err := server.New(schema,
		server.WithConfig(server.Config{Title: "Users", Form: model.FormConfig{SubmitLabel: "Add User"}}),
		server.WithRegistry(prometheus.NewRegistry()),
	)
	if err != nil {
		t.Fatalf("server: %v", err)
	}
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

func noRedirect(ts *httptest.Server) *http.Client {
	client := ts.Client()
	client.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}
	return client
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(body)
}

func TestServer_PageRendersFormAndTable(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := ts.Client().Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	body := readBody(t, resp)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	for _, want := range []string{"<title>Users</title>", `action="/submit"`, ">Add User</button>", "No records yet"} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestServer_SubmitRecordsAndRedirects(t *testing.T) {
	srv, ts := newTestServer(t)
	client := noRedirect(ts)

	resp, err := client.PostForm(ts.URL+"/submit", url.Values{
		"_form":      {"1"},
		"name":       {"Ann"},
		"age":        {"34"},
		"newsletter": {"on"},
	})
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	readBody(t, resp)
	if resp.StatusCode != http.StatusSeeOther || resp.Header.Get("Location") != "/" {
		t.Fatalf("expected redirect to /, got %d %q", resp.StatusCode, resp.Header.Get("Location"))
	}

	entries := srv.Records().List()
	if len(entries) != 1 {
		t.Fatalf("records = %d, want 1", len(entries))
	}
	want := form.Record{"name": "Ann", "age": float64(34), "newsletter": true, "regions": []string{}}
	if diff := cmp.Diff(want, entries[0].Values); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}
	if entries[0].ID == "" {
		t.Fatal("record id missing")
	}

	resp, err = ts.Client().Get(ts.URL + "/records")
	if err != nil {
		t.Fatalf("get records: %v", err)
	}
	var listed []server.Entry
	if err := json.Unmarshal([]byte(readBody(t, resp)), &listed); err != nil {
		t.Fatalf("decode records: %v", err)
	}
	if len(listed) != 1 || listed[0].Values["name"] != "Ann" {
		t.Fatalf("unexpected records payload: %+v", listed)
	}
}

func TestServer_UncheckedCheckboxSyncsFalse(t *testing.T) {
	srv, ts := newTestServer(t)
	client := noRedirect(ts)

	for _, values := range []url.Values{
		{"_form": {"1"}, "newsletter": {"on"}},
		{"_form": {"1"}},
	} {
		resp, err := client.PostForm(ts.URL+"/submit", values)
		if err != nil {
			t.Fatalf("post: %v", err)
		}
		readBody(t, resp)
	}

	entries := srv.Records().List()
	if entries[0].Values["newsletter"] != true || entries[1].Values["newsletter"] != false {
		t.Fatalf("checkbox sync mismatch: %v / %v", entries[0].Values["newsletter"], entries[1].Values["newsletter"])
	}
}

func TestServer_BlankPasswordPostKeepsStoredValue(t *testing.T) {
	schema := model.MustSchema(
		model.FieldDescriptor{Name: "password", Type: model.FieldTypePassword, Label: "Password"},
	)
	srv, err := server.New(schema, server.WithRegistry(prometheus.NewRegistry()))
	if err != nil {
		t.Fatalf("server: %v", err)
	}
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	client := noRedirect(ts)

	for _, values := range []url.Values{
		{"_form": {"1"}, "password": {"s3cret"}},
		{"_form": {"1"}, "password": {""}},
	} {
		resp, err := client.PostForm(ts.URL+"/submit", values)
		if err != nil {
			t.Fatalf("post: %v", err)
		}
		readBody(t, resp)
	}

	entries := srv.Records().List()
	if len(entries) != 2 || entries[1].Values["password"] != "s3cret" {
		t.Fatalf("password not kept across posts: %+v", entries)
	}
}

func TestServer_FieldEvents(t *testing.T) {
	srv, ts := newTestServer(t)
	client := noRedirect(ts)

	resp, err := client.PostForm(ts.URL+"/fields/regions?_action=add-option", url.Values{
		"_form":            {"1"},
		"_pending.regions": {"North America"},
	})
	if err != nil {
		t.Fatalf("post add-option: %v", err)
	}
	readBody(t, resp)
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	got := srv.Controller().Store().Get("regions")
	if diff := cmp.Diff([]string{"north-america"}, got); diff != "" {
		t.Fatalf("selection mismatch (-want +got):\n%s", diff)
	}

	req, _ := http.NewRequest(http.MethodPost, ts.URL+"/fields/regions", strings.NewReader(url.Values{
		"_action": {"remove"},
		"_value":  {"north-america"},
	}.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	resp, err = client.Do(req)
	if err != nil {
		t.Fatalf("post remove: %v", err)
	}
	body := readBody(t, resp)
	if resp.StatusCode != http.StatusOK || !strings.Contains(body, `"name":"regions"`) {
		t.Fatalf("unexpected JSON response %d: %s", resp.StatusCode, body)
	}
	if got := srv.Controller().Store().Get("regions"); len(got.([]string)) != 0 {
		t.Fatalf("remove not applied: %v", got)
	}
}

func TestServer_EventErrors(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := ts.Client().PostForm(ts.URL+"/fields/missing", url.Values{"_action": {"change"}})
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	readBody(t, resp)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown field status = %d, want 404", resp.StatusCode)
	}

	resp, err = ts.Client().PostForm(ts.URL+"/fields/name", url.Values{"_action": {"explode"}})
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	readBody(t, resp)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("unknown action status = %d, want 400", resp.StatusCode)
	}
}

func TestServer_Metrics(t *testing.T) {
	_, ts := newTestServer(t)
	client := noRedirect(ts)

	resp, err := client.PostForm(ts.URL+"/fields/name", url.Values{"_action": {"change"}, "_value": {"Ann"}})
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	readBody(t, resp)
	resp, err = client.PostForm(ts.URL+"/submit", url.Values{})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	readBody(t, resp)

	resp, err = ts.Client().Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}
	body := readBody(t, resp)
	for _, want := range []string{
		`dynform_events_total{action="change"} 1`,
		`dynform_submissions_total 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics missing %q\n%s", want, body)
		}
	}
}
