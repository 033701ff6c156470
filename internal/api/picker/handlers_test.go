package picker

// NOTE: Tests cannot use t.Parallel() due to shared package state.

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/codr1/chromapick/internal/api/session"
	"github.com/codr1/chromapick/internal/history"
	"github.com/codr1/chromapick/internal/metrics"
	"github.com/codr1/chromapick/internal/models"
	"github.com/codr1/chromapick/internal/palette"
	"github.com/codr1/chromapick/internal/ratelimit"
)

const testSession = "7d3f0c9e-1a2b-4c5d-8e9f-0a1b2c3d4e5f"

func setupPickerTest(t *testing.T, limiter *ratelimit.Limiter) *history.MemoryStore {
	t.Helper()

	registry, err := palette.LoadRegistry(palette.DefaultName)
	if err != nil {
		t.Fatalf("load palettes: %v", err)
	}
	store := history.NewMemoryStore()
	InitHandlers(Deps{
		Palettes:       registry,
		Store:          store,
		Limiter:        limiter,
		Metrics:        metrics.New(),
		IntervalMillis: 500,
	})
	return store
}

func withSession(req *http.Request) *http.Request {
	return req.WithContext(session.ContextWithID(req.Context(), testSession))
}

func postSample(t *testing.T, body string, contentType string, htmxRequest bool) *httptest.ResponseRecorder {
	t.Helper()
	req := withSession(httptest.NewRequest(http.MethodPost, "/api/v1/samples", strings.NewReader(body)))
	req.Header.Set("Content-Type", contentType)
	if htmxRequest {
		req.Header.Set("HX-Request", "true")
	}
	recorder := httptest.NewRecorder()
	HandleRecordSample(recorder, req)
	return recorder
}

func TestRecordSampleJSON(t *testing.T) {
	store := setupPickerTest(t, nil)

	recorder := postSample(t, `{"r":255,"g":0,"b":0}`, "application/json", false)
	if recorder.Code != http.StatusCreated {
		t.Fatalf("status = %d body = %s", recorder.Code, recorder.Body.String())
	}

	var record history.Record
	if err := json.Unmarshal(recorder.Body.Bytes(), &record); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if record.Seq != 1 || record.Color.Hex != "#FF0000" || record.Color.Name != "Red" {
		t.Fatalf("record = %+v", record)
	}
	if record.Color.HSL != (models.HSL{H: 0, S: 100, L: 50}) || record.Color.Luminance != 30 {
		t.Fatalf("derived = %+v", record.Color)
	}

	records, err := store.List(context.Background(), testSession)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("stored %d records, want 1", len(records))
	}
}

func TestRecordSampleFormHTMX(t *testing.T) {
	setupPickerTest(t, nil)

	form := url.Values{"r": {"102"}, "g": {"51"}, "b": {"153"}}
	recorder := postSample(t, form.Encode(), "application/x-www-form-urlencoded", true)
	if recorder.Code != http.StatusCreated {
		t.Fatalf("status = %d body = %s", recorder.Code, recorder.Body.String())
	}
	if got := recorder.Header().Get("HX-Trigger"); got != "colorSampleRecorded" {
		t.Errorf("HX-Trigger = %q", got)
	}
	body := recorder.Body.String()
	for _, want := range []string{
		`id="color-info" hx-swap-oob="true"`,
		"HEX: #663399 | RGB: (102, 51, 153) | HSL: (270, 50%, 40%)",
		"#663399 - RebeccaPurple (31% bright)",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("fragment missing %q: %s", want, body)
		}
	}
}

func TestRecordSampleClampsChannels(t *testing.T) {
	setupPickerTest(t, nil)

	recorder := postSample(t, `{"r":300,"g":-5,"b":0}`, "application/json", false)
	if recorder.Code != http.StatusCreated {
		t.Fatalf("status = %d", recorder.Code)
	}
	var record history.Record
	if err := json.Unmarshal(recorder.Body.Bytes(), &record); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if record.Color.Hex != "#FF0000" {
		t.Fatalf("hex = %s, want #FF0000", record.Color.Hex)
	}
}

func TestRecordSampleRejectsBadInput(t *testing.T) {
	setupPickerTest(t, nil)

	tests := []struct {
		name        string
		body        string
		contentType string
	}{
		{name: "missing_channel", body: `{"r":1,"g":2}`, contentType: "application/json"},
		{name: "unknown_field", body: `{"r":1,"g":2,"b":3,"a":4}`, contentType: "application/json"},
		{name: "not_json", body: `rgb(1,2,3)`, contentType: "application/json"},
		{name: "form_not_integer", body: "r=1&g=two&b=3", contentType: "application/x-www-form-urlencoded"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			recorder := postSample(t, test.body, test.contentType, false)
			if recorder.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", recorder.Code)
			}
		})
	}
}

func TestRecordSampleRateLimited(t *testing.T) {
	limiter := ratelimit.New(&ratelimit.Config{Window: time.Minute, MaxPerSession: 2, MaxPerIP: 10})
	t.Cleanup(limiter.Close)
	setupPickerTest(t, limiter)

	for i := 0; i < 2; i++ {
		if recorder := postSample(t, `{"r":1,"g":2,"b":3}`, "application/json", false); recorder.Code != http.StatusCreated {
			t.Fatalf("sample %d status = %d", i+1, recorder.Code)
		}
	}

	recorder := postSample(t, `{"r":1,"g":2,"b":3}`, "application/json", false)
	if recorder.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", recorder.Code)
	}
	if recorder.Header().Get("Retry-After") == "" {
		t.Fatal("missing Retry-After header")
	}
}

func TestConvert(t *testing.T) {
	setupPickerTest(t, nil)

	tests := []struct {
		name     string
		query    string
		wantCode int
		wantHex  string
		wantName string
	}{
		{name: "hex", query: "hex=%2300ffff", wantCode: http.StatusOK, wantHex: "#00FFFF", wantName: "Aqua"},
		{name: "channels", query: "r=18&g=52&b=86", wantCode: http.StatusOK, wantHex: "#123456", wantName: "MidnightBlue"},
		{name: "basic_palette", query: "hex=%23FE0000&palette=basic", wantCode: http.StatusOK, wantHex: "#FE0000", wantName: "Red"},
		{name: "malformed_hex", query: "hex=red", wantCode: http.StatusBadRequest},
		{name: "missing_channels", query: "r=1", wantCode: http.StatusBadRequest},
		{name: "unknown_palette", query: "hex=%23000000&palette=pantone", wantCode: http.StatusNotFound},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/convert?"+test.query, nil)
			recorder := httptest.NewRecorder()
			HandleConvert(recorder, req)

			if recorder.Code != test.wantCode {
				t.Fatalf("status = %d, want %d body = %s", recorder.Code, test.wantCode, recorder.Body.String())
			}
			if test.wantCode != http.StatusOK {
				return
			}
			var derived models.DerivedColor
			if err := json.Unmarshal(recorder.Body.Bytes(), &derived); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if derived.Hex != test.wantHex || derived.Name != test.wantName {
				t.Fatalf("derived = %+v", derived)
			}
		})
	}
}

func TestListPalettes(t *testing.T) {
	setupPickerTest(t, nil)

	recorder := httptest.NewRecorder()
	HandleListPalettes(recorder, httptest.NewRequest(http.MethodGet, "/api/v1/palettes", nil))
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d", recorder.Code)
	}

	var summaries []paletteSummary
	if err := json.Unmarshal(recorder.Body.Bytes(), &summaries); err != nil {
		t.Fatalf("decode: %v", err)
	}
	sizes := map[string]paletteSummary{}
	for _, summary := range summaries {
		sizes[summary.Name] = summary
	}
	if sizes["css"].Size != 110 || !sizes["css"].Default {
		t.Fatalf("css summary = %+v", sizes["css"])
	}
	if sizes["basic"].Size != 25 || sizes["basic"].Default {
		t.Fatalf("basic summary = %+v", sizes["basic"])
	}
}

func nearestRequest(name, query string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/palettes/"+name+"/nearest?"+query, nil)
	req.SetPathValue("name", name)
	return req
}

func TestNearest(t *testing.T) {
	setupPickerTest(t, nil)

	recorder := httptest.NewRecorder()
	HandleNearest(recorder, nearestRequest("css", "hex=%23123456&n=3"))
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", recorder.Code, recorder.Body.String())
	}

	var resp nearestResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Palette != "css" || resp.Metric != palette.MetricPacked || len(resp.Matches) != 3 {
		t.Fatalf("resp = %+v", resp)
	}
	want := []string{"MidnightBlue", "DodgerBlue", "LightSeaGreen"}
	for i, name := range want {
		if resp.Matches[i].Name != name {
			t.Fatalf("match %d = %s, want %s", i, resp.Matches[i].Name, name)
		}
	}
}

func TestNearestLabMetric(t *testing.T) {
	setupPickerTest(t, nil)

	recorder := httptest.NewRecorder()
	HandleNearest(recorder, nearestRequest("basic", "hex=%23000001&metric=lab"))
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", recorder.Code, recorder.Body.String())
	}
	var resp nearestResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Metric != palette.MetricLab || len(resp.Matches) != 1 || resp.Matches[0].Name != "Black" {
		t.Fatalf("resp = %+v", resp)
	}
}

func TestNearestErrors(t *testing.T) {
	setupPickerTest(t, nil)

	tests := []struct {
		name    string
		palette string
		query   string
		want    int
	}{
		{name: "unknown_palette", palette: "pantone", query: "hex=%23000000", want: http.StatusNotFound},
		{name: "missing_hex", palette: "css", query: "", want: http.StatusBadRequest},
		{name: "malformed_hex", palette: "css", query: "hex=%23GGGGGG", want: http.StatusBadRequest},
		{name: "bad_n", palette: "css", query: "hex=%23000000&n=0", want: http.StatusBadRequest},
		{name: "bad_metric", palette: "css", query: "hex=%23000000&metric=cie94", want: http.StatusBadRequest},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			HandleNearest(recorder, nearestRequest(test.palette, test.query))
			if recorder.Code != test.want {
				t.Fatalf("status = %d, want %d", recorder.Code, test.want)
			}
		})
	}
}

func TestHistoryNewestFirstForHTMX(t *testing.T) {
	setupPickerTest(t, nil)

	postSample(t, `{"r":255,"g":0,"b":0}`, "application/json", false)
	postSample(t, `{"r":0,"g":0,"b":255}`, "application/json", false)

	req := withSession(httptest.NewRequest(http.MethodGet, "/api/v1/history", nil))
	req.Header.Set("HX-Request", "true")
	recorder := httptest.NewRecorder()
	HandleHistory(recorder, req)

	body := recorder.Body.String()
	blue := strings.Index(body, "#0000FF - Blue")
	red := strings.Index(body, "#FF0000 - Red")
	if blue < 0 || red < 0 || blue > red {
		t.Fatalf("history not newest first: %s", body)
	}
}

func TestHistoryJSON(t *testing.T) {
	setupPickerTest(t, nil)

	req := withSession(httptest.NewRequest(http.MethodGet, "/api/v1/history", nil))
	recorder := httptest.NewRecorder()
	HandleHistory(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), `"records":[]`) {
		t.Fatalf("empty history should encode as []: %s", recorder.Body.String())
	}
}

func TestHistoryExport(t *testing.T) {
	setupPickerTest(t, nil)

	postSample(t, `{"r":255,"g":0,"b":0}`, "application/json", false)
	postSample(t, `{"r":0,"g":0,"b":255}`, "application/json", false)

	req := withSession(httptest.NewRequest(http.MethodGet, "/api/v1/history/export", nil))
	recorder := httptest.NewRecorder()
	HandleHistoryExport(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d", recorder.Code)
	}
	if got := recorder.Header().Get("Content-Disposition"); got != `attachment; filename="color-history.csv"` {
		t.Fatalf("Content-Disposition = %q", got)
	}
	if !strings.HasPrefix(recorder.Header().Get("Content-Type"), "text/csv") {
		t.Fatalf("Content-Type = %q", recorder.Header().Get("Content-Type"))
	}

	lines := strings.Split(strings.TrimRight(recorder.Body.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("export has %d lines, want 3: %q", len(lines), lines)
	}
	if lines[0] != "HEX,RGB,HSL,Luminance,Name" {
		t.Fatalf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "#FF0000,") || !strings.HasPrefix(lines[2], "#0000FF,") {
		t.Fatalf("export not chronological: %q", lines)
	}
}

func TestHandlersRequireSession(t *testing.T) {
	setupPickerTest(t, nil)

	recorder := httptest.NewRecorder()
	HandleHistory(recorder, httptest.NewRequest(http.MethodGet, "/api/v1/history", nil))
	if recorder.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500 without session middleware", recorder.Code)
	}
}

func TestPickerPage(t *testing.T) {
	setupPickerTest(t, nil)

	recorder := httptest.NewRecorder()
	HandlePickerPage(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), `<option value="css" selected>css</option>`) {
		t.Fatalf("page missing default palette option")
	}

	recorder = httptest.NewRecorder()
	HandlePickerPage(recorder, httptest.NewRequest(http.MethodGet, "/missing", nil))
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", recorder.Code)
	}
}
