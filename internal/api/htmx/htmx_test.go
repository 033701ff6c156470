package htmx

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestIsRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if IsRequest(req) {
		t.Fatal("plain request reported as htmx")
	}
	req.Header.Set("HX-Request", "TRUE")
	if !IsRequest(req) {
		t.Fatal("HX-Request header not detected")
	}
}

func TestTriggerAccumulates(t *testing.T) {
	recorder := httptest.NewRecorder()
	Trigger(recorder, SampleRecordedEvent)
	Trigger(recorder, "refreshPalette")
	if got := recorder.Header().Get("HX-Trigger"); got != "colorSampleRecorded, refreshPalette" {
		t.Fatalf("HX-Trigger = %q", got)
	}
}
