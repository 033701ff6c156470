package htmx

import (
	"net/http"
	"strings"
)

// SampleRecordedEvent fires after a sample lands in the session history.
const SampleRecordedEvent = "colorSampleRecorded"

func IsRequest(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("HX-Request"), "true")
}

// Trigger asks HTMX to fire client-side events after the swap. Repeated calls
// accumulate.
func Trigger(w http.ResponseWriter, events ...string) {
	existing := w.Header().Get("HX-Trigger")
	names := make([]string, 0, len(events)+1)
	if existing != "" {
		names = append(names, existing)
	}
	names = append(names, events...)
	w.Header().Set("HX-Trigger", strings.Join(names, ", "))
}
