// internal/api/picker/handlers.go
package picker

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/chromapick/internal/api/apiutil"
	"github.com/codr1/chromapick/internal/api/htmx"
	"github.com/codr1/chromapick/internal/api/session"
	"github.com/codr1/chromapick/internal/history"
	"github.com/codr1/chromapick/internal/metrics"
	"github.com/codr1/chromapick/internal/models"
	"github.com/codr1/chromapick/internal/palette"
	"github.com/codr1/chromapick/internal/ratelimit"
	pickertempl "github.com/codr1/chromapick/internal/templates/components/picker"
	"github.com/codr1/chromapick/internal/templates/layouts"
)

const historyQueryTimeout = 5 * time.Second

// Deps are the collaborators the picker handlers share.
type Deps struct {
	Palettes       *palette.Registry
	Store          history.Store
	Limiter        *ratelimit.Limiter
	Metrics        *metrics.Metrics
	TrustProxy     bool
	Title          string
	IntervalMillis int
}

var (
	depsMu sync.RWMutex
	deps   *Deps
)

var errNotInitialized = errors.New("picker handlers not initialized")

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(d Deps) {
	depsMu.Lock()
	defer depsMu.Unlock()
	deps = &d
}

func loadDeps() (*Deps, error) {
	depsMu.RLock()
	defer depsMu.RUnlock()
	if deps == nil || deps.Palettes == nil || deps.Store == nil {
		return nil, errNotInitialized
	}
	return deps, nil
}

type sampleRequest struct {
	R *int `json:"r"`
	G *int `json:"g"`
	B *int `json:"b"`
}

type paletteSummary struct {
	Name    string `json:"name"`
	Size    int    `json:"size"`
	Default bool   `json:"default"`
}

type matchResponse struct {
	Name     string  `json:"name"`
	Hex      string  `json:"hex"`
	Distance float64 `json:"distance"`
}

type nearestResponse struct {
	Palette string          `json:"palette"`
	Hex     string          `json:"hex"`
	Metric  palette.Metric  `json:"metric"`
	Matches []matchResponse `json:"matches"`
}

type historyResponse struct {
	SessionID string           `json:"sessionId"`
	Records   []history.Record `json:"records"`
}

// GET /
func HandlePickerPage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	d, err := loadDeps()
	if err != nil {
		apiutil.WriteError(w, r, err, "Picker page requested before initialization")
		return
	}

	page := layouts.Base(layouts.PageData{
		Title:          d.Title,
		Palettes:       d.Palettes.Names(),
		DefaultPalette: d.Palettes.DefaultName(),
		IntervalMillis: d.IntervalMillis,
	})
	apiutil.RenderHTMLComponent(r.Context(), w, http.StatusOK, page, nil, "Failed to render picker page", "Failed to render page")
}

// POST /api/v1/samples
func HandleRecordSample(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	d, err := loadDeps()
	if err != nil {
		apiutil.WriteError(w, r, err, "Sample received before initialization")
		return
	}

	sessionID := session.IDFromContext(r.Context())
	if sessionID == "" {
		apiutil.WriteError(w, r, history.ErrSessionRequired, "Sample received without a session")
		return
	}

	sample, err := sampleFromRequest(r)
	if err != nil {
		apiutil.WriteError(w, r, err, "Invalid sample")
		return
	}

	pal, err := paletteFromQuery(d, r)
	if err != nil {
		apiutil.WriteError(w, r, err, "Unknown palette")
		return
	}

	if d.Limiter != nil {
		result := d.Limiter.AllowSample(sessionID, ratelimit.GetClientIP(r, d.TrustProxy))
		if !result.Allowed {
			d.Metrics.ObserveRejected(result.Reason)
			logger.Warn().Str("reason", result.Reason).Dur("retry_after", result.RetryAfter).Msg("Sample rate limited")
			apiutil.SetRetryAfter(w, result.RetryAfter)
			http.Error(w, "Too many samples", http.StatusTooManyRequests)
			return
		}
	}

	derived, err := models.Derive(sample, pal)
	if err != nil {
		apiutil.WriteError(w, r, err, "Failed to derive sample")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), historyQueryTimeout)
	defer cancel()

	record, err := d.Store.Append(ctx, history.Record{SessionID: sessionID, Color: derived})
	if err != nil {
		apiutil.WriteError(w, r, err, "Failed to record sample")
		return
	}
	d.Metrics.ObserveSample(pal.Name(), derived.Name)

	logger.Debug().
		Int64("seq", record.Seq).
		Str("hex", derived.Hex).
		Str("name", derived.Name).
		Msg("Sample recorded")

	if htmx.IsRequest(r) {
		htmx.Trigger(w, htmx.SampleRecordedEvent)
		apiutil.RenderHTMLComponent(r.Context(), w, http.StatusCreated, pickertempl.SampleResult(record), nil, "Failed to render sample", "Failed to render sample")
		return
	}
	if err := apiutil.WriteJSON(w, http.StatusCreated, record); err != nil {
		logger.Error().Err(err).Msg("Failed to write sample response")
	}
}

// GET /api/v1/convert?hex= or ?r=&g=&b=
func HandleConvert(w http.ResponseWriter, r *http.Request) {
	d, err := loadDeps()
	if err != nil {
		apiutil.WriteError(w, r, err, "Convert requested before initialization")
		return
	}

	query := r.URL.Query()
	var sample models.RGB
	if hex := strings.TrimSpace(query.Get("hex")); hex != "" {
		sample, err = models.ParseHex(hex)
	} else {
		sample, err = channelsFromValues(query.Get("r"), query.Get("g"), query.Get("b"))
	}
	if err != nil {
		apiutil.WriteError(w, r, err, "Invalid color")
		return
	}

	pal, err := paletteFromQuery(d, r)
	if err != nil {
		apiutil.WriteError(w, r, err, "Unknown palette")
		return
	}

	derived, err := models.Derive(sample, pal)
	if err != nil {
		apiutil.WriteError(w, r, err, "Failed to derive color")
		return
	}

	if htmx.IsRequest(r) {
		apiutil.RenderHTMLComponent(r.Context(), w, http.StatusOK, pickertempl.ColorInfo(derived, false), nil, "Failed to render color info", "Failed to render color")
		return
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, derived); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to write convert response")
	}
}

// GET /api/v1/palettes
func HandleListPalettes(w http.ResponseWriter, r *http.Request) {
	d, err := loadDeps()
	if err != nil {
		apiutil.WriteError(w, r, err, "Palettes requested before initialization")
		return
	}

	names := d.Palettes.Names()
	summaries := make([]paletteSummary, 0, len(names))
	for _, name := range names {
		pal, _ := d.Palettes.Get(name)
		summaries = append(summaries, paletteSummary{
			Name:    name,
			Size:    pal.Len(),
			Default: name == d.Palettes.DefaultName(),
		})
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, summaries); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to write palettes response")
	}
}

// GET /api/v1/palettes/{name}/nearest?hex=&n=&metric=
func HandleNearest(w http.ResponseWriter, r *http.Request) {
	d, err := loadDeps()
	if err != nil {
		apiutil.WriteError(w, r, err, "Nearest requested before initialization")
		return
	}

	name := r.PathValue("name")
	pal, ok := d.Palettes.Get(name)
	if !ok {
		apiutil.WriteError(w, r, paletteNotFound(name), "Unknown palette")
		return
	}

	query := r.URL.Query()
	hex := strings.TrimSpace(query.Get("hex"))
	if hex == "" {
		apiutil.WriteError(w, r, apiutil.FieldError{Field: "hex", Reason: "is required"}, "Missing hex")
		return
	}
	n, err := apiutil.ParseOptionalPositiveInt(query.Get("n"), "n", 1)
	if err != nil {
		apiutil.WriteError(w, r, err, "Invalid match count")
		return
	}
	metric, err := palette.ParseMetric(query.Get("metric"))
	if err != nil {
		apiutil.WriteError(w, r, apiutil.FieldError{Field: "metric", Reason: "must be packed or lab"}, "Invalid metric")
		return
	}

	matches, err := pal.Ranked(hex, n, metric)
	if err != nil {
		apiutil.WriteError(w, r, err, "Failed to rank palette")
		return
	}

	if htmx.IsRequest(r) {
		views := make([]pickertempl.MatchView, 0, len(matches))
		for _, match := range matches {
			views = append(views, pickertempl.MatchView{
				Name:     match.Name,
				Hex:      match.Hex,
				Distance: strconv.FormatFloat(match.Distance, 'f', -1, 64),
			})
		}
		apiutil.RenderHTMLComponent(r.Context(), w, http.StatusOK, pickertempl.PaletteMatches(pal.Name(), views), nil, "Failed to render matches", "Failed to render matches")
		return
	}

	resp := nearestResponse{
		Palette: pal.Name(),
		Hex:     strings.ToUpper(hex),
		Metric:  metric,
		Matches: make([]matchResponse, 0, len(matches)),
	}
	for _, match := range matches {
		resp.Matches = append(resp.Matches, matchResponse{Name: match.Name, Hex: match.Hex, Distance: match.Distance})
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, resp); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to write nearest response")
	}
}

// GET /api/v1/history
func HandleHistory(w http.ResponseWriter, r *http.Request) {
	d, err := loadDeps()
	if err != nil {
		apiutil.WriteError(w, r, err, "History requested before initialization")
		return
	}

	sessionID, records, err := sessionHistory(r, d)
	if err != nil {
		apiutil.WriteError(w, r, err, "Failed to load history")
		return
	}

	if htmx.IsRequest(r) {
		apiutil.RenderHTMLComponent(r.Context(), w, http.StatusOK, pickertempl.HistoryList(records), nil, "Failed to render history", "Failed to render history")
		return
	}
	if records == nil {
		records = []history.Record{}
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, historyResponse{SessionID: sessionID, Records: records}); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to write history response")
	}
}

// GET /api/v1/history/export
func HandleHistoryExport(w http.ResponseWriter, r *http.Request) {
	d, err := loadDeps()
	if err != nil {
		apiutil.WriteError(w, r, err, "Export requested before initialization")
		return
	}

	_, records, err := sessionHistory(r, d)
	if err != nil {
		apiutil.WriteError(w, r, err, "Failed to load history for export")
		return
	}

	var buf bytes.Buffer
	if err := history.WriteCSV(&buf, records); err != nil {
		apiutil.WriteError(w, r, err, "Failed to encode history CSV")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, history.ExportFilename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to write history export")
	}
	log.Ctx(r.Context()).Info().Int("records", len(records)).Msg("History exported")
}

func sessionHistory(r *http.Request, d *Deps) (string, []history.Record, error) {
	sessionID := session.IDFromContext(r.Context())
	if sessionID == "" {
		return "", nil, history.ErrSessionRequired
	}

	ctx, cancel := context.WithTimeout(r.Context(), historyQueryTimeout)
	defer cancel()

	records, err := d.Store.List(ctx, sessionID)
	if err != nil {
		return "", nil, err
	}
	return sessionID, records, nil
}

func sampleFromRequest(r *http.Request) (models.RGB, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var req sampleRequest
		if err := apiutil.DecodeJSON(r, &req); err != nil {
			return models.RGB{}, apiutil.HandlerError{Status: http.StatusBadRequest, Message: "Invalid JSON body", Err: err}
		}
		switch {
		case req.R == nil:
			return models.RGB{}, apiutil.FieldError{Field: "r", Reason: "is required"}
		case req.G == nil:
			return models.RGB{}, apiutil.FieldError{Field: "g", Reason: "is required"}
		case req.B == nil:
			return models.RGB{}, apiutil.FieldError{Field: "b", Reason: "is required"}
		}
		return models.NewRGB(*req.R, *req.G, *req.B), nil
	}

	if err := r.ParseForm(); err != nil {
		return models.RGB{}, apiutil.HandlerError{Status: http.StatusBadRequest, Message: "Invalid form data", Err: err}
	}
	return channelsFromValues(r.FormValue("r"), r.FormValue("g"), r.FormValue("b"))
}

func channelsFromValues(rawR, rawG, rawB string) (models.RGB, error) {
	red, err := apiutil.ParseChannelField(rawR, "r")
	if err != nil {
		return models.RGB{}, err
	}
	green, err := apiutil.ParseChannelField(rawG, "g")
	if err != nil {
		return models.RGB{}, err
	}
	blue, err := apiutil.ParseChannelField(rawB, "b")
	if err != nil {
		return models.RGB{}, err
	}
	return models.NewRGB(red, green, blue), nil
}

func paletteFromQuery(d *Deps, r *http.Request) (*palette.Palette, error) {
	name := strings.TrimSpace(r.URL.Query().Get("palette"))
	if name == "" {
		return d.Palettes.Default(), nil
	}
	pal, ok := d.Palettes.Get(name)
	if !ok {
		return nil, paletteNotFound(name)
	}
	return pal, nil
}

func paletteNotFound(name string) error {
	return apiutil.HandlerError{Status: http.StatusNotFound, Message: fmt.Sprintf("palette %q not found", name)}
}
