package controllers

import (
	"errors"
	json "github.com/goccy/go-json"
	"github.com/spf13/cast"
	"net/http"
	"smokeless/internal/models"
	"smokeless/internal/providers"
	"smokeless/internal/services"
	"strconv"
	"time"
)

const maxRequestBodySize = 1 << 16 // 64 KB

type ApiController struct {
	logger providers.Logger
	store  services.LogStoreInterface
	cache  providers.CacheProviderInterface
}

type todayResponse struct {
	models.DailyRecord
	Currency       string `json:"currency"`
	Streak         int    `json:"streak"`
	SinceLastEvent string `json:"sinceLastEvent"`
	LastEventAt    *int64 `json:"lastEventAt,omitempty"`
	AffordanceSize int    `json:"affordanceSize"`
}

type timelineResponse struct {
	Streak     int                `json:"streak"`
	Milestones []models.Milestone `json:"milestones"`
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func NewApiController(logger providers.Logger, store services.LogStoreInterface, cache providers.CacheProviderInterface) *ApiController {
	return &ApiController{
		logger: logger,
		store:  store,
		cache:  cache,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	gson, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

func (ac *ApiController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey string, compute func() (any, error)) {
	if data, ok := ac.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	result, err := compute()
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ac.cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func (ac *ApiController) todayPayload() todayResponse {
	snap := ac.store.Snapshot()
	now := ac.store.Now()
	today := models.DailyRecord{Date: models.DateKey(now)}
	if idx := snap.History.Find(today.Date); idx >= 0 {
		today = snap.History[idx]
	}
	streak := services.DaysSinceLastEvent(snap.History, now)
	return todayResponse{
		DailyRecord:    today,
		Currency:       snap.Settings.Currency,
		Streak:         streak,
		SinceLastEvent: services.SinceLastEvent(snap.LastEventAt, now, streak),
		LastEventAt:    snap.LastEventAt,
		AffordanceSize: services.AffordanceSize(streak),
	}
}

func (ac *ApiController) GetToday(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ac.todayPayload())
}

func (ac *ApiController) RecordEvent(w http.ResponseWriter, r *http.Request) {
	if _, err := ac.store.RecordEvent(); err != nil {
		ac.logger.Errorf(providers.TypePost, "record event: %s", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, ac.todayPayload())
}

// GetStats is cached per store revision and calendar day, so any mutation or
// midnight invalidates it.
func (ac *ApiController) GetStats(w http.ResponseWriter, r *http.Request) {
	now := ac.store.Now()
	snap := ac.store.Snapshot()
	ac.serveFromCacheOrCompute(w, statsCacheKey(snap.Revision, now), func() (any, error) {
		return services.CalculateStats(snap, now), nil
	})
}

// statsCacheKey must be built from the revision of the snapshot the payload
// is computed from.
func statsCacheKey(revision uint64, now time.Time) string {
	return "stats:" + strconv.FormatUint(revision, 10) + ":" + models.DateKey(now)
}

func (ac *ApiController) GetTimeline(w http.ResponseWriter, r *http.Request) {
	streak := ac.store.StreakDays()
	writeJSON(w, http.StatusOK, timelineResponse{
		Streak:     streak,
		Milestones: services.HealthTimeline(streak),
	})
}

func (ac *ApiController) GetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ac.store.Settings())
}

// UpdateSettings accepts the settings form as JSON. Values may be strings or
// numbers; both go through the same validation as typed input.
func (ac *ApiController) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed JSON body"})
		return
	}

	in := models.SettingsInput{
		Currency:     cast.ToString(payload["currency"]),
		PricePerPack: cast.ToString(payload["pricePerPack"]),
		CigsPerPack:  cast.ToString(payload["cigsPerPack"]),
		BaselineCigs: cast.ToString(payload["baselineCigs"]),
		Theme:        cast.ToString(payload["theme"]),
	}

	settings, err := ac.store.UpdateSettings(in)
	var settingsErr *services.SettingsError
	switch {
	case errors.As(err, &settingsErr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: settingsErr.Error(), Field: settingsErr.Field})
	case err != nil:
		ac.logger.Errorf(providers.TypePost, "update settings: %s", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
	default:
		writeJSON(w, http.StatusOK, settings)
	}
}

// Reset wipes all data. The caller must pass confirm=true.
func (ac *ApiController) Reset(w http.ResponseWriter, r *http.Request) {
	confirmed, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))
	if !confirmed {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: services.ErrResetNotConfirmed.Error()})
		return
	}
	if err := ac.store.Reset(); err != nil {
		ac.logger.Errorf(providers.TypePost, "reset: %s", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	ac.cache.Clear()
	if err := ac.store.EnsureToday(); err != nil {
		ac.logger.Errorf(providers.TypePost, "create today after reset: %s", err)
	}
	writeJSON(w, http.StatusOK, ac.todayPayload())
}
