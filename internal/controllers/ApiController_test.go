package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"smokeless/internal/models"
	"smokeless/internal/services"
	"smokeless/internal/storage"
	"smokeless/internal/testutil"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- local fixtures (scoped to controller tests) ---

var testNow = time.Date(2024, time.April, 10, 14, 0, 0, 0, time.Local)

type brokenStore struct {
	*storage.MemoryStore
}

func (b *brokenStore) SetAll(_ map[string][]byte) error { return errors.New("read-only filesystem") }
func (b *brokenStore) Clear() error                     { return errors.New("read-only filesystem") }

type fixture struct {
	ac    *ApiController
	store *services.LogStore
	cache *testutil.MockCache
	clock *testutil.FixedClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	clock := testutil.NewFixedClock(testNow)
	store := services.NewLogStore(storage.NewMemoryStore(), &testutil.MockLogger{}, &testutil.MockMetrics{}).WithClock(clock.Time)
	require.NoError(t, store.Load())
	require.NoError(t, store.EnsureToday())
	cache := testutil.NewMockCache()
	return &fixture{
		ac:    NewApiController(&testutil.MockLogger{}, store, cache),
		store: store,
		cache: cache,
		clock: clock,
	}
}

func do(handler http.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	rr := httptest.NewRecorder()
	handler(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

// --- GetToday / RecordEvent ---

func TestGetToday_FreshDay(t *testing.T) {
	f := newFixture(t)
	rr := do(f.ac.GetToday, http.MethodGet, "/today", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	resp := decode(t, rr)
	assert.Equal(t, "2024-04-10", resp["date"])
	assert.Equal(t, float64(0), resp["count"])
	assert.Equal(t, "$", resp["currency"])
	assert.Equal(t, "--", resp["sinceLastEvent"])
	assert.Equal(t, float64(220), resp["affordanceSize"])
	assert.NotContains(t, resp, "lastEventAt")
}

func TestRecordEvent_Created(t *testing.T) {
	f := newFixture(t)
	do(f.ac.RecordEvent, http.MethodPost, "/smoke", "")
	rr := do(f.ac.RecordEvent, http.MethodPost, "/smoke", "")

	assert.Equal(t, http.StatusCreated, rr.Code)
	resp := decode(t, rr)
	assert.Equal(t, float64(2), resp["count"])
	assert.InDelta(t, 1.0, resp["cost"], 1e-9)
	assert.Equal(t, "0h 0m", resp["sinceLastEvent"])
	assert.Equal(t, float64(testNow.UnixMilli()), resp["lastEventAt"])
}

func TestRecordEvent_PersistFailure(t *testing.T) {
	store := services.NewLogStore(&brokenStore{storage.NewMemoryStore()}, &testutil.MockLogger{}, &testutil.MockMetrics{})
	ac := NewApiController(&testutil.MockLogger{}, store, testutil.NewMockCache())

	rr := do(ac.RecordEvent, http.MethodPost, "/smoke", "")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, decode(t, rr)["error"], "read-only filesystem")
	assert.Equal(t, 1, store.TodayCount())
}

// --- GetStats ---

func TestGetStats_ComputesAndCaches(t *testing.T) {
	f := newFixture(t)
	_, err := f.store.RecordEvent()
	require.NoError(t, err)

	rr := do(f.ac.GetStats, http.MethodGet, "/stats", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	resp := decode(t, rr)
	assert.Equal(t, float64(1), resp["totalEvents"])
	assert.Equal(t, float64(11), resp["lifeLostMinutes"])
	assert.Len(t, resp["last7Days"], 7)
	assert.Len(t, f.cache.Data, 1)

	rr2 := do(f.ac.GetStats, http.MethodGet, "/stats", "")
	assert.Equal(t, rr.Body.String(), rr2.Body.String())
	assert.Len(t, f.cache.Data, 1)
}

func TestGetStats_ServesCachedBody(t *testing.T) {
	f := newFixture(t)
	f.cache.Set("stats:"+itoa(f.store.Revision())+":2024-04-10", []byte(`{"cached":true}`))

	rr := do(f.ac.GetStats, http.MethodGet, "/stats", "")
	assert.Equal(t, `{"cached":true}`, rr.Body.String())
}

func TestGetStats_MutationInvalidates(t *testing.T) {
	f := newFixture(t)
	first := decode(t, do(f.ac.GetStats, http.MethodGet, "/stats", ""))

	_, err := f.store.RecordEvent()
	require.NoError(t, err)
	second := decode(t, do(f.ac.GetStats, http.MethodGet, "/stats", ""))

	assert.Equal(t, float64(0), first["totalEvents"])
	assert.Equal(t, float64(1), second["totalEvents"])
	assert.Len(t, f.cache.Data, 2)
}

// mutatingStore records an event right before handing out a snapshot, as a
// concurrent request would.
type mutatingStore struct {
	*services.LogStore
	mutated bool
}

func (m *mutatingStore) Snapshot() models.Snapshot {
	if !m.mutated {
		m.mutated = true
		_, _ = m.LogStore.RecordEvent()
	}
	return m.LogStore.Snapshot()
}

func TestGetStats_KeyMatchesSnapshotRevision(t *testing.T) {
	f := newFixture(t)
	before := f.store.Revision()
	ac := NewApiController(&testutil.MockLogger{}, &mutatingStore{LogStore: f.store}, f.cache)

	rr := do(ac.GetStats, http.MethodGet, "/stats", "")
	assert.Equal(t, float64(1), decode(t, rr)["totalEvents"])

	_, stale := f.cache.Data["stats:"+itoa(before)+":2024-04-10"]
	assert.False(t, stale, "payload must not be stored under the pre-mutation revision")
	_, ok := f.cache.Data["stats:"+itoa(f.store.Revision())+":2024-04-10"]
	assert.True(t, ok)
}

func TestGetStats_NewDayInvalidates(t *testing.T) {
	f := newFixture(t)
	do(f.ac.GetStats, http.MethodGet, "/stats", "")
	f.clock.Advance(24 * time.Hour)
	do(f.ac.GetStats, http.MethodGet, "/stats", "")
	assert.Len(t, f.cache.Data, 2)
}

// --- GetTimeline ---

func TestGetTimeline(t *testing.T) {
	f := newFixture(t)
	f.clock.Advance(72 * time.Hour)

	resp := decode(t, do(f.ac.GetTimeline, http.MethodGet, "/timeline", ""))
	assert.Equal(t, float64(3), resp["streak"])
	milestones := resp["milestones"].([]interface{})
	require.Len(t, milestones, 8)
	assert.Equal(t, true, milestones[4].(map[string]interface{})["unlocked"])
	assert.Equal(t, false, milestones[5].(map[string]interface{})["unlocked"])
}

// --- Settings ---

func TestGetSettings_Defaults(t *testing.T) {
	f := newFixture(t)
	resp := decode(t, do(f.ac.GetSettings, http.MethodGet, "/settings", ""))
	assert.Equal(t, "$", resp["currency"])
	assert.Equal(t, float64(20), resp["cigsPerPack"])
	assert.Equal(t, "system", resp["theme"])
}

func TestUpdateSettings_NumbersAndStrings(t *testing.T) {
	f := newFixture(t)
	body := `{"currency":"€","pricePerPack":12.5,"cigsPerPack":"25","baselineCigs":10,"theme":"dark"}`
	rr := do(f.ac.UpdateSettings, http.MethodPost, "/settings", body)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, models.Settings{Currency: "€", PricePerPack: 12.5, CigsPerPack: 25, BaselineCigs: 10, Theme: "dark"}, f.store.Settings())
}

func TestUpdateSettings_InvalidField(t *testing.T) {
	f := newFixture(t)
	body := `{"currency":"$","pricePerPack":10,"cigsPerPack":0,"baselineCigs":20,"theme":"system"}`
	rr := do(f.ac.UpdateSettings, http.MethodPost, "/settings", body)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	resp := decode(t, rr)
	assert.Equal(t, "cigsPerPack", resp["field"])
	assert.Equal(t, models.DefaultSettings(), f.store.Settings())
}

func TestUpdateSettings_MalformedBody(t *testing.T) {
	f := newFixture(t)
	rr := do(f.ac.UpdateSettings, http.MethodPost, "/settings", "{bad")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUpdateSettings_BodyTooLarge(t *testing.T) {
	f := newFixture(t)
	body := `{"currency":"` + strings.Repeat("x", maxRequestBodySize) + `"}`
	rr := do(f.ac.UpdateSettings, http.MethodPost, "/settings", body)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

// --- Reset ---

func TestReset_RequiresConfirm(t *testing.T) {
	f := newFixture(t)
	_, err := f.store.RecordEvent()
	require.NoError(t, err)

	rr := do(f.ac.Reset, http.MethodPost, "/reset", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Zero(t, f.cache.Cleared)
	assert.Equal(t, services.ErrResetNotConfirmed.Error(), decode(t, rr)["error"])
	assert.Equal(t, 1, f.store.TodayCount())
}

func TestReset_Confirmed(t *testing.T) {
	f := newFixture(t)
	_, err := f.store.RecordEvent()
	require.NoError(t, err)

	f.cache.Set("stats:1:2024-04-10", []byte("{}"))

	rr := do(f.ac.Reset, http.MethodPost, "/reset?confirm=true", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 1, f.cache.Cleared)
	assert.Empty(t, f.cache.Data)
	assert.Equal(t, float64(0), decode(t, rr)["count"])
	assert.Equal(t, 1, f.store.DaysTracked(), "today is recreated")
	assert.Nil(t, f.store.Snapshot().LastEventAt)
}

func TestReset_StorageFailure(t *testing.T) {
	store := services.NewLogStore(&brokenStore{storage.NewMemoryStore()}, &testutil.MockLogger{}, &testutil.MockMetrics{})
	ac := NewApiController(&testutil.MockLogger{}, store, testutil.NewMockCache())

	rr := do(ac.Reset, http.MethodPost, "/reset?confirm=1", "")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func itoa(n uint64) string {
	b, _ := json.Marshal(n)
	return string(b)
}
