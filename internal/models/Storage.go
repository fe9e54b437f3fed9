package models

// Persisted keys of the local key-value store.
const (
	KeySettings       = "smokeless_settings"
	KeyHistory        = "smokeless_history"
	KeyLastEvent      = "smokeless_last_smoke"
	KeyLegacyDailyLog = "smokeless_log"
)

// Snapshot is a detached copy of the tracker state used for pure
// statistics computation and rendering.
type Snapshot struct {
	Settings    Settings `json:"settings"`
	History     History  `json:"history"`
	LastEventAt *int64   `json:"lastEventAt,omitempty"`
	Revision    uint64   `json:"revision"`
}
