package storage

import (
	"errors"
	"fmt"
	json "github.com/goccy/go-json"
	"os"
	"path/filepath"
	"smokeless/internal/providers"
	"smokeless/internal/storage/interfaces"
	"sync"
	"time"
)

const fileFormatVersion = 1

// fileEnvelope is the on-disk layout of the file backend.
type fileEnvelope struct {
	Version int                        `json:"version"`
	Entries map[string]json.RawMessage `json:"entries"`
}

// FileStore keeps every key in memory and rewrites the whole compressed file
// on each mutation.
type FileStore struct {
	mu         sync.Mutex
	path       string
	entries    map[string][]byte
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

// NewFileStore opens path. A missing file is an empty store. An unreadable
// one is moved aside to path.corrupt-<time> and the store starts empty, so
// the next write cannot replace the only copy of the old data.
func NewFileStore(path string, compressor interfaces.CompressorInterface, logger providers.Logger) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("unable to create storage dir: %w", err)
	}

	fs := &FileStore{
		path:       path,
		entries:    make(map[string][]byte),
		compressor: compressor,
		logger:     logger,
	}

	if err := fs.load(); err != nil {
		fs.entries = make(map[string][]byte)
		aside := path + ".corrupt-" + time.Now().Format("20060102-150405")
		if mvErr := os.Rename(path, aside); mvErr != nil {
			logger.Errorf(providers.TypeStore, "Unreadable store %s could not be moved aside: %s", path, mvErr)
			return nil, fmt.Errorf("unreadable store %s kept in place: %w", path, mvErr)
		}
		logger.Warnf(providers.TypeStore, "Unreadable store %s moved to %s, starting empty: %s", path, aside, err)
	}
	return fs, nil
}

func (f *FileStore) load() error {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if len(data) == 0 {
		return nil
	}

	raw, err := f.compressor.Decompress(data)
	switch {
	case errors.Is(err, ErrNotCompressed):
		// hand-edited or exported store
		f.logger.Warnf(providers.TypeStore, "Store %s is not compressed, reading as plain JSON", f.path)
		raw = data
	case err != nil:
		return err
	}

	var envelope fileEnvelope
	if err = json.Unmarshal(raw, &envelope); err != nil {
		return err
	}
	for k, v := range envelope.Entries {
		f.entries[k] = []byte(v)
	}
	return nil
}

func (f *FileStore) Get(key string) ([]byte, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	val, ok := f.entries[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, true, nil
}

func (f *FileStore) SetAll(entries map[string][]byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	next := f.copyEntries()
	for k, v := range entries {
		next[k] = append([]byte(nil), v...)
	}
	return f.commit(next)
}

func (f *FileStore) Remove(keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	next := f.copyEntries()
	for _, k := range keys {
		delete(next, k)
	}
	return f.commit(next)
}

func (f *FileStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.commit(make(map[string][]byte))
}

func (f *FileStore) Close() error {
	return nil
}

func (f *FileStore) copyEntries() map[string][]byte {
	next := make(map[string][]byte, len(f.entries))
	for k, v := range f.entries {
		next[k] = v
	}
	return next
}

// commit writes next to disk and only then swaps it in.
func (f *FileStore) commit(next map[string][]byte) error {
	envelope := fileEnvelope{
		Version: fileFormatVersion,
		Entries: make(map[string]json.RawMessage, len(next)),
	}
	for k, v := range next {
		envelope.Entries[k] = v
	}

	jsonData, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	data, err := f.compressor.Compress(jsonData)
	if err != nil {
		return err
	}
	if err = writeFileAtomic(f.path, data); err != nil {
		return err
	}
	f.entries = next
	return nil
}

func writeFileAtomic(fileName string, data []byte) error {
	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fileName)
}
