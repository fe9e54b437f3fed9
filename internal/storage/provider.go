package storage

import (
	"fmt"
	"smokeless/internal/providers"
	"smokeless/internal/storage/interfaces"
	"smokeless/internal/structures"
)

// NewKeyValueStore opens the backend selected by storage.driver.
func NewKeyValueStore(conf *structures.Config, compressor interfaces.CompressorInterface, logger providers.Logger) (interfaces.KeyValueInterface, func(), error) {
	var (
		store interfaces.KeyValueInterface
		err   error
	)

	switch conf.Storage.Driver {
	case "file":
		store, err = NewFileStore(conf.Storage.Path, compressor, logger)
	case "sqlite":
		store, err = NewSQLiteStore(conf.Storage.Path, logger)
	case "memory":
		store = NewMemoryStore()
	default:
		err = fmt.Errorf("unknown storage driver %q", conf.Storage.Driver)
	}
	if err != nil {
		return nil, nil, err
	}

	logger.Infof(providers.TypeApp, "Using %s storage %s", conf.Storage.Driver, conf.Storage.Path)
	cleanup := func() {
		if err := store.Close(); err != nil {
			logger.Errorf(providers.TypeApp, "Error while closing storage: %s", err)
		}
	}
	return store, cleanup, nil
}
