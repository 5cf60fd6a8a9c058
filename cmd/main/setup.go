package main

import (
	datasource "fn-peaks/src/data_source"
	"fn-peaks/src/data_source/logdir"
	"fn-peaks/src/interfaces"
	"fn-peaks/src/logger"
	"fn-peaks/src/models"
	"fn-peaks/src/storage"
	"fn-peaks/src/utils"
)

// -----------------------------------------------------------------------------

// setupDatabase initializes the run audit store based on config
func setupDatabase(config *models.MConfig, appLogger *logger.Logger) (interfaces.IDatabase, error) {
	var db interfaces.IDatabase
	var err error

	switch config.Storage.DBType {
	case "postgres":
		pgLogger := logger.NewLogger(config, "PostgresDB")
		db, err = storage.NewPostgresDB(config, pgLogger)
	case "memory":
		db = storage.NewMemoryDB(config, logger.NewLogger(config, "MemoryDB"))
	case "sqlite":
		sqliteLogger := logger.NewLogger(config, "SQLiteDB")
		db, err = storage.NewAsyncSQLiteDB(config, sqliteLogger)
	default:
		appLogger.Info("Run audit store disabled")
		return storage.NoneDB{}, nil
	}

	if err != nil {
		appLogger.Error("Failed to init db: %v", err)
		return nil, err
	}
	if err := db.Initialize(); err != nil {
		appLogger.Error("Failed to migrate db: %v", err)
		return nil, err
	}
	return db, nil
}

// -----------------------------------------------------------------------------

// setupChannels builds one log directory source per configured channel, in
// config order. The first channel is the authoritative one for the merge.
func setupChannels(config *models.MConfig, observer interfaces.IObserver, appLogger *logger.Logger) *datasource.MultiChannelManager {
	calendar := utils.NewDayCalendar(config.Calendar.MIC)
	if calendar != nil {
		appLogger.Info("Missing-day notices use the %s calendar", config.Calendar.MIC)
	}

	sources := logdir.NewSources(config, storage.NewFileStore(), calendar, observer, logger.NewLogger(config, "Channels"))
	for _, ch := range config.Channels {
		appLogger.Info("Added channel %s (%s) at %s", ch.Name, ch.Label, ch.Root)
	}

	return datasource.NewMultiChannelManager(sources, logger.NewLogger(config, "Channels"))
}
