package storage

import "fn-peaks/src/models"

// NoneDB is used when db_type is "none"; runs are not recorded.
type NoneDB struct{}

func (NoneDB) Initialize() error                           { return nil }
func (NoneDB) SaveRun(*models.MPeakReport) (int64, error)  { return 0, nil }
func (NoneDB) RecentRuns(int) ([]models.MRunRecord, error) { return []models.MRunRecord{}, nil }
func (NoneDB) CleanupOldData() error                       { return nil }
func (NoneDB) Close() error                                { return nil }
