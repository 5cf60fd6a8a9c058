package models

// MChannelStats represents the work done while aggregating one channel.
type MChannelStats struct {
	Channel            string `json:"channel"`
	DirectoriesMissing int    `json:"directories_missing"`
	DirectoriesScanned int    `json:"directories_scanned"`
	DirectoriesFailed  int    `json:"directories_failed"`
	FilesRead          int    `json:"files_read"`
	FilesFailed        int    `json:"files_failed"`
	LinesParsed        int    `json:"lines_parsed"`
	LinesSkipped       int    `json:"lines_skipped"`
	Devices            int    `json:"devices"`
}

// Add folds other into s.
func (s *MChannelStats) Add(other MChannelStats) {
	s.DirectoriesMissing += other.DirectoriesMissing
	s.DirectoriesScanned += other.DirectoriesScanned
	s.DirectoriesFailed += other.DirectoriesFailed
	s.FilesRead += other.FilesRead
	s.FilesFailed += other.FilesFailed
	s.LinesParsed += other.LinesParsed
	s.LinesSkipped += other.LinesSkipped
}
