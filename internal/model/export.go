package model

import "time"

// AppID identifies export files produced by this application. Import rejects
// any other value.
const AppID = "clau-lessons"

// ExportVersion is the export envelope schema version.
const ExportVersion = 1

// ExportedData is the envelope of a user-data export file.
type ExportedData struct {
	Version    int       `json:"version"`
	ExportedAt time.Time `json:"exportedAt"`
	App        string    `json:"app"`
	User       *UserData `json:"user"`
}
