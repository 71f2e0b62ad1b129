package models

import (
	"time"

	"gorm.io/datatypes"
)

// ReportResult is the decoded payload of a reporting procedure.
type ReportResult struct {
	Name      string         `json:"name"`
	Params    map[string]any `json:"params"`
	Payload   datatypes.JSON `json:"payload"`
	FetchedAt time.Time      `json:"fetchedAt"`
	Cached    bool           `json:"cached"`
}
