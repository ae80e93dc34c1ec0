package model

import "time"

// Stats are the dashboard counters.
type Stats struct {
	TotalUsers          int `json:"totalUsers"`
	ActiveUsers         int `json:"activeUsers"`
	CoverLettersToday   int `json:"coverLettersToday"`
	UploadsToday        int `json:"uploadsToday"`
	CoverLettersInRange int `json:"coverLettersInRange,omitempty"`
	UploadsInRange      int `json:"uploadsInRange,omitempty"`
}

// SystemInfo describes the serving process.
type SystemInfo struct {
	UptimeSeconds int64   `json:"uptimeSeconds"`
	Goroutines    int     `json:"goroutines"`
	HeapAllocMB   float64 `json:"heapAllocMb"`
	GoVersion     string  `json:"goVersion"`
}

// RealtimeAnalytics is the payload of the realtime dashboard endpoint.
type RealtimeAnalytics struct {
	Stats      Stats      `json:"stats"`
	System     SystemInfo `json:"system"`
	LastUpdate time.Time  `json:"lastUpdate"`
}
