package constants

import "time"

const (
	OCRTimeout      = 60 * time.Second
	DatabaseTimeout = 5 * time.Second
	RequestTimeout  = 30 * time.Second
	DequeueTimeout  = 5 * time.Second
)

const (
	DBMaxOpenConns    = 100
	DBMaxIdleConns    = 10
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
)

const (
	TaskQueueKey       = "ocr_tasks:queue"
	TaskStatusKeyBase  = "ocr_tasks:status:"
	TaskStatusTTL      = 24 * time.Hour
	MaxUploadBodyBytes = 10 << 20
)

const (
	ShutdownTimeout = 5 * time.Second
)
