package api

// dateTimeFormat is used for RFC3339 timestamps in API payloads.
const dateTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// QueueEntry is the externally visible projection of a queued item.
// InferenceResult is an explicit null until a verdict arrives so consumers
// can distinguish "not yet classified" from an omitted field.
type QueueEntry struct {
	OriginalName    string           `json:"originalname"`
	DownloadURL     string           `json:"downloadUrl"`
	InferenceResult *InferenceResult `json:"inferenceResult"`
}

// InferenceResult carries a merged classification verdict.
type InferenceResult struct {
	IsHuman   bool   `json:"isHuman"`
	Timestamp string `json:"timestamp"`
}

// UploadedFile echoes the stored and original names of an accepted upload.
type UploadedFile struct {
	Filename     string `json:"filename"`
	OriginalName string `json:"originalname"`
}

// UploadResponse is the success payload for POST /upload.
type UploadResponse struct {
	Message string       `json:"message"`
	File    UploadedFile `json:"file"`
}

// MessageResponse is the generic message payload used for errors and
// acknowledgements.
type MessageResponse struct {
	Message string `json:"message"`
}

// DependencyStatus captures availability of an external dependency.
type DependencyStatus struct {
	Name        string `json:"name"`
	Command     string `json:"command"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	Detail      string `json:"detail,omitempty"`
}

// DaemonStatus aggregates daemon runtime information for API consumers.
type DaemonStatus struct {
	Running      bool               `json:"running"`
	PID          int                `json:"pid"`
	Bind         string             `json:"bind"`
	UploadDir    string             `json:"uploadDir"`
	QueueStats   map[string]int     `json:"queueStats"`
	Dependencies []DependencyStatus `json:"dependencies"`
}
