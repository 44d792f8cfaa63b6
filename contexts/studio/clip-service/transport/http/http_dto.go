package http

type TrimRequest struct {
	CampaignID   string  `json:"campaign_id,omitempty"`
	FileName     string  `json:"file_name"`
	Media        []byte  `json:"media"`
	StartSeconds float64 `json:"start_seconds"`
	EndSeconds   float64 `json:"end_seconds"`
	SubtitlesSRT string  `json:"subtitles_srt,omitempty"`
}

type TrimResponse struct {
	ObjectKey       string  `json:"object_key"`
	StorageRef      string  `json:"storage_ref"`
	DurationSeconds float64 `json:"duration_seconds"`
	SizeBytes       int     `json:"size_bytes"`
}
