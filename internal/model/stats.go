package model

// StatsResponse is the API response for global corpus statistics.
type StatsResponse struct {
	TotalVideos      int            `json:"total_videos"`
	TotalChannels    int            `json:"total_channels"`
	TotalSnapshots   int            `json:"total_snapshots"`
	Snapshots24h     int            `json:"snapshots_24h"`
	VideosByPlatform map[string]int `json:"videos_by_platform"`
}
