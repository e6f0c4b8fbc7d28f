package model

type FFProbeOutput struct {
	Format struct {
		FormatName string  `json:"format_name"`
		Duration   float64 `json:"duration,string"`
	} `json:"format"`
}
