package model

// FileInfo describes the audio file given on the command line.
type FileInfo struct {
	FullPath string
	Name     string
	Size     int64
}
