package ui

import "github.com/gopodcaster/mastering/internal/mastering"

// ProgressMsg carries a single stage-progress update from the mastering
// chain for the file currently being processed.
type ProgressMsg struct {
	Stage   string
	Percent float64
}

// FileStartMsg indicates a new file has started its mastering run.
type FileStartMsg struct {
	FileIndex int
	FileName  string
}

// AnalyzedMsg carries the pre-chain analysis metrics and the derived
// settings, once available, for the file currently being processed.
type AnalyzedMsg struct {
	FileIndex int
	Metrics   mastering.AnalysisMetrics
	Settings  mastering.Settings
}

// FileCompleteMsg indicates a file has finished its mastering run.
type FileCompleteMsg struct {
	FileIndex    int
	InputMetrics mastering.AnalysisMetrics
	OutputLufs   float64
	OutputPath   string
	Error        error
}

// AllCompleteMsg indicates every file in the run has been processed.
type AllCompleteMsg struct{}
