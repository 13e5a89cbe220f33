// Package ui provides the Bubbletea terminal user interface for the
// mastering tool's batch run.
package ui

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gopodcaster/mastering/internal/mastering"
)

var debugLog *os.File

func init() {
	debugLog, _ = os.OpenFile("mastering-ui-debug.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}

func log(format string, args ...interface{}) {
	if debugLog != nil {
		fmt.Fprintf(debugLog, format+"\n", args...)
	}
}

// FileStatus represents the processing state of a single audio file.
type FileStatus int

const (
	StatusQueued FileStatus = iota
	StatusAnalyzing
	StatusProcessing
	StatusComplete
	StatusError
)

// FileProgress tracks progress for a single audio file across the whole
// analyze -> auto-preset -> chain -> export run.
type FileProgress struct {
	InputPath  string
	OutputPath string
	Status     FileStatus

	CurrentStage string
	Progress     float64 // 0.0 to 1.0
	StartTime    time.Time
	ElapsedTime  time.Duration

	Metrics  mastering.AnalysisMetrics
	Settings mastering.Settings

	InputLufs  float64
	OutputLufs float64

	Error error
}

// Model is the Bubbletea model for the mastering run UI.
type Model struct {
	Files          []FileProgress
	CurrentIndex   int
	TotalFiles     int
	CompletedFiles int
	FailedFiles    int

	StartTime time.Time
	Done      bool

	ProgressChan chan tea.Msg

	Width  int
	Height int
}

// NewModel creates a new UI model for the given input files.
func NewModel(inputFiles []string) Model {
	files := make([]FileProgress, len(inputFiles))
	for i, path := range inputFiles {
		files[i] = FileProgress{
			InputPath: path,
			Status:    StatusQueued,
		}
	}

	return Model{
		Files:        files,
		CurrentIndex: -1,
		TotalFiles:   len(inputFiles),
		StartTime:    time.Now(),
		ProgressChan: make(chan tea.Msg, 100),
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return waitForProgress(m.ProgressChan)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		log("[DEBUG] Window size: %dx%d", m.Width, m.Height)

	case ProgressMsg:
		log("[DEBUG] ProgressMsg received: %s, %.1f%%", msg.Stage, msg.Percent)
		if m.CurrentIndex >= 0 && m.CurrentIndex < len(m.Files) {
			m.Files[m.CurrentIndex] = updateFileProgress(m.Files[m.CurrentIndex], msg)
		}
		return m, waitForProgress(m.ProgressChan)

	case FileStartMsg:
		log("[DEBUG] FileStartMsg received: index=%d, file=%s", msg.FileIndex, msg.FileName)
		m.CurrentIndex = msg.FileIndex
		m.Files[m.CurrentIndex].Status = StatusAnalyzing
		m.Files[m.CurrentIndex].StartTime = time.Now()
		return m, waitForProgress(m.ProgressChan)

	case AnalyzedMsg:
		log("[DEBUG] AnalyzedMsg received: index=%d", msg.FileIndex)
		if msg.FileIndex >= 0 && msg.FileIndex < len(m.Files) {
			m.Files[msg.FileIndex].Metrics = msg.Metrics
			m.Files[msg.FileIndex].Settings = msg.Settings
			m.Files[msg.FileIndex].InputLufs = msg.Metrics.IntegratedLufs
			m.Files[msg.FileIndex].Status = StatusProcessing
		}
		return m, waitForProgress(m.ProgressChan)

	case FileCompleteMsg:
		log("[DEBUG] FileCompleteMsg received: index=%d", msg.FileIndex)
		if m.CurrentIndex >= 0 && m.CurrentIndex < len(m.Files) {
			m.Files[m.CurrentIndex].Status = StatusComplete
			m.Files[m.CurrentIndex].InputLufs = msg.InputMetrics.IntegratedLufs
			m.Files[m.CurrentIndex].OutputLufs = msg.OutputLufs
			m.Files[m.CurrentIndex].OutputPath = msg.OutputPath
			m.Files[m.CurrentIndex].Error = msg.Error

			if msg.Error != nil {
				m.Files[m.CurrentIndex].Status = StatusError
				m.FailedFiles++
			} else {
				m.CompletedFiles++
			}
		}
		return m, waitForProgress(m.ProgressChan)

	case AllCompleteMsg:
		log("[DEBUG] AllCompleteMsg received")
		m.Done = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the UI.
func (m Model) View() string {
	if m.Width == 0 {
		return fmt.Sprintf("Initializing...\nFiles: %d\nCurrent: %d\n", len(m.Files), m.CurrentIndex)
	}

	if m.Done {
		return renderCompletionSummary(m)
	}

	return renderProcessingView(m)
}

// updateFileProgress updates a FileProgress based on a ProgressMsg.
func updateFileProgress(fp FileProgress, msg ProgressMsg) FileProgress {
	if msg.Stage != fp.CurrentStage {
		log("[UI] Stage transition: %q -> %q", fp.CurrentStage, msg.Stage)
	}
	fp.CurrentStage = msg.Stage
	fp.Progress = msg.Percent / 100
	fp.ElapsedTime = time.Since(fp.StartTime)
	fp.Status = StatusProcessing
	return fp
}

// waitForProgress creates a command that waits for progress messages.
func waitForProgress(progressChan chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-progressChan
	}
}
