// Package logging provides analysis report generation for mastered audio
// files.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gopodcaster/mastering/internal/mastering"
)

func writeSection(f *os.File, title string) {
	fmt.Fprintln(f, title)
	fmt.Fprintln(f, strings.Repeat("-", len(title)))
}

// ReportData contains everything needed to generate one mastering run's
// report.
type ReportData struct {
	InputPath       string
	OutputPath      string
	StartTime       time.Time
	EndTime         time.Time
	AnalyzeTime     time.Duration
	ChainTime       time.Duration
	Preset          string
	Strength        float64
	InputMetrics    mastering.AnalysisMetrics
	OutputMetrics   mastering.AnalysisMetrics
	AppliedSettings mastering.Settings
	Multiband       mastering.MultibandResult
}

// GenerateReport creates a detailed analysis report and saves it alongside
// the output file. The report filename is the output path with its
// extension replaced by .log.
//
// Report structure:
// 1. Header - file info and timestamp
// 2. Processing Summary - analyze/chain timings
// 3. Preset Applied - genre preset, strength, derived settings
// 4. Loudness & Peak Measurements - two-column table (Input/Output)
// 5. Multiband Compressor Gain Reduction
func GenerateReport(data ReportData) error {
	logPath := strings.TrimSuffix(data.OutputPath, filepath.Ext(data.OutputPath)) + ".log"

	f, err := os.Create(logPath)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}
	defer f.Close()

	writeReportHeader(f, data)
	writeProcessingSummary(f, data)
	writePresetApplied(f, data)
	writeLoudnessTable(f, data.InputMetrics, data.OutputMetrics)
	writeMultibandTable(f, data.Multiband)

	return nil
}

func writeReportHeader(f *os.File, data ReportData) {
	fmt.Fprintln(f, "Mastering Analysis Report")
	fmt.Fprintln(f, "=========================")
	fmt.Fprintf(f, "File: %s\n", filepath.Base(data.InputPath))
	fmt.Fprintf(f, "Output: %s\n", filepath.Base(data.OutputPath))
	fmt.Fprintf(f, "Processed: %s\n", data.EndTime.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintln(f, "")
}

func writeProcessingSummary(f *os.File, data ReportData) {
	writeSection(f, "Processing Summary")

	fmt.Fprintf(f, "Analysis:   %s\n", formatDuration(data.AnalyzeTime))
	fmt.Fprintf(f, "Chain:      %s\n", formatDuration(data.ChainTime))

	totalTime := data.EndTime.Sub(data.StartTime)
	fmt.Fprintf(f, "Total:      %s\n", formatDuration(totalTime))
	fmt.Fprintln(f, "")
}

func writePresetApplied(f *os.File, data ReportData) {
	writeSection(f, "Preset Applied")

	preset := data.Preset
	if preset == "" {
		preset = "auto"
	}
	fmt.Fprintf(f, "Genre:    %s\n", preset)
	fmt.Fprintf(f, "Strength: %.2f\n", data.Strength)
	fmt.Fprintln(f, "")

	s := data.AppliedSettings
	fmt.Fprintf(f, "High-pass:      %s (cutoff %.0f Hz)\n", enabledText(s.HighPass.Enabled), s.HighPass.CutoffHz)
	fmt.Fprintf(f, "Equalizer:      %s (low %+.1f dB, mid %+.1f dB, high %+.1f dB)\n",
		enabledText(s.Equalizer.Enabled), s.Equalizer.LowShelfDb, s.Equalizer.MidDb, s.Equalizer.HighShelfDb)
	fmt.Fprintf(f, "Rebalance:      %s (vocal %+.1f dB, drum %+.1f dB, instrument %+.1f dB)\n",
		enabledText(s.Rebalance.Enabled), s.Rebalance.VocalDb, s.Rebalance.DrumDb, s.Rebalance.InstrumentDb)
	fmt.Fprintf(f, "Multiband comp: %s (low %.1f:1, mid %.1f:1, high %.1f:1)\n",
		enabledText(s.Multiband.Enabled), s.Multiband.Low.Ratio, s.Multiband.Mid.Ratio, s.Multiband.High.Ratio)
	fmt.Fprintf(f, "Saturation:     %s (drive %.2f)\n", enabledText(s.Saturation.Enabled), s.Saturation.Drive)
	fmt.Fprintf(f, "Stereo imager:  %s (width %.2f)\n", enabledText(s.StereoImager.Enabled), s.StereoImager.Width)
	fmt.Fprintf(f, "Limiter:        %s (ceiling %.1f dBTP)\n", enabledText(s.Limiter.Enabled), s.Limiter.CeilingDbTp)
	fmt.Fprintf(f, "Normalizer:     %s (target %.1f LUFS)\n",
		enabledText(s.LoudnessNormalizer.Enabled), s.LoudnessNormalizer.TargetLufs)
	fmt.Fprintln(f, "")
}

func enabledText(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}

// writeLoudnessTable outputs a two-column comparison table for loudness and
// peak metrics, before and after the mastering chain.
func writeLoudnessTable(f *os.File, input, output mastering.AnalysisMetrics) {
	writeSection(f, "Loudness & Peak Measurements")

	table := NewMetricTable()
	table.Headers = []string{"Input", "Output"}

	table.AddRow("Integrated Loudness",
		[]string{formatMetricLUFS(input.IntegratedLufs, 1), formatMetricLUFS(output.IntegratedLufs, 1)},
		"LUFS", "")
	table.AddRow("True Peak",
		[]string{formatMetricDB(input.TruePeakDbTp, 1), formatMetricDB(output.TruePeakDbTp, 1)},
		"dBTP", "")
	table.AddRow("RMS",
		[]string{formatMetricDB(input.RmsDbFs, 1), formatMetricDB(output.RmsDbFs, 1)},
		"dBFS", "")
	table.AddRow("Crest Factor",
		[]string{formatMetric(input.CrestFactorDb, 1), formatMetric(output.CrestFactorDb, 1)},
		"dB", "")

	fmt.Fprint(f, table.String())
	fmt.Fprintln(f, "")
}

func writeMultibandTable(f *os.File, m mastering.MultibandResult) {
	writeSection(f, "Multiband Compressor Gain Reduction")

	fmt.Fprintf(f, "Low:  %.1f dB\n", m.LowGainReductionDb)
	fmt.Fprintf(f, "Mid:  %.1f dB\n", m.MidGainReductionDb)
	fmt.Fprintf(f, "High: %.1f dB\n", m.HighGainReductionDb)
	fmt.Fprintln(f, "")
}

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	return d.Round(10 * time.Millisecond).String()
}
