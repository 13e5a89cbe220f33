package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gopodcaster/mastering/internal/audio"
	"github.com/gopodcaster/mastering/internal/cli"
	"github.com/gopodcaster/mastering/internal/logging"
	"github.com/gopodcaster/mastering/internal/mastering"
	"github.com/gopodcaster/mastering/internal/ui"
)

var version = "0.0.1"

// CLI defines the command-line interface.
type CLI struct {
	Version      bool     `short:"v" help:"Show version information"`
	Strength     float64  `default:"1.0" help:"Auto-preset strength, 0.5 (gentle) to 2.0 (aggressive)"`
	Preset       string   `default:"auto" help:"Genre preset: auto, pop, hip-hop, edm, rock, acoustic"`
	TargetLufs   float64  `help:"Override the auto-derived integrated loudness target, in LUFS"`
	OutDir       string   `type:"path" help:"Directory to write mastered files into (default: alongside input)"`
	Debug        bool     `help:"Save a debug log file"`
	PresetFile   string   `type:"existingfile" help:"Load a previously exported settings snapshot instead of deriving one"`
	ExportPreset string   `type:"path" help:"Write the settings actually applied to the first file as a reusable snapshot"`
	Files        []string `arg:"" name:"files" help:"Audio files to master" type:"existingfile" optional:""`
}

func main() {
	cliArgs := &CLI{}
	ctx := kong.Parse(cliArgs,
		kong.Name("mastering"),
		kong.Description("Stereo mastering chain with metrics-driven auto-presets"),
		kong.UsageOnError(),
		kong.Vars{
			"version": version,
		},
		kong.Help(cli.StyledHelpPrinter(kong.HelpOptions{Compact: true})),
	)

	if cliArgs.Version {
		cli.PrintVersion(version)
		os.Exit(0)
	}

	if len(cliArgs.Files) == 0 {
		cli.PrintError("No input files specified")
		ctx.PrintUsage(false)
		os.Exit(1)
	}

	if cliArgs.Strength < 0.5 || cliArgs.Strength > 2.0 {
		cli.PrintError(fmt.Sprintf("--strength must be between 0.5 and 2.0, got %.2f", cliArgs.Strength))
		os.Exit(1)
	}

	preset, ok := mastering.FindGenrePreset(strings.ToLower(cliArgs.Preset))
	if !ok {
		cli.PrintError(fmt.Sprintf("unknown preset %q", cliArgs.Preset))
		os.Exit(1)
	}

	var loadedSettings *mastering.Settings
	if cliArgs.PresetFile != "" {
		loaded, err := mastering.LoadSnapshot(cliArgs.PresetFile)
		if err != nil {
			cli.PrintError(err.Error())
			os.Exit(1)
		}
		loadedSettings = &loaded
	}

	var debugLog *os.File
	if cliArgs.Debug {
		debugLog, _ = os.Create("mastering-debug.log")
		defer debugLog.Close()
	}
	log := func(format string, args ...interface{}) {
		if debugLog != nil {
			fmt.Fprintf(debugLog, format+"\n", args...)
		}
	}

	model := ui.NewModel(cliArgs.Files)
	p := tea.NewProgram(model, tea.WithAltScreen())

	go func() {
		for i, inputPath := range cliArgs.Files {
			fileStartTime := time.Now()
			log("[MAIN] Starting run for file %d: %s", i, inputPath)

			p.Send(ui.FileStartMsg{FileIndex: i, FileName: inputPath})

			outputPath := outputPathFor(inputPath, cliArgs.OutDir)
			applied, err := masterFile(p, log, i, inputPath, outputPath, preset, loadedSettings, cliArgs)
			if err != nil {
				log("[MAIN] masterFile failed: %v", err)
				p.Send(ui.FileCompleteMsg{FileIndex: i, Error: err})
				continue
			}

			if i == 0 && cliArgs.ExportPreset != "" {
				if err := mastering.SaveSnapshot(cliArgs.ExportPreset, applied, time.Now()); err != nil {
					log("[MAIN] failed to export settings snapshot: %v", err)
				}
			}

			log("[MAIN] Finished file %d in %s", i, time.Since(fileStartTime))
		}

		p.Send(ui.AllCompleteMsg{})
	}()

	if _, err := p.Run(); err != nil {
		cli.PrintError(fmt.Sprintf("UI error: %v", err))
		os.Exit(1)
	}
}

// masterFile runs analyze -> preset -> chain -> export for a single file and
// forwards progress to the TUI program. It returns the settings actually
// applied so the caller can export them as a reusable snapshot.
func masterFile(p *tea.Program, log func(string, ...interface{}), index int, inputPath, outputPath string, preset mastering.GenrePreset, loadedSettings *mastering.Settings, cliArgs *CLI) (mastering.Settings, error) {
	buf, err := audio.ReadWAV(inputPath)
	if err != nil {
		return mastering.Settings{}, fmt.Errorf("reading %s: %w", inputPath, err)
	}

	analyzeStart := time.Now()
	metrics := mastering.Analyze(buf)
	analyzeTime := time.Since(analyzeStart)

	var settings mastering.Settings
	if loadedSettings != nil {
		settings = *loadedSettings
	} else {
		settings = preset.Apply(metrics, cliArgs.Strength)
	}
	if cliArgs.TargetLufs != 0 {
		settings.LoudnessNormalizer.TargetLufs = cliArgs.TargetLufs
	}

	p.Send(ui.AnalyzedMsg{FileIndex: index, Metrics: metrics, Settings: settings})

	chainStart := time.Now()
	result := mastering.Process(buf, settings, func(u mastering.ProgressUpdate) {
		log("[MAIN] Progress: %s %.1f%%", u.Message, u.Percent)
		p.Send(ui.ProgressMsg{Stage: u.Message, Percent: u.Percent})
	})
	chainTime := time.Since(chainStart)

	if err := audio.WriteWAV(outputPath, result.Output); err != nil {
		return mastering.Settings{}, fmt.Errorf("writing %s: %w", outputPath, err)
	}

	outputMetrics := mastering.Analyze(result.Output)

	if cliArgs.Debug {
		reportData := logging.ReportData{
			InputPath:       inputPath,
			OutputPath:      outputPath,
			StartTime:       analyzeStart,
			EndTime:         time.Now(),
			AnalyzeTime:     analyzeTime,
			ChainTime:       chainTime,
			Preset:          preset.Name,
			Strength:        cliArgs.Strength,
			InputMetrics:    metrics,
			OutputMetrics:   outputMetrics,
			AppliedSettings: settings,
			Multiband:       result.Multiband,
		}
		if err := logging.GenerateReport(reportData); err != nil {
			log("[MAIN] Failed to generate report: %v", err)
		}
	}

	p.Send(ui.FileCompleteMsg{
		FileIndex:    index,
		InputMetrics: metrics,
		OutputLufs:   outputMetrics.IntegratedLufs,
		OutputPath:   outputPath,
	})
	return settings, nil
}

// outputPathFor derives the mastered output path from the input path,
// optionally redirected into outDir.
func outputPathFor(inputPath, outDir string) string {
	ext := filepath.Ext(inputPath)
	base := filepath.Base(strings.TrimSuffix(inputPath, ext))
	name := base + "-mastered" + ext

	if outDir != "" {
		return filepath.Join(outDir, name)
	}
	return filepath.Join(filepath.Dir(inputPath), name)
}
