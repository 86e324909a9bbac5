package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"

	"github.com/fpang/framesheet/internal/cli"
	"github.com/fpang/framesheet/internal/framesheet"
	"github.com/fpang/framesheet/internal/logging"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// CLI flags
var (
	outputFlag     string
	rowsFlag       int
	columnsFlag    int
	widthFlag      int
	watermarkFlag  string
	metricsFlag    bool
	pickFlag       bool
	noProgressFlag bool
	framesDirFlag  string
)

// rootCmd is the main Cobra command for the framesheet CLI.
var rootCmd = &cobra.Command{
	Use:   "framesheet [video]",
	Short: "Build a contact sheet of evenly spaced frames from a video",
	Long: `Framesheet samples rows x columns evenly spaced frames from a video, burns
a timestamp into each one and lays them out in a grid under a header with
the file name, size, resolution and duration.

The sheet is written as PNG unless the output name ends in .jpg, .jpeg or
.webp. Without --output it is written as framesheet.png next to the video.
Requires ffmpeg and ffprobe on PATH.

Examples:
  framesheet holiday.mp4
  framesheet holiday.mp4 -r 6 -c 3 -o sheets/
  framesheet holiday.mp4 -o holiday.webp --width 1920
  framesheet --pick       # Choose the video in a file dialog
  framesheet              # Interactive mode - prompts for the video path`,
	Args: cobra.MaximumNArgs(1),
	Run:  runMain,
}

func init() {
	defaults := framesheet.DefaultConfig()

	rootCmd.Flags().StringVarP(&outputFlag, "output", "o", framesheet.DefaultOutputName, "Output image file or directory")
	rootCmd.Flags().IntVarP(&rowsFlag, "rows", "r", 10, "Number of grid rows")
	rootCmd.Flags().IntVarP(&columnsFlag, "columns", "c", 4, "Number of grid columns")
	rootCmd.Flags().IntVarP(&widthFlag, "width", "w", defaults.SheetWidth, "Target grid width in pixels (0 = keep frame size)")
	rootCmd.Flags().StringVar(&watermarkFlag, "watermark", defaults.Watermark, "Watermark text drawn top-right (empty = none)")
	rootCmd.Flags().BoolVar(&metricsFlag, "metrics", false, "Print an EMF metrics line to stdout after the run")
	rootCmd.Flags().BoolVar(&pickFlag, "pick", false, "Choose the video in a native file dialog")
	rootCmd.Flags().BoolVar(&noProgressFlag, "no-progress", false, "Hide the sampling progress bar")
	rootCmd.Flags().StringVar(&framesDirFlag, "frames-dir", "", "Also save the raw sampled frames into this directory")

	rootCmd.Version = fmt.Sprintf("%s (built %s)", commitHash, buildTime)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// runMain is the main execution logic called by Cobra.
func runMain(cmd *cobra.Command, args []string) {
	logging.Init()

	videoPath, err := selectVideo(args)
	if errors.Is(err, cli.ErrCanceled) {
		log.Info().Msg("No video selected")
		return
	}
	if err != nil {
		fail(err)
	}

	videoPath, err = cli.ResolveVideoPath(videoPath)
	if err != nil {
		fail(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runSheet(ctx, videoPath)
}

// selectVideo takes the video from the positional argument, the file
// dialog or an interactive prompt, in that order.
func selectVideo(args []string) (string, error) {
	switch {
	case len(args) == 1:
		return args[0], nil
	case pickFlag:
		return cli.PickVideo()
	default:
		return cli.PromptForVideo(os.Stdin, os.Stderr)
	}
}

// runSheet generates the sheet for videoPath and reports the outcome.
func runSheet(ctx context.Context, videoPath string) {
	runID := uuid.New().String()

	cfg := framesheet.DefaultConfig()
	cfg.SheetWidth = widthFlag
	cfg.Watermark = watermarkFlag

	summary := logging.NewRunSummary("framesheet").
		CommitHash(commitHash).
		BuildTime(buildTime).
		RunID(runID).
		Config("video", videoPath).
		Config("output", outputFlag).
		Config("rows", strconv.Itoa(rowsFlag)).
		Config("columns", strconv.Itoa(columnsFlag)).
		Config("width", strconv.Itoa(widthFlag))

	log.Info().
		Str("video", videoPath).
		Int("rows", rowsFlag).
		Int("columns", columnsFlag).
		Int("width", widthFlag).
		Msg("Starting framesheet")

	req := framesheet.Request{
		RunID:      runID,
		VideoPath:  videoPath,
		OutputPath: outputFlag,
		Rows:       rowsFlag,
		Columns:    columnsFlag,
		Config:     cfg,
		FramesDir:  framesDirFlag,
	}
	if !noProgressFlag {
		req.NewProgress = func(total int) framesheet.Progress {
			return cli.NewProgressBar(total, os.Stderr)
		}
	}
	if metricsFlag {
		req.Metrics = os.Stdout
	}

	result, err := framesheet.Generate(ctx, req)
	if err != nil {
		summary.Failed(err).Log()
		fail(err)
	}

	summary.
		Result("frames", int64(result.Frames)).
		Result("skipped", int64(result.Skipped)).
		Result("step", int64(result.Step)).
		Result("width", int64(result.Width)).
		Result("height", int64(result.Height)).
		Result("bytes", result.Bytes).
		Elapsed(result.Elapsed).
		Log()

	fmt.Println(cli.FormatResult(result))
}

// fail logs err with its failure kind and exits non-zero.
func fail(err error) {
	log.Fatal().
		Err(err).
		Str("kind", framesheet.FailureKind(err)).
		Msg("Failed to generate framesheet")
}
