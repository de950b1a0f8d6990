// Command gifinfo decodes one or more GIF files and prints a per-frame
// summary: dimensions, disposal, delay, and transparency, plus the loop
// count if a NETSCAPE2.0 extension is present. It exists to exercise the
// gifp package end to end and to double as a quick corpus sanity check.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hidefromkgb/gifp"
)

var (
	flagQuiet bool
	flagSkip  int
)

func newLogger() (*zap.SugaredLogger, error) {
	if flagQuiet {
		return zap.NewNop().Sugar(), nil
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	log, err := cfg.Build()
	if err != nil {
		return nil, errors.Wrap(err, "building logger")
	}
	return log.Sugar(), nil
}

func decodeOne(path string, log *zap.SugaredLogger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "reading %s", path)
	}

	headerColor := color.New(color.FgCyan, color.Bold)
	frameColor := color.New(color.FgGreen)
	warnColor := color.New(color.FgYellow)

	loop, haveLoop := -1, false
	n, derr := gifp.Decode(data, func(_ any, f *gifp.FrameDescriptor) error {
		frameColor.Printf("  frame %d/%d: %dx%d at (%d,%d) delay=%dms disposal=%d",
			f.Index, f.FrameCount, f.Width, f.Height, f.X, f.Y, f.Delay*10, f.Disposal)
		if f.TransparentIndex >= 0 {
			fmt.Printf(" transparent=%d", f.TransparentIndex)
		}
		fmt.Println()
		return nil
	}, func(_ any, raw []byte) error {
		if count, ok := gifp.ParseNetscapeLoopCount(raw); ok {
			loop, haveLoop = count, true
		}
		return nil
	}, nil, flagSkip)

	headerColor.Printf("%s\n", path)
	if haveLoop {
		if loop == 0 {
			fmt.Println("  loop: forever")
		} else {
			fmt.Printf("  loop: %d times\n", loop)
		}
	}

	if derr != nil {
		log.Warnw("decode reported an error", "path", path, "error", derr)
		return derr
	}
	if n < 0 {
		warnColor.Printf("  stream truncated after %d frame(s)\n", -n)
	} else {
		log.Infow("decoded", "path", path, "frames", n)
	}
	return nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "gifinfo [files...]",
		Short: "Summarize the frames of one or more GIF files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger()
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck

			bar := progressbar.Default(int64(len(args)), "decoding")
			var firstErr error
			for _, path := range args {
				if err := decodeOne(path, log); err != nil && firstErr == nil {
					firstErr = err
				}
				_ = bar.Add(1)
			}
			return firstErr
		},
	}
	root.Flags().BoolVarP(&flagQuiet, "quiet", "q", false, "suppress structured log lines, keep only the summary")
	root.Flags().IntVarP(&flagSkip, "skip", "s", 0, "number of leading frames to skip per file")
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
