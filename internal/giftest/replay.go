package giftest

import (
	"os"

	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/hidefromkgb/gifp"
)

// ReplayResult summarizes one file's decode for corpus replay.
type ReplayResult struct {
	Path      string
	Frames    int
	Truncated bool
	Err       error
}

// ReplayAll decodes every path in paths and logs a one-line summary per
// file through log, with a progress bar across the whole set. It never
// stops early on a single file's error — that file's ReplayResult.Err is
// set and replay continues — so a bad file in a large corpus does not
// hide results for the rest.
func ReplayAll(paths []string, log *zap.SugaredLogger) []ReplayResult {
	bar := progressbar.Default(int64(len(paths)), "replaying corpus")
	results := make([]ReplayResult, 0, len(paths))

	for _, path := range paths {
		res := replayOne(path)
		if res.Err != nil {
			log.Warnw("decode failed", "path", path, "error", res.Err)
		} else {
			log.Infow("decoded", "path", path, "frames", res.Frames, "truncated", res.Truncated)
		}
		results = append(results, res)
		_ = bar.Add(1)
	}
	return results
}

func replayOne(path string) ReplayResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return ReplayResult{Path: path, Err: errors.Wrapf(err, "reading %s", path)}
	}

	frames := 0
	n, err := gifp.Decode(data, func(_ any, _ *gifp.FrameDescriptor) error {
		frames++
		return nil
	}, nil, nil, 0)
	if err != nil {
		return ReplayResult{Path: path, Err: errors.Wrapf(err, "decoding %s", path)}
	}
	return ReplayResult{Path: path, Frames: frames, Truncated: n < 0}
}
