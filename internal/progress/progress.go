// Package progress draws a byte progress bar while large inputs are read.
package progress

import (
	"io"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
)

// MinSize is the smallest input that gets a bar.
const MinSize = 1_000_000

// Bar tracks bytes read from one file. A nil *Bar is valid and does nothing.
type Bar struct {
	bar *progressbar.ProgressBar
}

// ForFile returns a bar for path, or nil when quiet, when the file is smaller
// than MinSize, or when its size cannot be read.
func ForFile(path string, out io.Writer, quiet bool) *Bar {
	if quiet {
		return nil
	}
	st, err := os.Stat(path)
	if err != nil || st.Size() < MinSize {
		return nil
	}
	return New(st.Size(), out)
}

// New builds a bar for total bytes written to out.
func New(total int64, out io.Writer) *Bar {
	pb := progressbar.NewOptions64(total,
		progressbar.OptionSetWriter(out),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{Saucer: "#", SaucerHead: ">", SaucerPadding: "-", BarStart: "[", BarEnd: "]"}),
	)
	return &Bar{bar: pb}
}

// Writer is the tap handed to the reader; nil when b is nil.
func (b *Bar) Writer() io.Writer {
	if b == nil {
		return nil
	}
	return b.bar
}

// Finish completes and clears the bar.
func (b *Bar) Finish() {
	if b == nil {
		return
	}
	_ = b.bar.Finish()
}
