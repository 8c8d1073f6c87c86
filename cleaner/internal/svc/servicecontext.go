package svc

import (
	"bufio"
	"io"
	"os"

	"github.com/AnvilloyDevStudio/torrent-cleaner/cleaner/internal/config"
	"github.com/schollz/progressbar/v3"
)

type ServiceContext struct {
	Config config.Config
	In     *bufio.Reader
	Out    io.Writer
	// Err receives progress bars.
	Err io.Writer
}

func NewServiceContext(c config.Config) *ServiceContext {
	return &ServiceContext{
		Config: c,
		In:     bufio.NewReader(os.Stdin),
		Out:    os.Stdout,
		Err:    os.Stderr,
	}
}

func (s *ServiceContext) newBar(max int64, description string) *progressbar.ProgressBar {
	w := s.Err
	if !s.Config.Progress || w == nil {
		w = io.Discard
	}
	return progressbar.NewOptions64(max,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}
