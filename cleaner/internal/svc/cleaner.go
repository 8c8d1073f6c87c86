package svc

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/AnvilloyDevStudio/torrent-cleaner/common/bencode"
	"github.com/AnvilloyDevStudio/torrent-cleaner/common/executor"
	"github.com/AnvilloyDevStudio/torrent-cleaner/common/metainfo"
	"github.com/juju/errors"
	"github.com/sirupsen/logrus"
)

type Command string

const (
	CommandClean Command = "clean"
	CommandDiff  Command = "diff"
	CommandDump  Command = "dump"
)

type Options struct {
	// Base is the directory holding the torrent roots.
	Base string
	// Name replaces the torrent name as root directory.
	Name string
	// Raw dumps the generic decoded tree instead of the model.
	Raw bool
	// Key selects a dotted sub-tree for Raw dumps.
	Key string
}

type Target struct {
	Path    string
	Torrent *metainfo.TorrentFile
	Err     error
}

var errNotRun = errors.New("decode did not run")

// Load decodes the given metafiles in parallel. Each target carries its own
// result so one broken file does not stop the others.
func (s *ServiceContext) Load(ctx context.Context, paths []string) ([]Target, error) {
	targets, err := executor.Map(ctx, s.Config.Workers, paths, func(path string) Target {
		t, err := metainfo.Open(path, bencode.WithMaxDepth(s.Config.MaxDepth))
		return Target{Path: path, Torrent: t, Err: err}
	})
	if err != nil {
		return nil, errors.Trace(err)
	}
	for i := range targets {
		if targets[i].Torrent == nil && targets[i].Err == nil {
			targets[i] = Target{Path: paths[i], Err: errNotRun}
		}
	}
	return targets, nil
}

// Root is the directory the torrent's files live in. The name must be a
// single entry of Base, so neither the torrent nor -n can point outside it.
func (s *ServiceContext) Root(t *metainfo.TorrentFile, opts Options) (string, error) {
	name := opts.Name
	if name == "" {
		name = t.Info.Name
	}
	if err := metainfo.CheckSegment(name, string(filepath.Separator)); err != nil {
		return "", errors.Annotate(err, "invalid root name")
	}
	return filepath.Join(opts.Base, name), nil
}

func (s *ServiceContext) Diff(t *metainfo.TorrentFile, root string) (*Report, error) {
	expected, err := t.FileSizes(string(filepath.Separator))
	if err != nil {
		return nil, errors.Trace(err)
	}
	bar := s.newBar(-1, "scanning")
	local, err := Scan(root, s.Config.Surface, expected, bar)
	_ = bar.Finish()
	if err != nil {
		return nil, err
	}
	report := Reconcile(expected, local)
	metricFileCounter.Add(float64(len(report.Extra)), "extra")
	metricFileCounter.Add(float64(len(report.Missing)), "missing")
	metricFileCounter.Add(float64(len(report.Mismatched)), "mismatched")
	return report, nil
}

// Clean removes the files under root that the torrent does not list.
func (s *ServiceContext) Clean(t *metainfo.TorrentFile, root string) (int, error) {
	report, err := s.Diff(t, root)
	if err != nil {
		return 0, err
	}
	if len(report.Extra) == 0 {
		logrus.Infof("Nothing to remove in %s", root)
		return 0, nil
	}
	for _, f := range report.Extra {
		fmt.Fprintf(s.Out, "%s\n", filepath.Join(root, f.Rel))
	}
	if !s.Config.NoConfirm {
		ok, err := Confirm(s.In, s.Out, fmt.Sprintf("Remove %d files?", len(report.Extra)))
		if err != nil {
			return 0, err
		}
		if !ok {
			logrus.Infof("Skipped %s", root)
			return 0, nil
		}
	}
	bar := s.newBar(int64(len(report.Extra)), "removing")
	removed, err := Remove(root, report.Extra, bar)
	_ = bar.Finish()
	logrus.Infof("Removed %d files from %s", removed, root)
	return removed, err
}

func (s *ServiceContext) DumpRaw(path, key string) error {
	buf, err := os.ReadFile(path)
	if err != nil {
		return errors.Trace(err)
	}
	v, err := bencode.Decode(buf, bencode.WithMaxDepth(s.Config.MaxDepth))
	if err != nil {
		return errors.Annotatef(err, "error while decoding %q", path)
	}
	v, ok := bencode.GetByPath(v, key)
	if !ok {
		return errors.NotFoundf("key %q in %q", key, path)
	}
	return PrintValue(s.Out, v)
}

// Process runs cmd for every path and returns how many failed. Failures are
// logged with the path and error chain.
func (s *ServiceContext) Process(ctx context.Context, cmd Command, paths []string, opts Options) int {
	if cmd == CommandDump && opts.Raw {
		failed := 0
		for _, path := range paths {
			if err := s.DumpRaw(path, opts.Key); err != nil {
				logrus.Errorf("Failed to dump %s. %v", path, err)
				failed++
			}
		}
		return failed
	}

	targets, err := s.Load(ctx, paths)
	if err != nil {
		logrus.Errorf("Failed to load torrents. %v", err)
		return len(paths)
	}
	failed := 0
	for _, target := range targets {
		if target.Err != nil {
			logrus.Errorf("Failed to parse %s. %v", target.Path, target.Err)
			logrus.Debugf("%s", errors.ErrorStack(target.Err))
			metricTorrentCounter.Inc("invalid")
			failed++
			continue
		}
		if err = s.process(cmd, target.Torrent, opts); err != nil {
			logrus.Errorf("Failed to %s %s. %v", cmd, target.Path, err)
			metricTorrentCounter.Inc("failed")
			failed++
			continue
		}
		metricTorrentCounter.Inc("ok")
	}
	return failed
}

func (s *ServiceContext) process(cmd Command, t *metainfo.TorrentFile, opts Options) error {
	switch cmd {
	case CommandDump:
		return PrintTorrent(s.Out, t)
	case CommandDiff:
		root, err := s.Root(t, opts)
		if err != nil {
			return err
		}
		report, err := s.Diff(t, root)
		if err != nil {
			return err
		}
		PrintReport(s.Out, root, report)
		return nil
	case CommandClean:
		root, err := s.Root(t, opts)
		if err != nil {
			return err
		}
		_, err = s.Clean(t, root)
		return err
	default:
		return errors.NotSupportedf("command %q", cmd)
	}
}
