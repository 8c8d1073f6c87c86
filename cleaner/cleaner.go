package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/AnvilloyDevStudio/torrent-cleaner/cleaner/internal/config"
	"github.com/AnvilloyDevStudio/torrent-cleaner/cleaner/internal/svc"
	"github.com/sirupsen/logrus"
)

func main() {
	cmd, args := svc.CommandClean, os.Args[1:]
	if len(args) > 0 {
		switch c := svc.Command(args[0]); c {
		case svc.CommandClean, svc.CommandDiff, svc.CommandDump:
			cmd, args = c, args[1:]
		}
	}

	fs := flag.NewFlagSet(string(cmd), flag.ExitOnError)
	configFile := fs.String("f", "", "the config file")
	base := fs.String("C", ".", "directory holding the torrent content")
	name := fs.String("n", "", "root name to operate on instead of the torrent name")
	surface := fs.Bool("s", false, "take other files in the root directory into account")
	noConfirm := fs.Bool("y", false, "skip confirmation before deleting files")
	depth := fs.Int("depth", 0, "maximum bencode nesting depth")
	workers := fs.Int("workers", 0, "torrents decoded in parallel")
	noProgress := fs.Bool("q", false, "hide progress bars")
	verbose := fs.Bool("v", false, "debug logging")
	raw := fs.Bool("raw", false, "dump the decoded bencode tree instead of the torrent")
	key := fs.String("key", "", "dotted key path to dump with -raw")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: %s [clean|diff|dump] [flags] <file.torrent>...\n", os.Args[0])
		fs.PrintDefaults()
	}
	_ = fs.Parse(args)
	if fs.NArg() == 0 {
		fs.Usage()
		os.Exit(2)
	}
	if *name != "" && fs.NArg() > 1 {
		logrus.Fatalf("-n only applies to a single torrent file")
	}

	c, err := config.Load(*configFile)
	if err != nil {
		logrus.Fatalf("Failed to read config file. %v", err)
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "s":
			c.Surface = *surface
		case "y":
			c.NoConfirm = *noConfirm
		case "depth":
			c.MaxDepth = *depth
		case "workers":
			c.Workers = *workers
		case "q":
			c.Progress = !*noProgress
		case "v":
			if *verbose {
				c.LogLevel = logrus.DebugLevel.String()
			}
		}
	})
	if err = c.SetUp(); err != nil {
		logrus.Fatalf("Invalid config. %v", err)
	}

	ctx := svc.NewServiceContext(*c)
	failed := ctx.Process(context.Background(), cmd, fs.Args(), svc.Options{
		Base: *base,
		Name: *name,
		Raw:  *raw,
		Key:  *key,
	})
	if failed > 0 {
		os.Exit(1)
	}
}
