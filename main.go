// ABOUTME: Entry point for the symphoxy interactive player
// ABOUTME: Handles command-line parsing and hands the loaded pieces to an interactive session

// Package main provides the entry point for symphoxy, an interactive player that plays pieces
// live or renders them to WAV files after asking for tempo, volume and output path.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	flag "github.com/spf13/pflag"
)

// Version is set at build time with -ldflags "-X main.Version=..."
var Version = "dev"

const debugLogFile = "symphoxy-debug.log"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("symphoxy", flag.ContinueOnError)
	flags.SetOutput(stderr)

	configPath := flags.StringP("config", "c", "", "config file (default: ./symphoxy.toml, then ~/.config/symphoxy/config.toml)")
	debug := flags.Bool("debug", false, "enable debug logging to "+debugLogFile)
	noColor := flags.Bool("no-color", false, "disable colored output")
	version := flags.BoolP("version", "v", false, "print version and exit")
	writeConfig := flags.Bool("write-config", false, "write the config file with every setting filled in and exit")

	flags.Usage = func() {
		_, _ = fmt.Fprintln(stderr, "Usage: symphoxy [flags] <piece.toml|track.mp3|playlist.m3u8>...")
		_, _ = fmt.Fprintln(stderr, "Example: symphoxy canon.toml etudes.m3u8")
		_, _ = fmt.Fprintln(stderr, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}

		return 2
	}

	if *version {
		_, _ = fmt.Fprintln(stdout, "symphoxy "+Version)

		return 0
	}

	if *writeConfig {
		path, err := WriteConfig(*configPath)
		if err != nil {
			_, _ = fmt.Fprintf(stderr, "symphoxy: %v\n", err)

			return 1
		}

		_, _ = fmt.Fprintln(stdout, "Wrote config to "+path)

		return 0
	}

	if flags.NArg() == 0 {
		flags.Usage()

		return 1
	}

	opts := RunOptions{
		Paths:      flags.Args(),
		ConfigPath: *configPath,
		NoColor:    *noColor,
		Stdin:      stdin,
		Stdout:     stdout,
		Stderr:     stderr,
	}

	if *debug {
		logger, err := SetupDebugLog(debugLogFile, stdout)
		if err != nil {
			_, _ = fmt.Fprintf(stderr, "symphoxy: %v\n", err)

			return 1
		}

		defer func() {
			_ = logger.Sync()
		}()

		opts.Logger = logger
	}

	if err := RunInteractive(opts); err != nil {
		_, _ = fmt.Fprintf(stderr, "symphoxy: %v\n", err)

		return 1
	}

	return 0
}
