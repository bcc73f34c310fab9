package config

import (
	"flag"
	"os"
	"time"

	"github.com/charbel291291291/election2026/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the backend HTTP API (default from Config)
//	-d string   path of the local offline queue database (default from Config)
//	-i int      online check interval in seconds (default from Config)
//	-t int      root PIN verification timeout in seconds (default from Config)
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-i", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "base URL of the backend HTTP API")
	fs.StringVar(&cfg.QueueDBPath, "d", cfg.QueueDBPath, "path of the local offline queue database")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	verifyTimeout := fs.Int("t", int(cfg.VerifyTimeout.Seconds()), "root PIN verification timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
	cfg.VerifyTimeout = time.Duration(*verifyTimeout) * time.Second
}
