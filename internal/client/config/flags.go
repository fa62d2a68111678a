package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/sitereg/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the portal API (default from Config)
//	-i int      request timeout in seconds (default from Config)
//	-m string   admin email for the login prompt
//	-w string   first weekday of the calendar
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	// Filter args to include only those handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-i", "-m", "-w"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "base URL of the portal API")
	requestTimeout := fs.Int("i", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.AdminEmail, "m", cfg.AdminEmail, "admin email")
	fs.StringVar(&cfg.WeekStart, "w", cfg.WeekStart, "first weekday of the calendar")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
}
