package cli

import (
	"context"
	"fmt"
)

func (a *App) getStatus() string {
	s := ""
	if a.userName != "" {
		s = a.userName + " "
	}
	if m := a.mode(); m != "" {
		s = s + string(m)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Root prompts for the admin login, starts the connectivity watcher and
// runs the REPL until the user exits.
func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to the SiteReg admin console (type 'help' for commands)")

	if err := a.Login(ctx); err != nil {
		printlnFn("Error:", err)
	}

	go a.StartOnlineStatusWatcher(ctx, a.config.HealthCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
}
