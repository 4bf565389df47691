package logging

import (
	"log/slog"
	"os"
)

// Setup installs the bootstrap logger: JSON lines to stdout. Once the
// database is up, main swaps in a MultiHandler that adds the Postgres
// error sink behind the admin log listing.
func Setup() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
}
