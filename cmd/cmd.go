// submodule cmd contains command definitions
package main

import (
	"time"

	"github.com/urfave/cli/v3"
)

// setupCommand creates the config file and prepares the history database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Create config.toml and initialize the job history database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.BoolFlag{
				Name:  "rollback",
				Usage: "Revert the most recently applied database migration",
			},
		},
		Action: r.Setup,
	}
}

// authCommand handles authentication operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage the YouTube authorization",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Authorize with Google in the browser and store the token",
				Flags: []cli.Flag{
					&cli.DurationFlag{
						Name:  "timeout",
						Usage: "How long to wait for the browser callback",
						Value: 5 * time.Minute,
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:   "logout",
				Usage:  "Revoke and delete the stored token",
				Action: r.AuthLogout,
			},
			{
				Name:   "status",
				Usage:  "Show the signed-in channel",
				Action: r.AuthStatus,
			},
		},
	}
}

// playlistsCommand lists the account's playlists
func playlistsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "playlists",
		Aliases: []string{"ls"},
		Usage:   "List the playlists of the signed-in account",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "markdown",
				Usage: "Output a markdown table",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print JSON output",
				Value: true,
			},
		},
		Action: r.Playlists,
	}
}

// extractCommand writes playlists to CSV records
func extractCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "extract",
		Aliases: []string{"backup"},
		Usage:   "Export playlists to CSV records",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "Folder that receives the records sub-folder",
				Value:   ".",
			},
			&cli.StringSliceFlag{
				Name:  "id",
				Usage: "Playlist ID to export (repeatable)",
			},
			&cli.BoolFlag{
				Name:  "all",
				Usage: "Export every playlist",
			},
		},
		Action: r.Extract,
	}
}

// restoreCommand recreates playlists from CSV records
func restoreCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "restore",
		Usage: "Recreate playlists from the CSV records in a folder",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "from",
				Aliases:  []string{"f"},
				Usage:    "Folder containing CSV records",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "privacy",
				Usage: "Privacy of created playlists: private, unlisted or public",
			},
			&cli.BoolFlag{
				Name:  "describe",
				Usage: "Generate playlist descriptions with Gemini",
			},
			&cli.DurationFlag{
				Name:  "interval",
				Usage: "Minimum spacing between video additions",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output the restore summary as JSON",
			},
		},
		Action: r.Restore,
	}
}

// historyCommand shows recorded restoration jobs
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Show restoration job history",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "status",
				Usage: "Only show jobs with this status (pending, creating, done, error)",
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Only show the most recent jobs",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.History,
	}
}

// tuiCommand returns the top-level TUI command for interactive playlist management.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive TUI",
		Action:  r.TUI,
	}
}
