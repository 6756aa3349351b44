// submodule cmd contains command definitions
package main

import (
	"github.com/urfave/cli/v3"

	"github.com/HuLaxx/Shiftify-sub000/internal/formatter"
	"github.com/HuLaxx/Shiftify-sub000/internal/services"
)

func jsonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output raw JSON",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print JSON output",
			Value: true,
		},
	}
}

func formatFlag(value string) cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "Output format: json, csv, markdown, txt",
		Value:   value,
	}
}

// verifyCommand checks that the cookies work.
func verifyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "verify",
		Usage:  "Check that the configured cookies can read the library",
		Flags:  jsonFlags(),
		Action: r.Verify,
	}
}

// playlistsCommand lists liked playlists.
func playlistsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "playlists",
		Aliases: []string{"ls"},
		Usage:   "List liked playlists, Liked Music first",
		Flags:   jsonFlags(),
		Action:  r.Playlists,
	}
}

// tracksCommand collects the tracks of one playlist.
func tracksCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "tracks",
		Usage: "Collect every track of a playlist",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "id",
				Usage: "Playlist or browse ID",
				Value: services.LikedMusicID,
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of tracks (0 uses collector.max_tracks)",
			},
			formatFlag(formatter.FormatText),
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write to this file instead of stdout",
			},
			&cli.BoolFlag{
				Name:  "record",
				Usage: "Record the run in the database",
			},
		},
		Action: r.Tracks,
	}
}

// searchCommand finds the first matching video.
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Print the video ID of the first search result",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "query"},
		},
		Flags:  jsonFlags(),
		Action: r.Search,
	}
}

// likeCommand rates a video as liked.
func likeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "like",
		Usage: "Like a video",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "videoId"},
		},
		Action: r.Like,
	}
}

// unlikeCommand clears the rating of a video.
func unlikeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "unlike",
		Usage: "Remove the like from a video",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "videoId"},
		},
		Action: r.Unlike,
	}
}

// exportCommand exports every liked playlist.
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export all liked playlists to files",
		Flags: []cli.Flag{
			formatFlag(formatter.FormatJSON),
			&cli.StringFlag{
				Name:    "output-dir",
				Aliases: []string{"o"},
				Usage:   "Output directory (default: ytmusic_export_{timestamp})",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Concurrent file writers",
				Value: 3,
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum tracks per playlist (0 uses collector.max_tracks)",
			},
			&cli.StringSliceFlag{
				Name:  "id",
				Usage: "Only export these playlist IDs",
			},
		},
		Action: r.Export,
	}
}

// serveCommand starts the HTTP endpoint.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the action endpoint over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Listen host (default: server.host)",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "Listen port (default: server.port)",
			},
			&cli.BoolFlag{
				Name:  "no-record",
				Usage: "Do not record collection runs",
			},
		},
		Action: r.Serve,
	}
}

// setupCommand handles setup operations for the database and cookies.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "database",
				Usage:  "Initialize database and run migrations",
				Action: r.SetupDatabase,
			},
			{
				Name:    "cookies",
				Aliases: []string{"youtube", "yt"},
				Usage:   "Save browser cookies from a DevTools \"Copy as cURL\" command",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "curl",
						Usage: "cURL command from browser DevTools (Copy as cURL)",
					},
					&cli.StringFlag{
						Name:  "curl-file",
						Usage: "Path to .sh file containing cURL command",
					},
					&cli.StringFlag{
						Name:  "output",
						Usage: "Cookie file to write (default: youtube.cookie_file)",
					},
				},
				Action: r.SetupCookies,
			},
		},
	}
}

// runsCommand inspects recorded collection runs.
func runsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "runs",
		Usage: "Inspect recorded collection runs",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List recorded runs, newest first",
				Flags: append(jsonFlags(),
					&cli.StringFlag{
						Name:  "playlist",
						Usage: "Only runs for this playlist ID",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of runs",
						Value: 20,
					},
				),
				Action: r.RunsList,
			},
			{
				Name:  "show",
				Usage: "Show one run and its tracks",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags:  []cli.Flag{formatFlag(formatter.FormatText)},
				Action: r.RunsShow,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive browsing.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Browse playlists and tracks interactively",
		Action:  r.TUI,
	}
}
