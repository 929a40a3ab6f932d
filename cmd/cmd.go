// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

// initCommand writes a starter configuration file
func initCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Write a starter config.toml",
		Flags: []cli.Flag{
			configFlag(),
		},
		Action: r.InitConfig,
	}
}

// searchCommand queries the catalog and prints or exports the results
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search the catalog for tracks",
		ArgsUsage: "<query>",
		Flags: []cli.Flag{
			configFlag(),
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"n"},
				Usage:   "Maximum number of results to return",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print JSON output",
			},
			&cli.BoolFlag{
				Name:  "csv",
				Usage: "Export results as CSV",
			},
			&cli.BoolFlag{
				Name:  "markdown",
				Usage: "Export results as a Markdown directory",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file or directory for exports",
			},
		},
		Action: r.Search,
	}
}

// fetchCommand downloads a track's audio to the staging directory
func fetchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "fetch",
		Usage: "Download a track's audio",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:     "id",
				Usage:    "Track ID to fetch",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"d"},
				Usage:   "Directory to stage the download (defaults to config)",
			},
		},
		Action: r.Fetch,
	}
}

// pickCommand launches the interactive search-and-download TUI
func pickCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "pick",
		Usage:     "Interactively pick a search result and download it",
		ArgsUsage: "<query>",
		Flags: []cli.Flag{
			configFlag(),
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"n"},
				Usage:   "Maximum number of results to list",
			},
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"d"},
				Usage:   "Directory to stage the download (defaults to config)",
			},
		},
		Action: r.Pick,
	}
}
