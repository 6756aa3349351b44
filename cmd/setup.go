package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/HuLaxx/Shiftify-sub000/internal/services"
	"github.com/HuLaxx/Shiftify-sub000/internal/shared"
)

// SetupDatabase writes a config file if none exists, then initializes the database and runs migrations.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
		} else if config, err := shared.LoadConfig(configPath); err == nil {
			r.config = config
			r.configPath = configPath
		}
	}

	r.logger.Info("initializing database", "path", r.config.Database.Path)
	db, err := r.openDatabase()
	if err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}
	defer db.Close()

	r.logger.Infof("setup complete for database: %v", r.config.Database.Path)
	return nil
}

// SetupCookies extracts the cookie header from a browser "Copy as cURL" command and saves it.
func (r *Runner) SetupCookies(ctx context.Context, cmd *cli.Command) error {
	curlCmd := cmd.String("curl")
	curlFile := cmd.String("curl-file")

	if curlCmd == "" && curlFile == "" {
		return fmt.Errorf("%w: either --curl or --curl-file must be provided", shared.ErrMissingArgument)
	}
	if curlCmd != "" && curlFile != "" {
		return fmt.Errorf("%w: cannot specify both --curl and --curl-file", shared.ErrInvalidFlag)
	}

	var (
		headers *shared.CurlHeaders
		err     error
	)
	if curlFile != "" {
		headers, err = shared.ParseCurlFile(curlFile)
	} else {
		headers, err = shared.ParseCurlCommand([]byte(curlCmd))
	}
	if err != nil {
		return fmt.Errorf("failed to parse cURL command: %w", err)
	}

	creds, err := services.ParseCredentials(headers.Cookie)
	if err != nil {
		return err
	}
	if creds.Secret == "" {
		r.logger.Warn("cookie has no SAPISID-style secret; requests will be unsigned")
	}

	outputPath := cmd.String("output")
	if outputPath == "" {
		outputPath = r.config.YouTube.CookieFile
	}
	outputPath = shared.ExpandHome(outputPath)

	if err := headers.WriteCookieFile(outputPath); err != nil {
		return err
	}
	r.logger.Info("cookie file saved", "path", outputPath)

	r.writePlain("✓ YouTube Music cookies saved to: %s\n", outputPath)
	if authUser := headers.AuthUser(); authUser != "" {
		r.writePlain("Browser request used account index %s (pass --auth-user %s)\n", authUser, authUser)
	}
	r.writePlainln("Next steps:")
	r.writePlain("1. Run 'shiftify --cookies-file %s verify'\n", outputPath)
	r.writePlain("2. Run 'shiftify playlists' to list your library\n")
	return nil
}
