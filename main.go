package main

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v2"

	"eagle/internal/app"
	"eagle/internal/client"
	"eagle/internal/config"
	"eagle/internal/mock"
)

func main() {
	cliApp := &cli.App{
		Name:  "eagle",
		Usage: "terminal client for the EAGLE multi-agent acquisition assistant",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "path to YAML config file",
				Value: defaultConfigPath(),
			},
			&cli.StringFlag{
				Name:  "server",
				Usage: "backend base URL",
			},
			&cli.StringFlag{
				Name:  "tenant",
				Usage: "tenant ID",
			},
			&cli.StringFlag{
				Name:  "user",
				Usage: "user ID",
			},
			&cli.StringFlag{
				Name:  "token",
				Usage: "bearer token",
			},
			&cli.StringFlag{
				Name:  "tier",
				Usage: "subscription tier (basic, advanced, premium)",
			},
		},
		Action: runChat,
		Commands: []*cli.Command{
			{
				Name:  "mock",
				Usage: "run the scripted mock backend",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "port",
						Usage: "listen port",
						Value: 8000,
					},
				},
				Action: func(c *cli.Context) error {
					return mock.NewServer(c.Int("port")).Start()
				},
			},
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runChat(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	if v := c.String("server"); v != "" {
		cfg.ServerURL = v
	}
	if v := c.String("tenant"); v != "" {
		cfg.TenantID = v
	}
	if v := c.String("user"); v != "" {
		cfg.UserID = v
	}
	if v := c.String("token"); v != "" {
		cfg.Token = v
	}
	if v := c.String("tier"); v != "" {
		cfg.Tier = v
	}

	// The TUI owns stdout; keep logs in a file.
	logFile, err := os.OpenFile(os.TempDir()+"/eagle-tui.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err == nil {
		defer logFile.Close()
		slog.SetDefault(slog.New(slog.NewJSONHandler(logFile, nil)))
	}

	apiClient := client.NewClient(cfg.ServerURL,
		client.WithCredentials(client.StaticToken(cfg.Token)),
	)

	model := app.New(cfg, apiClient)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	model.SetProgram(p)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run TUI: %w", err)
	}
	return nil
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home + "/.config/eagle/config.yaml"
}
