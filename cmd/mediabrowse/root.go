package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"mediabrowse/internal/config"
	"mediabrowse/internal/infra/logx"
	"mediabrowse/internal/strapi"
	"mediabrowse/internal/ui"
)

var (
	flagConfig   string
	flagBaseURL  string
	flagToken    string
	flagFolder   int
	flagMultiple bool
	flagTypes    []string
	flagPageSize int
	flagSort     string
)

var rootCmd = &cobra.Command{
	Use:   "mediabrowse",
	Short: "Browse and pick assets from a Strapi media library",
	Long: "mediabrowse opens a terminal dialog against a Strapi-compatible upload API.\n" +
		"Browse folders, search, upload and edit assets, then confirm a selection.\n" +
		"The confirmed selection is printed to stdout as JSON.",
	SilenceUsage: true,
	RunE:         runPick,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Save connection settings to the config file",
	RunE:  runConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default ~/.mediarc.yml)")
	rootCmd.PersistentFlags().StringVar(&flagBaseURL, "base-url", "", "Strapi base URL")
	rootCmd.PersistentFlags().StringVar(&flagToken, "token", "", "API token")

	rootCmd.Flags().IntVar(&flagFolder, "folder", 0, "start in this folder id")
	rootCmd.Flags().BoolVar(&flagMultiple, "multiple", false, "allow selecting more than one asset")
	rootCmd.Flags().StringSliceVar(&flagTypes, "types", nil, "restrict selectable kinds (images,videos,audios,files)")
	rootCmd.Flags().IntVar(&flagPageSize, "page-size", 0, "assets per page")
	rootCmd.Flags().StringVar(&flagSort, "sort", "", "sort order, e.g. name:asc")

	rootCmd.AddCommand(configCmd)
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path := flagConfig
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	if flagBaseURL != "" {
		cfg.BaseURL = flagBaseURL
	}
	if flagToken != "" {
		cfg.Token = flagToken
	}
	if cmd.Flags().Changed("page-size") {
		cfg.PageSize = flagPageSize
	}
	if flagSort != "" {
		cfg.Sort = flagSort
	}
	return cfg, nil
}

func runPick(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Token == "" {
		return errors.New("no API token; pass --token or run 'mediabrowse config'")
	}

	// Debug logging when DEBUG is set; logs go to a file so they do not
	// tear the TUI.
	if len(os.Getenv("DEBUG")) > 0 {
		f, err := os.OpenFile("mediabrowse.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return fmt.Errorf("open debug log: %w", err)
		}
		defer f.Close()
		logx.SetOutput(f)
		logx.SetMinLevel(logx.LevelDebug)
	}
	logx.RegisterSecret(cfg.Token)

	client := strapi.New(cfg.BaseURL, cfg.Token)

	opts := ui.Options{
		Multiple:     flagMultiple,
		AllowedTypes: flagTypes,
		PageSize:     cfg.PageSize,
		Sort:         cfg.Sort,
	}
	if cmd.Flags().Changed("folder") {
		id := flagFolder
		opts.Folder = &id
	}

	// The TUI renders on stderr so stdout stays clean for the result.
	final, err := tea.NewProgram(
		ui.New(client, opts),
		tea.WithAltScreen(),
		tea.WithOutput(os.Stderr),
	).Run()
	if err != nil {
		return err
	}

	m, ok := final.(ui.Model)
	if !ok || !m.Validated() {
		return nil
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(m.Value())
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	path := flagConfig
	if path == "" {
		path = config.DefaultPath()
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", path)
	return nil
}
