package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/ahinestrog/bookcatalog/api/catalog"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type app struct {
	cfg    *Config
	client *catalog.Client
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var (
		flagConfig  string
		flagNoColor bool
	)

	root := &cobra.Command{
		Use:   "bookctl",
		Short: "Manage the bookstore catalog",
		Long: `bookctl lists, inspects and edits the books served by the catalog service.

Settings are read from ~/.config/bookctl/config.yml (api_url, timeout) and
can be overridden with BOOKCTL_API_URL, BOOKCTL_TIMEOUT or --api-url.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/bookctl/config.yml)")
	root.PersistentFlags().String("api-url", "", "Catalog service base URL")
	root.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if flagNoColor {
			color.NoColor = true
		}
		v := viper.New()
		if err := v.BindPFlag("api_url", cmd.Root().PersistentFlags().Lookup("api-url")); err != nil {
			return err
		}
		cfg, err := loadConfig(v, flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		a.cfg = cfg
		a.client = catalog.NewClient(cfg.APIURL, cfg.Timeout)
		return nil
	}

	root.AddCommand(
		newListCmd(a),
		newGetCmd(a),
		newAddCmd(a),
		newUpdateCmd(a),
		newDeleteCmd(a),
		newImportCmd(a),
	)
	return root
}

// ok prints a green success line.
func ok(w io.Writer, format string, a ...any) {
	fmt.Fprintln(w, color.GreenString("✓"), fmt.Sprintf(format, a...))
}

// warn prints a yellow warning line.
func warn(w io.Writer, format string, a ...any) {
	fmt.Fprintln(w, color.YellowString("!"), fmt.Sprintf(format, a...))
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid book id %q", s)
	}
	return id, nil
}
