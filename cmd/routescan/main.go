package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/routescan/internal/config"
	"github.com/routescan/internal/db"
	"github.com/routescan/internal/debug"
	"github.com/routescan/internal/export"
	"github.com/routescan/internal/extract"
	"github.com/routescan/internal/history"
	"github.com/routescan/internal/lexicon"
	"github.com/routescan/internal/ocr"
	"github.com/routescan/internal/ocr/tesseract"
	"github.com/routescan/internal/report"
	"github.com/routescan/internal/source"
)

const version = "0.3.0"

var (
	// Resolved in PersistentPreRunE
	appConfig *config.App
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "routescan",
		Short:         "Delivery manifest address extraction",
		Long:          `Extracts "Street Number, City" addresses from photographed or exported delivery manifests`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			app, err := config.Load()
			if err != nil {
				return err
			}
			appConfig = app
			return nil
		},
	}

	// Add subcommands
	rootCmd.AddCommand(createExtractCmd())
	rootCmd.AddCommand(createOCRCmd())
	rootCmd.AddCommand(createLexiconCmd())
	rootCmd.AddCommand(createHistoryCmd())
	rootCmd.AddCommand(createDBCmd())

	return rootCmd
}

type extractFlags struct {
	format     string
	xlsx       string
	explain    bool
	components bool
	libpostal  bool
	save       bool
	debug      bool
}

func (f *extractFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.format, "format", "f", "text", "Output format: text, csv or json")
	cmd.Flags().StringVar(&f.xlsx, "xlsx", "", "Also write the addresses to this spreadsheet")
	cmd.Flags().BoolVar(&f.explain, "explain", false, "Report what happened to every line")
	cmd.Flags().BoolVar(&f.components, "components", false, "Include parsed address components (json output)")
	cmd.Flags().BoolVar(&f.libpostal, "libpostal", false, "Parse components with libpostal")
	cmd.Flags().BoolVar(&f.save, "save", false, "Save the run to history")
	cmd.Flags().BoolVar(&f.debug, "debug", false, "Trace each pipeline stage to stderr")
}

// createExtractCmd creates the extract subcommand
func createExtractCmd() *cobra.Command {
	var flags extractFlags

	cmd := &cobra.Command{
		Use:   "extract [file|-]",
		Short: "Extract addresses from a manifest file",
		Long: `Reads a manifest (text, csv, pdf, html, xlsx or an image) and prints the
addresses found in it. With no file or "-" the manifest is read from stdin.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := "-"
			if len(args) == 1 {
				name = args[0]
			}
			data, err := readInput(cmd.InOrStdin(), name)
			if err != nil {
				return err
			}

			loader := source.NewLoader(newEngine(appConfig.OCRLanguages), ocrOptions(appConfig, nil, 0)...)
			text, err := loader.Load(cmd.Context(), name, data)
			if err != nil {
				return fmt.Errorf("load %s: %w", name, err)
			}
			return runExtract(cmd, flags, sourceName(name), text)
		},
	}
	flags.register(cmd)
	return cmd
}

// createOCRCmd creates the ocr subcommand
func createOCRCmd() *cobra.Command {
	var (
		flags extractFlags
		langs []string
		dpi   int
		raw   bool
	)

	cmd := &cobra.Command{
		Use:   "ocr [image]",
		Short: "Recognize a manifest photo and extract its addresses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read image: %w", err)
			}

			if len(langs) == 0 {
				langs = appConfig.OCRLanguages
			}
			stopTimer := debug.Timing(flags.debug, "ocr")
			text, err := ocr.Transcribe(cmd.Context(), newEngine(langs), data, ocrOptions(appConfig, langs, dpi)...)
			stopTimer()
			if err != nil {
				return err
			}

			if raw {
				fmt.Fprintln(cmd.OutOrStdout(), text)
				return nil
			}
			return runExtract(cmd, flags, filepath.Base(args[0]), text)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringSliceVar(&langs, "lang", nil, "Tesseract languages (default from OCR_LANGUAGES)")
	cmd.Flags().IntVar(&dpi, "dpi", 0, "Image resolution hint (default from OCR_DPI)")
	cmd.Flags().BoolVar(&raw, "raw", false, "Print the recognized text instead of addresses")
	return cmd
}

func runExtract(cmd *cobra.Command, flags extractFlags, sourceLabel, text string) error {
	format, err := export.ParseFormat(flags.format)
	if err != nil {
		return err
	}

	ex := extract.New(extract.WithDebug(flags.debug || appConfig.Debug))
	parse := report.FromCandidate
	if flags.libpostal || appConfig.Libpostal {
		parse = report.Libpostal
	}
	rep := report.Build(ex, text, report.Options{
		Explain:    flags.explain,
		Components: flags.components,
		Parse:      parse,
	})

	if flags.save {
		store, closeStore, err := openStore(cmd.Context(), appConfig)
		if err != nil {
			return err
		}
		defer closeStore()

		run := &history.Run{Source: sourceLabel, LineCount: rep.LineCount, Addresses: rep.Addresses}
		if err := store.Save(cmd.Context(), run); err != nil {
			return err
		}
		rep.RunID = &run.ID
		fmt.Fprintf(cmd.ErrOrStderr(), "Saved run %s\n", run.ID)
	}

	if flags.xlsx != "" {
		if err := export.WriteXLSX(flags.xlsx, rep.Addresses); err != nil {
			return fmt.Errorf("write xlsx: %w", err)
		}
	}

	out := cmd.OutOrStdout()
	if format == export.FormatJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}

	if flags.explain {
		printExplain(cmd.ErrOrStderr(), rep.Lines)
	}
	return export.Write(out, format, rep.Addresses)
}

func printExplain(w io.Writer, lines []extract.LineResult) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "LINE\tREASON\tRAW\tADDRESS")
	for _, l := range lines {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", l.LineNo, l.Reason, l.Raw, l.Address)
	}
	tw.Flush()
}

// createLexiconCmd creates the lexicon subcommand
func createLexiconCmd() *cobra.Command {
	var dump string

	cmd := &cobra.Command{
		Use:   "lexicon",
		Short: "Show the compiled-in word lists",
		RunE: func(cmd *cobra.Command, args []string) error {
			sets := map[string]*lexicon.Set{
				"noise":    lexicon.Noise(),
				"suffixes": lexicon.StreetSuffixes(),
				"cities":   lexicon.Cities(),
			}
			out := cmd.OutOrStdout()

			if dump != "" {
				set, ok := sets[dump]
				if !ok {
					return fmt.Errorf("unknown lexicon %q (want noise, suffixes or cities)", dump)
				}
				for _, w := range set.Words() {
					fmt.Fprintln(out, w)
				}
				return nil
			}

			fmt.Fprintf(out, "Noise words:     %d\n", sets["noise"].Len())
			fmt.Fprintf(out, "Street suffixes: %d\n", sets["suffixes"].Len())
			fmt.Fprintf(out, "Cities:          %d\n", sets["cities"].Len())
			fmt.Fprintf(out, "Fallback city:   %s\n", lexicon.FallbackCity)
			return nil
		},
	}
	cmd.Flags().StringVar(&dump, "dump", "", "Print one list: noise, suffixes or cities")
	return cmd
}

// createHistoryCmd creates the history subcommand
func createHistoryCmd() *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Browse saved extraction runs",
	}

	var limit int
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List recent runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := openStore(cmd.Context(), appConfig)
			if err != nil {
				return err
			}
			defer closeStore()

			runs, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tCREATED\tSOURCE\tLINES\tADDRESSES")
			for _, r := range runs {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\n", r.ID, r.CreatedAt.Local().Format("2006-01-02 15:04"), r.Source, r.LineCount, r.AddressCount)
			}
			return tw.Flush()
		},
	}
	listCmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of runs to show")

	var format string
	showCmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Print the addresses of one run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid run ID %q: %w", args[0], err)
			}
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}

			store, closeStore, err := openStore(cmd.Context(), appConfig)
			if err != nil {
				return err
			}
			defer closeStore()

			run, err := store.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			return export.Write(cmd.OutOrStdout(), f, run.Addresses)
		},
	}
	showCmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, csv or json")

	historyCmd.AddCommand(listCmd, showCmd)
	return historyCmd
}

// createDBCmd creates the db subcommand
func createDBCmd() *cobra.Command {
	dbCmd := &cobra.Command{
		Use:   "db",
		Short: "History database maintenance",
	}
	dbCmd.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Create the history tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, closeStore, err := openStore(cmd.Context(), appConfig)
			if err != nil {
				return err
			}
			defer closeStore()
			fmt.Fprintf(cmd.OutOrStdout(), "History schema ready (%s)\n", appConfig.HistoryDriver)
			return nil
		},
	})
	return dbCmd
}

// openStore connects to the configured history database and migrates it.
func openStore(ctx context.Context, app *config.App) (*history.Store, func(), error) {
	if !app.HistoryEnabled() {
		return nil, nil, fmt.Errorf("run history is disabled; set HISTORY_DRIVER to postgres or sqlite")
	}
	conn, err := db.Open(app.HistoryDriver, app.HistoryDSN)
	if err != nil {
		return nil, nil, err
	}
	store := history.NewStore(conn)
	if err := store.Migrate(ctx); err != nil {
		conn.Close()
		return nil, nil, err
	}
	return store, func() { conn.Close() }, nil
}

func newEngine(langs []string) ocr.Engine {
	return tesseract.New(langs...)
}

func ocrOptions(app *config.App, langs []string, dpi int) []ocr.InputOption {
	if len(langs) == 0 {
		langs = app.OCRLanguages
	}
	if dpi <= 0 {
		dpi = app.OCRDPI
	}
	return []ocr.InputOption{
		ocr.WithLanguages(langs...),
		ocr.WithDPI(dpi),
		ocr.WithMaxDimension(app.OCRMaxDimension),
	}
}

func readInput(stdin io.Reader, name string) ([]byte, error) {
	if name == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}

func sourceName(name string) string {
	if name == "-" {
		return "stdin"
	}
	return filepath.Base(name)
}
