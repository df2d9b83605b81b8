package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	ipynbd "github.com/wtheisen/jupyter-annotation-tool-ipynbd"
	"github.com/wtheisen/jupyter-annotation-tool-ipynbd/pdf"
)

// Build information (set by goreleaser)
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	ctx, cancel := signalContext()
	defer cancel()

	rootCmd := newRootCommand()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// signalContext returns a context cancelled on the first interrupt, so an
// in-flight render aborts and deferred cleanup (browser teardown, cache
// close) still runs. A second interrupt exits immediately.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		fmt.Fprintf(os.Stderr, "\nreceived %s, cancelling (press Ctrl+C again to force exit)\n", sig)
		cancel()

		<-sigChan
		os.Exit(1)
	}()

	return ctx, cancel
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ipynbd <notebook.ipynb>",
		Short: "Export annotated Jupyter notebooks to static HTML and PDF",
		Long: `ipynbd renders a .ipynb file to a standalone HTML page, redrawing the
freehand ink annotations recorded by the companion JupyterLab extension as
vector overlays on top of each cell. The page can optionally be rendered on
to PDF through playwright, a system chromium, or weasyprint.`,
		Example: `  ipynbd lecture.ipynb
  ipynbd lecture.ipynb --html out/lecture.html --pdf out/lecture.pdf --verify
  ipynbd report lecture.ipynb --output lecture_report.pdf`,
		Args: cobra.ExactArgs(1),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			ipynbd.Flags.UseFlags()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := ipynbd.Export(cmd.Context(), args[0], ipynbd.Flags.ExportOptions, ipynbd.Flags.PDFOptions)
			if err != nil {
				return err
			}
			ipynbd.PrintSummary(result)
			return nil
		},
	}

	ipynbd.BindAllFlags(rootCmd.Flags())

	rootCmd.AddCommand(newReportCommand())
	rootCmd.AddCommand(newConvertersCommand())
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

func newReportCommand() *cobra.Command {
	var outputPath string
	var debug bool

	cmd := &cobra.Command{
		Use:   "report <notebook.ipynb>",
		Short: "Write an annotation summary PDF",
		Long: `Build a standalone PDF report of the notebook's ink annotations: per-tool
stroke counts and a thumbnail of each annotated cell's overlay.`,
		Example: `  ipynbd report lecture.ipynb
  ipynbd report lecture.ipynb --output grading/lecture_report.pdf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if outputPath == "" {
				stem := strings.TrimSuffix(args[0], filepath.Ext(args[0]))
				outputPath = stem + "_report.pdf"
			}
			result, err := ipynbd.ExportReport(args[0], outputPath, debug)
			if err != nil {
				return err
			}
			ipynbd.PrintSummary(result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output PDF path (default: <name>_report.pdf)")
	cmd.Flags().BoolVar(&debug, "debug", false, "Show layout grid lines in the report")

	return cmd
}

func newConvertersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "converters",
		Short: "List available PDF backends in chain order",
		Run: func(cmd *cobra.Command, args []string) {
			manager := pdf.NewManager()
			defer manager.Close()

			names := manager.AvailableConverters()
			if len(names) == 0 {
				fmt.Println("no PDF backends available")
				return
			}
			for i, name := range names {
				if i == 0 {
					fmt.Printf("%s (default)\n", name)
				} else {
					fmt.Println(name)
				}
			}
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(getVersionInfo())
		},
	}
}

func getVersionInfo() string {
	return fmt.Sprintf("ipynbd %s (commit: %s, built: %s, go: %s)",
		version, commit, date, runtime.Version())
}
