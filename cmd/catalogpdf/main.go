package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/flanksource/catalogpdf"
	"github.com/flanksource/catalogpdf/layout"
	"github.com/flanksource/catalogpdf/preview"
	"github.com/flanksource/catalogpdf/render"
	"github.com/flanksource/catalogpdf/shutdown"
	"github.com/spf13/cobra"
)

// Build information (set by goreleaser)
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	rootCmd := newRootCommand()
	if err := rootCmd.Execute(); err != nil {
		catalogpdf.NewPrinter(os.Stderr, catalogpdf.Flags.NoColor).Failure(err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "catalogpdf",
		Short: "Turn a CSV product list into a print-ready PDF catalog",
		Long: `catalogpdf lays products out six to a page on US Letter, each with its
image, name and description, and adds a bleed guide, page numbers and
alternating side labels for print.

The CSV needs a header line with the columns "Product Name", "Description"
and "Image Path". Relative image paths are resolved against the CSV's
directory; products whose image is missing or unreadable get a placeholder.`,
		Example: `  catalogpdf generate products.csv -o catalog.pdf
  catalogpdf generate products.csv --bleed-mode guide --no-guides
  catalogpdf preview --count 4 -o layout.svg
  catalogpdf inspect catalog.pdf`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			catalogpdf.Flags.UseFlags()
			go shutdown.WaitForSignal()
		},
	}
	catalogpdf.BindAllFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(newGenerateCommand())
	rootCmd.AddCommand(newPreviewCommand())
	rootCmd.AddCommand(newInspectCommand())
	rootCmd.AddCommand(newExampleCommand())
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

func newGenerateCommand() *cobra.Command {
	var flags catalogpdf.GenerateFlags

	cmd := &cobra.Command{
		Use:   "generate [flags] <products.csv>",
		Short: "Generate the PDF catalog",
		Long: `Read the products of a CSV file and write the catalog PDF.

The output is only replaced once the whole document has been generated: a
failed run leaves any previous catalog untouched.

In the default expand bleed mode every page grows by the bleed margin on each
side (629x809pt for Letter) and carries a trim box. In guide mode pages keep
their size and the guide is drawn inside them.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := flags.RunConfig(cmd.Flags())
			if err != nil {
				return err
			}
			result, err := catalogpdf.Generate(args[0], config.OutputPath(), catalogpdf.WithRunConfig(config))
			if err != nil {
				return err
			}
			catalogpdf.NewPrinter(os.Stdout, catalogpdf.Flags.NoColor).Success(result)
			return nil
		},
	}
	catalogpdf.BindGenerateFlags(cmd.Flags(), &flags)
	return cmd
}

func newPreviewCommand() *cobra.Command {
	var (
		output    string
		count     int
		bleedMode string
	)

	cmd := &cobra.Command{
		Use:   "preview [flags] [products.csv]",
		Short: "Draw the layout of the first page as SVG",
		Long: `Draw the page geometry - cells, image slots, text baselines, page number and
label - as an SVG wireframe. Images are not loaded. The number of cells comes
from the CSV, or from --count when no CSV is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := layout.DefaultGridConfig()
			mode, err := layout.ParseBleedMode(bleedMode)
			if err != nil {
				return err
			}
			cfg.BleedMode = mode

			switch {
			case len(args) == 1:
				records, err := catalogpdf.LoadCatalog(args[0])
				if err != nil {
					return err
				}
				count = len(records)
			case !cmd.Flags().Changed("count"):
				return errors.New("requires a CSV file or --count")
			}

			if output == "" || output == "-" {
				return preview.Write(os.Stdout, cfg, count)
			}
			f, err := os.Create(output)
			if err != nil {
				return err
			}
			if err := preview.Write(f, cfg, count); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "Layout written to %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output SVG file (default stdout)")
	cmd.Flags().IntVar(&count, "count", 6, "Number of products to lay out")
	cmd.Flags().StringVar(&bleedMode, "bleed-mode", "", "Bleed handling: expand or guide")
	return cmd
}

func newInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <catalog.pdf>",
		Short: "Show the page count and page sizes of a PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := render.Inspect(args[0])
			if err != nil {
				return err
			}
			catalogpdf.NewPrinter(os.Stdout, catalogpdf.Flags.NoColor).Inspected(info)
			return nil
		},
	}
}

func newExampleCommand() *cobra.Command {
	var outputFile string

	cmd := &cobra.Command{
		Use:   "example",
		Short: "Write an example products CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			if outputFile == "" {
				fmt.Print(exampleCSV)
				return nil
			}
			if err := os.WriteFile(outputFile, []byte(exampleCSV), 0o644); err != nil {
				return fmt.Errorf("failed to write example CSV: %w", err)
			}
			fmt.Printf("Example CSV written to %s\n", outputFile)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file for the example CSV")
	return cmd
}

const exampleCSV = `Product Name,Description,Image Path
Desk Lamp,"Adjustable arm, warm LED",images/lamp.png
Notebook,A5 dotted 120 pages,images/notebook.jpg
Fountain Pen,"Steel nib, medium",/usr/share/catalog/pen.svg
Gift Card,Any amount,
`

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
	return fmt.Sprintf("catalogpdf %s (commit: %s, built: %s, go: %s)",
		version, commit, date, runtime.Version())
}
