package main

import (
	"fmt"
	"io"
	"os"

	codec "github.com/oy3o/declcodec"
	"github.com/oy3o/declcodec/sfnt"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Flags holds the command line flags.
type Flags struct {
	Tag     string // print only this table
	Verbose bool   // debug logging
}

var flags Flags

var rootCmd = &cobra.Command{
	Use:   "sfntdump <font-file>",
	Short: "Print the table directory of a TrueType or OpenType font",
	Long: `sfntdump reads a font file into memory and decodes its offset table
without copying: table records are decoded lazily straight out of the file
buffer.`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger(flags.Verbose)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		defer func() { _ = logger.Sync() }()

		return run(cmd.OutOrStdout(), logger, args[0], flags)
	},
}

func init() {
	rootCmd.Flags().StringVarP(&flags.Tag, "tag", "t", "", "print only the table with this tag")
	rootCmd.Flags().BoolVarP(&flags.Verbose, "verbose", "v", false, "verbose logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}

func run(w io.Writer, logger *zap.Logger, path string, f Flags) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}
	logger.Debug("font loaded", zap.String("path", path), zap.Int("bytes", len(data)))

	table, err := codec.Decode[sfnt.OffsetTable](codec.NewCursor(data))
	if err != nil {
		return fmt.Errorf("decode offset table: %w", err)
	}
	logger.Debug("offset table decoded",
		zap.Stringer("version", table.Version),
		zap.Uint16("tables", table.NumTables))

	if f.Tag != "" {
		return printTable(w, &table, sfnt.MakeTag(f.Tag))
	}

	fmt.Fprintf(w, "Font type: %s\n", table.Version)
	fmt.Fprintf(w, "Tables: %d (search range %d, entry selector %d, range shift %d)\n",
		table.NumTables, table.SearchRange, table.EntrySelector, table.RangeShift)

	rows := pterm.TableData{{"Tag", "Checksum", "Offset", "Length"}}
	for rec, err := range table.Tables.All() {
		if err != nil {
			return fmt.Errorf("decode table record %d: %w", len(rows)-1, err)
		}
		rows = append(rows, recordRow(rec))
	}
	out, err := pterm.DefaultTable.WithHasHeader().WithData(rows).Srender()
	if err != nil {
		return err
	}
	fmt.Fprintln(w, out)

	head, ok, err := table.Head()
	switch {
	case err != nil:
		logger.Warn("head table unreadable", zap.Error(err))
	case ok:
		fmt.Fprintf(w, "Units per em: %d\n", head.Payload.UnitsPerEm)
		fmt.Fprintf(w, "Font revision: %.3f\n", head.Payload.FontRevision.Float64())
	}
	return nil
}

func printTable(w io.Writer, table *sfnt.OffsetTable, tag sfnt.Tag) error {
	rec, ok, err := table.Lookup(tag)
	if err != nil {
		return fmt.Errorf("lookup %s: %w", tag, err)
	}
	if !ok {
		return fmt.Errorf("no %q table", tag.String())
	}
	data, err := table.TableData(rec)
	if err != nil {
		return fmt.Errorf("table %s: %w", tag, err)
	}

	row := recordRow(rec)
	fmt.Fprintf(w, "Tag: %s, check sum: %s, offset: %s, length: %s, available: %d\n",
		row[0], row[1], row[2], row[3], len(data))
	return nil
}

func recordRow(rec sfnt.TableRecord) []string {
	return []string{
		rec.Tag.String(),
		fmt.Sprintf("0x%08x", rec.Checksum),
		fmt.Sprintf("0x%08x", uint32(rec.Offset)),
		fmt.Sprintf("%d", rec.Length),
	}
}
