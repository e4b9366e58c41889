package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"linguistica/internal/config"
	"linguistica/internal/logging"
	"linguistica/internal/textutil"
)

// maxLineBytes bounds a single corpus line.
const maxLineBytes = 16 << 20

func newNormalizeCommand(ctx *commandContext) *cobra.Command {
	var outputFlag string
	var nfcFlag bool

	cmd := &cobra.Command{
		Use:   "normalize [file]",
		Short: "Pad punctuation in corpus text so every mark becomes its own token",
		Long: "Reads corpus text from a file (or stdin when omitted or \"-\") and writes each line\n" +
			"with the marks . , ; ! ? : ) ( surrounded by spaces.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			logger = logging.NewComponentLogger(logger, "normalize")

			opts := textutil.NormalizeOptions{NFC: cfg.Corpus.NFC}
			if cmd.Flags().Changed("nfc") {
				opts.NFC = nfcFlag
			}

			input := cmd.InOrStdin()
			source := "stdin"
			if len(args) == 1 && args[0] != "-" {
				path, err := config.ExpandPath(args[0])
				if err != nil {
					return fmt.Errorf("resolve input path: %w", err)
				}
				file, err := os.Open(path)
				if err != nil {
					return fmt.Errorf("open corpus: %w", err)
				}
				defer file.Close()
				input = file
				source = path
			}

			var lines int
			err = writeOutput(cmd.Context(), cmd, outputFlag, func(w io.Writer) error {
				n, err := normalizeStream(input, w, opts)
				lines = n
				return err
			})
			if err != nil {
				return err
			}
			logger.Info("corpus normalized",
				logging.String("source", source),
				logging.Int("lines", lines),
				logging.Bool("nfc", opts.NFC),
			)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Write to this file instead of stdout")
	cmd.Flags().BoolVar(&nfcFlag, "nfc", false, "Compose text to Unicode NFC before padding (defaults to corpus.nfc)")
	return cmd
}

// normalizeStream copies r to w one line at a time, padding punctuation. Line
// endings are normalized to \n.
func normalizeStream(r io.Reader, w io.Writer, opts textutil.NormalizeOptions) (int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	bw := bufio.NewWriter(w)

	lines := 0
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if _, err := bw.WriteString(textutil.NormalizeLine(line, opts)); err != nil {
			return lines, err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return lines, err
		}
		lines++
	}
	if err := scanner.Err(); err != nil {
		return lines, fmt.Errorf("read corpus: %w", err)
	}
	return lines, bw.Flush()
}
