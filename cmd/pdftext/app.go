package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/Shimizu-Technology/pdf-text-service/internal/middleware"
	"github.com/Shimizu-Technology/pdf-text-service/internal/models"
	pdfservice "github.com/Shimizu-Technology/pdf-text-service/internal/services/pdf"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
	formatText = "text"
)

func newApp() *cli.App {
	return &cli.App{
		Name:    "pdftext",
		Usage:   "extract and clean text from PDF files",
		Version: Version,
		Before: func(c *cli.Context) error {
			// Same .env the server reads, for JWT_SECRET
			_ = godotenv.Load()
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "extract",
				Usage:     "extract text and stats from PDF files",
				ArgsUsage: "FILE...",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Value:   formatJSON,
						Usage:   "output format: json, yaml or text",
					},
					&cli.BoolFlag{
						Name:  "raw",
						Usage: "with --format text, print the page-marked raw text",
					},
				},
				Action: extractAction,
			},
			{
				Name:      "clean",
				Usage:     "clean plain text from FILE or stdin",
				ArgsUsage: "[FILE]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "stats",
						Usage: "print word, char and token counts after the text",
					},
				},
				Action: cleanAction,
			},
			{
				Name:  "token",
				Usage: "mint a bearer token for the /api/v1/pdf routes",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "subject",
						Aliases:  []string{"s"},
						Required: true,
						Usage:    "token subject, used as the rate limit key",
					},
					&cli.DurationFlag{
						Name:  "ttl",
						Value: 24 * time.Hour,
						Usage: "token lifetime",
					},
					&cli.StringFlag{
						Name:    "secret",
						EnvVars: []string{"JWT_SECRET"},
						Usage:   "HS256 signing secret",
					},
				},
				Action: tokenAction,
			},
		},
	}
}

func extractAction(c *cli.Context) error {
	format := strings.ToLower(c.String("format"))
	switch format {
	case formatJSON, formatYAML, formatText:
	default:
		return cli.Exit(fmt.Sprintf("unknown format %q (want json, yaml or text)", format), 2)
	}
	if c.NArg() == 0 {
		return cli.Exit("no input files", 2)
	}

	// Page warnings go to stderr so stdout stays machine-readable.
	extractor := pdfservice.NewExtractor().WithLogger(log.New(c.App.ErrWriter, "", 0))

	failed := 0
	for i, path := range c.Args().Slice() {
		resp, err := extractFile(extractor, path)
		if err != nil {
			fmt.Fprintf(c.App.ErrWriter, "❌ %s: %v\n", path, err)
			failed++
			continue
		}
		if !resp.Success {
			fmt.Fprintf(c.App.ErrWriter, "⚠️  %s: %s\n", path, resp.Error)
		}
		if err := writeResponse(c.App.Writer, format, c.Bool("raw"), resp, i, c.NArg()); err != nil {
			return err
		}
	}

	if failed > 0 {
		return cli.Exit(fmt.Sprintf("%d of %d files failed", failed, c.NArg()), 1)
	}
	return nil
}

func extractFile(extractor *pdfservice.Extractor, path string) (models.ExtractionResponse, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.ExtractionResponse{}, err
	}
	result, err := extractor.Process(data)
	if err != nil {
		return models.ExtractionResponse{}, err
	}
	return pdfservice.BuildResponse(filepath.Base(path), result, time.Now()), nil
}

// writeResponse prints one file's result. YAML documents are separated
// with "---" and text output gets a header line when there are several files.
func writeResponse(w io.Writer, format string, raw bool, resp models.ExtractionResponse, index, total int) error {
	switch format {
	case formatYAML:
		out, err := yaml.Marshal(resp)
		if err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		if index > 0 {
			fmt.Fprintln(w, "---")
		}
		_, err = w.Write(out)
		return err

	case formatText:
		if total > 1 {
			fmt.Fprintf(w, "==> %s <==\n", resp.Filename)
		}
		text := resp.Text
		if raw {
			text = resp.RawText
		}
		_, err := fmt.Fprintln(w, text)
		return err

	default:
		out, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(out))
		return err
	}
}

func cleanAction(c *cli.Context) error {
	var (
		data []byte
		err  error
	)
	switch c.NArg() {
	case 0:
		data, err = io.ReadAll(c.App.Reader)
	case 1:
		data, err = os.ReadFile(c.Args().First())
	default:
		return cli.Exit("clean takes at most one FILE", 2)
	}
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	cleaned := pdfservice.Clean(string(data))
	fmt.Fprintln(c.App.Writer, cleaned)

	if c.Bool("stats") {
		out, err := yaml.Marshal(pdfservice.ComputeStats(cleaned))
		if err != nil {
			return fmt.Errorf("encoding stats: %w", err)
		}
		fmt.Fprint(c.App.Writer, string(out))
	}
	return nil
}

func tokenAction(c *cli.Context) error {
	secret := c.String("secret")
	if secret == "" {
		return cli.Exit("no signing secret: set JWT_SECRET or pass --secret", 2)
	}

	token, err := middleware.GenerateJWT(c.String("subject"), secret, c.Duration("ttl"))
	if err != nil {
		return fmt.Errorf("signing token: %w", err)
	}
	fmt.Fprintln(c.App.Writer, token)
	return nil
}
