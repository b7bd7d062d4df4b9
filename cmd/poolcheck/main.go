package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/ArowuTest/quizseason-admin/internal/utils"
	"github.com/urfave/cli/v2"
)

func main() {
	app := newApp(os.Stdout)
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp(out io.Writer) *cli.App {
	flags := []cli.Flag{
		&cli.BoolFlag{Name: "json", Usage: "print the import result as JSON"},
		&cli.BoolFlag{Name: "strict", Usage: "fail when any row is skipped"},
	}

	return &cli.App{
		Name:   "poolcheck",
		Usage:  "validate shared question pool files (CSV or XLSX)",
		Writer: out,
		Commands: []*cli.Command{
			{
				Name:      "admin",
				Usage:     "check an admin objective pool file",
				ArgsUsage: "<file>",
				Flags:     flags,
				Action: func(c *cli.Context) error {
					path, err := fileArg(c)
					if err != nil {
						return err
					}
					questions, result, err := utils.NewQuestionPoolImporter().ImportAdminFile(path)
					if err != nil {
						return err
					}
					return report(c, path, len(questions), result)
				},
			},
			{
				Name:      "merchant",
				Usage:     "check a merchant pool file",
				ArgsUsage: "<file>",
				Flags:     flags,
				Action: func(c *cli.Context) error {
					path, err := fileArg(c)
					if err != nil {
						return err
					}
					questions, result, err := utils.NewQuestionPoolImporter().ImportMerchantFile(path)
					if err != nil {
						return err
					}
					return report(c, path, len(questions), result)
				},
			},
		},
	}
}

func fileArg(c *cli.Context) (string, error) {
	if c.NArg() != 1 {
		return "", cli.Exit("exactly one pool file is required", 2)
	}
	return c.Args().First(), nil
}

func report(c *cli.Context, path string, loaded int, result *utils.PoolImportResult) error {
	out := c.App.Writer
	if c.Bool("json") {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(result); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(out, "%s: %d rows, %d imported, %d skipped\n", path, result.TotalRows, loaded, len(result.Errors))
		for _, rowErr := range result.Errors {
			fmt.Fprintf(out, "  %s\n", rowErr)
		}
	}

	if c.Bool("strict") && len(result.Errors) > 0 {
		return cli.Exit(fmt.Sprintf("%d rows skipped", len(result.Errors)), 1)
	}
	return nil
}
