package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"tagforge-hq/tagforge/pkg/cli"
	"tagforge-hq/tagforge/pkg/sanitize"
	"tagforge-hq/tagforge/pkg/snippet"
)

var validateFlags struct {
	file   string
	output string
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a snippet file offline",
	Long: `Validate every snippet in a YAML file: record shape, field values, and
the authoring-time code checks the server applies on save.

Examples:
  # Validate a snippet file
  tagforge validate --file snippets/analytics.yaml

  # Machine-readable output
  tagforge validate --file snippets/analytics.yaml --output json`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&validateFlags.file, "file", "f", "", "snippet YAML file to validate (required)")
	validateCmd.Flags().StringVarP(&validateFlags.output, "output", "o", "text", "output format (text, json)")
	validateCmd.MarkFlagRequired("file")
}

type validationReport struct {
	File     string              `json:"file"`
	Checked  int                 `json:"checked"`
	Failed   int                 `json:"failed"`
	Problems map[string][]string `json:"problems,omitempty"`
}

func runValidate(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(validateFlags.file)
	if err != nil {
		return cli.NewCommandError("validate", err)
	}

	var file struct {
		Snippets []*snippet.Snippet `yaml:"snippets"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return cli.NewCommandError("validate", fmt.Errorf("parsing %s: %w", validateFlags.file, err))
	}

	validator := sanitize.NewValidator(sanitize.DefaultConfig())
	report := validationReport{
		File:     validateFlags.file,
		Problems: make(map[string][]string),
	}

	for i, sn := range file.Snippets {
		name := sn.Name
		if name == "" {
			name = fmt.Sprintf("snippet[%d]", i)
		}
		report.Checked++

		sn.ApplyDefaults()
		if err := sn.Validate(); err != nil {
			report.Problems[name] = append(report.Problems[name], err.Error())
		}
		if result := validator.Validate(sn.Code, sanitize.Kind(sn.CodeType)); !result.OK {
			report.Problems[name] = append(report.Problems[name], result.Errors...)
		}
		if len(report.Problems[name]) > 0 {
			report.Failed++
		}
	}

	if cli.OutputFormat(validateFlags.output) == cli.FormatJSON {
		if err := cli.NewFormatter(cli.FormatJSON).FormatTo(os.Stdout, report); err != nil {
			return cli.NewCommandError("validate", err)
		}
	} else {
		fmt.Printf("Checked %d snippets in %s\n", report.Checked, report.File)
		for name, problems := range report.Problems {
			fmt.Printf("✗ %s\n", name)
			for _, p := range problems {
				fmt.Printf("    %s\n", p)
			}
		}
		if report.Failed == 0 {
			fmt.Println("✓ All snippets valid")
		}
	}

	if report.Failed > 0 {
		return cli.NewCommandError("validate", fmt.Errorf("%d of %d snippets failed validation", report.Failed, report.Checked))
	}
	return nil
}
