package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/user/fraudscope/pkg/config"
	"github.com/user/fraudscope/pkg/engine"
	"github.com/user/fraudscope/pkg/forensics"
	"github.com/user/fraudscope/pkg/statute"
)

var (
	statementsPath string
	provisionDir   string
)

// statementsFile is the YAML shape of an optional statement triple.
type statementsFile struct {
	Current    *forensics.FinancialStatement   `yaml:"current"`
	Previous   *forensics.FinancialStatement   `yaml:"previous"`
	Historical []*forensics.FinancialStatement `yaml:"historical"`
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <document.txt>",
	Short: "Analyze a document for fraud and violation indicators",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		if provisionDir != "" {
			cfg.ProvisionDir = provisionDir
		}

		var index *statute.Index
		if cfg.ProvisionDir != "" {
			index, err = statute.Load(cfg.ProvisionDir)
			if err != nil {
				return fmt.Errorf("loading provisions: %w", err)
			}
		}

		text, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		doc := engine.Document{ID: args[0], Text: string(text)}
		if statementsPath != "" {
			data, err := os.ReadFile(statementsPath)
			if err != nil {
				return err
			}
			var sf statementsFile
			if err := yaml.Unmarshal(data, &sf); err != nil {
				return fmt.Errorf("parsing statements: %w", err)
			}
			doc.Current = sf.Current
			doc.Previous = sf.Previous
			doc.Historical = sf.Historical
		}

		pipeline := engine.NewPipeline(cfg, index)
		report := pipeline.AnalyzeDocument(context.Background(), doc)

		out, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&statementsPath, "statements", "", "YAML file with current/previous/historical financial statements")
	analyzeCmd.Flags().StringVar(&provisionDir, "provisions", "", "Directory of statute provision YAML files")
	rootCmd.AddCommand(analyzeCmd)
}
