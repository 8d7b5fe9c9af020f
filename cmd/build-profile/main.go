// Command build-profile builds a master profile from a medical record and
// an ingredient inventory on disk and prints the safe/blocked split.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"Health-Kitchen-Backend/domain"
	"Health-Kitchen-Backend/internal/utils"
	"Health-Kitchen-Backend/pkg/profile"
	"Health-Kitchen-Backend/pkg/safety"
)

type options struct {
	medicalPath     string
	ingredientsPath string
	outputPath      string
	rulesPath       string
}

func main() {
	var opts options
	flag.StringVar(&opts.medicalPath, "medical", "medical_report.json", "medical record document")
	flag.StringVar(&opts.ingredientsPath, "ingredients", "ingredients.json", "ingredient inventory document")
	flag.StringVar(&opts.outputPath, "out", "master_health_ingredients.json", "master profile output file")
	flag.StringVar(&opts.rulesPath, "rules", "", "optional YAML file with extra safety rules")
	flag.Parse()

	if err := run(opts, time.Now(), os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "build-profile:", err)
		os.Exit(1)
	}
}

func run(opts options, now time.Time, out io.Writer) error {
	medicalData, err := os.ReadFile(opts.medicalPath)
	if err != nil {
		return err
	}
	record, err := domain.DecodeMedicalRecord(medicalData)
	if err != nil {
		return fmt.Errorf("%s: %w", filepath.Base(opts.medicalPath), err)
	}

	ingredientsData, err := os.ReadFile(opts.ingredientsPath)
	if err != nil {
		return err
	}
	inventory, err := domain.DecodeIngredientInventory(ingredientsData)
	if err != nil {
		return fmt.Errorf("%s: %w", filepath.Base(opts.ingredientsPath), err)
	}

	rules := safety.DefaultRules()
	if opts.rulesPath != "" {
		extra, err := safety.LoadRules(opts.rulesPath)
		if err != nil {
			return err
		}
		rules = append(rules, extra...)
	}

	builder := profile.NewBuilder(safety.NewEngine(rules...), utils.NewValidator())
	master, err := builder.Build(record, inventory.Items, now)
	if err != nil {
		return err
	}

	document, err := json.MarshalIndent(master, "", "    ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(opts.outputPath, document, 0o644); err != nil {
		return err
	}

	fmt.Fprintf(out, "Master profile saved as %s\n", opts.outputPath)
	printSplit(out, profile.Split(master))
	return nil
}

func printSplit(out io.Writer, split domain.IngredientSplitResponse) {
	fmt.Fprintln(out, "\nSAFE INGREDIENTS:")
	for _, name := range split.Safe {
		fmt.Fprintf(out, "  + %s\n", name)
	}

	fmt.Fprintln(out, "\nBLOCKED INGREDIENTS:")
	for _, u := range split.Unsafe {
		fmt.Fprintf(out, "  - %s: %s\n", u.Name, u.Reason)
	}
}
