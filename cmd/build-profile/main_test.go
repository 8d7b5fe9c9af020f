package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"Health-Kitchen-Backend/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	opts := options{
		medicalPath:     writeFile(t, dir, "medical_report.json", `{"conditions":["Anxiety"],"allergies":["peanut"],"medications":["Lorazepam"]}`),
		ingredientsPath: writeFile(t, dir, "ingredients.json", `{"items":[{"name":"Oats","expiry_date":"2024-01-11"},{"name":"Peanut Butter"},{"name":"Caffeine Gum"}]}`),
		outputPath:      filepath.Join(dir, "master_health_ingredients.json"),
	}

	var out bytes.Buffer
	require.NoError(t, run(opts, time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC), &out))

	document, err := os.ReadFile(opts.outputPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(document), "{\n    \"patient_profile\""))

	var master domain.MasterProfile
	require.NoError(t, json.Unmarshal(document, &master))
	assert.Equal(t, []string{"Oats"}, master.CompatibilitySummary.SafeItems)
	assert.Equal(t, []string{"Oats"}, master.CompatibilitySummary.ExpiryAlerts)
	assert.Equal(t, "2024-01-10", master.IngredientsProfile.LastUpdated)

	printed := out.String()
	assert.Contains(t, printed, "  + Oats\n")
	assert.Contains(t, printed, "  - Peanut Butter: Allergy match: peanut\n")
	assert.Contains(t, printed, "  - Caffeine Gum: Caffeine may trigger anxiety/palpitations; ⚠ Avoid caffeine while on benzodiazepines\n")
}

func TestRun_ExtractionErrorDocument(t *testing.T) {
	dir := t.TempDir()
	opts := options{
		medicalPath:     writeFile(t, dir, "medical_report.json", `{"error":"Model returned invalid JSON","raw_output":"oops"}`),
		ingredientsPath: writeFile(t, dir, "ingredients.json", `{"items":[]}`),
		outputPath:      filepath.Join(dir, "out.json"),
	}

	err := run(opts, time.Now(), &bytes.Buffer{})

	var extErr *domain.ExtractionError
	require.True(t, errors.As(err, &extErr))
	assert.Equal(t, "oops", extErr.RawOutput)
	assert.NoFileExists(t, opts.outputPath)
}
