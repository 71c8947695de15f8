package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var initFlags struct {
	force bool
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate sample config and S3 read policy",
	Long:  `Creates a sample .floodspectre.yaml config file and an IAM policy granting read access to an S3-hosted dataset.`,
	RunE:  runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initFlags.force, "force", false, "Overwrite existing files")
}

func runInit(cmd *cobra.Command, _ []string) error {
	out := io.Writer(os.Stdout)
	if cmd != nil {
		out = cmd.OutOrStdout()
	}
	return writeInitFiles(out, initFlags.force)
}

func writeInitFiles(w io.Writer, force bool) error {
	configPath := ".floodspectre.yaml"
	policyPath := "floodspectre-policy.json"

	var created []string
	for _, f := range []struct{ path, content string }{
		{configPath, sampleConfig},
		{policyPath, sampleIAMPolicy},
	} {
		wrote, err := writeIfNotExists(w, f.path, f.content, force)
		if err != nil {
			return err
		}
		if wrote {
			created = append(created, f.path)
		}
	}

	if len(created) > 0 {
		fmt.Fprintf(w, "Created %s\n", strings.Join(created, " and "))
		fmt.Fprintln(w, "\nNext steps:")
		fmt.Fprintln(w, "  1. Edit .floodspectre.yaml to point input at your dataset")
		fmt.Fprintln(w, "  2. For s3:// input: apply floodspectre-policy.json to your IAM role/user")
		fmt.Fprintln(w, "  3. Run: floodspectre analyze")
	}
	return nil
}

// writeIfNotExists reports whether path was written.
func writeIfNotExists(w io.Writer, path, content string, force bool) (bool, error) {
	if !force {
		if _, err := os.Stat(path); err == nil {
			fmt.Fprintf(w, "Skipping %s (already exists, use --force to overwrite)\n", path)
			return false, nil
		}
	}

	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return false, fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return false, err
	}
	return true, nil
}

const sampleConfig = `# floodspectre configuration
# Every key can also be set as FLOODSPECTRE_<KEY> in the environment or .env.

# Dataset: local CSV/XLSX path or s3://bucket/key
input: dpwh_flood_control_projects.csv

# Directory for exported reports
output_dir: .

# Inclusive funding-year window
year_from: 2021
year_to: 2023

# Contractors need at least this many projects to be ranked
min_contractor_projects: 5

# Size of the contractor ranking
top_contractors: 15

# Projects delayed more than this many days count as highly delayed
high_delay_days: 30

# Delay horizon of the reliability index (days)
reliability_delay_days: 90

# Reliability index below which a contractor is flagged High Risk
high_risk_threshold: 50

# Last funding year that gets a year-over-year change
yoy_max_year: 2021

# Extra artifacts
xlsx: false
chart: false

# Prometheus textfile output
# metrics_file: /var/lib/node_exporter/floodspectre.prom

# AWS profile and region for s3:// input
# profile: default
# region: ap-southeast-1

# Run timeout
timeout: 5m
`

const sampleIAMPolicy = `{
  "Version": "2012-10-17",
  "Statement": [
    {
      "Sid": "FloodSpectreDatasetRead",
      "Effect": "Allow",
      "Action": [
        "s3:GetObject"
      ],
      "Resource": "arn:aws:s3:::YOUR-BUCKET/*"
    }
  ]
}
`
