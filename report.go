package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/danielhkuo/giftquiz/catalog"
	"github.com/danielhkuo/giftquiz/models"
	"github.com/danielhkuo/giftquiz/scoring"
)

var (
	reportAnswersFile string
	reportJSONOutput  bool
	reportGift        string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Score an exported answers file",
	Long: `Score an answers file exported from GET /api/answers and print the
ranked gift table. The file may hold the bare answers array or the full
export object.`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportAnswersFile, "answers", "", "Answers JSON file (- for stdin)")
	reportCmd.Flags().BoolVar(&reportJSONOutput, "json", false, "Output in JSON format")
	reportCmd.Flags().StringVar(&reportGift, "gift", "", "Show one gift by code instead of the full table")
	reportCmd.MarkFlagRequired("answers")
}

// Report is the scored result of one answers file.
type Report struct {
	Answered int                  `json:"answered"`
	Total    int                  `json:"total"`
	Top      []models.ScoreRecord `json:"top"`
	Ranked   []models.ScoreRecord `json:"ranked"`
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	answers, err := readAnswers(cmd.InOrStdin(), reportAnswersFile)
	if err != nil {
		return err
	}

	cat, err := catalog.Load(context.Background(), catalogSource(cfg))
	if err != nil {
		return err
	}

	report := buildReport(cat, answers)

	if reportGift != "" {
		detail, err := giftDetail(cat, report, reportGift)
		if err != nil {
			return err
		}
		if reportJSONOutput {
			return writeJSON(cmd.OutOrStdout(), detail)
		}
		return printGiftDetail(cmd.OutOrStdout(), detail)
	}

	if reportJSONOutput {
		return writeJSON(cmd.OutOrStdout(), report)
	}
	return printReport(cmd.OutOrStdout(), report)
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// GiftDetail is one gift's standing in a report.
type GiftDetail struct {
	models.Gift
	Rank  int `json:"rank"`
	Of    int `json:"of"`
	Score int `json:"score"`
	Max   int `json:"max"`
}

func giftDetail(cat *catalog.Catalog, r Report, code string) (GiftDetail, error) {
	g, ok := cat.Gift(code)
	if !ok {
		return GiftDetail{}, fmt.Errorf("unknown gift %q", code)
	}

	for i, rec := range r.Ranked {
		if rec.Code == g.Code {
			return GiftDetail{Gift: g, Rank: i + 1, Of: len(r.Ranked), Score: rec.Score, Max: rec.Max}, nil
		}
	}
	return GiftDetail{}, fmt.Errorf("gift %q missing from report", code)
}

func printGiftDetail(out io.Writer, d GiftDetail) error {
	_, err := fmt.Fprintf(out, "%s  %s\nRanked %s of %d with %d/%d\n\n%s\n",
		strings.ToUpper(d.Code),
		d.Name,
		humanize.Ordinal(d.Rank),
		d.Of,
		d.Score,
		d.Max,
		d.Description,
	)
	return err
}

func buildReport(cat *catalog.Catalog, answers models.Answers) Report {
	records := scoring.Compute(cat.Questions, cat.Gifts, answers)
	return Report{
		Answered: answers.Count(),
		Total:    len(cat.Questions),
		Top:      scoring.Top(records),
		Ranked:   scoring.Rank(records),
	}
}

// readAnswers accepts either a JSON array of answers or the object served
// by GET /api/answers.
func readAnswers(stdin io.Reader, path string) (models.Answers, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read answers: %w", err)
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errors.New("answers file is empty")
	}

	var answers models.Answers
	if data[0] == '[' {
		err = json.Unmarshal(data, &answers)
	} else {
		var export models.AnswersResponse
		err = json.Unmarshal(data, &export)
		answers = export.Answers
	}
	if err != nil {
		return nil, fmt.Errorf("decode answers: %w", err)
	}
	return answers, nil
}

func printReport(out io.Writer, r Report) error {
	if r.Answered < r.Total {
		fmt.Fprintf(out, "Answered %d of %d questions; results are partial.\n\n", r.Answered, r.Total)
	}

	switch len(r.Top) {
	case 0:
	case 1:
		fmt.Fprintf(out, "Dominant gift: %s (%d/%d)\n\n", r.Top[0].Name, r.Top[0].Score, r.Top[0].Max)
	default:
		names := make([]string, len(r.Top))
		for i, g := range r.Top {
			names[i] = g.Name
		}
		fmt.Fprintf(out, "Top gifts (%d/%d): %s\n\n", r.Top[0].Score, r.Top[0].Max, strings.Join(names, ", "))
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tCODE\tGIFT\tSCORE\tMAX")
	for i, g := range r.Ranked {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\n",
			humanize.Ordinal(i+1),
			strings.ToUpper(g.Code),
			g.Name,
			g.Score,
			g.Max,
		)
	}
	return w.Flush()
}
