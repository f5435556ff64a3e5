package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"ayurdiet-backend/internal/fooddb"
	"ayurdiet-backend/internal/prakriti"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "prakriti",
		Short:         "Ayurvedic constitution and food tools",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newClassifyCmd(), newFoodsCmd())
	return root
}

func newClassifyCmd() *cobra.Command {
	var (
		answers  = map[prakriti.QuestionID]*string{}
		asJSON   bool
		withPlan bool
	)

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Score digestion, energy and sleep answers",
		Example: "  prakriti classify --digestion vata --energy pitta --sleep pitta\n" +
			"  prakriti classify --digestion kapha --energy kapha --sleep vata --plan --json",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp := prakriti.Response{}
			for q, v := range answers {
				resp = resp.With(q, *v)
			}

			res, err := prakriti.Classify(resp)
			if err != nil {
				return err
			}

			var plan *prakriti.Plan
			if withPlan {
				p := prakriti.PlanFor(res.Label)
				plan = &p
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, struct {
					prakriti.Result
					Plan *prakriti.Plan `json:"plan,omitempty"`
				}{res, plan})
			}
			return writeResult(out, res, plan)
		},
	}

	for _, q := range prakriti.StandardQuestions() {
		answers[q] = cmd.Flags().String(string(q), "", "vata, pitta or kapha")
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	cmd.Flags().BoolVar(&withPlan, "plan", false, "include the diet plan preview")
	return cmd
}

func newFoodsCmd() *cobra.Command {
	var query, category string

	cmd := &cobra.Command{
		Use:   "foods",
		Short: "Search the food database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !fooddb.IsKnownCategory(category) {
				return fmt.Errorf("unknown category %q", category)
			}
			foods := fooddb.Filter(fooddb.Catalogue(), query, category)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tCATEGORY\tTHERMAL\tDOSHA")
			for _, f := range foods {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", f.Name, f.Category, f.Thermal, f.Ayurvedic.Dosha)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "text to match")
	cmd.Flags().StringVarP(&category, "category", "c", "all", "category id")
	return cmd
}

func writeResult(w io.Writer, res prakriti.Result, plan *prakriti.Plan) error {
	fmt.Fprintf(w, "Prakriti: %s\n", res.Label)
	fmt.Fprintf(w, "Scores:   vata=%d pitta=%d kapha=%d\n", res.Score.Vata, res.Score.Pitta, res.Score.Kapha)
	if plan == nil {
		return nil
	}
	fmt.Fprintf(w, "Favour:   %s\n", strings.Join(plan.Foods, "; "))
	fmt.Fprintf(w, "Avoid:    %s\n", strings.Join(plan.Avoid, "; "))
	fmt.Fprintf(w, "Routine:  %s\n", strings.Join(plan.Lifestyle, "; "))
	return nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
