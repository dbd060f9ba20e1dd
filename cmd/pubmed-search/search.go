// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pubmed-search/internal/embed"
	"github.com/pdiddy/pubmed-search/internal/eutils"
	"github.com/pdiddy/pubmed-search/internal/logging"
	"github.com/pdiddy/pubmed-search/internal/mesh"
	"github.com/pdiddy/pubmed-search/internal/search"
	"github.com/pdiddy/pubmed-search/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Run a one-shot PubMed search",
	Long: `Search retrieves PubMed citations for a biomedical question, expands
the query with MeSH descriptors, and ranks candidates by embedding similarity.
Results print as a table by default; --json and --csl select other formats.

A search can be saved with --save and replayed from disk with --load without
re-querying PubMed.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("query", "", "biomedical question or phrase")
	searchCmd.Flags().String("mode", string(types.ModeSemantic), "retrieval mode: semantic, broad, or exactTitle")
	searchCmd.Flags().Int("max-results", 25, "maximum number of results to return")
	searchCmd.Flags().Int("retmax", 200, "candidate pool size fetched before ranking")
	searchCmd.Flags().Bool("no-mesh", false, "disable MeSH expansion and ranking boost")
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	searchCmd.Flags().Bool("csl", false, "output results as CSL-YAML for citation tools")
	searchCmd.Flags().String("save", "", "save the query and results to a YAML file")
	searchCmd.Flags().String("load", "", "load a previously saved query file instead of searching")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if load, _ := cmd.Flags().GetString("load"); load != "" {
		return replayQueryFile(cmd, load)
	}

	query, _ := cmd.Flags().GetString("query")
	if query == "" {
		return fmt.Errorf("provide a query with --query")
	}

	req := types.DefaultSearchRequest()
	req.Query = query
	mode, _ := cmd.Flags().GetString("mode")
	req.Mode = types.Mode(mode)
	req.MaxResults, _ = cmd.Flags().GetInt("max-results")
	req.Retmax, _ = cmd.Flags().GetInt("retmax")
	if noMesh, _ := cmd.Flags().GetBool("no-mesh"); noMesh {
		req.UseMesh = false
	}

	cfg := serviceConfig()
	log := logging.New(viper.GetString("log.level"))

	client := eutils.NewClient(cfg.EUtils)
	pipeline := search.NewPipeline(
		client,
		mesh.NewResolver(client),
		func() (embed.Encoder, error) { return embed.Shared(cfg.Embedding) },
		log,
	)

	resp, err := pipeline.Run(cmd.Context(), req)
	if err != nil {
		return err
	}

	if save, _ := cmd.Flags().GetString("save"); save != "" {
		if err := search.WriteQueryFile(save, req, resp); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved query to %s\n", save)
	}

	return writeResults(cmd, resp)
}

// replayQueryFile prints the results stored in a saved query file.
func replayQueryFile(cmd *cobra.Command, path string) error {
	qf, err := search.ReadQueryFile(path)
	if err != nil {
		return err
	}
	resp := types.SearchResponse{
		ResultsRange: qf.Summary.ResultsRange,
		TotalResults: qf.Summary.TotalResults,
		Results:      qf.Results,
	}
	return writeResults(cmd, resp)
}

func writeResults(cmd *cobra.Command, resp types.SearchResponse) error {
	if asCSL, _ := cmd.Flags().GetBool("csl"); asCSL {
		return search.FormatCSL(resp, os.Stdout)
	}
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return search.FormatJSON(resp, os.Stdout)
	}
	search.FormatTable(resp, os.Stdout)
	return nil
}
