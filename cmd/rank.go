package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/job-matcher/internal/filtering"
	"github.com/spigell/job-matcher/internal/listing"
)

const (
	PromptYes            = "Yes"
	PromptNo             = "No"
	PromptShowTable      = "Show ranked listings"
	PromptReportBySource = "Report by source"
	PromptListingsToFile = "Dump listings to file"
	PromptExit           = "Exit"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptShowTable, PromptReportBySource, PromptListingsToFile, PromptExit},
}

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Score listings against the saved preferences and show them best first",
	Run: func(cmd *cobra.Command, _ []string) {
		rank(cmd)
	},
}

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().StringP("listings", "l", "", "JSON or YAML file with listings")
	rankCmd.Flags().BoolP("auto-approve", "y", false, "print the ranked listings and exit without asking")
	rankCmd.Flags().Int("minimum-score", 0, "drop listings scoring below this value")
	rankCmd.Flags().Int("max-age-days", 0, "drop listings posted more than this many days ago")
	rankCmd.Flags().StringSlice("exclude-sources", nil, "drop listings from these sources")
	rankCmd.Flags().String("sort-by", "", "sort order: score, salary or recency")
	rankCmd.Flags().Int("limit", 0, "show at most this many listings")
	rankCmd.Flags().Bool("explain", false, "show which rules fired for every listing")

	viper.BindPFlag("listings", rankCmd.Flags().Lookup("listings"))
	viper.BindPFlag("rank.minimum-score", rankCmd.Flags().Lookup("minimum-score"))
	viper.BindPFlag("rank.max-age-days", rankCmd.Flags().Lookup("max-age-days"))
	viper.BindPFlag("rank.exclude-sources", rankCmd.Flags().Lookup("exclude-sources"))
	viper.BindPFlag("rank.sort-by", rankCmd.Flags().Lookup("sort-by"))
	viper.BindPFlag("rank.limit", rankCmd.Flags().Lookup("limit"))
}

func rank(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := newLogger()
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	defer logger.Sync()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the job-matcher", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	if strings.TrimSpace(config.Listings) == "" {
		logger.Fatal("listings file is required", zap.String("hint", "pass --listings or set 'listings' in the config file"))
	}

	sortKey, err := listing.ParseSortKey(config.Rank.SortBy)
	if err != nil {
		logger.Fatal("invalid sort order", zap.Error(err))
	}

	store, backend, err := openStore(ctx, config.Store, logger)
	if err != nil {
		logger.Fatal("opening preference store", zap.Error(err))
	}
	prefs := store.Load(ctx)
	backend.Close()

	listings, err := listing.LoadFile(config.Listings)
	if err != nil {
		logger.Fatal("loading listings", zap.Error(err), zap.String("path", config.Listings))
	}

	logger.Info("loaded listings", zap.Int("count", listings.Len()))

	if listings.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no listings found"))
		return
	}

	cfg := &filtering.Config{
		MinimumScore:   config.Rank.MinimumScore,
		MaxAgeDays:     config.Rank.MaxAgeDays,
		ExcludeSources: config.Rank.ExcludeSources,
	}
	deps := filtering.Deps{Logger: logger, Preferences: prefs}

	steps := filtering.Default()
	if prefs == nil && cfg.MinimumScore > 0 {
		filtering.DisableByName(steps, "minimum_score", "preferences are not set")
	}

	listings, err = filtering.Run(ctx, cfg, deps, steps, listings)
	if err != nil {
		logger.Fatal("ranking failed", zap.Error(err))
	}

	for _, status := range filtering.Describe(steps) {
		logger.Debug("filter status",
			zap.String("name", status.Name),
			zap.Bool("enabled", status.Enabled),
			zap.String("reason", status.Reason),
			zap.Any("details", status.Details),
		)
	}

	if listings.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no listings left after filters"))
		return
	}

	listings.Sort(sortKey)
	listings.Truncate(config.Rank.Limit)

	explain, _ := cmd.Flags().GetBool("explain")
	autoApprove, _ := cmd.Flags().GetBool("auto-approve")

	if autoApprove {
		if err := printTable(os.Stdout, listings, explain); err != nil {
			logger.Fatal("printing listings", zap.Error(err))
		}
		return
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		logger.Info("current list of listings", zap.Int("count", listings.Len()))

		if err := handleAction(action, logger, listings, explain); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(action string, logger *zap.Logger, listings *listing.Listings, explain bool) error {
	switch action {
	case PromptShowTable:
		return printTable(os.Stdout, listings, explain)
	case PromptReportBySource:
		pretty, _ := json.MarshalIndent(listings.ReportBySource(), "", "  ")
		logger.Info(string(pretty), zap.Int("listings count", listings.Len()))
		return nil
	case PromptListingsToFile:
		filename, err := listings.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		logger.Info("dumping result to file", zap.String("filename", filename))
		return nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "exit selected"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func printTable(out io.Writer, listings *listing.Listings, explain bool) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	header := "ID\tSCORE\tTIER\tTITLE\tCOMPANY\tLOCATION\tMODE\tSALARY\tPOSTED\tSOURCE"
	if explain {
		header += "\tRULES"
	}
	fmt.Fprintln(w, header)

	for _, l := range listings.Items {
		tier := "-"
		var rules []string
		if l.Match != nil {
			tier = l.Match.Tier.String()
			rules = l.Match.Rules
		}

		row := []string{
			l.ID,
			strconv.Itoa(l.Score()),
			tier,
			l.Title,
			l.Company,
			l.Location,
			string(l.Mode),
			l.Salary,
			fmt.Sprintf("%dd", l.PostedDaysAgo),
			l.Source,
		}
		if explain {
			row = append(row, strings.Join(rules, ","))
		}
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}

	return w.Flush()
}
