package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/job-matcher/internal/matching"
)

const promptNotSet = "(not set)"

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Show or change the saved matching preferences",
}

var prefsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the saved preferences",
	Run: func(_ *cobra.Command, _ []string) {
		withStore(func(ctx context.Context, env *prefsEnv) error {
			prefs := env.store.Load(ctx)
			if prefs == nil {
				fmt.Println("preferences are not set")
				return nil
			}

			pretty, err := json.MarshalIndent(prefs, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(pretty))
			return nil
		})
	},
}

var prefsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Overwrite the saved preferences with the given flags",
	Long: "Overwrite the saved preferences. Flags that are not given keep their " +
		"current value; pass an empty value to clear a field.",
	Run: func(cmd *cobra.Command, _ []string) {
		withStore(func(ctx context.Context, env *prefsEnv) error {
			prefs := env.store.Load(ctx)
			if prefs == nil {
				prefs = &matching.Preferences{}
			}

			if err := applyPrefsFlags(cmd, prefs); err != nil {
				return err
			}
			warnUnknownLabels(env.logger, prefs)

			if err := env.store.Save(ctx, prefs); err != nil {
				return err
			}
			env.logger.Info("preferences saved", zap.String("key", env.store.Key()))
			return nil
		})
	},
}

var prefsEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit the saved preferences interactively",
	Run: func(_ *cobra.Command, _ []string) {
		withStore(func(ctx context.Context, env *prefsEnv) error {
			prefs := env.store.Load(ctx)
			if prefs == nil {
				prefs = &matching.Preferences{}
			}

			edited, err := editPrefs(prefs)
			if err != nil {
				return err
			}

			confirm := promptui.Select{
				Label: "Save preferences?",
				Items: []string{PromptYes, PromptNo},
			}
			_, answer, err := confirm.Run()
			if err != nil {
				return err
			}
			if answer != PromptYes {
				env.logger.Info("exiting", zap.String("reason", "got no from prompt"))
				return nil
			}

			if err := env.store.Save(ctx, edited); err != nil {
				return err
			}
			env.logger.Info("preferences saved", zap.String("key", env.store.Key()))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(prefsCmd)
	prefsCmd.AddCommand(prefsShowCmd, prefsSetCmd, prefsEditCmd)

	prefsSetCmd.Flags().String("keywords", "", "comma-separated role keywords, e.g. \"react, frontend\"")
	prefsSetCmd.Flags().StringSlice("locations", nil, "preferred locations, exact names")
	prefsSetCmd.Flags().StringSlice("modes", nil, "preferred work modes: Remote, Hybrid, Onsite")
	prefsSetCmd.Flags().String("experience", "", "experience level: Fresher, Junior, Mid, Senior, Lead")
	prefsSetCmd.Flags().String("skills", "", "comma-separated skills")
}

type prefsEnv struct {
	logger *zap.Logger
	store  interface {
		Key() string
		Load(ctx context.Context) *matching.Preferences
		Save(ctx context.Context, prefs *matching.Preferences) error
	}
}

func withStore(fn func(ctx context.Context, env *prefsEnv) error) {
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

	store, backend, err := openStore(ctx, config.Store, logger)
	if err != nil {
		logger.Fatal("opening preference store", zap.Error(err))
	}
	defer backend.Close()

	if err := fn(ctx, &prefsEnv{logger: logger, store: store}); err != nil {
		if errors.Is(err, promptui.ErrInterrupt) {
			os.Exit(1)
		}
		logger.Fatal("preferences", zap.Error(err))
	}
}

func applyPrefsFlags(cmd *cobra.Command, prefs *matching.Preferences) error {
	flags := cmd.Flags()

	if flags.Changed("keywords") {
		v, err := flags.GetString("keywords")
		if err != nil {
			return err
		}
		prefs.RoleKeywords = v
	}
	if flags.Changed("locations") {
		v, err := flags.GetStringSlice("locations")
		if err != nil {
			return err
		}
		prefs.PreferredLocations = trimAll(v)
	}
	if flags.Changed("modes") {
		v, err := flags.GetStringSlice("modes")
		if err != nil {
			return err
		}
		prefs.PreferredMode = toModes(trimAll(v))
	}
	if flags.Changed("experience") {
		v, err := flags.GetString("experience")
		if err != nil {
			return err
		}
		prefs.ExperienceLevel = matching.Experience(strings.TrimSpace(v))
	}
	if flags.Changed("skills") {
		v, err := flags.GetString("skills")
		if err != nil {
			return err
		}
		prefs.Skills = v
	}

	return nil
}

// warnUnknownLabels flags likely typos. Unknown labels are still saved since
// listings may use labels of their own.
func warnUnknownLabels(logger *zap.Logger, prefs *matching.Preferences) {
	for _, mode := range prefs.PreferredMode {
		if !mode.Known() {
			logger.Warn("unknown work mode, it only matches listings with exactly this label",
				zap.String("mode", string(mode)),
				zap.Any("known", matching.WorkModes),
			)
		}
	}
	if prefs.HasExperienceLevel() && !prefs.ExperienceLevel.Known() {
		logger.Warn("unknown experience level, it only matches listings with exactly this label",
			zap.String("experience", string(prefs.ExperienceLevel)),
			zap.Any("known", matching.ExperienceLevels),
		)
	}
}

func editPrefs(current *matching.Preferences) (*matching.Preferences, error) {
	edited := *current

	keywords, err := promptText("Role keywords (comma-separated)", current.RoleKeywords, nil)
	if err != nil {
		return nil, err
	}
	edited.RoleKeywords = keywords

	locations, err := promptText("Preferred locations (comma-separated)", strings.Join(current.PreferredLocations, ", "), nil)
	if err != nil {
		return nil, err
	}
	edited.PreferredLocations = splitList(locations)

	modes, err := promptText("Preferred work modes (comma-separated)", joinModes(current.PreferredMode), validateModes)
	if err != nil {
		return nil, err
	}
	edited.PreferredMode = toModes(splitList(modes))

	experience, err := selectExperience(current.ExperienceLevel)
	if err != nil {
		return nil, err
	}
	edited.ExperienceLevel = experience

	skills, err := promptText("Skills (comma-separated)", current.Skills, nil)
	if err != nil {
		return nil, err
	}
	edited.Skills = skills

	return &edited, nil
}

func promptText(label, current string, validate promptui.ValidateFunc) (string, error) {
	prompt := promptui.Prompt{
		Label:     label,
		Default:   current,
		AllowEdit: true,
		Validate:  validate,
	}
	return prompt.Run()
}

func selectExperience(current matching.Experience) (matching.Experience, error) {
	items := []string{promptNotSet}
	cursor := 0
	for i, level := range matching.ExperienceLevels {
		items = append(items, string(level))
		if level == current {
			cursor = i + 1
		}
	}

	prompt := promptui.Select{
		Label:     "Experience level",
		Items:     items,
		CursorPos: cursor,
	}
	_, selected, err := prompt.Run()
	if err != nil {
		return "", err
	}
	if selected == promptNotSet {
		return "", nil
	}
	return matching.Experience(selected), nil
}

func validateModes(input string) error {
	for _, mode := range toModes(splitList(input)) {
		if !mode.Known() {
			return fmt.Errorf("unknown work mode %q", mode)
		}
	}
	return nil
}

func splitList(raw string) []string {
	out := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func toModes(in []string) []matching.WorkMode {
	out := make([]matching.WorkMode, 0, len(in))
	for _, s := range in {
		out = append(out, matching.WorkMode(s))
	}
	return out
}

func joinModes(modes []matching.WorkMode) string {
	parts := make([]string, 0, len(modes))
	for _, m := range modes {
		parts = append(parts, string(m))
	}
	return strings.Join(parts, ", ")
}
