package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/erandawijewantha/personalized-health-coach/internal/types"
)

var recommendTrace bool

var recommendCmd = &cobra.Command{
	Use:   "recommend <user-id> <query>",
	Short: "Generate recommendations for a user",
	Long: `Run the full recommendation pipeline once for a user and print
the results as JSON. The user's stored logs and profile are loaded from
the database; generated recommendations are persisted.

Example:

  healthcoach recommend alice "How can I sleep better?"`,
	Args: cobra.ExactArgs(2),
	RunE: runRecommend,
}

func init() {
	recommendCmd.Flags().BoolVar(&recommendTrace, "trace", false,
		"Include the reasoning trace in the output")
}

func runRecommend(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	userID, query := args[0], args[1]

	app, err := buildApp(ctx, resolveConfigPath())
	if err != nil {
		return err
	}
	defer app.close()

	data, err := loadUserData(cmd, app, userID)
	if err != nil {
		return err
	}

	result, err := app.controller.Execute(ctx, userID, query, data)
	if err != nil {
		return err
	}

	if err := app.suggestions.InsertAll(ctx, result.Recommendations); err != nil {
		app.logger.Error("failed to persist recommendations", "error", err)
	}

	if !recommendTrace {
		result.ReasoningTrace = nil
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func loadUserData(cmd *cobra.Command, app *app, userID string) (types.UserData, error) {
	ctx := cmd.Context()

	logs, err := app.logs.ListByUser(ctx, userID, 0)
	if err != nil {
		return types.UserData{}, err
	}

	data := types.UserData{Logs: logs}

	profile, err := app.profiles.Get(ctx, userID)
	switch {
	case err == nil:
		data.Profile = profile
	case types.CodeOf(err) == types.DB_NOT_FOUND:
		cmd.PrintErrf("No profile found for %s, using logs only\n", userID)
	default:
		return types.UserData{}, err
	}

	return data, nil
}
