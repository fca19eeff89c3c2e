package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"opennoution/internal/application/commands"
	"opennoution/internal/domain"
)

var profileInput domain.UserProfile

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or set the local user profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the user profile",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := commands.NewGetUserProfileCommand(GetStore()).Execute(cmd.Context())
		if err != nil {
			return err
		}
		if user == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "No profile set.")
			return nil
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Name:       %s\n", user.Name)
		fmt.Fprintf(out, "Email:      %s\n", user.Email)
		fmt.Fprintf(out, "Occupation: %s\n", user.Occupation)
		fmt.Fprintf(out, "Purpose:    %s\n", user.Purpose)
		return nil
	},
}

var profileSetCmd = &cobra.Command{
	Use:   "set --name <name> [--email ...] [--occupation ...] [--purpose ...]",
	Short: "Save the user profile and complete onboarding",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := commands.NewCompleteOnboardingCommand(GetStore(), profileInput).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved profile for %s\n", user.Name)
		return nil
	},
}

var settingCmd = &cobra.Command{
	Use:   "setting",
	Short: "Read or write settings",
}

var settingGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print a setting as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		setting, err := commands.NewGetSettingCommand(GetStore(), args[0]).Execute(cmd.Context())
		if err != nil {
			return err
		}
		if setting == nil {
			return fmt.Errorf("setting %q is not set", args[0])
		}

		raw, err := json.Marshal(setting.Value)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(raw))
		return nil
	},
}

var settingSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Store a setting. Values that parse as JSON are stored typed, anything else as a string",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var value any
		if err := json.Unmarshal([]byte(args[1]), &value); err != nil {
			value = args[1]
		}

		if err := commands.NewSaveSettingCommand(GetStore(), args[0], value).Execute(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(profileCmd, settingCmd)
	profileCmd.AddCommand(profileShowCmd, profileSetCmd)
	settingCmd.AddCommand(settingGetCmd, settingSetCmd)

	profileSetCmd.Flags().StringVar(&profileInput.Name, "name", "", "display name")
	profileSetCmd.Flags().StringVar(&profileInput.Email, "email", "", "email address")
	profileSetCmd.Flags().StringVar(&profileInput.Occupation, "occupation", "", "occupation")
	profileSetCmd.Flags().StringVar(&profileInput.Purpose, "purpose", "", "what the notebook is for")
	_ = profileSetCmd.MarkFlagRequired("name")
}
