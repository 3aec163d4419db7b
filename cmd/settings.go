package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/italienapp/italienapp/internal/progress"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change the settings",
	Long: `Show the current settings, or change them with flags:

  italienapp settings --strict-accents=true --dark-mode=false`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig(cmd)
		db, ps, err := openProgress(cmd.Context(), cfg, cliLogger(cmd, cfg))
		if err != nil {
			return err
		}
		defer db.Close()

		var patch progress.SettingsPatch
		if cmd.Flags().Changed("strict-accents") {
			v, _ := cmd.Flags().GetBool("strict-accents")
			patch.StrictAccents = &v
		}
		if cmd.Flags().Changed("dark-mode") {
			v, _ := cmd.Flags().GetBool("dark-mode")
			patch.DarkMode = &v
		}

		s := ps.Settings()
		if patch.StrictAccents != nil || patch.DarkMode != nil {
			s = ps.UpdateSettings(cmd.Context(), patch)
		}
		printSettings(cmd.OutOrStdout(), s)
		return nil
	},
}

func init() {
	settingsCmd.Flags().Bool("strict-accents", false, "Treat missing accents as errors")
	settingsCmd.Flags().Bool("dark-mode", false, "Use the dark palette")
}

func printSettings(w io.Writer, s progress.Settings) {
	fmt.Fprintf(w, "Accenti rigorosi: %s\n", yesNo(s.StrictAccents))
	fmt.Fprintf(w, "Modalità scura:   %s\n", yesNo(s.DarkMode))
}

func yesNo(b bool) string {
	if b {
		return "sì"
	}
	return "no"
}
