package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mvchuu/planetary-rover/core/power"
)

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Print the sol energy forecast and exit",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Energy prediction for next sol: %.2f Wh\n", power.ForecastNextSol())
	},
}

func init() {
	rootCmd.AddCommand(forecastCmd)
}
