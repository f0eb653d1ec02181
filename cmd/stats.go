/*
Copyright © 2025 Ambor <saltbo@foxmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eslsoft/trivnet/internal/app"
	"github.com/eslsoft/trivnet/internal/repository"
)

const (
	statsFilterKey  = "stats.filter"
	statsOrderByKey = "stats.order_by"
)

// statsCmd prints the report without playing a round.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print the accumulated per-category statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		container, cleanup, err := app.Initialize()
		if err != nil {
			return fmt.Errorf("init: %w", err)
		}
		defer cleanup()

		query := &repository.ReportQuery{
			FilterOrder: repository.FilterOrder{
				Filter:  viper.GetString(statsFilterKey),
				OrderBy: viper.GetString(statsOrderByKey),
			},
		}

		report, err := container.Report.Summary(ctx, query)
		if err != nil {
			return err
		}
		container.Console.RenderReport(report)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().String("filter", "", `CEL filter over rows, e.g. 'total >= 3 && category.startsWith("S")'`)
	statsCmd.Flags().String("order-by", "", "sort order, e.g. 'accuracy desc, name'")

	bindStatsConfig()
}

func bindStatsConfig() {
	bindFlagToViper(statsFilterKey, statsCmd.Flags().Lookup("filter"))
	bindFlagToViper(statsOrderByKey, statsCmd.Flags().Lookup("order-by"))
}
