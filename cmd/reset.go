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

	"github.com/eslsoft/trivnet/internal/app"
	"github.com/eslsoft/trivnet/internal/entity"
)

// resetCmd wipes the recorded statistics and reseeds a fresh document.
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "清空统计数据并重建统计文件",
	Long:  "将统计文件重置为初始状态，所有分类计数与已答题目记录都会被清除。默认仅预览，需配合 --force 执行。",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		force, _ := cmd.Flags().GetBool("force")

		container, cleanup, err := app.Initialize()
		if err != nil {
			return fmt.Errorf("初始化失败: %w", err)
		}
		defer cleanup()

		if !force {
			doc, err := container.Stats.Load(ctx)
			if err != nil {
				return fmt.Errorf("读取统计文件失败: %w", err)
			}
			cmd.Printf("将要重置统计文件: %s\n", container.Stats.Path())
			cmd.Printf("当前包含 %d 个分类, %d 条已答题目\n", len(doc.Categories), len(doc.Questions))
			cmd.Println("使用 --force 确认执行")
			return nil
		}

		if err := container.Stats.Save(ctx, entity.NewStatsDocument()); err != nil {
			return fmt.Errorf("重置统计文件失败: %w", err)
		}
		cmd.Printf("已重置统计文件: %s\n", container.Stats.Path())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)

	resetCmd.Flags().Bool("force", false, "确认清空统计数据")
}
