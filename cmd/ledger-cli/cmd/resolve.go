package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var (
	resolveNotes string
	resolveIDs   []string
)

// resolveCmd 代表 resolve 命令
var resolveCmd = &cobra.Command{
	Use:   "resolve <deposit-id> <confirm|reject>",
	Short: "处理单笔充值 (管理员)",
	Long: `确认或驳回一笔 pending 充值单。
confirm 会把金额入账到用户钱包, reject 只关单不动余额。需要 --admin-id / --admin-token。`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := fmt.Sprintf("/api/v1/admin/deposits/%s/resolve", args[0])
		return callAPI("POST", path, map[string]string{
			"decision": args[1],
			"notes":    resolveNotes,
		})
	},
}

// resolveBatchCmd 代表 resolve-batch 命令
var resolveBatchCmd = &cobra.Command{
	Use:   "resolve-batch <confirm|reject>",
	Short: "批量处理充值 (管理员)",
	Long:  `对 --ids 指定的多笔充值单执行同一决定, 每笔独立成败。需要 --admin-id / --admin-token。`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids := make([]uint64, 0, len(resolveIDs))
		for _, s := range resolveIDs {
			id, err := strconv.ParseUint(s, 10, 64)
			if err != nil {
				return fmt.Errorf("非法的充值单 ID: %s", s)
			}
			ids = append(ids, id)
		}
		return callAPI("POST", "/api/v1/admin/deposits/resolve-batch", map[string]interface{}{
			"ids":      ids,
			"decision": args[0],
			"notes":    resolveNotes,
		})
	},
}

func init() {
	resolveCmd.Flags().StringVar(&resolveNotes, "notes", "", "管理员备注")
	resolveBatchCmd.Flags().StringVar(&resolveNotes, "notes", "", "管理员备注")
	resolveBatchCmd.Flags().StringSliceVar(&resolveIDs, "ids", nil, "充值单 ID 列表, 逗号分隔")
	resolveBatchCmd.MarkFlagRequired("ids")

	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(resolveBatchCmd)
}
