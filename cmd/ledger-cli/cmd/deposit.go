package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// depositCmd 代表 deposit 命令
var depositCmd = &cobra.Command{
	Use:   "deposit <coin>",
	Short: "发起充值申请",
	Long:  `对指定币种发起充值申请，返回 pending 单和平台收款地址。需要 --user。`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return callAPI("POST", "/api/v1/deposits", map[string]string{"coin": args[0]})
	},
}

// depositsCmd 代表 deposits 命令
var depositsCmd = &cobra.Command{
	Use:   "deposits",
	Short: "查询充值历史",
	Long:  `列出当前用户的全部充值记录，最新在前。需要 --user。`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return callAPI("GET", "/api/v1/deposits", nil)
	},
}

// setAmountCmd 代表 set-amount 命令
var setAmountCmd = &cobra.Command{
	Use:   "set-amount <deposit-id> <amount>",
	Short: "补填充值金额 (管理员)",
	Long:  `在确认前为 pending 充值单补填到账金额 (USD, 两位小数)。需要 --admin-id / --admin-token。`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := fmt.Sprintf("/api/v1/admin/deposits/%s/amount", args[0])
		return callAPI("PUT", path, map[string]string{"amount": args[1], "notes": setAmountNotes})
	},
}

var setAmountNotes string

func init() {
	setAmountCmd.Flags().StringVar(&setAmountNotes, "notes", "", "管理员备注")

	rootCmd.AddCommand(depositCmd)
	rootCmd.AddCommand(depositsCmd)
	rootCmd.AddCommand(setAmountCmd)
}
