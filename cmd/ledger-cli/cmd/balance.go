package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// balanceCmd 代表 balance 命令
var balanceCmd = &cobra.Command{
	Use:   "balance [coin]",
	Short: "查询钱包余额",
	Long:  `不带参数时返回全部币种余额和总额; 指定币种时只查该币种。需要 --user。`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			return callAPI("GET", fmt.Sprintf("/api/v1/wallet/balances/%s", args[0]), nil)
		}
		return callAPI("GET", "/api/v1/wallet/balances", nil)
	},
}

func init() {
	rootCmd.AddCommand(balanceCmd)
}
