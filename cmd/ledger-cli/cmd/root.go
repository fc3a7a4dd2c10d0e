package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/spf13/cobra"
)

var (
	serverAddr string
	userID     string
	adminID    string
	adminToken string
)

// rootCmd 代表基础命令，没有子命令时直接调用
var rootCmd = &cobra.Command{
	Use:   "ledger-cli",
	Short: "充值账本运维命令行工具",
	Long: `充值账本服务的命令行客户端。
支持发起充值申请、查询余额，以及管理员确认/驳回充值。`,
}

// Execute 将所有子命令添加到根命令并设置标志
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverAddr, "addr", "http://localhost:8080", "充值账本服务地址")
	rootCmd.PersistentFlags().StringVar(&userID, "user", "", "用户 ID (X-User-ID)")
	rootCmd.PersistentFlags().StringVar(&adminID, "admin-id", "", "管理员 ID (X-Admin-ID)")
	rootCmd.PersistentFlags().StringVar(&adminToken, "admin-token", "", "管理员口令 (X-Admin-Token)")
}

// callAPI 发送请求并把响应体原样打印 (带缩进)
func callAPI(method, path string, body interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, serverAddr+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	if adminID != "" {
		req.Header.Set("X-Admin-ID", adminID)
	}
	if adminToken != "" {
		req.Header.Set("X-Admin-Token", adminToken)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, raw, "", "  "); err != nil {
		fmt.Println(string(raw))
		return nil
	}
	fmt.Println(pretty.String())
	return nil
}
