package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootCmd 代表基础命令，没有子命令时直接调用
var rootCmd = &cobra.Command{
	Use:   "custody-cli",
	Short: "钱包密钥托管命令行工具",
	Long: `非托管钱包的本地密钥管理工具。
支持生成 BIP-39 助记词、BIP-32 派生、导入加密密钥库，
以及把助记词拆分为恢复分片/从分片还原。`,
}

// Execute 将所有子命令添加到根命令并设置标志
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
