package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"custody-core/internal/recovery"
	"custody-core/pkg/wallet/types"

	"github.com/spf13/cobra"
)

var (
	backupSecret    string
	backupTotal     int
	backupThreshold int
	backupShamir    bool
	backupShares    []string
)

func init() {
	rootCmd.AddCommand(backupCmd)

	backupCmd.AddCommand(splitCmd)
	splitCmd.Flags().StringVarP(&backupSecret, "secret", "s", "", "待拆分的助记词/机密")
	splitCmd.Flags().IntVarP(&backupTotal, "total", "n", 3, "分片总数 (N)")
	splitCmd.Flags().IntVarP(&backupThreshold, "threshold", "t", 3, "还原所需分片数 (M)")
	splitCmd.Flags().BoolVar(&backupShamir, "shamir", false, "使用 Shamir k-of-n 方案 (默认 XOR 全量方案)")
	splitCmd.MarkFlagRequired("secret")

	backupCmd.AddCommand(recoverCmd)
	recoverCmd.Flags().StringSliceVarP(&backupShares, "shares", "S", nil, "分片列表 (格式 index:threshold:payload, 逗号分隔)")
	recoverCmd.Flags().BoolVar(&backupShamir, "shamir", false, "分片由 Shamir 方案产生")
	recoverCmd.MarkFlagRequired("shares")
}

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "助记词分片备份与恢复",
	Long:  `把助记词拆分为多份恢复分片，或从分片还原。少于门限数量的分片不泄露任何信息。`,
}

func strategy() recovery.Strategy {
	if backupShamir {
		return recovery.NewShamirStrategy()
	}
	return recovery.NewXORStrategy()
}

var splitCmd = &cobra.Command{
	Use:   "split",
	Short: "把机密拆分为 N 份分片",
	Run: func(cmd *cobra.Command, args []string) {
		shares, err := strategy().Split(backupSecret, backupTotal, backupThreshold)
		if err != nil {
			fmt.Printf("拆分失败: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("🔐 机密已拆分为 %d 份 (门限: %d)，请分开保管:\n", backupTotal, backupThreshold)
		for _, share := range shares {
			fmt.Printf("Share %d: %d:%d:%s\n", share.Index, share.Index, share.Threshold, share.Payload)
		}
	},
}

var recoverCmd = &cobra.Command{
	Use:   "recover",
	Short: "从分片还原机密",
	Run: func(cmd *cobra.Command, args []string) {
		shares := make([]types.RecoveryShare, 0, len(backupShares))
		for _, raw := range backupShares {
			share, err := parseShare(raw)
			if err != nil {
				fmt.Printf("分片格式错误 %q: %v\n", raw, err)
				os.Exit(1)
			}
			shares = append(shares, share)
		}

		secret, err := strategy().Reconstruct(shares)
		if err != nil {
			fmt.Printf("还原失败: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("🔑 还原结果: %s\n", secret)
	},
}

// parseShare 解析 "index:threshold:payload" 格式的分片
func parseShare(raw string) (types.RecoveryShare, error) {
	parts := strings.SplitN(raw, ":", 3)
	if len(parts) != 3 {
		return types.RecoveryShare{}, fmt.Errorf("期望 index:threshold:payload")
	}
	index, err := strconv.Atoi(parts[0])
	if err != nil {
		return types.RecoveryShare{}, fmt.Errorf("序号无效: %v", err)
	}
	threshold, err := strconv.Atoi(parts[1])
	if err != nil {
		return types.RecoveryShare{}, fmt.Errorf("门限无效: %v", err)
	}
	return types.RecoveryShare{Index: index, Payload: parts[2], Threshold: threshold}, nil
}
