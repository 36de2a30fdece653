package cmd

import (
	"context"
	"fmt"
	"os"
	"syscall"

	"custody-core/internal/custody"
	"custody-core/pkg/address"
	"custody-core/pkg/bip32"
	"custody-core/pkg/bip39"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var keyDir string

func init() {
	rootCmd.AddCommand(newCmd)
	newCmd.Flags().StringVarP(&keyDir, "key-dir", "d", "keys", "加密密钥库目录")
}

// newCmd 代表 new 命令
var newCmd = &cobra.Command{
	Use:   "new",
	Short: "创建一个新的钱包",
	Long: `生成一个新的随机 BIP-39 助记词，派生默认的 ETH/BTC 账户，
并把 ETH 私钥加密导入本地密钥库。`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("正在生成新钱包...")
		fmt.Println("---------------------------------------------------")

		// 1. 生成助记词
		mnemonicService := bip39.NewMnemonicService()
		mnemonic, err := mnemonicService.GenerateMnemonic(256) // 24 words
		if err != nil {
			fmt.Printf("生成助记词失败: %v\n", err)
			return
		}
		fmt.Printf("助记词 (Mnemonic): \n%s\n", mnemonic)
		fmt.Println("---------------------------------------------------")

		// 2. 生成种子和主密钥
		seed := mnemonicService.MnemonicToSeed(mnemonic, "")
		wallet, err := bip32.NewMasterKeyFromSeed(seed, &chaincfg.MainNetParams)
		if err != nil {
			fmt.Printf("生成主密钥失败: %v\n", err)
			return
		}

		// 3. 派生默认账户 (BIP-44)
		// Ethereum: m/44'/60'/0'/0/0
		ethKey, err := wallet.DerivePath("m/44'/60'/0'/0/0")
		if err != nil {
			fmt.Printf("ETH 派生失败: %v\n", err)
			return
		}
		ethPub, err := ethKey.(*bip32.BTCKeychain).ECPubKey()
		if err != nil {
			fmt.Printf("获取 ETH 公钥失败: %v\n", err)
			return
		}
		ethAddr, err := address.NewETHGenerator().PubKeyToAddress(ethPub.SerializeUncompressed())
		if err != nil {
			fmt.Printf("生成 ETH 地址失败: %v\n", err)
			return
		}
		fmt.Printf("Ethereum Address [m/44'/60'/0'/0/0]: %s\n", ethAddr)

		// Bitcoin: m/44'/0'/0'/0/0
		if btcKey, err := wallet.DerivePath("m/44'/0'/0'/0/0"); err == nil {
			if btcPub, err := btcKey.(*bip32.BTCKeychain).ECPubKey(); err == nil {
				btcGen := address.NewBTCGenerator(&chaincfg.MainNetParams)
				if btcAddr, err := btcGen.PubKeyToAddress(btcPub.SerializeCompressed()); err == nil {
					fmt.Printf("Bitcoin Address (Mainnet) [m/44'/0'/0'/0/0]: %s\n", btcAddr)
				}
			}
		}
		fmt.Println("---------------------------------------------------")

		// 4. 加密导入密钥库
		fmt.Print("设置 Keystore 密码: ")
		passphrase, err := readPassword()
		if err != nil {
			fmt.Printf("读取密码失败: %v\n", err)
			os.Exit(1)
		}
		fmt.Print("确认 Keystore 密码: ")
		confirm, err := readPassword()
		if err != nil {
			fmt.Printf("读取密码失败: %v\n", err)
			os.Exit(1)
		}
		if passphrase != confirm {
			fmt.Println("两次输入的密码不一致！")
			os.Exit(1)
		}

		fmt.Print("设置解锁口令 (签名时校验): ")
		passcode, err := readPassword()
		if err != nil {
			fmt.Printf("读取口令失败: %v\n", err)
			os.Exit(1)
		}

		gate := custody.NewPasscodeGate(passcode, func(ctx context.Context, keyID string) (string, error) {
			fmt.Printf("请输入解锁口令 [%s]: ", keyID)
			return readPassword()
		})
		store, err := custody.NewFileKeyStore(keyDir, passphrase, gate)
		if err != nil {
			fmt.Printf("初始化密钥库失败: %v\n", err)
			os.Exit(1)
		}

		privBytes, err := ethKey.(*bip32.BTCKeychain).ECPrivKeyBytes()
		if err != nil {
			fmt.Printf("导出私钥失败: %v\n", err)
			os.Exit(1)
		}
		defer custody.Zero(privBytes)

		if err := store.Store(context.Background(), ethAddr, privBytes); err != nil {
			fmt.Printf("写入密钥库失败: %v\n", err)
			os.Exit(1)
		}

		fmt.Println("---------------------------------------------------")
		fmt.Printf("私钥已加密存入 %s (key id: %s)\n", keyDir, ethAddr)
		fmt.Println("请妥善保管您的助记词！任何拥有助记词的人都可以控制该钱包的所有资产。")
		fmt.Println("建议使用 `custody-cli backup split` 把助记词拆分为恢复分片。")
	},
}

func readPassword() (string, error) {
	b, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(b), nil
}
