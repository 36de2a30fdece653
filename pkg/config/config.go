package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Custody CustodyConfig `mapstructure:"custody"`
	Chains  []ChainConfig `mapstructure:"chains"`
	Risk    RiskConfig    `mapstructure:"risk"`
	Gas     GasConfig     `mapstructure:"gas"`
	DB      DBConfig      `mapstructure:"db"`
	MQ      MQConfig      `mapstructure:"mq"`
}

type AppConfig struct {
	Env      string `mapstructure:"env"`
	HttpPort string `mapstructure:"http_port"`
}

type CustodyConfig struct {
	KeyDir     string `mapstructure:"key_dir"`
	Passphrase string `mapstructure:"passphrase"` // 通常通过环境变量 CUSTODY_PASSPHRASE 传入
	GateType   string `mapstructure:"gate_type"`  // "passcode" or "none" (开发环境)
	Passcode   string `mapstructure:"passcode"`
}

// ChainConfig 描述一条支持的链及其费用模型。
type ChainConfig struct {
	Name         string `mapstructure:"name"`     // ETH
	ChainID      int64  `mapstructure:"chain_id"` // EIP-155
	RpcUrl       string `mapstructure:"rpc_url"`
	Currency     string `mapstructure:"currency"`
	Decimals     int    `mapstructure:"decimals"`
	MinGasLimit  uint64 `mapstructure:"min_gas_limit"`  // 普通转账的最低 Gas (ETH: 21000)
	CallGasLimit uint64 `mapstructure:"call_gas_limit"` // 合约调用的保守上限
	DefaultFee   string `mapstructure:"default_fee"`    // 默认 maxFeePerGas (Wei)
	DefaultTip   string `mapstructure:"default_tip"`    // 默认 maxPriorityFee (Wei)
}

type RiskConfig struct {
	// HighValueThreshold 超过该金额 (基础单位，十进制字符串) 触发 "high value" 告警
	HighValueThreshold string `mapstructure:"high_value_threshold"`
}

type GasConfig struct {
	// EstimateTTLSeconds 同一输入在该窗口内返回相同估算结果
	EstimateTTLSeconds int `mapstructure:"estimate_ttl_seconds"`
}

type DBConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
}

type MQConfig struct {
	Type      string   `mapstructure:"type"` // "kafka", "redis" or "" (禁用)
	Brokers   []string `mapstructure:"brokers"`
	RedisAddr string   `mapstructure:"redis_addr"`
	Topic     string   `mapstructure:"topic"`
}

var Global Config

func Init() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// 环境变量设置
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Printf("Warning: Config file not found, using defaults and environment variables")
		} else {
			log.Fatalf("Fatal error config file: %s \n", err)
		}
	}

	if err := viper.Unmarshal(&Global); err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}

	log.Printf("Configuration loaded successfully. Env: %s", Global.App.Env)
}

// Chain 按名称查找链配置，找不到时返回 nil。
func (c *Config) Chain(name string) *ChainConfig {
	for i := range c.Chains {
		if strings.EqualFold(c.Chains[i].Name, name) {
			return &c.Chains[i]
		}
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("app.env", "development")
	viper.SetDefault("app.http_port", "8080")

	viper.SetDefault("custody.key_dir", "keys")
	viper.SetDefault("custody.gate_type", "passcode")

	viper.SetDefault("chains", []map[string]interface{}{
		{
			"name":           "ETH",
			"chain_id":       1,
			"rpc_url":        "http://localhost:8545",
			"currency":       "ETH",
			"decimals":       18,
			"min_gas_limit":  21000,
			"call_gas_limit": 100000,
			"default_fee":    "1000000000",
			"default_tip":    "100000000",
		},
	})

	// 默认阈值 1 ETH (Wei)
	viper.SetDefault("risk.high_value_threshold", "1000000000000000000")
	viper.SetDefault("gas.estimate_ttl_seconds", 15)

	viper.SetDefault("db.enabled", false)
	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", "5432")
	viper.SetDefault("db.user", "wallet_user")
	viper.SetDefault("db.password", "wallet_password")
	viper.SetDefault("db.name", "wallet_db")

	viper.SetDefault("mq.type", "")
	viper.SetDefault("mq.brokers", []string{"localhost:9092"})
	viper.SetDefault("mq.redis_addr", "localhost:6379")
	viper.SetDefault("mq.topic", "wallet_events_broadcast")
}
