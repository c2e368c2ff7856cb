package config

import (
	"math/big"
	"strings"

	"github.com/MERAJ-droid/SoLverse/internal/logger"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Chain    ChainConfig    `mapstructure:"chain"`
	Dao      DaoConfig      `mapstructure:"dao"`
	Task     TaskConfig     `mapstructure:"task"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// ChainConfig 链配置
type ChainConfig struct {
	ChainId     int64                     `mapstructure:"chain_id"`     // 链ID
	RpcUrl      string                    `mapstructure:"rpc_url"`      // RPC节点URL
	PrivateKey  string                    `mapstructure:"private_key"`  // 服务端私钥
	Contracts   map[string]ContractConfig `mapstructure:"contracts"`    // 合约配置 (oracle/soulbound/content)
	IpfsGateway string                    `mapstructure:"ipfs_gateway"` // ipfs://metadata重写网关
}

// ContractConfig 单个合约配置
type ContractConfig struct {
	Address      string `mapstructure:"address"`       // 合约地址
	ArtifactPath string `mapstructure:"artifact_path"` // hardhat编译产物路径（部署时使用）
}

// DaoConfig DAO治理参数
// 原前端把这些常量写死在组件里，这里统一收到配置注入业务层
type DaoConfig struct {
	OwnerAddress           string  `mapstructure:"owner_address"`             // 管理员钱包地址
	VerificationStakeWei   string  `mapstructure:"verification_stake_wei"`    // 单次验证质押金额(wei)
	MinVerificationsToMint int64   `mapstructure:"min_verifications_to_mint"` // 铸造SBT所需验证数
	VerifierBadgeThreshold int64   `mapstructure:"verifier_badge_threshold"`  // 验证者徽章最低验证次数
	BadgeTiers             []int64 `mapstructure:"badge_tiers"`               // 徽章梯度 5/20/50
	StakeDeadlineMinutes   int     `mapstructure:"stake_deadline_minutes"`    // 质押后签名超时时间
	ScoreReadTimeoutSec    int     `mapstructure:"score_read_timeout_sec"`    // 信任分读取超时
}

type TaskConfig struct {
	ScoreRefreshInterval int `mapstructure:"score_refresh_interval"` // 秒
	ReaperInterval       int `mapstructure:"reaper_interval"`        // 秒
	OracleRatePerSec     int `mapstructure:"oracle_rate_per_sec"`    // 信任分读取限速
	PoolSize             int `mapstructure:"pool_size"`              // 协程池大小
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // 日志级别: debug, info, warn, error, fatal
	Output string `mapstructure:"output"` // 输出目标: stdout, file
	File   string `mapstructure:"file"`   // 日志文件路径
}

// StakeAmount 解析质押金额
func (d DaoConfig) StakeAmount() *big.Int {
	amount, ok := new(big.Int).SetString(d.VerificationStakeWei, 10)
	if !ok {
		return big.NewInt(0)
	}
	return amount
}

// IsOwner 判断钱包是否为管理员（大小写不敏感）
func (d DaoConfig) IsOwner(wallet string) bool {
	return wallet != "" && strings.EqualFold(wallet, d.OwnerAddress)
}

func Load() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/solverse")

	// 设置默认值
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "")
	viper.SetDefault("database.dbname", "solverse")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("chain.rpc_url", "https://avalanche-fuji-c-chain-rpc.publicnode.com")
	viper.SetDefault("chain.ipfs_gateway", "https://gateway.pinata.cloud/ipfs/")
	viper.SetDefault("dao.owner_address", "0xfF01A2491F19A0342f6B6b490D9ffDE0320306A1")
	viper.SetDefault("dao.verification_stake_wei", "10000000000000000") // 0.01 AVAX
	viper.SetDefault("dao.min_verifications_to_mint", 3)
	viper.SetDefault("dao.verifier_badge_threshold", 5)
	viper.SetDefault("dao.badge_tiers", []int64{5, 20, 50})
	viper.SetDefault("dao.stake_deadline_minutes", 60)
	viper.SetDefault("dao.score_read_timeout_sec", 5)
	viper.SetDefault("task.score_refresh_interval", 300)
	viper.SetDefault("task.reaper_interval", 600)
	viper.SetDefault("task.oracle_rate_per_sec", 5)
	viper.SetDefault("task.pool_size", 8)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.output", "stdout")
	viper.SetDefault("log.file", "logs/app.log")

	// 自动读取环境变量
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logger.Warn("Warning: Could not read config file: %v", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		logger.Fatal("Unable to decode config into struct: %v", err)
	}

	return &config
}
