package ethereum

import (
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"github.com/MERAJ-droid/SoLverse/internal/config"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

// Client 以太坊客户端封装
type Client struct {
	client     *ethclient.Client
	privateKey *ecdsa.PrivateKey
	chainId    *big.Int
}

func Init(cfg config.ChainConfig) (*Client, error) {
	// 连接以太坊客户端
	client, err := ethclient.Dial(cfg.RpcUrl)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ethereum client: %w", err)
	}

	c := &Client{
		client:  client,
		chainId: big.NewInt(cfg.ChainId),
	}

	// 解析私钥（只读部署可不配置）
	if cfg.PrivateKey != "" {
		privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKey, "0x"))
		if err != nil {
			return nil, fmt.Errorf("failed to parse private key: %w", err)
		}
		c.privateKey = privateKey
	}

	return c, nil
}

// EthClient 获取底层客户端
func (c *Client) EthClient() *ethclient.Client {
	return c.client
}

// GetAccountAddress 获取账户地址
func (c *Client) GetAccountAddress() common.Address {
	if c.privateKey == nil {
		return common.Address{}
	}
	return crypto.PubkeyToAddress(c.privateKey.PublicKey)
}

// GetAuth 获取交易授权
func (c *Client) GetAuth() (*bind.TransactOpts, error) {
	if c.privateKey == nil {
		return nil, fmt.Errorf("no private key configured")
	}
	return bind.NewKeyedTransactorWithChainID(c.privateKey, c.chainId)
}

// SignMessage 对消息做EIP-191个人签名，返回十六进制签名串
func (c *Client) SignMessage(message string) (string, error) {
	if c.privateKey == nil {
		return "", fmt.Errorf("no private key configured")
	}

	prefixed := fmt.Sprintf("\x19Ethereum Signed Message:\n%d%s", len(message), message)
	hash := crypto.Keccak256Hash([]byte(prefixed))

	sig, err := crypto.Sign(hash.Bytes(), c.privateKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign message: %w", err)
	}

	// 恢复字节调整为以太坊惯例的27/28
	sig[64] += 27
	return hexutil.Encode(sig), nil
}

// Close 关闭客户端连接
func (c *Client) Close() {
	c.client.Close()
}
