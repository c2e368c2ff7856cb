package logic

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"time"

	"github.com/MERAJ-droid/SoLverse/internal/contract"
	"github.com/MERAJ-droid/SoLverse/internal/logger"
	"github.com/MERAJ-droid/SoLverse/internal/model"
	"github.com/ethereum/go-ethereum/common"
	"gorm.io/gorm"
)

// ContentLogic 内容发布与凭证浏览业务逻辑
type ContentLogic struct {
	db      *gorm.DB
	token   contract.ContentToken
	gateway string
	client  *http.Client
}

// NewContentLogic 创建内容业务逻辑
func NewContentLogic(db *gorm.DB, token contract.ContentToken, gateway string) *ContentLogic {
	return &ContentLogic{
		db:      db,
		token:   token,
		gateway: gateway,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Publish 记录一次内容发布，客户端铸造ContentNFT后回传
func (c *ContentLogic) Publish(wallet, title, description, tokenURI, txHash string) (*model.ContentModel, error) {
	if tokenURI == "" {
		return nil, fmt.Errorf("%w: 元数据URI不能为空", ErrValidation)
	}

	user, err := NewUserLogic(c.db).GetByWallet(wallet)
	if err != nil {
		return nil, err
	}

	content := model.ContentModel{
		UserId:      user.Id,
		Title:       title,
		Description: description,
		TokenURI:    tokenURI,
		TxHash:      txHash,
	}
	if err := c.db.Create(&content).Error; err != nil {
		return nil, fmt.Errorf("保存内容发布失败: %w", err)
	}
	return &content, nil
}

// Certificate 钱包持有的内容凭证
type Certificate struct {
	TokenId  string                 `json:"token_id"`
	TokenURI string                 `json:"token_uri"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// ListCertificates 枚举钱包持有的全部内容凭证并拉取元数据
func (c *ContentLogic) ListCertificates(ctx context.Context, wallet string) ([]Certificate, error) {
	owner := common.HexToAddress(wallet)

	balance, err := c.token.BalanceOf(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRemoteCall, err)
	}

	total := balance.Int64()
	certificates := make([]Certificate, 0, total)
	for i := int64(0); i < total; i++ {
		tokenId, err := c.token.TokenOfOwnerByIndex(ctx, owner, big.NewInt(i))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrRemoteCall, err)
		}

		uri, err := c.token.TokenURI(ctx, tokenId)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrRemoteCall, err)
		}
		uri = RewriteIpfsURL(uri, c.gateway)

		certificate := Certificate{
			TokenId:  tokenId.String(),
			TokenURI: uri,
		}
		// 元数据拉取尽力而为，网关故障不影响凭证列表
		if metadata, err := c.fetchMetadata(ctx, uri); err != nil {
			logger.Warn("Failed to fetch metadata for token %s: %v", tokenId.String(), err)
		} else {
			certificate.Metadata = metadata
		}
		certificates = append(certificates, certificate)
	}
	return certificates, nil
}

// fetchMetadata 拉取链下JSON元数据
func (c *ContentLogic) fetchMetadata(ctx context.Context, uri string) (map[string]interface{}, error) {
	if uri == "" {
		return nil, fmt.Errorf("empty token URI")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}

	var metadata map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&metadata); err != nil {
		return nil, err
	}
	return metadata, nil
}

// RewriteIpfsURL 把ipfs://地址重写为HTTPS网关地址
func RewriteIpfsURL(uri, gateway string) string {
	if !strings.HasPrefix(uri, "ipfs://") {
		return uri
	}
	return gateway + strings.TrimPrefix(uri, "ipfs://")
}
