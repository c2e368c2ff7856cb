package logic

import (
	"context"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeContentToken implements contract.ContentToken.
type fakeContentToken struct {
	tokens map[common.Address][]*big.Int
	uris   map[string]string
	err    error
}

func (f *fakeContentToken) BalanceOf(_ context.Context, owner common.Address) (*big.Int, error) {
	if f.err != nil {
		return nil, f.err
	}
	return big.NewInt(int64(len(f.tokens[owner]))), nil
}

func (f *fakeContentToken) TokenOfOwnerByIndex(_ context.Context, owner common.Address, index *big.Int) (*big.Int, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.tokens[owner][index.Int64()], nil
}

func (f *fakeContentToken) TokenURI(_ context.Context, tokenId *big.Int) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.uris[tokenId.String()], nil
}

// TestPublishContent 发布记录落库并出现在个人主页
func TestPublishContent(t *testing.T) {
	db := testDB(t)
	contentLogic := NewContentLogic(db, &fakeContentToken{}, "https://ipfs.io/ipfs/")
	user := createUser(t, db, "0x0000000000000000000000000000000000000054")

	content, err := contentLogic.Publish(user.Wallet, "Post", "first post", "ipfs://QmHash/1.json", "0xmint")
	require.NoError(t, err)
	assert.Equal(t, user.Id, content.UserId)
	assert.NotEmpty(t, content.Id)
	assert.False(t, content.Timestamp.IsZero())

	profile, err := NewUserLogic(db).GetProfile(user.Wallet)
	require.NoError(t, err)
	require.Len(t, profile.Content, 1)
	assert.Equal(t, content.Id, profile.Content[0].Id)

	// 缺少元数据URI
	_, err = contentLogic.Publish(user.Wallet, "Post", "", "", "0xmint")
	assert.ErrorIs(t, err, ErrValidation)

	// 未注册钱包
	_, err = contentLogic.Publish("0x00000000000000000000000000000000000000ff", "Post", "", "ipfs://QmHash/2.json", "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRewriteIpfsURL(t *testing.T) {
	gateway := "https://ipfs.io/ipfs/"

	assert.Equal(t, "https://ipfs.io/ipfs/QmHash/1.json", RewriteIpfsURL("ipfs://QmHash/1.json", gateway))
	// 非ipfs协议原样返回
	assert.Equal(t, "https://example.com/1.json", RewriteIpfsURL("https://example.com/1.json", gateway))
	assert.Equal(t, "", RewriteIpfsURL("", gateway))
}

func TestListCertificates(t *testing.T) {
	// 网关返回元数据JSON
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"Solverse Cert #7","dao":"DAO X"}`))
	}))
	defer server.Close()

	owner := common.HexToAddress("0x0000000000000000000000000000000000000050")
	token := &fakeContentToken{
		tokens: map[common.Address][]*big.Int{owner: {big.NewInt(7)}},
		uris:   map[string]string{"7": server.URL + "/7.json"},
	}

	certificates, err := NewContentLogic(testDB(t), token, "https://ipfs.io/ipfs/").ListCertificates(context.Background(), owner.Hex())
	require.NoError(t, err)
	require.Len(t, certificates, 1)
	assert.Equal(t, "7", certificates[0].TokenId)
	assert.Equal(t, server.URL+"/7.json", certificates[0].TokenURI)
	assert.Equal(t, "Solverse Cert #7", certificates[0].Metadata["name"])
}

// TestListCertificatesGatewayDown 元数据拉取失败不影响凭证列表
func TestListCertificatesGatewayDown(t *testing.T) {
	owner := common.HexToAddress("0x0000000000000000000000000000000000000051")
	token := &fakeContentToken{
		tokens: map[common.Address][]*big.Int{owner: {big.NewInt(1), big.NewInt(2)}},
		uris: map[string]string{
			"1": "http://127.0.0.1:1/unreachable.json",
			"2": "ipfs://QmHash/2.json",
		},
	}

	certificates, err := NewContentLogic(testDB(t), token, "http://127.0.0.1:1/ipfs/").ListCertificates(context.Background(), owner.Hex())
	require.NoError(t, err)
	require.Len(t, certificates, 2)
	assert.Nil(t, certificates[0].Metadata)
	// ipfs地址已重写为网关地址
	assert.Equal(t, "http://127.0.0.1:1/ipfs/QmHash/2.json", certificates[1].TokenURI)
}

func TestListCertificatesChainDown(t *testing.T) {
	token := &fakeContentToken{err: errChainDown}

	_, err := NewContentLogic(testDB(t), token, "https://ipfs.io/ipfs/").ListCertificates(
		context.Background(), "0x0000000000000000000000000000000000000052")
	assert.ErrorIs(t, err, ErrRemoteCall)
}

func TestListCertificatesEmptyWallet(t *testing.T) {
	token := &fakeContentToken{tokens: map[common.Address][]*big.Int{}, uris: map[string]string{}}

	certificates, err := NewContentLogic(testDB(t), token, "https://ipfs.io/ipfs/").ListCertificates(
		context.Background(), "0x0000000000000000000000000000000000000053")
	require.NoError(t, err)
	assert.Empty(t, certificates)
}
