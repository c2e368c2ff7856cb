package logic

import (
	"testing"

	"github.com/MERAJ-droid/SoLverse/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncUserIdempotent(t *testing.T) {
	db := testDB(t)
	userLogic := NewUserLogic(db)

	first, err := userLogic.SyncUser("0xABCDEF0123456789abcdef0123456789ABCDEF01", "alice", "")
	require.NoError(t, err)

	// 同一钱包再次同步不产生新行
	second, err := userLogic.SyncUser("0xabcdef0123456789abcdef0123456789abcdef01", "", "alice.eth")
	require.NoError(t, err)
	assert.Equal(t, first.Id, second.Id)

	var count int64
	require.NoError(t, db.Model(&model.UserModel{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// 钱包统一存小写
	var user model.UserModel
	require.NoError(t, db.First(&user, "id = ?", first.Id).Error)
	assert.Equal(t, "0xabcdef0123456789abcdef0123456789abcdef01", user.Wallet)
	assert.Equal(t, "alice", user.DisplayName)
	assert.Equal(t, "alice.eth", user.Ens)
}

func TestSyncUserEmptyWallet(t *testing.T) {
	db := testDB(t)

	_, err := NewUserLogic(db).SyncUser("", "alice", "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestGetByWalletNotFound(t *testing.T) {
	db := testDB(t)

	_, err := NewUserLogic(db).GetByWallet("0x0000000000000000000000000000000000000001")
	assert.ErrorIs(t, err, ErrNotFound)
}

// TestGetProfile 个人主页聚合: 验证历史、SBT、内容发布和贡献
func TestGetProfile(t *testing.T) {
	db := testDB(t)
	userLogic := NewUserLogic(db)

	user := createUser(t, db, "0x0000000000000000000000000000000000000003")
	author := createUser(t, db, "0x0000000000000000000000000000000000000004")
	contribution := createContribution(t, db, author.Id, "DAO X", "r")
	createVerification(t, db, contribution.Id, author.Id, user.Id)
	own := createContribution(t, db, user.Id, "DAO Y", "docs")

	require.NoError(t, db.Create(&model.SoulboundModel{
		UserId: user.Id, Dao: "DAO Y", Reason: "docs", SbtTxHash: "0xtx",
	}).Error)
	require.NoError(t, db.Create(&model.ContentModel{
		UserId: user.Id, Title: "Post", TokenURI: "ipfs://QmHash/1.json", TxHash: "0xmint",
	}).Error)

	profile, err := userLogic.GetProfile(user.Wallet)
	require.NoError(t, err)
	assert.Equal(t, user.Id, profile.User.Id)
	require.Len(t, profile.Verifications, 1)
	assert.Equal(t, contribution.Id, profile.Verifications[0].ContributionId)
	require.Len(t, profile.Soulbounds, 1)
	require.Len(t, profile.Content, 1)
	assert.Equal(t, "ipfs://QmHash/1.json", profile.Content[0].TokenURI)
	require.Len(t, profile.Contributions, 1)
	assert.Equal(t, own.Id, profile.Contributions[0].Id)
}

func TestUpdateProfile(t *testing.T) {
	db := testDB(t)
	userLogic := NewUserLogic(db)
	user := createUser(t, db, "0x0000000000000000000000000000000000000002")

	bio := "DAO builder"
	updated, err := userLogic.UpdateProfile(user.Wallet, nil, nil, &bio)
	require.NoError(t, err)
	assert.Equal(t, "DAO builder", updated.Bio)

	// 空更新被拒绝
	_, err = userLogic.UpdateProfile(user.Wallet, nil, nil, nil)
	assert.ErrorIs(t, err, ErrValidation)
}
