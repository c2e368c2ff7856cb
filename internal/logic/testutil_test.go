package logic

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"testing"

	"github.com/MERAJ-droid/SoLverse/internal/config"
	"github.com/MERAJ-droid/SoLverse/internal/model"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ---------------------------------------------------------------------------
// Test fixtures
// ---------------------------------------------------------------------------

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.UserModel{},
		&model.ContributionModel{},
		&model.VerificationModel{},
		&model.SoulboundModel{},
		&model.ContentModel{},
		&model.ScoreSnapshotModel{},
	))
	return db
}

func testDaoConfig() config.DaoConfig {
	return config.DaoConfig{
		OwnerAddress:           "0xfF01A2491F19A0342f6B6b490D9ffDE0320306A1",
		VerificationStakeWei:   "10000000000000000",
		MinVerificationsToMint: 3,
		VerifierBadgeThreshold: 5,
		BadgeTiers:             []int64{5, 20, 50},
		StakeDeadlineMinutes:   60,
		ScoreReadTimeoutSec:    5,
	}
}

func createUser(t *testing.T, db *gorm.DB, wallet string) *model.UserModel {
	t.Helper()
	user, err := NewUserLogic(db).SyncUser(wallet, "", "")
	require.NoError(t, err)
	return user
}

func createContribution(t *testing.T, db *gorm.DB, userId, dao, reason string) *model.ContributionModel {
	t.Helper()
	contribution := &model.ContributionModel{
		UserId: userId,
		Dao:    dao,
		Reason: reason,
		Proof:  "https://github.com/example/pull/1",
		Status: model.ContributionStatusPending,
	}
	require.NoError(t, db.Create(contribution).Error)
	return contribution
}

func createVerification(t *testing.T, db *gorm.DB, contributionId, subjectId, verifierId string) *model.VerificationModel {
	t.Helper()
	verification := &model.VerificationModel{
		ContributionId: contributionId,
		UserId:         subjectId,
		VerifierId:     verifierId,
		Step:           model.VerificationStepSigned,
		Signature:      "0xsig",
	}
	require.NoError(t, db.Create(verification).Error)
	return verification
}

// ---------------------------------------------------------------------------
// Contract fakes
// ---------------------------------------------------------------------------

type submitCall struct {
	Subject        common.Address
	Reason         string
	ContributionId string
	Stake          *big.Int
}

type claimCall struct {
	ContributionId string
	Contributor    common.Address
}

type slashCall struct {
	ContributionId string
	Verifier       common.Address
}

// fakeOracle implements contract.Oracle.
type fakeOracle struct {
	scores   map[common.Address]*big.Int
	stakes   map[string]*big.Int // contributionId + "_" + verifier hex
	balances map[string]*big.Int
	feeBps   *big.Int

	submitCalls []submitCall
	claimCalls  []claimCall
	slashCalls  []slashCall

	submitErr error
	claimErr  error
	slashErr  error
	readErr   error

	// 质押成功后、调用方落库前触发，用于模拟并发竞争
	onSubmit func()
}

func newFakeOracle() *fakeOracle {
	return &fakeOracle{
		scores:   make(map[common.Address]*big.Int),
		stakes:   make(map[string]*big.Int),
		balances: make(map[string]*big.Int),
		feeBps:   big.NewInt(500),
	}
}

func stakeKey(contributionId string, verifier common.Address) string {
	return contributionId + "_" + verifier.Hex()
}

func (f *fakeOracle) GetTrustScore(_ context.Context, user common.Address) (*big.Int, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	if score, ok := f.scores[user]; ok {
		return score, nil
	}
	return big.NewInt(0), nil
}

func (f *fakeOracle) GetVerifierStake(_ context.Context, contributionId string, verifier common.Address) (*big.Int, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	if stake, ok := f.stakes[stakeKey(contributionId, verifier)]; ok {
		return stake, nil
	}
	return big.NewInt(0), nil
}

func (f *fakeOracle) GetContributionBalance(_ context.Context, contributionId string) (*big.Int, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	if balance, ok := f.balances[contributionId]; ok {
		return balance, nil
	}
	return big.NewInt(0), nil
}

func (f *fakeOracle) GetDaoFeeBps(_ context.Context) (*big.Int, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	return f.feeBps, nil
}

func (f *fakeOracle) SubmitVerification(_ context.Context, subject common.Address, reason, contributionId string, stake *big.Int) (string, error) {
	if f.submitErr != nil {
		return "", f.submitErr
	}
	f.submitCalls = append(f.submitCalls, submitCall{subject, reason, contributionId, stake})
	if f.onSubmit != nil {
		f.onSubmit()
	}
	return "0xstaketx", nil
}

func (f *fakeOracle) ClaimReward(_ context.Context, contributionId string, contributor common.Address) (string, error) {
	if f.claimErr != nil {
		return "", f.claimErr
	}
	f.claimCalls = append(f.claimCalls, claimCall{contributionId, contributor})
	return "0xclaimtx", nil
}

func (f *fakeOracle) SlashVerifier(_ context.Context, contributionId string, verifier common.Address) (string, error) {
	if f.slashErr != nil {
		return "", f.slashErr
	}
	f.slashCalls = append(f.slashCalls, slashCall{contributionId, verifier})
	return "0xslashtx", nil
}

type mintCall struct {
	To       common.Address
	Dao      string
	Reason   string
	TokenURI string
}

// fakeMinter implements contract.SoulboundMinter.
type fakeMinter struct {
	mintCalls []mintCall
	mintErr   error
}

func (f *fakeMinter) Mint(_ context.Context, to common.Address, dao, reason, tokenURI string) (string, error) {
	if f.mintErr != nil {
		return "", f.mintErr
	}
	f.mintCalls = append(f.mintCalls, mintCall{to, dao, reason, tokenURI})
	return "0xminttx", nil
}

// fakeSigner implements Signer.
type fakeSigner struct {
	signed  []string
	signErr error
}

func (f *fakeSigner) SignMessage(message string) (string, error) {
	if f.signErr != nil {
		return "", f.signErr
	}
	f.signed = append(f.signed, message)
	return "0xsignature", nil
}

var errChainDown = errors.New("rpc unreachable")
