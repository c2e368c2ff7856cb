package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsOwner(t *testing.T) {
	dao := DaoConfig{OwnerAddress: "0xfF01A2491F19A0342f6B6b490D9ffDE0320306A1"}

	assert.True(t, dao.IsOwner("0xfF01A2491F19A0342f6B6b490D9ffDE0320306A1"))
	// 大小写不敏感
	assert.True(t, dao.IsOwner("0xff01a2491f19a0342f6b6b490d9ffde0320306a1"))
	assert.False(t, dao.IsOwner("0x0000000000000000000000000000000000000001"))
	assert.False(t, dao.IsOwner(""))
}

func TestStakeAmount(t *testing.T) {
	dao := DaoConfig{VerificationStakeWei: "10000000000000000"}
	assert.Equal(t, "10000000000000000", dao.StakeAmount().String())

	// 非法配置按0处理
	dao.VerificationStakeWei = "not-a-number"
	assert.Equal(t, "0", dao.StakeAmount().String())
}
