package roles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanManage(t *testing.T) {
	for _, id := range []string{"462", "508", "1639", "555", "525", "1665"} {
		assert.True(t, CanManage(id), "designation %s should have management access", id)
	}
	assert.False(t, CanManage("999"))
	assert.False(t, CanManage(""))
}

func TestCanTag(t *testing.T) {
	assert.True(t, CanTag(DesignationWelfareOfficer))
	assert.False(t, CanTag(DesignationAdmin))
	assert.False(t, CanTag(DesignationHRManager))
}

func TestCanApprove(t *testing.T) {
	for _, id := range []string{"462", "1639", "555"} {
		assert.True(t, CanApprove(id), "designation %s should be HR admin", id)
	}
	// Welfare Officers tag but never approve.
	assert.False(t, CanApprove(DesignationWelfareOfficer))
	assert.False(t, CanApprove(DesignationHRExecutive))
	assert.False(t, CanApprove(DesignationHRManager))
}
