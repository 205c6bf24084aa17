package models_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/migillett/TranscodeTycoonGame/internal/models"
)

func TestUserPatchValidate(t *testing.T) {
	longest := strings.Repeat("a", models.MaxUsernameLength)
	tooLong := longest + "b"

	tests := []struct {
		name    string
		patch   models.UserPatch
		wantErr bool
	}{
		{"nil username", models.UserPatch{}, false},
		{"short username", models.UserPatch{Username: ptr("render_gremlin")}, false},
		{"exactly max length", models.UserPatch{Username: ptr(longest)}, false},
		{"one over max length", models.UserPatch{Username: ptr(tooLong)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.patch.Validate()
			if tt.wantErr {
				require.ErrorIs(t, err, models.ErrUsernameTooLong)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestTotalRevenue(t *testing.T) {
	user := &models.User{
		CompletedJobs: []*models.QueuedJob{
			{Job: models.Job{Payout: 1.5}},
			{Job: models.Job{Payout: 10.25}},
		},
	}
	assert.Equal(t, 11.75, user.TotalRevenue())

	assert.Equal(t, 0.0, (&models.User{}).TotalRevenue())
}

func TestUserMarshalIncludesDerivedFields(t *testing.T) {
	user := &models.User{
		UserID:   "usr0123456789",
		Funds:    40.0,
		Computer: models.NewStarterComputer(),
		CompletedJobs: []*models.QueuedJob{
			{Job: models.Job{Payout: 2.5}},
		},
	}

	data, err := json.Marshal(user)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 2.5, decoded["total_revenue"])

	computer, ok := decoded["computer"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, 4.0, computer["processing_power"])
}

func TestUserCloneIsDeep(t *testing.T) {
	queued := &models.QueuedJob{
		Job:                   models.Job{JobID: "ren00000001", Status: models.JobStatusInProgress},
		EstimatedCompletionTS: time.Now(),
		RenderTimeSeconds:     100,
	}
	user := &models.User{
		UserID:   "usrabcdef0123",
		Funds:    40.0,
		Computer: models.NewStarterComputer(),
		JobQueue: []*models.QueuedJob{queued},
	}

	clone := user.Clone()
	clone.Funds = 0
	clone.JobQueue[0].Status = models.JobStatusCompleted
	clone.Computer.Hardware[models.HardwareRAM].Value = 64

	assert.Equal(t, 40.0, user.Funds)
	assert.Equal(t, models.JobStatusInProgress, user.JobQueue[0].Status)
	assert.Equal(t, 2.0, user.Computer.Hardware[models.HardwareRAM].Value)
}

func TestPublicUser(t *testing.T) {
	user := &models.User{
		UserID:   "usrabcdef0123",
		Username: "gremlin",
		Funds:    123.45,
		Computer: models.NewStarterComputer(),
		CompletedJobs: []*models.QueuedJob{
			{Job: models.Job{Payout: 1}},
			{Job: models.Job{Payout: 2}},
		},
	}

	pub := user.Public()
	assert.Equal(t, "usrabcdef0123", pub.UserID)
	assert.Equal(t, "gremlin", pub.Username)
	assert.Equal(t, 2, pub.CompletedJobs)
	assert.Equal(t, 4.0, pub.ProcessingPower)
	assert.Equal(t, 123.45, pub.Funds)
}

func ptr(s string) *string {
	return &s
}
