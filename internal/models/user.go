package models

import (
	"encoding/json"
	"fmt"
)

const MaxUsernameLength = 50

var ErrUsernameTooLong = fmt.Errorf("username exceeds %d characters", MaxUsernameLength)

// User is an account. The user_id is derived from the account's secret token
// by a one-way hash; the raw token is never stored.
type User struct {
	UserID        string       `json:"user_id"`
	Username      string       `json:"username"`
	Funds         float64      `json:"funds"`
	Computer      *Computer    `json:"computer"`
	JobQueue      []*QueuedJob `json:"job_queue"`
	CompletedJobs []*QueuedJob `json:"completed_jobs"`
}

// TotalRevenue is the lifetime sum of completed job payouts.
func (u *User) TotalRevenue() float64 {
	total := 0.0
	for _, job := range u.CompletedJobs {
		total += job.Payout
	}
	return Round2(total)
}

func (u *User) MarshalJSON() ([]byte, error) {
	type alias User
	return json.Marshal(struct {
		*alias
		TotalRevenue float64 `json:"total_revenue"`
	}{(*alias)(u), u.TotalRevenue()})
}

// Clone deep-copies the user so views handed to callers never alias engine
// state.
func (u *User) Clone() *User {
	clone := &User{
		UserID:   u.UserID,
		Username: u.Username,
		Funds:    u.Funds,
	}
	if u.Computer != nil {
		clone.Computer = u.Computer.Clone()
	}
	clone.JobQueue = cloneQueue(u.JobQueue)
	clone.CompletedJobs = cloneQueue(u.CompletedJobs)
	return clone
}

func cloneQueue(jobs []*QueuedJob) []*QueuedJob {
	if jobs == nil {
		return nil
	}
	out := make([]*QueuedJob, len(jobs))
	for i, job := range jobs {
		j := *job
		out[i] = &j
	}
	return out
}

// Public strips the account down to what other players may see.
func (u *User) Public() *PublicUser {
	pub := &PublicUser{
		UserID:        u.UserID,
		Username:      u.Username,
		CompletedJobs: len(u.CompletedJobs),
		Funds:         u.Funds,
	}
	if u.Computer != nil {
		pub.ProcessingPower = u.Computer.ProcessingPower()
	}
	return pub
}

// UserPatch carries partial updates. A nil field means leave unchanged.
type UserPatch struct {
	Username *string `json:"username"`
}

func (p *UserPatch) Validate() error {
	if p.Username != nil && len(*p.Username) > MaxUsernameLength {
		return ErrUsernameTooLong
	}
	return nil
}

type PublicUser struct {
	UserID          string  `json:"user_id"`
	Username        string  `json:"username"`
	CompletedJobs   int     `json:"completed_jobs"`
	ProcessingPower float64 `json:"processing_power"`
	Funds           float64 `json:"funds"`
}

type LeaderboardEntry struct {
	Rank int `json:"rank"`
	PublicUser
}

type Leaderboard struct {
	Total int                `json:"total"`
	Start int                `json:"start"`
	Users []LeaderboardEntry `json:"users"`
}

// RegisterResponse is returned exactly once per account; the token cannot be
// recovered afterwards.
type RegisterResponse struct {
	Token    string `json:"token"`
	UserInfo *User  `json:"user_info"`
}
