package services

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/migillett/TranscodeTycoonGame/internal/clock"
	"github.com/migillett/TranscodeTycoonGame/internal/config"
	"github.com/migillett/TranscodeTycoonGame/internal/models"
	"github.com/migillett/TranscodeTycoonGame/internal/telemetry"
	"github.com/migillett/TranscodeTycoonGame/pkg/logger"
)

var (
	// ErrItemNotFound covers unknown users and unknown jobs alike; for jobs
	// it also covers "already claimed", which callers cannot distinguish.
	ErrItemNotFound = errors.New("item not found")

	// ErrInsufficientResources covers both funds and queue-capacity
	// shortfalls.
	ErrInsufficientResources = errors.New("insufficient resources")
)

// SnapshotStore is the persistence boundary. Saves are best effort: failures
// are logged and never fail the in-memory operation.
type SnapshotStore interface {
	Save(users map[string]*models.User) error
	Load() (map[string]*models.User, error)
}

// GameService owns the whole game state: the account map and the shared board
// of unclaimed jobs. All time-based transitions are settled lazily against the
// injected clock at read and write boundaries; there is no background
// scheduler. A single mutex serializes every mutation, which is plenty at the
// expected concurrency.
type GameService struct {
	mu    sync.Mutex
	cfg   config.GameConfig
	clk   clock.Clock
	store SnapshotStore
	rng   *rand.Rand

	users map[string]*models.User
	jobs  map[string]*models.Job
}

func NewGameService(cfg config.GameConfig, clk clock.Clock, store SnapshotStore) *GameService {
	s := &GameService{
		cfg:   cfg,
		clk:   clk,
		store: store,
		rng:   rand.New(rand.NewSource(clk.Now().UnixNano())),
		users: make(map[string]*models.User),
		jobs:  make(map[string]*models.Job),
	}
	s.loadSnapshot()
	return s
}

func (s *GameService) loadSnapshot() {
	log := logger.WithComponent("game")
	if s.store == nil {
		return
	}
	users, err := s.store.Load()
	if err != nil {
		log.Warn().Err(err).Msg("Snapshot load failed, starting with empty state")
		return
	}
	if users == nil {
		log.Info().Msg("No previous snapshot found, starting with empty state")
		return
	}
	s.users = users
	log.Info().Int("users", len(users)).Msg("Loaded user snapshot")
}

// persist writes a snapshot taken under the lock. Callers must have released
// the lock first so a slow disk never blocks the game.
func (s *GameService) persist(snapshot map[string]*models.User) {
	if s.store == nil || snapshot == nil {
		return
	}
	if err := s.store.Save(snapshot); err != nil {
		lg := logger.WithComponent("game")
		lg.Error().Err(err).Msg("Snapshot save failed")
	}
}

func (s *GameService) cloneUsersLocked() map[string]*models.User {
	snapshot := make(map[string]*models.User, len(s.users))
	for id, user := range s.users {
		snapshot[id] = user.Clone()
	}
	return snapshot
}

// Flush persists the current state immediately. Called on shutdown.
func (s *GameService) Flush() {
	s.mu.Lock()
	snapshot := s.cloneUsersLocked()
	s.mu.Unlock()
	s.persist(snapshot)
}

// HashToken derives the public user id from a secret token. One-way: the raw
// token is never stored, only this digest prefix.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "usr" + hex.EncodeToString(sum[:])[:10]
}

// Authenticate resolves a bearer token to a known user id.
func (s *GameService) Authenticate(token string) (string, error) {
	userID := HashToken(token)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[userID]; !ok {
		return "", ErrItemNotFound
	}
	return userID, nil
}

// CreateUser registers a fresh account with starter hardware and initial
// funds. The secret token is returned exactly once.
func (s *GameService) CreateUser() *models.RegisterResponse {
	token := uuid.NewString()
	user := &models.User{
		UserID:   HashToken(token),
		Funds:    s.cfg.InitialFunds,
		Computer: models.NewStarterComputer(),
	}

	s.mu.Lock()
	s.users[user.UserID] = user
	view := user.Clone()
	snapshot := s.cloneUsersLocked()
	s.mu.Unlock()

	telemetry.UsersRegistered.Inc()
	lg := logger.WithComponent("game")
	lg.Info().Str("user_id", user.UserID).Msg("Created new user")
	s.persist(snapshot)

	return &models.RegisterResponse{Token: token, UserInfo: view}
}

// GetUser settles any finished jobs and returns the caller's account view.
func (s *GameService) GetUser(userID string) (*models.User, error) {
	s.mu.Lock()
	user, ok := s.users[userID]
	if !ok {
		s.mu.Unlock()
		return nil, ErrItemNotFound
	}
	changed := s.reconcileLocked(user)
	view := user.Clone()
	var snapshot map[string]*models.User
	if changed {
		snapshot = s.cloneUsersLocked()
	}
	s.mu.Unlock()

	s.persist(snapshot)
	return view, nil
}

// GetPublicUser returns another player's public record.
func (s *GameService) GetPublicUser(userID string) (*models.PublicUser, error) {
	user, err := s.GetUser(userID)
	if err != nil {
		return nil, err
	}
	return user.Public(), nil
}

// UpdateUser applies a partial patch. Nil fields are left unchanged.
func (s *GameService) UpdateUser(userID string, patch models.UserPatch) (*models.User, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	user, ok := s.users[userID]
	if !ok {
		s.mu.Unlock()
		return nil, ErrItemNotFound
	}
	if patch.Username != nil {
		user.Username = *patch.Username
	}
	s.reconcileLocked(user)
	view := user.Clone()
	snapshot := s.cloneUsersLocked()
	s.mu.Unlock()

	s.persist(snapshot)
	return view, nil
}

// Leaderboard ranks every account by funds descending, settling each one
// first so standings are never stale.
func (s *GameService) Leaderboard(start, items int) *models.Leaderboard {
	if start < 0 {
		start = 0
	}
	if items <= 0 {
		items = 10
	}

	s.mu.Lock()
	changed := false
	ranked := make([]*models.User, 0, len(s.users))
	for _, user := range s.users {
		if s.reconcileLocked(user) {
			changed = true
		}
		ranked = append(ranked, user)
	}
	sort.Slice(ranked, func(i, j int) bool {
		return ranked[i].Funds > ranked[j].Funds
	})

	board := &models.Leaderboard{
		Total: len(ranked),
		Start: start,
		Users: []models.LeaderboardEntry{},
	}
	for i := start; i < len(ranked) && i < start+items; i++ {
		board.Users = append(board.Users, models.LeaderboardEntry{
			Rank:       i + 1,
			PublicUser: *ranked[i].Public(),
		})
	}

	var snapshot map[string]*models.User
	if changed {
		snapshot = s.cloneUsersLocked()
	}
	s.mu.Unlock()

	s.persist(snapshot)
	return board
}

// PurchaseUpgrade debits the stat's current price and applies the upgrade.
// The whole purchase is atomic: a failed funds check or level cap leaves the
// account untouched. A first GPU purchase materializes the starter block
// instead of leveling an existing stat.
func (s *GameService) PurchaseUpgrade(userID string, upgradeType models.HardwareType) (*models.User, error) {
	log := logger.WithComponent("game")

	s.mu.Lock()
	user, ok := s.users[userID]
	if !ok {
		s.mu.Unlock()
		return nil, ErrItemNotFound
	}
	s.reconcileLocked(user)

	stat, exists := user.Computer.Hardware[upgradeType]
	if !exists {
		if upgradeType != models.HardwareGPU {
			s.mu.Unlock()
			return nil, ErrItemNotFound
		}
		stat = models.StarterGPU()
	}

	if stat.UpgradePrice > user.Funds {
		price := stat.UpgradePrice
		funds := user.Funds
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %s upgrade costs $%.2f, funds $%.2f",
			ErrInsufficientResources, upgradeType, price, funds)
	}

	price := stat.UpgradePrice
	if exists {
		if err := stat.Upgrade(s.cfg.MaxHardwareLevel); err != nil {
			s.mu.Unlock()
			return nil, err
		}
	} else {
		user.Computer.Hardware[models.HardwareGPU] = stat
	}
	user.Funds -= price

	view := user.Clone()
	snapshot := s.cloneUsersLocked()
	s.mu.Unlock()

	telemetry.UpgradesPurchased.WithLabelValues(string(upgradeType)).Inc()
	log.Info().
		Str("user_id", userID).
		Str("hardware_type", string(upgradeType)).
		Float64("price", price).
		Msg("Purchased hardware upgrade")
	s.persist(snapshot)

	return view, nil
}
