package ledger

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"starledger/internal/model"
	"starledger/internal/store"
)

// CooldownDuration is the wait between successful mining claims.
const CooldownDuration = 8 * time.Hour

// MineStatus is the state shown on the mine menu.
type MineStatus struct {
	Level     int           `json:"level"`
	LockDays  int           `json:"lock_days"`
	Reward    float64       `json:"reward"`
	Balance   float64       `json:"balance"`
	Remaining time.Duration `json:"-"`
	Wait      string        `json:"remaining"`
}

// WalletSummary is the read-only wallet view.
type WalletSummary struct {
	Balance        float64 `json:"balance"`
	TotalDeposited int64   `json:"total_deposited"`
	Level          int     `json:"level"`
}

// Service owns the in-memory ledger table and is the single entry point for
// every intent. Every operation runs under one mutex, so read-modify-persist
// is a single critical section; that is what keeps the claim's
// check-then-credit sequence from double-crediting under concurrent calls
// for the same user, and what guarantees a saved snapshot reflects every
// committed mutation.
type Service struct {
	mu    sync.Mutex
	store store.Store
	users map[string]*model.UserLedger

	now func() time.Time
	log *logrus.Entry
}

// NewService loads the persisted ledger table. Missing prior state is a
// first run, not an error.
func NewService(st store.Store, log *logrus.Logger) (*Service, error) {
	users, err := st.Load()
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = make(map[string]*model.UserLedger)
	}
	return &Service{
		store: st,
		users: users,
		now:   time.Now,
		log:   log.WithField("component", "ledger"),
	}, nil
}

// user must be called with s.mu held.
func (s *Service) user(id string) (*model.UserLedger, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// persist must be called with s.mu held. Callers roll back their mutation
// when it fails.
func (s *Service) persist() error {
	if err := s.store.Save(s.users); err != nil {
		return &PersistError{Err: err}
	}
	return nil
}

// remaining must be called with s.mu held.
func (s *Service) remaining(u *model.UserLedger) time.Duration {
	elapsed := time.Duration(s.now().Unix()-u.LastClaim) * time.Second
	if elapsed >= CooldownDuration {
		return 0
	}
	return CooldownDuration - elapsed
}

// EnsureUser creates the ledger record for id if it does not exist yet.
// Records are never deleted afterwards.
func (s *Service) EnsureUser(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; ok {
		return nil
	}
	s.users[id] = model.NewUserLedger()
	if err := s.persist(); err != nil {
		delete(s.users, id)
		return err
	}
	s.log.WithField("user_id", id).Info("registered new user")
	return nil
}

// Deposit appends a confirmed top-up and credits the balance. Amounts are
// whole stars and must be positive; authenticity checks happen upstream.
func (s *Service) Deposit(id string, amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.user(id)
	if err != nil {
		return err
	}

	backup := u.Clone()
	u.Deposits = append(u.Deposits, model.Deposit{Amount: amount, Time: s.now().Unix()})
	u.Balance += float64(amount)
	if err := s.persist(); err != nil {
		s.users[id] = backup
		return err
	}
	s.log.WithFields(logrus.Fields{"user_id": id, "amount": amount}).Info("deposit recorded")
	return nil
}

// MineStatus reports level, per-claim reward, balance and the remaining
// cooldown for the mine menu. Read-only.
func (s *Service) MineStatus(id string) (MineStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.user(id)
	if err != nil {
		return MineStatus{}, err
	}

	level, lockDays := LevelFor(u.TotalDeposited())
	remaining := s.remaining(u)
	return MineStatus{
		Level:     level,
		LockDays:  lockDays,
		Reward:    RewardPerClaim(level),
		Balance:   u.Balance,
		Remaining: remaining,
		Wait:      FormatCooldown(remaining),
	}, nil
}

// Claim attempts a mining claim. While the cooldown is running it returns
// ClaimNotReadyError and mutates nothing. Once ready it credits the reward
// for the user's current level, stamps the claim time and appends a mining
// log, all under the service lock, so at most one claim succeeds per window.
func (s *Service) Claim(id string) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.user(id)
	if err != nil {
		return 0, err
	}

	if remaining := s.remaining(u); remaining > 0 {
		return 0, &ClaimNotReadyError{Remaining: remaining}
	}

	level, _ := LevelFor(u.TotalDeposited())
	reward := RewardPerClaim(level)

	backup := u.Clone()
	now := s.now().Unix()
	u.Balance += reward
	u.LastClaim = now
	u.MiningLogs = append(u.MiningLogs, model.MiningLog{Amount: reward, Time: now})
	if err := s.persist(); err != nil {
		s.users[id] = backup
		return 0, err
	}

	s.log.WithFields(logrus.Fields{
		"user_id": id,
		"level":   level,
		"reward":  reward,
	}).Info("mining claim credited")
	return reward, nil
}

// History returns one page of the merged transaction history, newest first.
func (s *Service) History(id string, page int) (HistoryPage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.user(id)
	if err != nil {
		return HistoryPage{}, err
	}
	return paginate(mergeHistory(u), page, HistoryPageSize), nil
}

// Wallet returns the read-only wallet summary.
func (s *Service) Wallet(id string) (WalletSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.user(id)
	if err != nil {
		return WalletSummary{}, err
	}
	total := u.TotalDeposited()
	level, _ := LevelFor(total)
	return WalletSummary{
		Balance:        u.Balance,
		TotalDeposited: total,
		Level:          level,
	}, nil
}

// RequestWithdraw appends a pending withdraw request. The balance is not
// touched until the request is settled.
func (s *Service) RequestWithdraw(id string, amount float64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.user(id)
	if err != nil {
		return err
	}

	backup := u.Clone()
	u.WithdrawRequests = append(u.WithdrawRequests, model.WithdrawRequest{
		Amount: amount,
		Time:   s.now().Unix(),
		Status: model.WithdrawStatusPending,
	})
	if err := s.persist(); err != nil {
		s.users[id] = backup
		return err
	}
	s.log.WithFields(logrus.Fields{"user_id": id, "amount": amount}).Info("withdraw requested")
	return nil
}

// ResolveWithdraw settles the pending withdraw request at index. The status
// moves pending -> success or pending -> rejected exactly once. Approval
// debits the balance and is refused when it would drive the balance
// negative; rejection leaves the balance untouched.
func (s *Service) ResolveWithdraw(id string, index int, approve bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.user(id)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(u.WithdrawRequests) {
		return ErrWithdrawNotFound
	}
	if u.WithdrawRequests[index].Status != model.WithdrawStatusPending {
		return ErrWithdrawSettled
	}

	backup := u.Clone()
	if approve {
		if u.Balance < u.WithdrawRequests[index].Amount {
			return ErrInsufficientBalance
		}
		u.WithdrawRequests[index].Status = model.WithdrawStatusSuccess
		u.Balance -= u.WithdrawRequests[index].Amount
	} else {
		u.WithdrawRequests[index].Status = model.WithdrawStatusRejected
	}
	if err := s.persist(); err != nil {
		s.users[id] = backup
		return err
	}
	s.log.WithFields(logrus.Fields{
		"user_id":  id,
		"index":    index,
		"approved": approve,
	}).Info("withdraw request settled")
	return nil
}
