package service

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"wallet-ledger/internal/model"
	"wallet-ledger/internal/store"
	"wallet-ledger/pkg/cache"
	"wallet-ledger/pkg/errno"
)

// memStore 内存版 Store，给 service 层测试用。
// 一把全局锁贯穿整个 WithinTx，外加失败时恢复快照，
// 模拟数据库事务的原子性和隔离性。
type memStore struct {
	mu    sync.Mutex
	state *memState

	// failOutbox 注入 CreateOutbox 故障，验证原子单元整体回滚
	failOutbox error
}

type memState struct {
	deposits      map[uint64]*model.DepositTransaction
	wallets       map[uint64]*model.Wallet
	notifications []model.Notification
	outbox        []model.OutboxMessage

	nextDepositID      uint64
	nextNotificationID uint64
	nextOutboxID       uint64
}

func newMemStore() *memStore {
	return &memStore{
		state: &memState{
			deposits: make(map[uint64]*model.DepositTransaction),
			wallets:  make(map[uint64]*model.Wallet),
		},
	}
}

func cloneDeposit(d *model.DepositTransaction) *model.DepositTransaction {
	cp := *d
	if d.Amount != nil {
		a := *d.Amount
		cp.Amount = &a
	}
	if d.ConfirmedAt != nil {
		t := *d.ConfirmedAt
		cp.ConfirmedAt = &t
	}
	if d.ProcessedBy != nil {
		p := *d.ProcessedBy
		cp.ProcessedBy = &p
	}
	return &cp
}

func (st *memState) clone() *memState {
	cp := &memState{
		deposits:           make(map[uint64]*model.DepositTransaction, len(st.deposits)),
		wallets:            make(map[uint64]*model.Wallet, len(st.wallets)),
		notifications:      append([]model.Notification(nil), st.notifications...),
		outbox:             append([]model.OutboxMessage(nil), st.outbox...),
		nextDepositID:      st.nextDepositID,
		nextNotificationID: st.nextNotificationID,
		nextOutboxID:       st.nextOutboxID,
	}
	for id, d := range st.deposits {
		cp.deposits[id] = cloneDeposit(d)
	}
	for id, w := range st.wallets {
		wCopy := *w
		cp.wallets[id] = &wCopy
	}
	return cp
}

// memTx 是事务视图: 锁已经被 WithinTx 持有，直接操作 state。
type memTx struct {
	s *memStore
}

func (s *memStore) WithinTx(ctx context.Context, fn func(tx store.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.state.clone()
	if err := fn(&memTx{s: s}); err != nil {
		s.state = snapshot // 回滚
		return err
	}
	return nil
}

func (tx *memTx) WithinTx(ctx context.Context, fn func(t store.Store) error) error {
	return fn(tx) // 嵌套事务直接复用
}

// ---- 事务内实现 (锁已持有) ----

func (tx *memTx) DepositForUpdate(ctx context.Context, id uint64) (*model.DepositTransaction, error) {
	d, ok := tx.s.state.deposits[id]
	if !ok {
		return nil, errno.ErrDepositNotFound
	}
	return cloneDeposit(d), nil
}

func (tx *memTx) FinishDeposit(ctx context.Context, d *model.DepositTransaction) error {
	stored, ok := tx.s.state.deposits[d.ID]
	if !ok {
		return errno.ErrDepositNotFound
	}
	if stored.Status != model.DepositStatusPending {
		return errno.ErrAlreadyResolved
	}
	stored.Status = d.Status
	stored.ConfirmedAt = d.ConfirmedAt
	stored.ProcessedBy = d.ProcessedBy
	stored.AdminNotes = d.AdminNotes
	return nil
}

func (tx *memTx) WalletForUpdate(ctx context.Context, userID uint64) (*model.Wallet, error) {
	return tx.getWallet(userID), nil
}

func (tx *memTx) GetWallet(ctx context.Context, userID uint64) (*model.Wallet, error) {
	return tx.getWallet(userID), nil
}

func (tx *memTx) getWallet(userID uint64) *model.Wallet {
	if w, ok := tx.s.state.wallets[userID]; ok {
		wCopy := *w
		return &wCopy
	}
	w := &model.Wallet{ID: userID, UserID: userID, CreatedAt: time.Now()}
	tx.s.state.wallets[userID] = w
	wCopy := *w
	return &wCopy
}

func (tx *memTx) SaveWallet(ctx context.Context, w *model.Wallet) error {
	wCopy := *w
	tx.s.state.wallets[w.UserID] = &wCopy
	return nil
}

func (tx *memTx) CreateDeposit(ctx context.Context, d *model.DepositTransaction) error {
	tx.s.state.nextDepositID++
	d.ID = tx.s.state.nextDepositID
	d.CreatedAt = time.Now()
	tx.s.state.deposits[d.ID] = cloneDeposit(d)
	return nil
}

func (tx *memTx) ListDeposits(ctx context.Context, userID uint64) ([]model.DepositTransaction, error) {
	var out []model.DepositTransaction
	for _, d := range tx.s.state.deposits {
		if d.UserID == userID {
			out = append(out, *cloneDeposit(d))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (tx *memTx) SetDepositAmount(ctx context.Context, id uint64, amount decimal.Decimal, notes string) error {
	d, ok := tx.s.state.deposits[id]
	if !ok {
		return errno.ErrDepositNotFound
	}
	if d.Status != model.DepositStatusPending {
		return errno.ErrAlreadyResolved
	}
	a := amount
	d.Amount = &a
	if notes != "" {
		d.AdminNotes = notes
	}
	return nil
}

func (tx *memTx) CreateNotification(ctx context.Context, n *model.Notification) error {
	tx.s.state.nextNotificationID++
	n.ID = tx.s.state.nextNotificationID
	n.CreatedAt = time.Now()
	tx.s.state.notifications = append(tx.s.state.notifications, *n)
	return nil
}

func (tx *memTx) CreateOutbox(ctx context.Context, topic, key string, payload interface{}) error {
	if tx.s.failOutbox != nil {
		return tx.s.failOutbox
	}
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	tx.s.state.nextOutboxID++
	tx.s.state.outbox = append(tx.s.state.outbox, model.OutboxMessage{
		ID:      tx.s.state.nextOutboxID,
		Topic:   topic,
		Key:     key,
		Payload: payloadBytes,
		Status:  "PENDING",
	})
	return nil
}

func (tx *memTx) PendingOutbox(ctx context.Context, limit int) ([]model.OutboxMessage, error) {
	var out []model.OutboxMessage
	for _, m := range tx.s.state.outbox {
		if m.Status == "PENDING" {
			out = append(out, m)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (tx *memTx) MarkOutboxSent(ctx context.Context, id uint64) error {
	for i := range tx.s.state.outbox {
		if tx.s.state.outbox[i].ID == id {
			tx.s.state.outbox[i].Status = "SENT"
			return nil
		}
	}
	return nil
}

func (tx *memTx) MarkEmailSent(ctx context.Context, depositID uint64) error {
	if d, ok := tx.s.state.deposits[depositID]; ok {
		d.EmailSent = true
	}
	return nil
}

// ---- 事务外入口: 加锁后委托给事务视图 ----

func (s *memStore) locked(fn func(tx *memTx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&memTx{s: s})
}

func (s *memStore) DepositForUpdate(ctx context.Context, id uint64) (d *model.DepositTransaction, err error) {
	err = s.locked(func(tx *memTx) error { d, err = tx.DepositForUpdate(ctx, id); return err })
	return
}

func (s *memStore) FinishDeposit(ctx context.Context, d *model.DepositTransaction) error {
	return s.locked(func(tx *memTx) error { return tx.FinishDeposit(ctx, d) })
}

func (s *memStore) WalletForUpdate(ctx context.Context, userID uint64) (w *model.Wallet, err error) {
	err = s.locked(func(tx *memTx) error { w, err = tx.WalletForUpdate(ctx, userID); return err })
	return
}

func (s *memStore) GetWallet(ctx context.Context, userID uint64) (w *model.Wallet, err error) {
	err = s.locked(func(tx *memTx) error { w, err = tx.GetWallet(ctx, userID); return err })
	return
}

func (s *memStore) SaveWallet(ctx context.Context, w *model.Wallet) error {
	return s.locked(func(tx *memTx) error { return tx.SaveWallet(ctx, w) })
}

func (s *memStore) CreateDeposit(ctx context.Context, d *model.DepositTransaction) error {
	return s.locked(func(tx *memTx) error { return tx.CreateDeposit(ctx, d) })
}

func (s *memStore) ListDeposits(ctx context.Context, userID uint64) (out []model.DepositTransaction, err error) {
	err = s.locked(func(tx *memTx) error { out, err = tx.ListDeposits(ctx, userID); return err })
	return
}

func (s *memStore) SetDepositAmount(ctx context.Context, id uint64, amount decimal.Decimal, notes string) error {
	return s.locked(func(tx *memTx) error { return tx.SetDepositAmount(ctx, id, amount, notes) })
}

func (s *memStore) CreateNotification(ctx context.Context, n *model.Notification) error {
	return s.locked(func(tx *memTx) error { return tx.CreateNotification(ctx, n) })
}

func (s *memStore) CreateOutbox(ctx context.Context, topic, key string, payload interface{}) error {
	return s.locked(func(tx *memTx) error { return tx.CreateOutbox(ctx, topic, key, payload) })
}

func (s *memStore) PendingOutbox(ctx context.Context, limit int) (out []model.OutboxMessage, err error) {
	err = s.locked(func(tx *memTx) error { out, err = tx.PendingOutbox(ctx, limit); return err })
	return
}

func (s *memStore) MarkOutboxSent(ctx context.Context, id uint64) error {
	return s.locked(func(tx *memTx) error { return tx.MarkOutboxSent(ctx, id) })
}

func (s *memStore) MarkEmailSent(ctx context.Context, depositID uint64) error {
	return s.locked(func(tx *memTx) error { return tx.MarkEmailSent(ctx, depositID) })
}

// ---- 测试用辅助读 ----

func (s *memStore) depositByID(id uint64) model.DepositTransaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *cloneDeposit(s.state.deposits[id])
}

func (s *memStore) walletOf(userID uint64) *model.Wallet {
	s.mu.Lock()
	defer s.mu.Unlock()
	if w, ok := s.state.wallets[userID]; ok {
		cp := *w
		return &cp
	}
	return &model.Wallet{UserID: userID}
}

func (s *memStore) notificationsOf(userID uint64) []model.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Notification
	for _, n := range s.state.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out
}

func (s *memStore) outboxMessages() []model.OutboxMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.OutboxMessage(nil), s.state.outbox...)
}

// stubCache 记录失效调用的缓存替身
type stubCache struct {
	mu      sync.Mutex
	deleted []string
}

func (c *stubCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}

func (c *stubCache) Get(ctx context.Context, key string, target interface{}) error {
	return cache.ErrMiss
}

func (c *stubCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deleted = append(c.deleted, key)
	return nil
}
