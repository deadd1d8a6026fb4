package engine

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"teddy/internal/storage"
)

// Service is the orchestration layer: it loads collections from storage,
// runs them through the stores and ledger, and saves the result in one
// transaction. All methods are safe for concurrent use.
type Service struct {
	mu sync.Mutex

	db      *sql.DB
	blobs   *storage.BlobRepo
	ledger  *storage.LedgerRepo
	clock   Clock
	rnd     Rand
	logger  *zap.Logger
	notify  Notifier
	rewards Rewards

	dueWindow     time.Duration
	companionName string
}

type Option func(*Service)

func WithClock(c Clock) Option { return func(s *Service) { s.clock = c } }

func WithRand(r Rand) Option { return func(s *Service) { s.rnd = r } }

func WithLogger(l *zap.Logger) Option { return func(s *Service) { s.logger = l } }

// WithNotifier receives every event after the change that raised it is saved.
func WithNotifier(n Notifier) Option { return func(s *Service) { s.notify = n } }

func WithRewards(r Rewards) Option { return func(s *Service) { s.rewards = r } }

func WithDueWindow(d time.Duration) Option { return func(s *Service) { s.dueWindow = d } }

// WithCompanionName names the companion created on first run.
func WithCompanionName(name string) Option { return func(s *Service) { s.companionName = name } }

func NewService(db *sql.DB, opts ...Option) *Service {
	s := &Service{
		db:        db,
		blobs:     storage.NewBlobRepo(db),
		ledger:    storage.NewLedgerRepo(db),
		clock:     SystemClock{},
		rnd:       globalRand{},
		logger:    zap.NewNop(),
		notify:    NopNotifier{},
		rewards:   DefaultRewards(),
		dueWindow: DefaultDueWindow,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Clock() Clock { return s.clock }

func (s *Service) LedgerRepo() *storage.LedgerRepo { return s.ledger }

// loadCollection decodes the document stored under key. A missing document
// yields def; so does a malformed one, which is logged.
func loadCollection[T any](ctx context.Context, s *Service, key string, def T) (T, error) {
	data, err := s.blobs.Get(ctx, key)
	if err != nil {
		s.logger.Error("load collection", zap.String("key", key), zap.Error(err))
		return def, err
	}
	if data == nil {
		return def, nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		s.logger.Warn("malformed document, using default", zap.String("key", key), zap.Error(err))
		return def, nil
	}
	return v, nil
}

func (s *Service) loadHabits(ctx context.Context) (*HabitStore, error) {
	habits, err := loadCollection(ctx, s, storage.KeyHabits, []Habit{})
	if err != nil {
		return nil, err
	}
	return NewHabitStore(habits, s.clock), nil
}

func (s *Service) loadReminders(ctx context.Context) (*ReminderScheduler, error) {
	reminders, err := loadCollection(ctx, s, storage.KeyReminders, []Reminder{})
	if err != nil {
		return nil, err
	}
	return NewReminderScheduler(reminders, s.clock, s.dueWindow), nil
}

func (s *Service) loadLedger(ctx context.Context, n Notifier) (*Ledger, error) {
	c, err := loadCollection(ctx, s, storage.KeyCustomization, DefaultCustomization(s.companionName))
	if err != nil {
		return nil, err
	}
	acc, err := loadCollection(ctx, s, storage.KeyAccessories, DefaultAccessories())
	if err != nil {
		return nil, err
	}
	return NewLedger(c, acc, s.rnd, n), nil
}

// changeSet collects the documents and XP awards one operation produced.
type changeSet struct {
	docs   map[string]any
	awards []storage.LedgerEntry
	events []Event
	clock  Clock
}

func (s *Service) newChangeSet() *changeSet {
	return &changeSet{docs: map[string]any{}, clock: s.clock}
}

func (c *changeSet) put(key string, v any) { c.docs[key] = v }

// Notify lets a changeSet collect events raised while it is being built.
func (c *changeSet) Notify(e Event) {
	if e.At.IsZero() {
		e.At = c.clock.Now()
	}
	c.events = append(c.events, e)
}

// award feeds amount into the ledger and records it for the XP history.
func (s *Service) award(cs *changeSet, l *Ledger, kind, id string, amount int) (ExperienceResult, error) {
	res, err := l.GainExperience(amount)
	if err != nil {
		return res, err
	}
	cs.put(storage.KeyCustomization, l.Companion())
	cs.awards = append(cs.awards, storage.LedgerEntry{
		SourceKind: kind,
		SourceID:   id,
		Amount:     amount,
		LevelAfter: res.Level,
		AwardedAt:  s.clock.Now(),
	})
	return res, nil
}

// commit writes every document in cs in one transaction, then publishes its events.
func (s *Service) commit(ctx context.Context, cs *changeSet) error {
	keys := make([]string, 0, len(cs.docs))
	for k := range cs.docs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	encoded := make(map[string][]byte, len(keys))
	for _, k := range keys {
		data, err := json.Marshal(cs.docs[k])
		if err != nil {
			return fmt.Errorf("encode %s: %w", k, err)
		}
		encoded[k] = data
	}

	now := s.clock.Now()
	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		blobs := storage.NewBlobRepo(tx)
		for _, k := range keys {
			if err := blobs.Put(ctx, k, encoded[k], now); err != nil {
				return err
			}
		}
		ledger := storage.NewLedgerRepo(tx)
		for _, a := range cs.awards {
			if _, err := ledger.Insert(ctx, a); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("save failed", zap.Strings("keys", keys), zap.Error(err))
		return fmt.Errorf("save: %w", err)
	}

	for _, e := range cs.events {
		s.logger.Info(e.Title, zap.String("kind", string(e.Kind)), zap.String("message", e.Message))
		s.notify.Notify(e)
	}
	return nil
}

// Reward is the progression side of a completion.
type Reward struct {
	XPAwarded   int
	LevelBefore int
	LevelAfter  int
	LevelUp     bool
	Progress    ProgressionState
	Events      []Event
}

func newReward(l *Ledger) Reward {
	st := l.State()
	return Reward{LevelBefore: st.Level, LevelAfter: st.Level, Progress: st}
}

func (r *Reward) apply(res ExperienceResult) {
	r.XPAwarded += res.Amount
	r.LevelAfter = res.Level
	r.LevelUp = r.LevelAfter > r.LevelBefore
	r.Progress = res.ProgressionState
}
