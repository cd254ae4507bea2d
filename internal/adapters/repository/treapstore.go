package repository

import (
	"context"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/goalguessr/internal/domain/model"
	"github.com/okian/goalguessr/pkg/metrics"
)

// Treap-based, in-memory Store implementation.
//
// Ordering: points DESC, then player ASC (deterministic). "less" means
// ranks earlier, so in-order traversal yields the leaderboard best first.
// Subtree sizes give ranks in O(log n). Players with equal points share a
// rank and the next rank skips (1, 1, 3).

const (
	defaultSnapshotInterval = time.Second
	defaultTopCacheSize     = 100
)

// Snapshot is an immutable view of the leaderboard for cheap reads.
type Snapshot struct {
	Top         []Entry
	Players     int
	TotalPoints int64
	TakenAt     time.Time
}

type node struct {
	id     string
	points int
	prio   uint64
	left   *node
	right  *node
	size   int
}

func nsize(n *node) int {
	if n == nil {
		return 0
	}
	return n.size
}

func fix(n *node) {
	if n != nil {
		n.size = 1 + nsize(n.left) + nsize(n.right)
	}
}

// less returns true if (aPoints, aID) should appear before (bPoints, bID).
func less(aPoints int, aID string, bPoints int, bID string) bool {
	if aPoints != bPoints {
		return aPoints > bPoints
	}
	return aID < bID
}

func rotateRight(y *node) *node {
	x := y.left
	y.left = x.right
	x.right = y
	fix(y)
	fix(x)
	return x
}

func rotateLeft(x *node) *node {
	y := x.right
	x.right = y.left
	y.left = x
	fix(x)
	fix(y)
	return y
}

func insert(n *node, id string, points int) *node {
	if n == nil {
		return &node{id: id, points: points, prio: rand.Uint64(), size: 1} //nolint:gosec // treap balance only
	}
	if less(points, id, n.points, n.id) {
		n.left = insert(n.left, id, points)
		if n.left.prio > n.prio {
			n = rotateRight(n)
		}
	} else {
		n.right = insert(n.right, id, points)
		if n.right.prio > n.prio {
			n = rotateLeft(n)
		}
	}
	fix(n)
	return n
}

func deleteNode(n *node, id string, points int) *node {
	if n == nil {
		return nil
	}
	switch {
	case points == n.points && id == n.id:
		if n.left == nil {
			return n.right
		}
		if n.right == nil {
			return n.left
		}
		if n.left.prio > n.right.prio {
			n = rotateRight(n)
			n.right = deleteNode(n.right, id, points)
		} else {
			n = rotateLeft(n)
			n.left = deleteNode(n.left, id, points)
		}
	case less(points, id, n.points, n.id):
		n.left = deleteNode(n.left, id, points)
	default:
		n.right = deleteNode(n.right, id, points)
	}
	fix(n)
	return n
}

// countAbove returns how many players have strictly more than points.
func countAbove(n *node, points int) int {
	count := 0
	for n != nil {
		if n.points > points {
			count += 1 + nsize(n.left)
			n = n.right
		} else {
			n = n.left
		}
	}
	return count
}

// collectTopN appends up to limit entries in rank order.
func collectTopN(n *node, limit int, out *[]Entry) {
	if n == nil || len(*out) >= limit {
		return
	}
	collectTopN(n.left, limit, out)
	if len(*out) < limit {
		*out = append(*out, Entry{Player: n.id, Points: n.points})
	}
	if len(*out) < limit {
		collectTopN(n.right, limit, out)
	}
}

// assignRanks gives equal points equal ranks. entries must be a prefix of
// the leaderboard.
func assignRanks(entries []Entry) {
	for i := range entries {
		if i > 0 && entries[i].Points == entries[i-1].Points {
			entries[i].Rank = entries[i-1].Rank
			continue
		}
		entries[i].Rank = i + 1
	}
}

// TreapStore is the in-memory leaderboard.
type TreapStore struct {
	mu               sync.RWMutex
	root             *node
	byID             map[string]int
	totalPoints      int64
	snapshotInterval time.Duration
	topCacheSize     int

	snapshot atomic.Pointer[Snapshot]

	wg       sync.WaitGroup
	stopOnce sync.Once
	stopChan chan struct{}
}

// NewTreapStore constructs a treap store and starts publishing snapshots
// until ctx is done or Close is called.
func NewTreapStore(ctx context.Context, opts ...Option) *TreapStore {
	s := &TreapStore{
		snapshotInterval: defaultSnapshotInterval,
		topCacheSize:     defaultTopCacheSize,
		byID:             make(map[string]int),
		stopChan:         make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.publishSnapshot()
	s.startPeriodicSnapshots(ctx)
	return s
}

func (s *TreapStore) startPeriodicSnapshots(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.snapshotInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stopChan:
				return
			case <-ticker.C:
				s.publishSnapshot()
			}
		}
	}()
}

func (s *TreapStore) publishSnapshot() {
	start := time.Now()
	s.mu.RLock()
	top := make([]Entry, 0, min(s.topCacheSize, len(s.byID)))
	collectTopN(s.root, s.topCacheSize, &top)
	snap := &Snapshot{Top: top, Players: len(s.byID), TotalPoints: s.totalPoints, TakenAt: start}
	s.mu.RUnlock()

	assignRanks(snap.Top)
	s.snapshot.Store(snap)
	metrics.RecordRepositorySnapshotRebuildDuration(float64(time.Since(start).Microseconds()) / 1000)
	metrics.UpdateLeaderboardPlayers(snap.Players)
}

// Snapshot returns the most recently published view. It may lag writes by
// up to the snapshot interval.
func (s *TreapStore) Snapshot() *Snapshot {
	return s.snapshot.Load()
}

// Close stops the snapshot goroutine.
func (s *TreapStore) Close() error {
	s.stopOnce.Do(func() { close(s.stopChan) })
	s.wg.Wait()
	return nil
}

// AddPoints implements Store.AddPoints in O(log n) expected time.
func (s *TreapStore) AddPoints(ctx context.Context, player string, points int) (Entry, error) {
	start := time.Now()
	defer func() {
		metrics.RecordRepositoryUpdateLatency(float64(time.Since(start).Microseconds()) / 1000)
	}()

	if player == "" {
		return Entry{}, ErrInvalidPlayer
	}
	if points < 0 {
		metrics.RecordErrorByComponent("repository", "invalid_points")
		return Entry{}, ErrInvalidPoints
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	total := points
	if old, ok := s.byID[player]; ok {
		s.root = deleteNode(s.root, player, old)
		total += old
	}
	s.byID[player] = total
	s.totalPoints += int64(points)
	s.root = insert(s.root, player, total)
	metrics.RecordLeaderboardUpdate()

	return Entry{Rank: 1 + countAbove(s.root, total), Player: player, Points: total}, nil
}

// Restore implements Store.Restore. Later duplicates of a player add up.
func (s *TreapStore) Restore(ctx context.Context, totals []model.PlayerTotal) error {
	byID := make(map[string]int, len(totals))
	var sum int64
	for _, t := range totals {
		if t.Player == "" {
			return ErrInvalidPlayer
		}
		if t.Points < 0 {
			return ErrInvalidPoints
		}
		byID[t.Player] += t.Points
		sum += int64(t.Points)
	}
	var root *node
	for id, pts := range byID {
		root = insert(root, id, pts)
	}

	s.mu.Lock()
	s.root, s.byID, s.totalPoints = root, byID, sum
	s.mu.Unlock()
	s.publishSnapshot()
	return nil
}

// Rank implements Store.Rank in O(log n).
func (s *TreapStore) Rank(ctx context.Context, player string) (Entry, error) {
	start := time.Now()
	defer func() {
		metrics.RecordRepositoryQueryLatency(float64(time.Since(start).Microseconds()) / 1000)
	}()

	s.mu.RLock()
	defer s.mu.RUnlock()

	points, ok := s.byID[player]
	if !ok {
		metrics.RecordErrorByComponent("repository", "not_found")
		return Entry{}, ErrNotFound
	}
	return Entry{Rank: 1 + countAbove(s.root, points), Player: player, Points: points}, nil
}

// TopN implements Store.TopN.
func (s *TreapStore) TopN(ctx context.Context, n int) ([]Entry, error) {
	start := time.Now()
	defer func() {
		metrics.RecordRepositoryQueryLatency(float64(time.Since(start).Microseconds()) / 1000)
	}()

	if n < 1 {
		metrics.RecordErrorByComponent("repository", "invalid_limit")
		return nil, ErrInvalidLimit
	}

	s.mu.RLock()
	out := make([]Entry, 0, min(n, len(s.byID)))
	collectTopN(s.root, n, &out)
	s.mu.RUnlock()

	assignRanks(out)
	return out, nil
}

// Count implements Store.Count.
func (s *TreapStore) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}
