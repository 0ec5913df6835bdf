// Package memstore provides an in-memory db.Store used by tests and the
// CLI demo mode. IDs are monotonically assigned; the time source is
// injectable so tests can place events at exact instants.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/chupohan/brigade-duty/pkg/db"
)

// Store is an in-memory implementation of db.Store.
type Store struct {
	mu sync.Mutex

	users      map[int64]db.User
	activities map[int64]db.Activity
	rescues    map[int64]db.Rescue

	nextUserID     int64
	nextActivityID int64
	nextRescueID   int64

	now func() time.Time
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		users:          make(map[int64]db.User),
		activities:     make(map[int64]db.Activity),
		rescues:        make(map[int64]db.Rescue),
		nextUserID:     1,
		nextActivityID: 1,
		nextRescueID:   1,
		now:            time.Now,
	}
}

// SetNow replaces the time source used for server-assigned timestamps.
func (s *Store) SetNow(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Store) CreateActivity(ctx context.Context, userID int64, activityType, ip string) (*db.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	activity := db.Activity{
		ID:        s.nextActivityID,
		UserID:    userID,
		Type:      activityType,
		Timestamp: s.now().UTC(),
		IP:        ip,
	}
	s.nextActivityID++
	s.activities[activity.ID] = activity
	return &activity, nil
}

func (s *Store) SupersedeSignIn(ctx context.Context, userID int64, from, to time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	for id, a := range s.activities {
		if a.UserID == userID && a.Type == db.TypeSignOut && inRange(a.Timestamp, from, to) {
			delete(s.activities, id)
			deleted++
		}
	}
	return deleted, nil
}

func (s *Store) ListActivities(ctx context.Context, userID int64, types []string, from, to time.Time) ([]db.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	typeSet := make(map[string]bool, len(types))
	for _, t := range types {
		typeSet[t] = true
	}

	var result []db.Activity
	for _, a := range s.activities {
		if a.UserID != userID || !inRange(a.Timestamp, from, to) {
			continue
		}
		if len(typeSet) > 0 && !typeSet[a.Type] {
			continue
		}
		result = append(result, a)
	}
	sortNewestFirst(result)
	return result, nil
}

func (s *Store) ListRecentActivities(ctx context.Context, userID int64, limit int) ([]db.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []db.Activity
	for _, a := range s.activities {
		if a.UserID == userID {
			result = append(result, a)
		}
	}
	sortNewestFirst(result)
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (s *Store) CreateRescue(ctx context.Context, rescue db.NewRescue) (*db.Rescue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := db.Rescue{
		ID:              s.nextRescueID,
		UserID:          rescue.UserID,
		CaseType:        rescue.CaseType,
		CaseSubtype:     rescue.CaseSubtype,
		Treatment:       rescue.Treatment,
		Hospital:        rescue.Hospital,
		RescueType:      rescue.RescueType,
		StartTime:       rescue.StartTime,
		EndTime:         rescue.EndTime,
		WoundDimensions: rescue.WoundDimensions,
		RescueAddress:   rescue.RescueAddress,
		Timestamp:       s.now().UTC(),
	}
	s.nextRescueID++
	s.rescues[r.ID] = r
	return &r, nil
}

func (s *Store) ListRescues(ctx context.Context, userID int64, from, to time.Time) ([]db.Rescue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []db.Rescue
	for _, r := range s.rescues {
		if r.UserID == userID && inRange(r.Timestamp, from, to) {
			result = append(result, r)
		}
	}
	sortRescuesNewestFirst(result)
	return result, nil
}

func (s *Store) ListAllRescues(ctx context.Context) ([]db.Rescue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]db.Rescue, 0, len(s.rescues))
	for _, r := range s.rescues {
		result = append(result, r)
	}
	sortRescuesNewestFirst(result)
	return result, nil
}

func (s *Store) CountRescues(ctx context.Context, userID int64, from, to time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, r := range s.rescues {
		if r.UserID == userID && inRange(r.Timestamp, from, to) {
			count++
		}
	}
	return count, nil
}

func (s *Store) ListRecentRescues(ctx context.Context, userID int64, limit int) ([]db.Rescue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []db.Rescue
	for _, r := range s.rescues {
		if r.UserID == userID {
			result = append(result, r)
		}
	}
	sortRescuesNewestFirst(result)
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (s *Store) GetUser(ctx context.Context, id int64) (*db.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*db.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == username {
			user := u
			return &user, nil
		}
	}
	return nil, nil
}

func (s *Store) CreateUser(ctx context.Context, username, passwordHash, name, role string) (*db.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := db.User{
		ID:           s.nextUserID,
		Username:     username,
		PasswordHash: passwordHash,
		Name:         name,
		Role:         role,
	}
	s.nextUserID++
	s.users[user.ID] = user
	return &user, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]db.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]db.User, 0, len(s.users))
	for _, u := range s.users {
		result = append(result, u)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func inRange(t, from, to time.Time) bool {
	return !t.Before(from) && !t.After(to)
}

func sortNewestFirst(activities []db.Activity) {
	sort.Slice(activities, func(i, j int) bool {
		if activities[i].Timestamp.Equal(activities[j].Timestamp) {
			return activities[i].ID > activities[j].ID
		}
		return activities[i].Timestamp.After(activities[j].Timestamp)
	})
}

func sortRescuesNewestFirst(rescues []db.Rescue) {
	sort.Slice(rescues, func(i, j int) bool {
		if rescues[i].Timestamp.Equal(rescues[j].Timestamp) {
			return rescues[i].ID > rescues[j].ID
		}
		return rescues[i].Timestamp.After(rescues[j].Timestamp)
	})
}

var _ db.Store = (*Store)(nil)
