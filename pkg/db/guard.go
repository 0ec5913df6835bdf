package db

import (
	"context"
	"sync"
	"time"
)

// Guard wraps a Store and isolates designated test accounts at the storage
// boundary. Writes from a test account are acknowledged with a synthetic
// record but never persisted; reads for a test account come back empty; test
// accounts never appear in ListUsers. Centralizing the check here means the
// aggregators never have to repeat it.
type Guard struct {
	inner Store

	testUsernames map[string]bool

	mu     sync.Mutex
	testID map[int64]bool
}

// NewGuard wraps inner, treating the given usernames as test accounts.
func NewGuard(inner Store, testUsernames []string) *Guard {
	set := make(map[string]bool, len(testUsernames))
	for _, name := range testUsernames {
		set[name] = true
	}
	return &Guard{
		inner:         inner,
		testUsernames: set,
		testID:        make(map[int64]bool),
	}
}

// IsTestAccount reports whether the user is a designated test account.
// Results are cached per user ID; unknown users are not test accounts.
func (g *Guard) IsTestAccount(ctx context.Context, userID int64) (bool, error) {
	g.mu.Lock()
	cached, ok := g.testID[userID]
	g.mu.Unlock()
	if ok {
		return cached, nil
	}

	user, err := g.inner.GetUser(ctx, userID)
	if err != nil {
		return false, err
	}
	isTest := user != nil && g.testUsernames[user.Username]

	g.mu.Lock()
	g.testID[userID] = isTest
	g.mu.Unlock()
	return isTest, nil
}

func (g *Guard) CreateActivity(ctx context.Context, userID int64, activityType, ip string) (*Activity, error) {
	isTest, err := g.IsTestAccount(ctx, userID)
	if err != nil {
		return nil, err
	}
	if isTest {
		// Acknowledged but discarded, so demo usage never pollutes stats.
		return &Activity{
			UserID:    userID,
			Type:      activityType,
			Timestamp: time.Now().UTC(),
			IP:        ip,
		}, nil
	}
	return g.inner.CreateActivity(ctx, userID, activityType, ip)
}

func (g *Guard) SupersedeSignIn(ctx context.Context, userID int64, from, to time.Time) (int64, error) {
	isTest, err := g.IsTestAccount(ctx, userID)
	if err != nil {
		return 0, err
	}
	if isTest {
		return 0, nil
	}
	return g.inner.SupersedeSignIn(ctx, userID, from, to)
}

func (g *Guard) ListActivities(ctx context.Context, userID int64, types []string, from, to time.Time) ([]Activity, error) {
	isTest, err := g.IsTestAccount(ctx, userID)
	if err != nil {
		return nil, err
	}
	if isTest {
		return nil, nil
	}
	return g.inner.ListActivities(ctx, userID, types, from, to)
}

func (g *Guard) ListRecentActivities(ctx context.Context, userID int64, limit int) ([]Activity, error) {
	isTest, err := g.IsTestAccount(ctx, userID)
	if err != nil {
		return nil, err
	}
	if isTest {
		return nil, nil
	}
	return g.inner.ListRecentActivities(ctx, userID, limit)
}

func (g *Guard) CreateRescue(ctx context.Context, rescue NewRescue) (*Rescue, error) {
	isTest, err := g.IsTestAccount(ctx, rescue.UserID)
	if err != nil {
		return nil, err
	}
	if isTest {
		r := &Rescue{
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
			Timestamp:       time.Now().UTC(),
		}
		return r, nil
	}
	return g.inner.CreateRescue(ctx, rescue)
}

func (g *Guard) ListRescues(ctx context.Context, userID int64, from, to time.Time) ([]Rescue, error) {
	isTest, err := g.IsTestAccount(ctx, userID)
	if err != nil {
		return nil, err
	}
	if isTest {
		return nil, nil
	}
	return g.inner.ListRescues(ctx, userID, from, to)
}

func (g *Guard) ListAllRescues(ctx context.Context) ([]Rescue, error) {
	rescues, err := g.inner.ListAllRescues(ctx)
	if err != nil {
		return nil, err
	}
	filtered := rescues[:0:0]
	for _, r := range rescues {
		isTest, err := g.IsTestAccount(ctx, r.UserID)
		if err != nil {
			return nil, err
		}
		if !isTest {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}

func (g *Guard) CountRescues(ctx context.Context, userID int64, from, to time.Time) (int, error) {
	isTest, err := g.IsTestAccount(ctx, userID)
	if err != nil {
		return 0, err
	}
	if isTest {
		return 0, nil
	}
	return g.inner.CountRescues(ctx, userID, from, to)
}

func (g *Guard) ListRecentRescues(ctx context.Context, userID int64, limit int) ([]Rescue, error) {
	isTest, err := g.IsTestAccount(ctx, userID)
	if err != nil {
		return nil, err
	}
	if isTest {
		return nil, nil
	}
	return g.inner.ListRecentRescues(ctx, userID, limit)
}

func (g *Guard) GetUser(ctx context.Context, id int64) (*User, error) {
	return g.inner.GetUser(ctx, id)
}

func (g *Guard) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	return g.inner.GetUserByUsername(ctx, username)
}

func (g *Guard) CreateUser(ctx context.Context, username, passwordHash, name, role string) (*User, error) {
	return g.inner.CreateUser(ctx, username, passwordHash, name, role)
}

// ListUsers returns all non-test accounts.
func (g *Guard) ListUsers(ctx context.Context) ([]User, error) {
	users, err := g.inner.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	filtered := users[:0:0]
	for _, u := range users {
		if !g.testUsernames[u.Username] {
			filtered = append(filtered, u)
		}
	}
	return filtered, nil
}

var _ Store = (*Guard)(nil)
