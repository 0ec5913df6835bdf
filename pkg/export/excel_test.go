package export

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chupohan/brigade-duty/pkg/core/civiltime"
	"github.com/chupohan/brigade-duty/pkg/core/model"
	"github.com/chupohan/brigade-duty/pkg/db"
)

func strptr(s string) *string {
	return &s
}

func TestBuildActivityWorkbook(t *testing.T) {
	rows := []model.UserMonthlyActivity{
		{
			MonthlyActivity: model.MonthlyActivity{
				Date:         "2024-05-15",
				SignInTime:   strptr("09:00"),
				SignOutTime:  strptr("17:30"),
				Duration:     8.5,
				ActivityType: model.ActivityPair,
			},
			UserID:   1,
			UserName: "Alice Chen",
		},
		{
			MonthlyActivity: model.MonthlyActivity{
				Date:         "2024-05-14",
				SignInTime:   strptr("18:00"),
				SignOutTime:  strptr("09:00"),
				IsTimeError:  true,
				ActivityType: model.ActivityPair,
			},
			UserID:   1,
			UserName: "Alice Chen",
		},
	}

	f, err := BuildActivityWorkbook(rows, 2024, time.May)
	require.NoError(t, err)

	name, err := f.GetCellValue("2024-05", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Alice Chen", name)

	hours, err := f.GetCellValue("2024-05", "E2")
	require.NoError(t, err)
	assert.Equal(t, "8.5", hours)

	timeError, err := f.GetCellValue("2024-05", "G3")
	require.NoError(t, err)
	assert.Equal(t, "yes", timeError)
}

func TestBuildRescueWorkbook(t *testing.T) {
	clock, err := civiltime.NewClock(civiltime.DefaultTimezone)
	require.NoError(t, err)

	at := time.Date(2024, 5, 16, 2, 15, 0, 0, clock.Location())
	rescues := []db.Rescue{
		{
			ID:         1,
			UserID:     7,
			CaseType:   "trauma",
			Hospital:   "General",
			RescueType: db.RescueALS,
			Timestamp:  at.UTC(),
		},
	}

	f, err := BuildRescueWorkbook(rescues, map[int64]string{7: "Bob Lin"}, clock)
	require.NoError(t, err)

	name, err := f.GetCellValue("Rescues", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Bob Lin", name)

	when, err := f.GetCellValue("Rescues", "B2")
	require.NoError(t, err)
	assert.Equal(t, "2024-05-16 02:15", when)

	level, err := f.GetCellValue("Rescues", "G2")
	require.NoError(t, err)
	assert.Equal(t, "ALS", level)
}
