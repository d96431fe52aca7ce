package repository

import (
	"context"
	"testing"
	"time"

	"github.com/bradbeattie/schedules/internal/domain"
	"github.com/bradbeattie/schedules/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAvailability(t *testing.T) (context.Context, *domain.User, *domain.Project, *SQLiteAvailabilityRepo) {
	t.Helper()
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	user := testutil.NewTestUser("Pat")
	require.NoError(t, NewSQLiteUserRepo(db).Create(ctx, user))
	proj := testutil.NewTestProject("Calendar Project")
	require.NoError(t, NewSQLiteProjectRepo(db).Create(ctx, proj))

	return ctx, user, proj, NewSQLiteAvailabilityRepo(db)
}

func entry(userID, projectID string, date time.Time, hours float64) *domain.ScheduleEntry {
	return &domain.ScheduleEntry{
		ID:        uuid.New().String(),
		UserID:    userID,
		ProjectID: projectID,
		Date:      domain.Day(date),
		Hours:     hours,
	}
}

var calDay = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

func TestAvailabilityRepo_ReplaceScheduleEntry_ReplacesSameSlot(t *testing.T) {
	ctx, user, proj, avail := setupAvailability(t)

	require.NoError(t, avail.ReplaceScheduleEntry(ctx, entry(user.ID, proj.ID, calDay, 4)))
	require.NoError(t, avail.ReplaceScheduleEntry(ctx, entry(user.ID, proj.ID, calDay, 6)))

	entries, err := avail.ListScheduleEntriesForUser(ctx, user.ID, calDay, calDay)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 6.0, entries[0].Hours)
}

func TestAvailabilityRepo_ReplaceScheduleEntry_ZeroHoursClearsSlot(t *testing.T) {
	ctx, user, proj, avail := setupAvailability(t)

	require.NoError(t, avail.ReplaceScheduleEntry(ctx, entry(user.ID, proj.ID, calDay, 4)))
	require.NoError(t, avail.ReplaceScheduleEntry(ctx, entry(user.ID, proj.ID, calDay, 0)))

	entries, err := avail.ListScheduleEntriesForUser(ctx, user.ID, calDay, calDay)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestAvailabilityRepo_ListScheduleEntries_ExcludesProjectAndRespectsRange(t *testing.T) {
	ctx, user, proj, avail := setupAvailability(t)

	require.NoError(t, avail.ReplaceScheduleEntry(ctx, entry(user.ID, proj.ID, calDay, 2)))
	require.NoError(t, avail.ReplaceScheduleEntry(ctx, entry(user.ID, proj.ID, calDay.AddDate(0, 0, 1), 3)))
	require.NoError(t, avail.ReplaceScheduleEntry(ctx, entry(user.ID, proj.ID, calDay.AddDate(0, 0, 30), 5)))

	inRange, err := avail.ListScheduleEntries(ctx, calDay, calDay.AddDate(0, 0, 7), "some-other-project")
	require.NoError(t, err)
	require.Len(t, inRange, 2)
	assert.Equal(t, 2.0, inRange[0].Hours)
	assert.Equal(t, 3.0, inRange[1].Hours)

	excluded, err := avail.ListScheduleEntries(ctx, calDay, calDay.AddDate(0, 0, 7), proj.ID)
	require.NoError(t, err)
	assert.Empty(t, excluded, "entries of the excluded project are filtered out")
}

func TestAvailabilityRepo_DeleteScheduleEntriesFrom_KeepsEarlierDays(t *testing.T) {
	ctx, user, proj, avail := setupAvailability(t)

	require.NoError(t, avail.ReplaceScheduleEntry(ctx, entry(user.ID, proj.ID, calDay, 2)))
	require.NoError(t, avail.ReplaceScheduleEntry(ctx, entry(user.ID, proj.ID, calDay.AddDate(0, 0, 3), 4)))
	require.NoError(t, avail.ReplaceScheduleEntry(ctx, entry(user.ID, proj.ID, calDay.AddDate(0, 0, 6), 8)))

	require.NoError(t, avail.DeleteScheduleEntriesFrom(ctx, proj.ID, calDay.AddDate(0, 0, 3)))

	entries, err := avail.ListScheduleEntriesForUser(ctx, user.ID, calDay, calDay.AddDate(0, 0, 10))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.Day(calDay), entries[0].Date)
}

func TestAvailabilityRepo_ClosedEntries_CreateDeleteList(t *testing.T) {
	ctx, user, _, avail := setupAvailability(t)

	first := &domain.ClosedEntry{ID: uuid.New().String(), UserID: user.ID, Date: domain.Day(calDay)}
	second := &domain.ClosedEntry{ID: uuid.New().String(), UserID: user.ID, Date: domain.Day(calDay.AddDate(0, 0, 1))}
	require.NoError(t, avail.CreateClosedEntry(ctx, first))
	require.NoError(t, avail.CreateClosedEntry(ctx, second))

	closed, err := avail.ListClosedEntries(ctx, calDay, calDay.AddDate(0, 0, 7))
	require.NoError(t, err)
	require.Len(t, closed, 2)

	require.NoError(t, avail.DeleteClosedEntry(ctx, user.ID, calDay))
	closed, err = avail.ListClosedEntries(ctx, calDay, calDay.AddDate(0, 0, 7))
	require.NoError(t, err)
	require.Len(t, closed, 1)
	assert.Equal(t, second.ID, closed[0].ID)
}

func TestAvailabilityRepo_Holidays_CreateAndListRange(t *testing.T) {
	ctx, _, _, avail := setupAvailability(t)

	labour := &domain.Holiday{ID: uuid.New().String(), Date: domain.Day(calDay), Name: "Labour Day"}
	distant := &domain.Holiday{ID: uuid.New().String(), Date: domain.Day(calDay.AddDate(0, 3, 0)), Name: "Winter Break"}
	require.NoError(t, avail.CreateHoliday(ctx, labour))
	require.NoError(t, avail.CreateHoliday(ctx, distant))

	holidays, err := avail.ListHolidays(ctx, calDay, calDay.AddDate(0, 0, 30))
	require.NoError(t, err)
	require.Len(t, holidays, 1)
	assert.Equal(t, "Labour Day", holidays[0].Name)
}

func TestAvailabilityRepo_ReplaceScheduleEntry_RejectsUnknownUser(t *testing.T) {
	ctx, _, proj, avail := setupAvailability(t)

	err := avail.ReplaceScheduleEntry(ctx, entry("ghost", proj.ID, calDay, 4))
	require.Error(t, err)
}
