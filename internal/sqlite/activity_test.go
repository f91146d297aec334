package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/rpggio/jobtracker/internal/domain/activity"
	"github.com/stretchr/testify/require"
)

func TestActivityRepository_LogList(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	repo := NewActivityRepository(db)
	companyID := "c1"
	entry1 := &activity.ActivityEntry{
		CompanyID:    &companyID,
		ActivityType: activity.TypeCompanyAdded,
		Summary:      "added company Acme",
		CreatedAt:    time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC),
	}
	entry2 := &activity.ActivityEntry{
		ActivityType: activity.TypeApplicationsImported,
		Summary:      "imported 3 applications",
		Details:      `{"added":3}`,
		CreatedAt:    time.Date(2025, 1, 2, 9, 0, 0, 0, time.UTC),
	}

	require.NoError(t, repo.Log(ctx, entry1))
	require.NoError(t, repo.Log(ctx, entry2))
	require.NotZero(t, entry1.ID)

	entries, err := repo.List(ctx, activity.ListActivityOptions{})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, entry2.ActivityType, entries[0].ActivityType)
	require.Equal(t, `{"added":3}`, entries[0].Details)
	require.Nil(t, entries[0].CompanyID)
	require.Equal(t, entry1.ActivityType, entries[1].ActivityType)
	require.Equal(t, "c1", *entries[1].CompanyID)
}

func TestActivityRepository_Filters(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	repo := NewActivityRepository(db)
	companyID := "c1"
	applicationID := "a1"
	other := "c2"
	require.NoError(t, repo.Log(ctx, &activity.ActivityEntry{
		CompanyID:     &companyID,
		ApplicationID: &applicationID,
		ActivityType:  activity.TypeApplicationUpdated,
		Summary:       "updated application",
	}))
	require.NoError(t, repo.Log(ctx, &activity.ActivityEntry{
		CompanyID:    &other,
		ActivityType: activity.TypeCompanyAdded,
		Summary:      "added company",
	}))

	activityType := activity.TypeApplicationUpdated
	entries, err := repo.List(ctx, activity.ListActivityOptions{
		CompanyID:     &companyID,
		ApplicationID: &applicationID,
		ActivityType:  &activityType,
	})
	require.NoError(t, err)
	require.Len(t, entries, 1)

	missing := "nope"
	entries, err = repo.List(ctx, activity.ListActivityOptions{CompanyID: &missing})
	require.NoError(t, err)
	require.Len(t, entries, 0)
}

func TestActivityRepository_LimitOffset(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewActivityRepository(db)

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Log(ctx, &activity.ActivityEntry{
			ActivityType: activity.TypeCompanyAdded,
			Summary:      "added",
			CreatedAt:    base.Add(time.Duration(i) * time.Hour),
		}))
	}

	entries, err := repo.List(ctx, activity.ListActivityOptions{Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, int64(4), entries[0].ID)

	entries, err = repo.List(ctx, activity.ListActivityOptions{Offset: 3})
	require.NoError(t, err)
	require.Len(t, entries, 2)
}
