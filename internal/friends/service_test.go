package friends_test

import (
	"net/url"
	"testing"
	"time"

	"github.com/hugh/birthday-reminder/internal/api/query"
	"github.com/hugh/birthday-reminder/internal/database/models"
	"github.com/hugh/birthday-reminder/internal/friends"
	"github.com/hugh/birthday-reminder/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func params(t *testing.T, raw string) query.Params {
	t.Helper()
	values, err := url.ParseQuery(raw)
	require.NoError(t, err)
	return query.Parse(friends.ListConfig, values)
}

func names(list []models.Friend) []string {
	out := make([]string, 0, len(list))
	for _, f := range list {
		out = append(out, f.Name)
	}
	return out
}

func TestService_List_ScopedToOwner(t *testing.T) {
	tc := testutil.NewTestContext(t)
	defer tc.Cleanup()
	svc := friends.NewService(tc.DB)
	ctx := testutil.TestContext(t)

	other := testutil.CreateTestUser(t, tc.DB)
	testutil.CreateTestFriend(t, tc.DB, tc.User.ID, "Alice", nil)
	testutil.CreateTestFriend(t, tc.DB, tc.User.ID, "Bob", nil)
	testutil.CreateTestFriend(t, tc.DB, other.ID, "Alicia", nil)

	for _, raw := range []string{"", "search=Ali", "name=Alicia", "sort=name", "skip=1&limit=1", "count=true"} {
		t.Run(raw, func(t *testing.T) {
			list, _, err := svc.List(ctx, tc.User.ID, params(t, raw))
			require.NoError(t, err)
			for _, f := range list {
				assert.Equal(t, tc.User.ID, f.UserID)
			}
		})
	}
}

func TestService_List_QueryParams(t *testing.T) {
	tc := testutil.NewTestContext(t)
	defer tc.Cleanup()
	svc := friends.NewService(tc.DB)
	ctx := testutil.TestContext(t)

	for _, name := range []string{"Carol", "Alice", "Bob", "Alina"} {
		testutil.CreateTestFriend(t, tc.DB, tc.User.ID, name, nil)
	}

	t.Run("default sort is newest first", func(t *testing.T) {
		list, total, err := svc.List(ctx, tc.User.ID, params(t, ""))
		require.NoError(t, err)
		assert.Equal(t, []string{"Alina", "Bob", "Alice", "Carol"}, names(list))
		assert.Equal(t, int64(-1), total)
	})

	t.Run("sort ascending by name", func(t *testing.T) {
		list, _, err := svc.List(ctx, tc.User.ID, params(t, "sort=name"))
		require.NoError(t, err)
		assert.Equal(t, []string{"Alice", "Alina", "Bob", "Carol"}, names(list))
	})

	t.Run("pagination", func(t *testing.T) {
		list, _, err := svc.List(ctx, tc.User.ID, params(t, "sort=name&skip=1&limit=2"))
		require.NoError(t, err)
		assert.Equal(t, []string{"Alina", "Bob"}, names(list))
	})

	t.Run("substring search with count", func(t *testing.T) {
		list, total, err := svc.List(ctx, tc.User.ID, params(t, "search=Ali&sort=name&limit=1&count=true"))
		require.NoError(t, err)
		assert.Equal(t, []string{"Alice"}, names(list))
		assert.Equal(t, int64(2), total)
	})

	t.Run("exact filter", func(t *testing.T) {
		list, _, err := svc.List(ctx, tc.User.ID, params(t, "name=Bob"))
		require.NoError(t, err)
		assert.Equal(t, []string{"Bob"}, names(list))
	})

	t.Run("empty result is not an error", func(t *testing.T) {
		list, _, err := svc.List(ctx, tc.User.ID, params(t, "name=Nobody"))
		require.NoError(t, err)
		assert.NotNil(t, list)
		assert.Empty(t, list)
	})
}

func TestService_GetUpdateDelete(t *testing.T) {
	tc := testutil.NewTestContext(t)
	defer tc.Cleanup()
	svc := friends.NewService(tc.DB)
	ctx := testutil.TestContext(t)

	other := testutil.CreateTestUser(t, tc.DB)
	mine := testutil.CreateTestFriend(t, tc.DB, tc.User.ID, "Alice", nil)
	theirs := testutil.CreateTestFriend(t, tc.DB, other.ID, "Eve", nil)

	t.Run("get own friend", func(t *testing.T) {
		f, err := svc.Get(ctx, tc.User.ID, mine.ID)
		require.NoError(t, err)
		assert.Equal(t, "Alice", f.Name)
	})

	t.Run("other users' friends are not visible", func(t *testing.T) {
		_, err := svc.Get(ctx, tc.User.ID, theirs.ID)
		assert.ErrorIs(t, err, friends.ErrNotFound)

		_, err = svc.Update(ctx, tc.User.ID, theirs.ID, friends.Input{Name: "Mallory"})
		assert.ErrorIs(t, err, friends.ErrNotFound)

		assert.ErrorIs(t, svc.Delete(ctx, tc.User.ID, theirs.ID), friends.ErrNotFound)

		var still models.Friend
		require.NoError(t, tc.DB.First(&still, theirs.ID).Error)
		assert.Equal(t, "Eve", still.Name)
	})

	t.Run("update replaces fields", func(t *testing.T) {
		born := time.Date(1990, time.July, 4, 0, 0, 0, 0, time.UTC)
		whatsapp := models.SourceWhatsApp

		f, err := svc.Update(ctx, tc.User.ID, mine.ID, friends.Input{Name: "Alice B", Source: &whatsapp, Birthdate: &born})
		require.NoError(t, err)
		assert.Equal(t, "Alice B", f.Name)
		require.NotNil(t, f.Source)
		assert.Equal(t, models.SourceWhatsApp, *f.Source)
		require.NotNil(t, f.Birthdate)
		assert.Equal(t, "1990-07-04", f.Birthdate.Format("2006-01-02"))

		f, err = svc.Update(ctx, tc.User.ID, mine.ID, friends.Input{Name: "Alice C"})
		require.NoError(t, err)
		assert.Nil(t, f.Source)
		assert.Nil(t, f.Birthdate)
	})

	t.Run("delete twice", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, tc.User.ID, mine.ID))
		assert.ErrorIs(t, svc.Delete(ctx, tc.User.ID, mine.ID), friends.ErrNotFound)
	})
}

func TestService_Create_ForcesOwner(t *testing.T) {
	tc := testutil.NewTestContext(t)
	defer tc.Cleanup()
	svc := friends.NewService(tc.DB)

	email := models.SourceEmail
	f, err := svc.Create(testutil.TestContext(t), tc.User.ID, friends.Input{Name: "Zed", Source: &email})
	require.NoError(t, err)
	assert.NotZero(t, f.ID)
	assert.Equal(t, tc.User.ID, f.UserID)
}
