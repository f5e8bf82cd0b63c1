package broker_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/leadkit/igbroker/instagram"
)

func TestTimeline(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("not connected", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t)

		res := h.svc.Timeline(ctx, "acc-1", 20)
		require.False(t, res.Success)
		require.Equal(t, "Private API not connected. Log in first.", res.Error)
		require.NotNil(t, res.Media)
		require.Empty(t, res.Media)
	})

	t.Run("caps the feed at the limit", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t)
		connectHarness(t, h)
		h.client.timelineFn = func(context.Context) ([]instagram.Media, error) {
			feed := make([]instagram.Media, 35)
			for i := range feed {
				feed[i] = instagram.Media{PK: "m"}
			}
			return feed, nil
		}

		res := h.svc.Timeline(ctx, "acc-1", 20)
		require.True(t, res.Success)
		require.Len(t, res.Media, 20)
		require.Equal(t, 20, res.Total)
	})
}

func TestPostLikers(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("unrecognized url", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t)
		connectHarness(t, h)

		res := h.svc.PostLikers(ctx, "acc-1", "https://example.com/watch?v=x", 100)
		require.False(t, res.Success)
		require.Contains(t, res.Error, "post URL")
	})

	t.Run("caps likers at the limit", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t)
		connectHarness(t, h)
		h.client.mediaPKFromCodeFn = func(_ context.Context, shortcode string) (string, error) {
			require.Equal(t, "Abc123", shortcode)
			return "media-1", nil
		}
		h.client.mediaLikersFn = func(context.Context, string) ([]instagram.User, error) {
			return makeUsers(150), nil
		}
		h.client.mediaInfoFn = func(context.Context, string) (*instagram.Media, error) {
			return &instagram.Media{
				PK:        "media-1",
				LikeCount: 150,
				User:      &instagram.MediaOwner{PK: "42", Username: "bob"},
			}, nil
		}

		res := h.svc.PostLikers(ctx, "acc-1", "https://instagram.com/reel/Abc123/", 100)
		require.True(t, res.Success)
		require.Len(t, res.Likes, 100)
		require.Equal(t, 100, res.Total)
		require.NotNil(t, res.PostInfo)
		require.Equal(t, "bob", res.PostInfo.Owner.Username)
		require.Equal(t, "Abc123", res.PostInfo.Shortcode)
	})
}
