package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/N1k3YB/turistic-agency-sub002/internal/core/domain"
	"github.com/N1k3YB/turistic-agency-sub002/internal/core/ports"
)

func boolPtr(b bool) *bool { return &b }

func newReviewFixture() (*ReviewService, *stubReviewRepo) {
	tours := &stubTourRepo{items: []*domain.Tour{{ID: "t1", Slug: "altai-trek"}}}
	reviews := &stubReviewRepo{items: []*domain.Review{
		{ID: "r1", TourID: "t1", UserID: "u1", Rating: 5, IsApproved: true},
		{ID: "r2", TourID: "t1", UserID: "u2", Rating: 2},
		{ID: "r3", TourID: "t1", UserID: "u3", Rating: 3},
	}}
	return NewReviewService(reviews, tours, testValidator, discardLogger), reviews
}

func TestReviewCreate(t *testing.T) {
	svc, reviews := newReviewFixture()
	ctx := context.Background()
	valid := ports.CreateReviewInput{Rating: 4, Comment: "Great guides and views"}

	t.Run("anonymous", func(t *testing.T) {
		_, err := svc.Create(ctx, nil, "altai-trek", valid)
		require.ErrorIs(t, err, domain.ErrUnauthenticated)
		assert.Zero(t, reviews.calls)
	})

	t.Run("rating out of range and short comment", func(t *testing.T) {
		_, err := svc.Create(ctx, userSession("u9"), "altai-trek", ports.CreateReviewInput{Rating: 6, Comment: "meh"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("submitted unapproved", func(t *testing.T) {
		r, err := svc.Create(ctx, userSession("u9"), "altai-trek", valid)
		require.NoError(t, err)
		assert.False(t, r.IsApproved)
		assert.Equal(t, "User u9", r.AuthorName)
	})

	t.Run("second review conflicts", func(t *testing.T) {
		_, err := svc.Create(ctx, userSession("u9"), "altai-trek", valid)
		assert.ErrorIs(t, err, domain.ErrConflict)
		assert.Len(t, reviews.items, 4)
	})

	t.Run("unknown tour", func(t *testing.T) {
		_, err := svc.Create(ctx, userSession("u9"), "nowhere", valid)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestReviewListForTour_Visibility(t *testing.T) {
	svc, _ := newReviewFixture()
	ctx := context.Background()

	anon, err := svc.ListForTour(ctx, nil, "altai-trek")
	require.NoError(t, err)
	require.Len(t, anon, 1)
	assert.Equal(t, "r1", anon[0].ID)

	author, err := svc.ListForTour(ctx, userSession("u2"), "altai-trek")
	require.NoError(t, err)
	ids := []string{}
	for _, r := range author {
		ids = append(ids, r.ID)
	}
	assert.ElementsMatch(t, []string{"r1", "r2"}, ids)
}

func TestReviewModeration_AdminOnly(t *testing.T) {
	svc, reviews := newReviewFixture()
	ctx := context.Background()

	_, err := svc.Moderate(ctx, managerSession("m1"), "r2", ports.ModerateReviewInput{IsApproved: boolPtr(true)})
	require.ErrorIs(t, err, domain.ErrForbidden)
	assert.Zero(t, reviews.calls)

	_, err = svc.Moderate(ctx, adminSession("a1"), "r2", ports.ModerateReviewInput{})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	r, err := svc.Moderate(ctx, adminSession("a1"), "r2", ports.ModerateReviewInput{IsApproved: boolPtr(true)})
	require.NoError(t, err)
	assert.True(t, r.IsApproved)

	page, err := svc.ListAll(ctx, adminSession("a1"), ports.ListReviewsInput{Approved: boolPtr(false)})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "r3", page.Items[0].ID)

	require.NoError(t, svc.Delete(ctx, adminSession("a1"), "r3"))
	assert.ErrorIs(t, svc.Delete(ctx, adminSession("a1"), "r3"), domain.ErrNotFound)
}

func TestReviewListOwn(t *testing.T) {
	svc, _ := newReviewFixture()

	page, err := svc.ListOwn(context.Background(), userSession("u3"), ports.PageQuery{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "r3", page.Items[0].ID)

	_, err = svc.ListOwn(context.Background(), nil, ports.PageQuery{})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}
