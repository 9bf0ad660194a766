package service_test

import (
	"context"
	"testing"

	"github.com/gustmic/consulting-crm-api/internal/domain"
	"github.com/gustmic/consulting-crm-api/internal/repository"
	"github.com/gustmic/consulting-crm-api/internal/service"
	"github.com/gustmic/consulting-crm-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupBlogService(t *testing.T) *service.BlogService {
	db := testutil.SetupTestDB(t)
	return service.NewBlogService(repository.NewBlogPostRepository(db), zap.NewNop())
}

func TestBlogService_Create_PublishedStampsPublishedAt(t *testing.T) {
	svc := setupBlogService(t)

	dto, err := svc.Create(context.Background(), &domain.CreateBlogPostRequest{
		Title:     "Scaling a consulting practice",
		Slug:      "scaling-a-consulting-practice",
		Body:      "Long form content.",
		Published: true,
	}, "Gustav")
	require.NoError(t, err)

	assert.True(t, dto.Published)
	assert.NotNil(t, dto.PublishedAt)
	assert.Equal(t, "Gustav", dto.AuthorName)
}

func TestBlogService_Create_DraftHasNoPublishedAt(t *testing.T) {
	svc := setupBlogService(t)

	dto, err := svc.Create(context.Background(), &domain.CreateBlogPostRequest{
		Title: "Draft",
		Slug:  "draft",
		Body:  "WIP",
	}, "Gustav")
	require.NoError(t, err)

	assert.False(t, dto.Published)
	assert.Nil(t, dto.PublishedAt)
}

func TestBlogService_Update_FirstPublishStampsOnce(t *testing.T) {
	svc := setupBlogService(t)

	created, err := svc.Create(context.Background(), &domain.CreateBlogPostRequest{
		Title: "Draft",
		Slug:  "draft",
		Body:  "WIP",
	}, "Gustav")
	require.NoError(t, err)

	published, err := svc.Update(context.Background(), created.ID, &domain.UpdateBlogPostRequest{
		Title:     "Draft",
		Slug:      "draft",
		Body:      "Done",
		Published: true,
	})
	require.NoError(t, err)
	require.NotNil(t, published.PublishedAt)
	stamped := *published.PublishedAt

	// Editing an already-published post keeps the original timestamp
	edited, err := svc.Update(context.Background(), created.ID, &domain.UpdateBlogPostRequest{
		Title:     "Draft, revised",
		Slug:      "draft",
		Body:      "Done and revised",
		Published: true,
	})
	require.NoError(t, err)
	require.NotNil(t, edited.PublishedAt)
	assert.Equal(t, stamped, *edited.PublishedAt)
}

func TestBlogService_GetPublishedBySlug_HidesDrafts(t *testing.T) {
	svc := setupBlogService(t)

	_, err := svc.Create(context.Background(), &domain.CreateBlogPostRequest{
		Title: "Draft",
		Slug:  "draft",
		Body:  "WIP",
	}, "Gustav")
	require.NoError(t, err)

	_, err = svc.GetPublishedBySlug(context.Background(), "draft")
	assert.ErrorIs(t, err, service.ErrNotFound)

	_, err = svc.Create(context.Background(), &domain.CreateBlogPostRequest{
		Title:     "Live",
		Slug:      "live",
		Body:      "Content",
		Published: true,
	}, "Gustav")
	require.NoError(t, err)

	post, err := svc.GetPublishedBySlug(context.Background(), "live")
	require.NoError(t, err)
	assert.Equal(t, "Live", post.Title)
}

func TestBlogService_ListPublished_ExcludesDrafts(t *testing.T) {
	svc := setupBlogService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, &domain.CreateBlogPostRequest{Title: "A", Slug: "a", Body: "x", Published: true}, "Gustav")
	require.NoError(t, err)
	_, err = svc.Create(ctx, &domain.CreateBlogPostRequest{Title: "B", Slug: "b", Body: "x"}, "Gustav")
	require.NoError(t, err)

	posts, total, err := svc.ListPublished(ctx, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, posts, 1)
	assert.Equal(t, "A", posts[0].Title)
}
