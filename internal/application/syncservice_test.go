package application_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/ericfisherdev/marquee/internal/application"
	"github.com/ericfisherdev/marquee/internal/domain/model"
)

func TestSyncAll_CopiesPublishedDocuments(t *testing.T) {
	cms := newMemStore(
		doc(t, "division-live", model.ContentTypeDivision, `"title":"Live"`),
		doc(t, "drafts.division-live", model.ContentTypeDivision, `"title":"Live (draft)"`),
		doc(t, "news-1", model.ContentTypeNewsArticle, `"title":"One"`),
	)
	mirror := newMemStore(
		doc(t, "division-removed", model.ContentTypeDivision, `"title":"Gone"`),
	)

	svc := application.NewSyncService(cms, mirror, time.Hour)
	result, err := svc.SyncAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, result.Documents)
	assert.Equal(t, len(model.AllContentTypes()), result.Types)
	assert.Empty(t, result.Failed)
	assert.Equal(t, []string{"division-live", "news-1"}, mirror.ids())
}

func TestSyncAll_FailedTypeKeepsMirroredDocuments(t *testing.T) {
	cms := newMemStore(
		doc(t, "division-live", model.ContentTypeDivision, `"title":"Live"`),
	)
	cms.listErr[model.ContentTypeNewsArticle] = errors.New("cms timeout")
	mirror := newMemStore(
		doc(t, "news-old", model.ContentTypeNewsArticle, `"title":"Old"`),
	)

	svc := application.NewSyncService(cms, mirror, time.Hour)
	result, err := svc.SyncAll(context.Background())
	require.Error(t, err)

	assert.Equal(t, []model.ContentType{model.ContentTypeNewsArticle}, result.Failed)
	assert.Equal(t, []string{"division-live", "news-old"}, mirror.ids())
	assert.NotContains(t, mirror.replaces, model.ContentTypeNewsArticle)
}

func TestSyncService_Refresh(t *testing.T) {
	defer goleak.VerifyNone(t)

	cms := newMemStore()
	mirror := newMemStore()
	svc := application.NewSyncService(cms, mirror, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		svc.Start(ctx)
		close(done)
	}()

	require.NoError(t, cms.CreateOrReplace(ctx, doc(t, "team-a", model.ContentTypeTeamMember, `"name":"A"`)))

	result, err := svc.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Documents)
	assert.Equal(t, []string{"team-a"}, mirror.ids())

	cancel()
	<-done
}

func TestSyncService_RefreshCanceled(t *testing.T) {
	svc := application.NewSyncService(newMemStore(), newMemStore(), time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Refresh(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
