package application_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-blog-api/internal/application"
)

func TestStatsService_Statistics(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	a := s.mustUser(t, "a@example.com", "Aaa", false)
	s.mustUser(t, "b@example.com", "Bbb", false)
	p := s.mustPost(t, a, "counted")
	_, err := s.comments.Create(ctx, a, application.CreateCommentInput{PostID: p.ID, Content: "one"})
	require.NoError(t, err)

	st, err := s.stats.Statistics(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, st.TotalUsers)
	assert.EqualValues(t, 1, st.TotalPosts)
	assert.EqualValues(t, 1, st.TotalComments)
	assert.GreaterOrEqual(t, st.Uptime, 60.0)
}

func TestStatsService_Ping(t *testing.T) {
	s := newServices(t)
	assert.NoError(t, s.stats.Ping(context.Background()))
}
