package contextx_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"deal_radar/pkg/contextx"
)

func TestUserID(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	userID, err := contextx.UserIDFromContext(ctx)
	rq.Zero(userID)
	rq.ErrorIs(err, contextx.ErrNoValue)
	rq.ErrorContains(err, "user id: no value in context")

	ctx = contextx.WithUserID(ctx, contextx.UserID(1217838677))

	userID, err = contextx.UserIDFromContext(ctx)
	rq.NoError(err)
	rq.Equal(contextx.UserID(1217838677), userID)
	rq.Equal("1217838677", userID.String())
}
