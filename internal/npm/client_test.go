package npm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jayvee-digital-labs/jvdl/internal/shell"
)

func TestClient_Commands(t *testing.T) {
	rec := shell.NewRecorder()
	c := New(rec, "/app")
	ctx := context.Background()

	require.NoError(t, c.Install(ctx))
	require.NoError(t, c.InstallDev(ctx, "husky", "prettier"))
	require.NoError(t, c.RunScript(ctx, "build"))
	require.NoError(t, c.Exec(ctx, "husky", "install"))
	require.NoError(t, c.Publish(ctx))

	assert.Equal(t, []string{
		"npm install",
		"npm install husky prettier --save-dev",
		"npm run build",
		"npx husky install",
		"npm publish",
	}, rec.Lines())
	assert.Equal(t, "/app", rec.Calls[0].Dir)
}

func TestClient_PropagatesFailure(t *testing.T) {
	rec := shell.NewRecorder().Fail("npm run test", 1)

	err := New(rec, "").RunScript(context.Background(), "test")
	assert.ErrorIs(t, err, shell.ErrExternalCommand)
}
