package journal

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"audience-sync/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFeature_Disabled(t *testing.T) {
	f := NewFeature(nil, nil)
	assert.Equal(t, "journal", f.Name())
	assert.False(t, f.IsEnabled())
}

func TestHandleGetRun(t *testing.T) {
	db := setupSQLite(t)
	j := New(db, nil)
	require.NoError(t, j.Migrate())

	batches := reconcile.Batches{Add: []*reconcile.Item{addItem("a"), addItem("b")}}
	exec := reconcile.NewExecutor(stubWriter{fail: map[string]bool{"b": true}}, nil, reconcile.Options{}).WithHooks(j)
	_, err := exec.Execute(context.Background(), batches)
	require.NoError(t, err)

	app := fiber.New()
	feature := NewFeature(db, nil)
	require.True(t, feature.IsEnabled())
	require.NoError(t, feature.Load(app))

	t.Run("Known run", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/journal/"+j.RunID(), nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body RunResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, j.RunID(), body.RunID)
		assert.Equal(t, []StateCount{{State: "committed", Count: 1}, {State: "failed", Count: 1}}, body.Summary)
		require.Len(t, body.Outcomes, 2)
		assert.Equal(t, "id-a", body.Outcomes[0].TargetID)
	})

	t.Run("Unknown run", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/journal/nope", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
