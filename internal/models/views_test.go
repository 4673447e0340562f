package models

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKYCCase_View(t *testing.T) {
	phone := "+15550000000"
	user := &User{ID: uuid.New(), Name: "Amina Haddad", Email: "amina@example.com", Password: "hash", Phone: &phone, Region: RegionMENA}
	c := &KYCCase{ID: uuid.New(), UserID: user.ID, User: user, Status: KYCStatusPending, Region: RegionMENA}

	t.Run("list view projects name and email only", func(t *testing.T) {
		raw, err := json.Marshal(c.View())
		require.NoError(t, err)

		var out map[string]any
		require.NoError(t, json.Unmarshal(raw, &out))
		u := out["user"].(map[string]any)
		assert.ElementsMatch(t, []string{"_id", "name", "email"}, keys(u))
		assert.Equal(t, []any{}, out["notes"])
	})

	t.Run("detail view adds phone and region", func(t *testing.T) {
		raw, err := json.Marshal(c.DetailView())
		require.NoError(t, err)

		var out map[string]any
		require.NoError(t, json.Unmarshal(raw, &out))
		u := out["user"].(map[string]any)
		assert.ElementsMatch(t, []string{"_id", "name", "email", "phone", "region"}, keys(u))
		assert.NotContains(t, string(raw), "hash")
	})

	t.Run("missing user renders as null", func(t *testing.T) {
		orphan := &KYCCase{ID: uuid.New(), Notes: pq.StringArray{"a"}}
		raw, err := json.Marshal(orphan.View())
		require.NoError(t, err)
		assert.Contains(t, string(raw), `"user":null`)
	})
}

func TestTransaction_ViewAmountIsNumber(t *testing.T) {
	tx := &Transaction{ID: uuid.New(), Amount: decimal.RequireFromString("125.50")}
	raw, err := json.Marshal(tx.View())
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"amount":125.5`)
	assert.Contains(t, string(raw), `"sender":null`)
}

func TestUser_PasswordNeverSerialized(t *testing.T) {
	raw, err := json.Marshal(User{ID: uuid.New(), Email: "a@b.io", Password: "secret-hash"})
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "secret-hash")
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
