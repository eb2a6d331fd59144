package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserGoals(t *testing.T) {
	valid := `["buy-to-let","capital-growth"]`
	malformed := `{"not":"a list"`
	empty := "  "

	u := User{GoalsJSON: &valid}
	assert.Equal(t, []string{"buy-to-let", "capital-growth"}, u.Goals())

	u.GoalsJSON = &malformed
	assert.Empty(t, u.Goals(), "malformed stored JSON must read as no goals")

	u.GoalsJSON = &empty
	assert.Empty(t, u.Goals())

	u.GoalsJSON = nil
	assert.Empty(t, u.Goals())
}

func TestUserSerializesDecodedGoals(t *testing.T) {
	stored := `["diversification"]`
	u := User{Email: "investor@example.com", UserTier: TierPremium, GoalsJSON: &stored}

	raw, err := json.Marshal(u)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, []interface{}{"diversification"}, out["goals"])
	assert.NotContains(t, out, "goals_json", "raw stored JSON must stay internal")
}
