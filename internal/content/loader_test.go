package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quistberg/ladle/internal/domain"
)

func writeContentFile(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func writeValidContent(t *testing.T, dir string) {
	t.Helper()
	writeContentFile(t, dir, FileAtoms, `{
		"version": "1.0",
		"atoms": [
			{"name": "Bread", "cost": 1, "starting": true},
			{"name": "Fish", "cost": 3.5, "merchant_price": 12}
		]
	}`)
	writeContentFile(t, dir, FileRecipes, `{
		"version": "1.0",
		"combine": [{"inputs": ["Bread", "Fish"], "result": "Fish Sandwich"}],
		"split": [{"source": "Fish Sandwich", "parts": ["Bread", "Fish"]}],
		"amplify": [{"source": "Bread", "result": "Golden Toast"}],
		"mutate": [{"source": "Fish", "result": "Glowing Fish"}]
	}`)
	writeContentFile(t, dir, FileFoods, `{
		"version": "1.0",
		"default": {"filling": 1},
		"foods": {"Bread": {"filling": 2, "containsGluten": 1}}
	}`)
	writeContentFile(t, dir, FileCustomers, `{
		"version": "1.0",
		"customers": [{"name": "Hungry Student", "hint": "big", "demand": {"filling": 4}, "spawn_day": 1}]
	}`)
	writeContentFile(t, dir, FileBosses, `{
		"version": "1.0",
		"bosses": [{"name": "The Critic", "day": 5, "victory_bonus": 60,
			"orders": [{"name": "Opener", "demand": {"savory": 3}, "max_distance": 4}]}]
	}`)
	writeContentFile(t, dir, FileArtifacts, `{
		"version": "1.0",
		"artifacts": [{"id": "tip_jar", "name": "Tip Jar", "effect": {"type": "payment_bonus", "value": 1.2}}]
	}`)
	writeContentFile(t, dir, FileConsumables, `{
		"version": "1.0",
		"consumables": [{"id": "lucky_coin", "name": "Lucky Coin", "rarity": "uncommon",
			"effect": {"type": "lucky_coin", "value": 1}}]
	}`)
	writeContentFile(t, dir, FileTaste, `{
		"version": "1.0",
		"buckets": {"spicy": [{"min": 1, "max": 99, "msg": "Hot."}]}
	}`)
}

func TestLoad_Valid(t *testing.T) {
	dir := t.TempDir()
	writeValidContent(t, dir)

	tables, err := NewLoader().Load(dir)
	require.NoError(t, err)

	assert.Len(t, tables.Atoms, 2)
	assert.True(t, tables.IsAtom("Bread"))
	assert.False(t, tables.IsAtom("Fish Sandwich"))

	result, ok := tables.CombineResult("Fish", "Bread")
	assert.True(t, ok, "combine lookup should match either ordering")
	assert.Equal(t, "Fish Sandwich", result)

	parts, ok := tables.SplitResult("Fish Sandwich")
	assert.True(t, ok)
	assert.Equal(t, [2]string{"Bread", "Fish"}, parts)

	amplified, ok := tables.AmplifyResult("Bread")
	assert.True(t, ok)
	assert.Equal(t, "Golden Toast", amplified)

	assert.True(t, tables.IsSimpleDish("Fish Sandwich"), "combined from two atoms")
	assert.False(t, tables.IsSimpleDish("Golden Toast"), "amplified, not combined")
	assert.False(t, tables.IsSimpleDish("Bread"))

	_, ok = tables.ArtifactByID("tip_jar")
	assert.True(t, ok)
	_, ok = tables.ConsumableByID("lucky_coin")
	assert.True(t, ok)

	boss, ok := tables.BossForDay(5)
	assert.True(t, ok)
	assert.Equal(t, "The Critic", boss.Name)
	assert.Equal(t, 5, tables.FinalBossDay())
}

func TestLoad_MissingFile(t *testing.T) {
	dir := t.TempDir()
	writeValidContent(t, dir)
	require.NoError(t, os.Remove(filepath.Join(dir, FileTaste)))

	_, err := NewLoader().Load(dir)
	assert.Error(t, err)
}

func TestLoad_MalformedJSON(t *testing.T) {
	dir := t.TempDir()
	writeValidContent(t, dir)
	writeContentFile(t, dir, FileAtoms, `{"atoms": [`)

	_, err := NewLoader().Load(dir)
	assert.Error(t, err)
}

func TestValidate_Errors(t *testing.T) {
	base := func() *Tables {
		return &Tables{
			Atoms: []AtomDef{{Name: "Bread", Cost: 1, Starting: true}},
			Customers: []domain.Customer{
				{Name: "Regular", Demand: domain.DemandVector{domain.AttrFilling: 2}, SpawnDay: 1},
			},
			atomSet: map[string]bool{"Bread": true},
		}
	}

	tests := []struct {
		name    string
		mutate  func(t *Tables)
		wantErr error
	}{
		{"no atoms", func(t *Tables) { t.Atoms = nil }, ErrInvalidConfig},
		{"duplicate atom", func(t *Tables) {
			t.Atoms = append(t.Atoms, AtomDef{Name: "Bread", Cost: 2})
		}, ErrDuplicateName},
		{"negative cost", func(t *Tables) { t.Atoms[0].Cost = -1 }, ErrInvalidConfig},
		{"no starting atom", func(t *Tables) { t.Atoms[0].Starting = false }, ErrInvalidConfig},
		{"no customers", func(t *Tables) { t.Customers = nil }, ErrInvalidConfig},
		{"empty demand", func(t *Tables) { t.Customers[0].Demand = nil }, ErrInvalidConfig},
		{"no day-one customer", func(t *Tables) { t.Customers[0].SpawnDay = 3 }, ErrInvalidConfig},
		{"boss without courses", func(t *Tables) {
			t.Bosses = []domain.Boss{{Name: "Critic", Day: 5}}
		}, ErrInvalidConfig},
		{"boss course without max distance", func(t *Tables) {
			t.Bosses = []domain.Boss{{Name: "Critic", Day: 5, Orders: []domain.BossCourse{{Name: "Opener"}}}}
		}, ErrInvalidConfig},
		{"incomplete combine", func(t *Tables) {
			t.Combine = []CombineEntry{{Inputs: [2]string{"Bread", ""}, Result: "X"}}
		}, ErrInvalidConfig},
		{"duplicate effect id", func(t *Tables) {
			t.Artifacts = []domain.Artifact{{ID: "x", Effect: domain.EffectSpec{Type: domain.EffectPaymentBonus}}}
			t.Consumables = []domain.Consumable{{ID: "x", Effect: domain.EffectSpec{Type: domain.EffectLuckyCoin}}}
		}, ErrDuplicateName},
	}

	l := loader{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tables := base()
			tt.mutate(tables)
			err := l.Validate(tables)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	assert.NoError(t, l.Validate(base()))
}
