package nav

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teenfaith/teenfaith/internal/models"
	"github.com/teenfaith/teenfaith/internal/session"
)

type mapStore map[any]any

func (m mapStore) Get(key any) any      { return m[key] }
func (m mapStore) Set(key any, val any) { m[key] = val }
func (m mapStore) Delete(key any)       { delete(m, key) }
func (m mapStore) Save() error          { return nil }

func TestParse(t *testing.T) {
	for _, p := range Pages {
		got, err := Parse(string(p))
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}

	_, err := Parse("settings")
	assert.ErrorIs(t, err, ErrUnknownPage)
	_, err = Parse("")
	assert.ErrorIs(t, err, ErrUnknownPage)
}

func TestLoad(t *testing.T) {
	store := mapStore{}
	assert.Equal(t, PageHome, Load(store))

	Navigate(store, PageQuizzes)
	assert.Equal(t, PageQuizzes, Load(store))

	store[session.PageKey] = "nowhere"
	assert.Equal(t, PageHome, Load(store))

	store[session.PageKey] = 7
	assert.Equal(t, PageHome, Load(store))
}

func TestNavigate_AnyPage(t *testing.T) {
	store := mapStore{}
	Navigate(store, PageAdmin)
	assert.Equal(t, PageAdmin, Load(store))
}

func TestResolve(t *testing.T) {
	assert.Equal(t, PageLogin, Resolve(false, PageBible))
	assert.Equal(t, PageLogin, Resolve(false, PageLogin))
	assert.Equal(t, PageBible, Resolve(true, PageBible))
	assert.Equal(t, PageLogin, Resolve(true, PageLogin))
}

func TestMenu(t *testing.T) {
	teen := Menu(models.RoleTeen)
	assert.Len(t, teen, 7)
	assert.False(t, lo.ContainsBy(teen, func(i MenuItem) bool { return i.Page == PageAdmin }))
	assert.Equal(t, "Cinema", teen[4].Label)

	admin := Menu(models.RoleAdmin)
	assert.Len(t, admin, 8)
	assert.Equal(t, PageAdmin, admin[7].Page)

	// callers must not be able to mutate the shared menu
	teen[0].Label = "changed"
	assert.Equal(t, "Home", Menu(models.RoleTeen)[0].Label)
}
