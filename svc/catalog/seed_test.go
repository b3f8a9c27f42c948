package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/citelab/bibcat/svc/catalog"
)

// fakeSeedRepo implements the Find/Create pair the seeder needs.
type fakeSeedRepo struct {
	countries []catalog.Country
}

func (f *fakeSeedRepo) Find(ctx context.Context, filter bson.M) ([]catalog.Country, error) {
	code, _ := filter["code"].(string)
	var out []catalog.Country
	for _, c := range f.countries {
		if c.Code == code {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeSeedRepo) Create(ctx context.Context, c catalog.Country) error {
	f.countries = append(f.countries, c)
	return nil
}

func TestParseSeed(t *testing.T) {
	t.Parallel()

	t.Run("valid entries", func(t *testing.T) {
		t.Parallel()

		data := []byte(`
- code: MX
  name: {es: "México", en: "Mexico"}
- code: AR
  name: {es: "Argentina"}
`)
		entries, err := catalog.ParseSeed(data)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "MX", entries[0].Code)
		assert.Equal(t, "México", entries[0].Name.Es)
		assert.Equal(t, "Mexico", entries[0].Name.En)
		assert.Empty(t, entries[1].Name.En)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		t.Parallel()

		_, err := catalog.ParseSeed([]byte("{not yaml: ["))
		assert.ErrorIs(t, err, catalog.ErrInvalidSeed)
	})

	t.Run("missing code", func(t *testing.T) {
		t.Parallel()

		_, err := catalog.ParseSeed([]byte(`
- name: {es: "México"}
`))
		assert.ErrorIs(t, err, catalog.ErrInvalidSeed)
	})

	t.Run("missing spanish name", func(t *testing.T) {
		t.Parallel()

		_, err := catalog.ParseSeed([]byte(`
- code: MX
  name: {en: "Mexico"}
`))
		assert.ErrorIs(t, err, catalog.ErrInvalidSeed)
	})
}

func TestSeedCountries(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	entries := []catalog.SeedEntry{
		{Code: "MX", Name: catalog.I18NText{Es: "México", En: "Mexico"}},
		{Code: "AR", Name: catalog.I18NText{Es: "Argentina", En: "Argentina"}},
	}

	t.Run("inserts new entries", func(t *testing.T) {
		t.Parallel()

		repo := &fakeSeedRepo{}
		n, err := catalog.SeedCountries(ctx, repo, entries)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		require.Len(t, repo.countries, 2)
		assert.NotEqual(t, repo.countries[0].ID, repo.countries[1].ID)
	})

	t.Run("re-seeding is idempotent", func(t *testing.T) {
		t.Parallel()

		repo := &fakeSeedRepo{}
		_, err := catalog.SeedCountries(ctx, repo, entries)
		require.NoError(t, err)

		n, err := catalog.SeedCountries(ctx, repo, entries)
		require.NoError(t, err)
		assert.Zero(t, n)
		assert.Len(t, repo.countries, 2)
	})
}
