package catalog

import (
	"context"
	"embed"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"gopkg.in/yaml.v3"
)

//go:embed seed/*.yaml
var seedFS embed.FS

// SeedEntry is one coded catalog record parsed from seed YAML.
type SeedEntry struct {
	Code string   `yaml:"code"`
	Name I18NText `yaml:"name"`
}

// ParseSeed decodes seed YAML. Every entry needs a code and at least the
// Spanish display name; anything else fails with ErrInvalidSeed.
func ParseSeed(data []byte) ([]SeedEntry, error) {
	var entries []SeedEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidSeed, err)
	}
	for i, e := range entries {
		if e.Code == "" {
			return nil, fmt.Errorf("%w: entry %d has no code", ErrInvalidSeed, i)
		}
		if e.Name.Es == "" {
			return nil, fmt.Errorf("%w: entry %q has no Spanish name", ErrInvalidSeed, e.Code)
		}
	}
	return entries, nil
}

// seedRepo is the subset of Repo the seeder needs.
type seedRepo[T Entity] interface {
	Find(ctx context.Context, filter bson.M) ([]T, error)
	Create(ctx context.Context, e T) error
}

// seedCoded inserts the entries that are not present yet, matching on code,
// and returns how many were inserted. Re-running the seeder is safe.
func seedCoded[T Entity](ctx context.Context, repo seedRepo[T], entries []SeedEntry, build func(SeedEntry) T) (int, error) {
	inserted := 0
	for _, e := range entries {
		existing, err := repo.Find(ctx, bson.M{"code": e.Code})
		if err != nil {
			return inserted, fmt.Errorf("failed to check seed entry %q: %w", e.Code, err)
		}
		if len(existing) > 0 {
			continue
		}
		if err := repo.Create(ctx, build(e)); err != nil {
			return inserted, fmt.Errorf("failed to insert seed entry %q: %w", e.Code, err)
		}
		inserted++
	}
	return inserted, nil
}

// SeedCountries loads country entries into the store.
func SeedCountries(ctx context.Context, repo seedRepo[Country], entries []SeedEntry) (int, error) {
	return seedCoded(ctx, repo, entries, func(e SeedEntry) Country {
		return Country{ID: uuid.New(), Code: e.Code, Name: e.Name}
	})
}

// SeedLanguages loads language entries into the store.
func SeedLanguages(ctx context.Context, repo seedRepo[Language], entries []SeedEntry) (int, error) {
	return seedCoded(ctx, repo, entries, func(e SeedEntry) Language {
		return Language{ID: uuid.New(), Code: e.Code, Name: e.Name}
	})
}

// SeedDefaults loads the embedded country and language seed data.
func SeedDefaults(ctx context.Context, store *Store) error {
	countries, err := seedFS.ReadFile("seed/countries.yaml")
	if err != nil {
		return fmt.Errorf("failed to read country seed: %w", err)
	}
	languages, err := seedFS.ReadFile("seed/languages.yaml")
	if err != nil {
		return fmt.Errorf("failed to read language seed: %w", err)
	}

	countryEntries, err := ParseSeed(countries)
	if err != nil {
		return err
	}
	languageEntries, err := ParseSeed(languages)
	if err != nil {
		return err
	}

	if _, err := SeedCountries(ctx, store.Countries, countryEntries); err != nil {
		return err
	}
	if _, err := SeedLanguages(ctx, store.Languages, languageEntries); err != nil {
		return err
	}
	return nil
}
