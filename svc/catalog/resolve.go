package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Getter looks one record up by ID. Satisfied by Repo and by test fakes.
type Getter[T Entity] interface {
	GetByID(ctx context.Context, id uuid.UUID) (T, error)
}

// ResolvedJournal is a journal with its catalog references loaded.
type ResolvedJournal struct {
	Journal     Journal
	Country     Country
	Languages   []Language
	License     *License
	SherpaRomeo *SherpaRomeo
}

// ResolvedIssue is an issue with its journal loaded.
type ResolvedIssue struct {
	Issue   Issue
	Journal Journal
}

// ResolvedDocument is a document with its full reference chain loaded.
type ResolvedDocument struct {
	Document    Document
	Issue       Issue
	Journal     Journal
	Language    Language
	Type        DocumentType
	Focus       *DocumentFocus
	Geographics []GeographicName
}

// Resolver loads the records behind the IDs a journal, issue, or document
// carries. A dangling reference fails with ErrRefNotFound naming the field.
type Resolver struct {
	Countries       Getter[Country]
	Languages       Getter[Language]
	DocumentTypes   Getter[DocumentType]
	DocumentFoci    Getter[DocumentFocus]
	GeographicNames Getter[GeographicName]
	Licenses        Getter[License]
	SherpaRomeo     Getter[SherpaRomeo]
	Journals        Getter[Journal]
	Issues          Getter[Issue]
}

// NewResolver wires a Resolver over the store's repositories.
func NewResolver(store *Store) *Resolver {
	return &Resolver{
		Countries:       store.Countries,
		Languages:       store.Languages,
		DocumentTypes:   store.DocumentTypes,
		DocumentFoci:    store.DocumentFoci,
		GeographicNames: store.GeographicNames,
		Licenses:        store.Licenses,
		SherpaRomeo:     store.SherpaRomeo,
		Journals:        store.Journals,
		Issues:          store.Issues,
	}
}

// resolveRef wraps a lookup so a missing record reports which reference
// field was dangling.
func resolveRef[T Entity](ctx context.Context, g Getter[T], id uuid.UUID, field string) (T, error) {
	e, err := g.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return e, fmt.Errorf("%w: %s %s", ErrRefNotFound, field, id)
		}
		return e, fmt.Errorf("failed to resolve %s: %w", field, err)
	}
	return e, nil
}

// ResolveJournal loads the country, languages, and optional license and
// Sherpa/Romeo policy a journal references.
func (r *Resolver) ResolveJournal(ctx context.Context, j Journal) (*ResolvedJournal, error) {
	country, err := resolveRef(ctx, r.Countries, j.CountryID, "country")
	if err != nil {
		return nil, err
	}

	langs := make([]Language, 0, len(j.LanguageIDs))
	for _, id := range j.LanguageIDs {
		lang, err := resolveRef(ctx, r.Languages, id, "language")
		if err != nil {
			return nil, err
		}
		langs = append(langs, lang)
	}

	resolved := &ResolvedJournal{Journal: j, Country: country, Languages: langs}

	if j.LicenseID != uuid.Nil {
		lic, err := resolveRef(ctx, r.Licenses, j.LicenseID, "license")
		if err != nil {
			return nil, err
		}
		resolved.License = &lic
	}
	if j.SherpaRomeoID != uuid.Nil {
		sr, err := resolveRef(ctx, r.SherpaRomeo, j.SherpaRomeoID, "sherpa_romeo")
		if err != nil {
			return nil, err
		}
		resolved.SherpaRomeo = &sr
	}

	return resolved, nil
}

// ResolveIssue loads the journal an issue belongs to.
func (r *Resolver) ResolveIssue(ctx context.Context, i Issue) (*ResolvedIssue, error) {
	journal, err := resolveRef(ctx, r.Journals, i.JournalID, "journal")
	if err != nil {
		return nil, err
	}
	return &ResolvedIssue{Issue: i, Journal: journal}, nil
}

// ResolveDocument loads the full reference chain of a document: its issue,
// the issue's journal, and the catalog records the document points at.
func (r *Resolver) ResolveDocument(ctx context.Context, d Document) (*ResolvedDocument, error) {
	issue, err := resolveRef(ctx, r.Issues, d.IssueID, "issue")
	if err != nil {
		return nil, err
	}
	journal, err := resolveRef(ctx, r.Journals, issue.JournalID, "journal")
	if err != nil {
		return nil, err
	}
	lang, err := resolveRef(ctx, r.Languages, d.LanguageID, "language")
	if err != nil {
		return nil, err
	}
	docType, err := resolveRef(ctx, r.DocumentTypes, d.DocumentTypeID, "document_type")
	if err != nil {
		return nil, err
	}

	resolved := &ResolvedDocument{
		Document: d,
		Issue:    issue,
		Journal:  journal,
		Language: lang,
		Type:     docType,
	}

	if d.FocusID != uuid.Nil {
		focus, err := resolveRef(ctx, r.DocumentFoci, d.FocusID, "focus")
		if err != nil {
			return nil, err
		}
		resolved.Focus = &focus
	}

	for _, id := range d.GeographicIDs {
		geo, err := resolveRef(ctx, r.GeographicNames, id, "geographic_name")
		if err != nil {
			return nil, err
		}
		resolved.Geographics = append(resolved.Geographics, geo)
	}

	return resolved, nil
}
