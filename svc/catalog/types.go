package catalog

import (
	"time"

	"github.com/google/uuid"
)

// I18NText is a display string in the two supported catalog languages.
type I18NText struct {
	Es string `bson:"es" yaml:"es" json:"es"`
	En string `bson:"en" yaml:"en" json:"en"`
}

// In returns the text for the given language code, falling back to Spanish.
func (t I18NText) In(lang string) string {
	if lang == "en" && t.En != "" {
		return t.En
	}
	return t.Es
}

// Entity is implemented by every catalog record stored through Repo.
type Entity interface {
	EntityID() uuid.UUID
}

// Country is an ISO 3166 country reference record.
type Country struct {
	ID   uuid.UUID `bson:"_id"`
	Code string    `bson:"code"` // ISO 3166-1 alpha-2
	Name I18NText  `bson:"name"`
}

func (c Country) EntityID() uuid.UUID { return c.ID }

// Language is an ISO 639 language reference record.
type Language struct {
	ID   uuid.UUID `bson:"_id"`
	Code string    `bson:"code"` // ISO 639-1
	Name I18NText  `bson:"name"`
}

func (l Language) EntityID() uuid.UUID { return l.ID }

// DocumentType classifies a document (article, review, editorial, ...).
type DocumentType struct {
	ID   uuid.UUID `bson:"_id"`
	Code string    `bson:"code"`
	Name I18NText  `bson:"name"`
}

func (d DocumentType) EntityID() uuid.UUID { return d.ID }

// DocumentFocus classifies the approach of a document (analytical,
// descriptive, experimental, ...).
type DocumentFocus struct {
	ID   uuid.UUID `bson:"_id"`
	Code string    `bson:"code"`
	Name I18NText  `bson:"name"`
}

func (d DocumentFocus) EntityID() uuid.UUID { return d.ID }

// GeographicName is a place referenced by documents as subject coverage.
type GeographicName struct {
	ID   uuid.UUID `bson:"_id"`
	Name I18NText  `bson:"name"`
}

func (g GeographicName) EntityID() uuid.UUID { return g.ID }

// License is a Creative Commons license variant.
type License struct {
	ID   uuid.UUID `bson:"_id"`
	Code string    `bson:"code"` // e.g. "by-nc-sa"
	Name I18NText  `bson:"name"`
	URL  string    `bson:"url"`
}

func (l License) EntityID() uuid.UUID { return l.ID }

// SherpaRomeo is a journal self-archiving policy record.
type SherpaRomeo struct {
	ID     uuid.UUID `bson:"_id"`
	Color  string    `bson:"color"` // green, blue, yellow, white
	Policy I18NText  `bson:"policy"`
}

func (s SherpaRomeo) EntityID() uuid.UUID { return s.ID }

// Journal is a periodical publication. Reference fields hold catalog IDs
// and are resolved explicitly.
type Journal struct {
	ID            uuid.UUID   `bson:"_id"`
	Title         string      `bson:"title"`
	ISSN          string      `bson:"issn"`
	CountryID     uuid.UUID   `bson:"country_id"`
	LanguageIDs   []uuid.UUID `bson:"language_ids"`
	LicenseID     uuid.UUID   `bson:"license_id,omitempty"`
	SherpaRomeoID uuid.UUID   `bson:"sherpa_romeo_id,omitempty"`
	CreatedAt     time.Time   `bson:"created_at"`
}

func (j Journal) EntityID() uuid.UUID { return j.ID }

// Issue is a numbered installment of a journal.
type Issue struct {
	ID        uuid.UUID `bson:"_id"`
	JournalID uuid.UUID `bson:"journal_id"`
	Volume    string    `bson:"volume"`
	Number    string    `bson:"number"`
	Year      int       `bson:"year"`
	CreatedAt time.Time `bson:"created_at"`
}

func (i Issue) EntityID() uuid.UUID { return i.ID }

// Document is a bibliographic record inside an issue.
type Document struct {
	ID             uuid.UUID   `bson:"_id"`
	IssueID        uuid.UUID   `bson:"issue_id"`
	Title          string      `bson:"title"`
	DOI            string      `bson:"doi,omitempty"`
	LanguageID     uuid.UUID   `bson:"language_id"`
	DocumentTypeID uuid.UUID   `bson:"document_type_id"`
	FocusID        uuid.UUID   `bson:"focus_id,omitempty"`
	GeographicIDs  []uuid.UUID `bson:"geographic_ids,omitempty"`
	PageStart      int         `bson:"page_start,omitempty"`
	PageEnd        int         `bson:"page_end,omitempty"`
	CreatedAt      time.Time   `bson:"created_at"`
}

func (d Document) EntityID() uuid.UUID { return d.ID }
