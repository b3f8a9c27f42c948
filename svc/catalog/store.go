package catalog

import (
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// Collection names, one per catalog record type.
const (
	colCountries       = "countries"
	colLanguages       = "languages"
	colDocumentTypes   = "document_types"
	colDocumentFoci    = "document_foci"
	colGeographicNames = "geographic_names"
	colLicenses        = "licenses"
	colSherpaRomeo     = "sherpa_romeo"
	colJournals        = "journals"
	colIssues          = "issues"
	colDocuments       = "documents"
)

// Store bundles the repositories for every catalog record type.
type Store struct {
	Countries       *Repo[Country]
	Languages       *Repo[Language]
	DocumentTypes   *Repo[DocumentType]
	DocumentFoci    *Repo[DocumentFocus]
	GeographicNames *Repo[GeographicName]
	Licenses        *Repo[License]
	SherpaRomeo     *Repo[SherpaRomeo]
	Journals        *Repo[Journal]
	Issues          *Repo[Issue]
	Documents       *Repo[Document]
}

// NewStore binds all catalog repositories to their collections.
func NewStore(db *mongo.Database) *Store {
	return &Store{
		Countries:       NewRepo[Country](db, colCountries),
		Languages:       NewRepo[Language](db, colLanguages),
		DocumentTypes:   NewRepo[DocumentType](db, colDocumentTypes),
		DocumentFoci:    NewRepo[DocumentFocus](db, colDocumentFoci),
		GeographicNames: NewRepo[GeographicName](db, colGeographicNames),
		Licenses:        NewRepo[License](db, colLicenses),
		SherpaRomeo:     NewRepo[SherpaRomeo](db, colSherpaRomeo),
		Journals:        NewRepo[Journal](db, colJournals),
		Issues:          NewRepo[Issue](db, colIssues),
		Documents:       NewRepo[Document](db, colDocuments),
	}
}
