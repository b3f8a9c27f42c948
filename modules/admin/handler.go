// Package admin serves the catalog administration pages: CRUD for the
// reference catalogs and for the journal, issue, and document records.
// Every route requires a logged-in session.
package admin

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/citelab/bibcat/pkg/i18n"
	"github.com/citelab/bibcat/pkg/logger"
	"github.com/citelab/bibcat/pkg/session"
	"github.com/citelab/bibcat/svc/catalog"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed locales/*.yaml
var localeFS embed.FS

const langCookie = "bibcat_lang"

// LoadLocales merges the module's embedded message catalogs into the
// translator.
func LoadLocales(tr *i18n.Translator) error {
	for _, lang := range []string{"es", "en"} {
		data, err := localeFS.ReadFile("locales/" + lang + ".yaml")
		if err != nil {
			return err
		}
		if err := tr.LoadYAML(lang, data); err != nil {
			return err
		}
	}
	return nil
}

// CrudRepo is the slice of catalog.Repo the admin pages need.
type CrudRepo[T catalog.Entity] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, e T) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Repos bundles the catalog repositories behind interfaces so handler tests
// can run against in-memory fakes.
type Repos struct {
	Countries       CrudRepo[catalog.Country]
	Languages       CrudRepo[catalog.Language]
	DocumentTypes   CrudRepo[catalog.DocumentType]
	DocumentFoci    CrudRepo[catalog.DocumentFocus]
	GeographicNames CrudRepo[catalog.GeographicName]
	Licenses        CrudRepo[catalog.License]
	SherpaRomeo     CrudRepo[catalog.SherpaRomeo]
	Journals        CrudRepo[catalog.Journal]
	Issues          CrudRepo[catalog.Issue]
	Documents       CrudRepo[catalog.Document]
}

// NewRepos wires Repos over a catalog store.
func NewRepos(store *catalog.Store) Repos {
	return Repos{
		Countries:       store.Countries,
		Languages:       store.Languages,
		DocumentTypes:   store.DocumentTypes,
		DocumentFoci:    store.DocumentFoci,
		GeographicNames: store.GeographicNames,
		Licenses:        store.Licenses,
		SherpaRomeo:     store.SherpaRomeo,
		Journals:        store.Journals,
		Issues:          store.Issues,
		Documents:       store.Documents,
	}
}

// Section describes one coded reference catalog for the templates.
type Section struct {
	Slug     string
	TitleKey string
	HasCode  bool
	HasURL   bool
}

// row is one catalog record flattened for the generic section table.
type row struct {
	ID     uuid.UUID
	Code   string
	NameEs string
	NameEn string
	URL    string
}

// option is a select entry on the journal, issue, and document forms.
type option struct {
	ID     uuid.UUID
	NameEs string
	Title  string
	Label  string
}

// sectionImpl binds a Section to its storage operations.
type sectionImpl struct {
	Section
	list   func(ctx context.Context) ([]row, error)
	create func(ctx context.Context, code string, name catalog.I18NText, url string) error
	remove func(ctx context.Context, id uuid.UUID) error
}

// Handler renders the admin pages.
type Handler struct {
	repos       Repos
	sessions    *session.Manager
	tr          *i18n.Translator
	logger      *slog.Logger
	basePath    string
	accountPath string
	tmpl        *template.Template
	sections    map[string]*sectionImpl
	nav         []Section
}

// Option configures the Handler.
type Option func(*Handler)

// WithLogger sets the handler logger.
func WithLogger(log *slog.Logger) Option {
	return func(h *Handler) {
		if log != nil {
			h.logger = log
		}
	}
}

// WithBasePath sets the URL prefix the handler is mounted under.
func WithBasePath(p string) Option {
	return func(h *Handler) { h.basePath = p }
}

// WithAccountPath sets the mount point of the account module, used for the
// login redirect and the logout form.
func WithAccountPath(p string) Option {
	return func(h *Handler) { h.accountPath = p }
}

// NewHandler creates the admin page handler.
func NewHandler(repos Repos, sessions *session.Manager, tr *i18n.Translator, opts ...Option) *Handler {
	h := &Handler{
		repos:       repos,
		sessions:    sessions,
		tr:          tr,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		basePath:    "/admin",
		accountPath: "/account",
		tmpl:        template.Must(template.ParseFS(templateFS, "templates/*.html")),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.buildSections()
	return h
}

func (h *Handler) buildSections() {
	coded := []*sectionImpl{
		{
			Section: Section{Slug: "countries", TitleKey: "admin.sections.countries", HasCode: true},
			list:    listRows(h.repos.Countries, func(c catalog.Country) row { return row{ID: c.ID, Code: c.Code, NameEs: c.Name.Es, NameEn: c.Name.En} }),
			create: func(ctx context.Context, code string, name catalog.I18NText, _ string) error {
				return h.repos.Countries.Create(ctx, catalog.Country{ID: uuid.New(), Code: code, Name: name})
			},
			remove: h.repos.Countries.Delete,
		},
		{
			Section: Section{Slug: "languages", TitleKey: "admin.sections.languages", HasCode: true},
			list:    listRows(h.repos.Languages, func(l catalog.Language) row { return row{ID: l.ID, Code: l.Code, NameEs: l.Name.Es, NameEn: l.Name.En} }),
			create: func(ctx context.Context, code string, name catalog.I18NText, _ string) error {
				return h.repos.Languages.Create(ctx, catalog.Language{ID: uuid.New(), Code: code, Name: name})
			},
			remove: h.repos.Languages.Delete,
		},
		{
			Section: Section{Slug: "document-types", TitleKey: "admin.sections.document_types", HasCode: true},
			list:    listRows(h.repos.DocumentTypes, func(d catalog.DocumentType) row { return row{ID: d.ID, Code: d.Code, NameEs: d.Name.Es, NameEn: d.Name.En} }),
			create: func(ctx context.Context, code string, name catalog.I18NText, _ string) error {
				return h.repos.DocumentTypes.Create(ctx, catalog.DocumentType{ID: uuid.New(), Code: code, Name: name})
			},
			remove: h.repos.DocumentTypes.Delete,
		},
		{
			Section: Section{Slug: "document-foci", TitleKey: "admin.sections.document_foci", HasCode: true},
			list:    listRows(h.repos.DocumentFoci, func(d catalog.DocumentFocus) row { return row{ID: d.ID, Code: d.Code, NameEs: d.Name.Es, NameEn: d.Name.En} }),
			create: func(ctx context.Context, code string, name catalog.I18NText, _ string) error {
				return h.repos.DocumentFoci.Create(ctx, catalog.DocumentFocus{ID: uuid.New(), Code: code, Name: name})
			},
			remove: h.repos.DocumentFoci.Delete,
		},
		{
			Section: Section{Slug: "geographic-names", TitleKey: "admin.sections.geographic_names"},
			list:    listRows(h.repos.GeographicNames, func(g catalog.GeographicName) row { return row{ID: g.ID, NameEs: g.Name.Es, NameEn: g.Name.En} }),
			create: func(ctx context.Context, _ string, name catalog.I18NText, _ string) error {
				return h.repos.GeographicNames.Create(ctx, catalog.GeographicName{ID: uuid.New(), Name: name})
			},
			remove: h.repos.GeographicNames.Delete,
		},
		{
			Section: Section{Slug: "licenses", TitleKey: "admin.sections.licenses", HasCode: true, HasURL: true},
			list:    listRows(h.repos.Licenses, func(l catalog.License) row { return row{ID: l.ID, Code: l.Code, NameEs: l.Name.Es, NameEn: l.Name.En, URL: l.URL} }),
			create: func(ctx context.Context, code string, name catalog.I18NText, url string) error {
				return h.repos.Licenses.Create(ctx, catalog.License{ID: uuid.New(), Code: code, Name: name, URL: url})
			},
			remove: h.repos.Licenses.Delete,
		},
		{
			Section: Section{Slug: "sherpa-romeo", TitleKey: "admin.sections.sherpa_romeo", HasCode: true},
			list:    listRows(h.repos.SherpaRomeo, func(s catalog.SherpaRomeo) row { return row{ID: s.ID, Code: s.Color, NameEs: s.Policy.Es, NameEn: s.Policy.En} }),
			create: func(ctx context.Context, code string, name catalog.I18NText, _ string) error {
				return h.repos.SherpaRomeo.Create(ctx, catalog.SherpaRomeo{ID: uuid.New(), Color: code, Policy: name})
			},
			remove: h.repos.SherpaRomeo.Delete,
		},
	}

	h.sections = make(map[string]*sectionImpl, len(coded))
	for _, s := range coded {
		h.sections[s.Slug] = s
		h.nav = append(h.nav, s.Section)
	}
	h.nav = append(h.nav,
		Section{Slug: "journals", TitleKey: "admin.sections.journals"},
		Section{Slug: "issues", TitleKey: "admin.sections.issues"},
		Section{Slug: "documents", TitleKey: "admin.sections.documents"},
	)
}

func listRows[T catalog.Entity](repo CrudRepo[T], toRow func(T) row) func(ctx context.Context) ([]row, error) {
	return func(ctx context.Context) ([]row, error) {
		items, err := repo.List(ctx)
		if err != nil {
			return nil, err
		}
		rows := make([]row, 0, len(items))
		for _, it := range items {
			rows = append(rows, toRow(it))
		}
		return rows, nil
	}
}

// Router returns the admin routes, relative to the mount point.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(h.sessions.Middleware)
	r.Use(h.requireSession)

	r.Get("/", h.dashboard)

	r.Get("/journals", h.journalsPage)
	r.Post("/journals", h.createJournal)
	r.Post("/journals/{id}/delete", h.deleteFrom(h.repos.Journals.Delete, "journals"))
	r.Get("/issues", h.issuesPage)
	r.Post("/issues", h.createIssue)
	r.Post("/issues/{id}/delete", h.deleteFrom(h.repos.Issues.Delete, "issues"))
	r.Get("/documents", h.documentsPage)
	r.Post("/documents", h.createDocument)
	r.Post("/documents/{id}/delete", h.deleteFrom(h.repos.Documents.Delete, "documents"))

	r.Get("/{section}", h.sectionPage)
	r.Post("/{section}", h.createInSection)
	r.Post("/{section}/{id}/delete", h.deleteInSection)

	return r
}

// requireSession redirects anonymous requests to the login page.
func (h *Handler) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := session.FromContext(r.Context()); !ok {
			http.Redirect(w, r, h.accountPath+"/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type viewData struct {
	tr *i18n.Translator

	Lang        string
	Title       string
	Error       string
	BasePath    string
	AccountPath string
	UserEmail   string
	Nav         []Section

	Section Section
	Rows    []row

	Journals  []journalRow
	Issues    []issueRow
	Documents []documentRow
	Countries []option
	Languages []option
	Types     []option
}

type journalRow struct {
	ID        uuid.UUID
	Title     string
	ISSN      string
	Country   string
	Languages string
}

type issueRow struct {
	ID      uuid.UUID
	Journal string
	Volume  string
	Number  string
	Year    int
	// Label feeds the document form select.
	Label string
}

type documentRow struct {
	ID       uuid.UUID
	Title    string
	Issue    string
	Language string
	Type     string
}

func (v viewData) T(key string, args ...any) string {
	return v.tr.T(v.Lang, key, args...)
}

func (h *Handler) view(r *http.Request, titleKey string) viewData {
	lang := h.lang(r)
	v := viewData{
		tr:          h.tr,
		Lang:        lang,
		BasePath:    h.basePath,
		AccountPath: h.accountPath,
		Nav:         h.nav,
	}
	if sess, ok := session.FromContext(r.Context()); ok {
		v.UserEmail = sess.Email
	}
	v.Title = v.T(titleKey)
	return v
}

func (h *Handler) lang(r *http.Request) string {
	supported := h.tr.Languages()
	if c, err := r.Cookie(langCookie); err == nil {
		for _, s := range supported {
			if s == c.Value {
				return c.Value
			}
		}
	}
	if sess, ok := session.FromContext(r.Context()); ok && sess.Locale != "" {
		return sess.Locale
	}
	return i18n.NegotiateLanguage(r, supported, h.tr.DefaultLanguage())
}

func (h *Handler) render(w http.ResponseWriter, status int, name string, data viewData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.tmpl.ExecuteTemplate(w, name, data); err != nil {
		h.logger.Error("Failed to render page",
			slog.String("template", name),
			logger.Error(err),
			logger.Component("admin"),
		)
	}
}

func (h *Handler) serverError(w http.ResponseWriter, err error, what string) {
	h.logger.Error("Admin operation failed",
		slog.String("operation", what),
		logger.Error(err),
		logger.Component("admin"),
	)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "dashboard", h.view(r, "admin.title"))
}

func (h *Handler) sectionPage(w http.ResponseWriter, r *http.Request) {
	sec, ok := h.sections[chi.URLParam(r, "section")]
	if !ok {
		http.NotFound(w, r)
		return
	}
	h.renderSection(w, r, sec, "")
}

func (h *Handler) renderSection(w http.ResponseWriter, r *http.Request, sec *sectionImpl, errMsg string) {
	v := h.view(r, sec.TitleKey)
	v.Section = sec.Section
	v.Error = errMsg

	rows, err := sec.list(r.Context())
	if err != nil {
		h.serverError(w, err, "list "+sec.Slug)
		return
	}
	v.Rows = rows

	status := http.StatusOK
	if errMsg != "" {
		status = http.StatusUnprocessableEntity
	}
	h.render(w, status, "section", v)
}

func (h *Handler) createInSection(w http.ResponseWriter, r *http.Request) {
	sec, ok := h.sections[chi.URLParam(r, "section")]
	if !ok {
		http.NotFound(w, r)
		return
	}

	code := strings.TrimSpace(r.PostFormValue("code"))
	name := catalog.I18NText{
		Es: strings.TrimSpace(r.PostFormValue("name_es")),
		En: strings.TrimSpace(r.PostFormValue("name_en")),
	}
	url := strings.TrimSpace(r.PostFormValue("url"))

	v := h.view(r, sec.TitleKey)
	if name.Es == "" || (sec.HasCode && code == "") {
		h.renderSection(w, r, sec, v.T("admin.errors.invalid"))
		return
	}

	if err := sec.create(r.Context(), code, name, url); err != nil {
		if errors.Is(err, catalog.ErrAlreadyExists) {
			h.renderSection(w, r, sec, v.T("admin.errors.exists"))
			return
		}
		h.serverError(w, err, "create in "+sec.Slug)
		return
	}

	http.Redirect(w, r, h.basePath+"/"+sec.Slug, http.StatusSeeOther)
}

func (h *Handler) deleteInSection(w http.ResponseWriter, r *http.Request) {
	sec, ok := h.sections[chi.URLParam(r, "section")]
	if !ok {
		http.NotFound(w, r)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := sec.remove(r.Context(), id); err != nil && !errors.Is(err, catalog.ErrNotFound) {
		h.serverError(w, err, "delete in "+sec.Slug)
		return
	}

	http.Redirect(w, r, h.basePath+"/"+sec.Slug, http.StatusSeeOther)
}

// deleteFrom builds a delete handler for the journal, issue, and document
// tables, which live outside the generic section map.
func (h *Handler) deleteFrom(remove func(ctx context.Context, id uuid.UUID) error, slug string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			http.NotFound(w, r)
			return
		}
		if err := remove(r.Context(), id); err != nil && !errors.Is(err, catalog.ErrNotFound) {
			h.serverError(w, err, "delete in "+slug)
			return
		}
		http.Redirect(w, r, h.basePath+"/"+slug, http.StatusSeeOther)
	}
}

func (h *Handler) journalsPage(w http.ResponseWriter, r *http.Request) {
	h.renderJournals(w, r, "")
}

func (h *Handler) renderJournals(w http.ResponseWriter, r *http.Request, errMsg string) {
	ctx := r.Context()
	v := h.view(r, "admin.sections.journals")
	v.Error = errMsg

	countries, err := h.repos.Countries.List(ctx)
	if err != nil {
		h.serverError(w, err, "list countries")
		return
	}
	languages, err := h.repos.Languages.List(ctx)
	if err != nil {
		h.serverError(w, err, "list languages")
		return
	}
	journals, err := h.repos.Journals.List(ctx)
	if err != nil {
		h.serverError(w, err, "list journals")
		return
	}

	countryName := make(map[uuid.UUID]string, len(countries))
	for _, c := range countries {
		countryName[c.ID] = c.Name.In(v.Lang)
		v.Countries = append(v.Countries, option{ID: c.ID, NameEs: c.Name.In(v.Lang)})
	}
	langName := make(map[uuid.UUID]string, len(languages))
	for _, l := range languages {
		langName[l.ID] = l.Name.In(v.Lang)
		v.Languages = append(v.Languages, option{ID: l.ID, NameEs: l.Name.In(v.Lang)})
	}

	for _, j := range journals {
		names := make([]string, 0, len(j.LanguageIDs))
		for _, id := range j.LanguageIDs {
			names = append(names, langName[id])
		}
		v.Journals = append(v.Journals, journalRow{
			ID:        j.ID,
			Title:     j.Title,
			ISSN:      j.ISSN,
			Country:   countryName[j.CountryID],
			Languages: strings.Join(names, ", "),
		})
	}

	status := http.StatusOK
	if errMsg != "" {
		status = http.StatusUnprocessableEntity
	}
	h.render(w, status, "journals", v)
}

func (h *Handler) createJournal(w http.ResponseWriter, r *http.Request) {
	v := h.view(r, "admin.sections.journals")

	title := strings.TrimSpace(r.PostFormValue("title"))
	countryID, err := uuid.Parse(r.PostFormValue("country_id"))
	if title == "" || err != nil {
		h.renderJournals(w, r, v.T("admin.errors.invalid"))
		return
	}

	if err := r.ParseForm(); err != nil {
		h.renderJournals(w, r, v.T("admin.errors.invalid"))
		return
	}
	var langIDs []uuid.UUID
	for _, raw := range r.PostForm["language_ids"] {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.renderJournals(w, r, v.T("admin.errors.invalid"))
			return
		}
		langIDs = append(langIDs, id)
	}

	journal := catalog.Journal{
		ID:          uuid.New(),
		Title:       title,
		ISSN:        strings.TrimSpace(r.PostFormValue("issn")),
		CountryID:   countryID,
		LanguageIDs: langIDs,
		CreatedAt:   time.Now().UTC(),
	}
	if err := h.repos.Journals.Create(r.Context(), journal); err != nil {
		h.serverError(w, err, "create journal")
		return
	}

	http.Redirect(w, r, h.basePath+"/journals", http.StatusSeeOther)
}

func (h *Handler) issuesPage(w http.ResponseWriter, r *http.Request) {
	h.renderIssues(w, r, "")
}

func (h *Handler) renderIssues(w http.ResponseWriter, r *http.Request, errMsg string) {
	ctx := r.Context()
	v := h.view(r, "admin.sections.issues")
	v.Error = errMsg

	journals, err := h.repos.Journals.List(ctx)
	if err != nil {
		h.serverError(w, err, "list journals")
		return
	}
	issues, err := h.repos.Issues.List(ctx)
	if err != nil {
		h.serverError(w, err, "list issues")
		return
	}

	journalTitle := make(map[uuid.UUID]string, len(journals))
	for _, j := range journals {
		journalTitle[j.ID] = j.Title
		v.Journals = append(v.Journals, journalRow{ID: j.ID, Title: j.Title})
	}

	for _, i := range issues {
		v.Issues = append(v.Issues, issueRow{
			ID:      i.ID,
			Journal: journalTitle[i.JournalID],
			Volume:  i.Volume,
			Number:  i.Number,
			Year:    i.Year,
		})
	}

	status := http.StatusOK
	if errMsg != "" {
		status = http.StatusUnprocessableEntity
	}
	h.render(w, status, "issues", v)
}

func (h *Handler) createIssue(w http.ResponseWriter, r *http.Request) {
	v := h.view(r, "admin.sections.issues")

	journalID, err := uuid.Parse(r.PostFormValue("journal_id"))
	if err != nil {
		h.renderIssues(w, r, v.T("admin.errors.invalid"))
		return
	}
	year, err := strconv.Atoi(r.PostFormValue("year"))
	if err != nil {
		h.renderIssues(w, r, v.T("admin.errors.invalid"))
		return
	}

	issue := catalog.Issue{
		ID:        uuid.New(),
		JournalID: journalID,
		Volume:    strings.TrimSpace(r.PostFormValue("volume")),
		Number:    strings.TrimSpace(r.PostFormValue("number")),
		Year:      year,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.repos.Issues.Create(r.Context(), issue); err != nil {
		h.serverError(w, err, "create issue")
		return
	}

	http.Redirect(w, r, h.basePath+"/issues", http.StatusSeeOther)
}

func (h *Handler) documentsPage(w http.ResponseWriter, r *http.Request) {
	h.renderDocuments(w, r, "")
}

func (h *Handler) renderDocuments(w http.ResponseWriter, r *http.Request, errMsg string) {
	ctx := r.Context()
	v := h.view(r, "admin.sections.documents")
	v.Error = errMsg

	journals, err := h.repos.Journals.List(ctx)
	if err != nil {
		h.serverError(w, err, "list journals")
		return
	}
	issues, err := h.repos.Issues.List(ctx)
	if err != nil {
		h.serverError(w, err, "list issues")
		return
	}
	languages, err := h.repos.Languages.List(ctx)
	if err != nil {
		h.serverError(w, err, "list languages")
		return
	}
	types, err := h.repos.DocumentTypes.List(ctx)
	if err != nil {
		h.serverError(w, err, "list document types")
		return
	}
	documents, err := h.repos.Documents.List(ctx)
	if err != nil {
		h.serverError(w, err, "list documents")
		return
	}

	journalTitle := make(map[uuid.UUID]string, len(journals))
	for _, j := range journals {
		journalTitle[j.ID] = j.Title
	}
	issueLabel := make(map[uuid.UUID]string, len(issues))
	for _, i := range issues {
		label := fmt.Sprintf("%s v%s n%s (%d)", journalTitle[i.JournalID], i.Volume, i.Number, i.Year)
		issueLabel[i.ID] = label
		v.Issues = append(v.Issues, issueRow{ID: i.ID, Label: label})
	}
	langName := make(map[uuid.UUID]string, len(languages))
	for _, l := range languages {
		langName[l.ID] = l.Name.In(v.Lang)
		v.Languages = append(v.Languages, option{ID: l.ID, NameEs: l.Name.In(v.Lang)})
	}
	typeName := make(map[uuid.UUID]string, len(types))
	for _, dt := range types {
		typeName[dt.ID] = dt.Name.In(v.Lang)
		v.Types = append(v.Types, option{ID: dt.ID, NameEs: dt.Name.In(v.Lang)})
	}

	for _, d := range documents {
		v.Documents = append(v.Documents, documentRow{
			ID:       d.ID,
			Title:    d.Title,
			Issue:    issueLabel[d.IssueID],
			Language: langName[d.LanguageID],
			Type:     typeName[d.DocumentTypeID],
		})
	}

	status := http.StatusOK
	if errMsg != "" {
		status = http.StatusUnprocessableEntity
	}
	h.render(w, status, "documents", v)
}

func (h *Handler) createDocument(w http.ResponseWriter, r *http.Request) {
	v := h.view(r, "admin.sections.documents")

	title := strings.TrimSpace(r.PostFormValue("title"))
	issueID, err1 := uuid.Parse(r.PostFormValue("issue_id"))
	languageID, err2 := uuid.Parse(r.PostFormValue("language_id"))
	typeID, err3 := uuid.Parse(r.PostFormValue("document_type_id"))
	if title == "" || err1 != nil || err2 != nil || err3 != nil {
		h.renderDocuments(w, r, v.T("admin.errors.invalid"))
		return
	}

	doc := catalog.Document{
		ID:             uuid.New(),
		IssueID:        issueID,
		Title:          title,
		LanguageID:     languageID,
		DocumentTypeID: typeID,
		CreatedAt:      time.Now().UTC(),
	}
	if err := h.repos.Documents.Create(r.Context(), doc); err != nil {
		h.serverError(w, err, "create document")
		return
	}

	http.Redirect(w, r, h.basePath+"/documents", http.StatusSeeOther)
}
