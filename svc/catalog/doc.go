// Package catalog holds the bibliographic domain: reference catalogs
// (countries, languages, document types and foci, geographic names,
// licenses, Sherpa/Romeo policies) and the journal, issue, and document
// chain built on top of them.
//
// Records reference each other by ID only. Turning those IDs into loaded
// records is an explicit Resolve step that fails with ErrRefNotFound when
// a reference is dangling; nothing is coerced or silently dropped.
package catalog
