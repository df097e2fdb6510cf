// Package i18n bootstraps translations for server-rendered pages.
//
// Each page resolves its language from the "language" cookie, loads the
// translation bundles it needs (one JSON file per namespace) for that
// language and for the fallback language, and builds a Translator. Loading
// never fails a page: a missing bundle degrades to the fallback language and
// finally to the key itself.
//
// Bundles are laid out as <lang>/<namespace>.json, either in an fs.FS (the
// embedded locales directory by default) or under
// <wwwHost>/static/locales/ on a remote host.
package i18n
