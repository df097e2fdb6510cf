package i18n

// Bundle maps translation keys to text for one namespace.
type Bundle map[string]string

// Resources holds every loaded bundle: language → namespace → bundle.
type Resources map[string]map[string]Bundle

// Merge copies every bundle of other into r, replacing bundles that already
// exist for the same language and namespace.
func (r Resources) Merge(other Resources) {
	for lang, namespaces := range other {
		dst, ok := r[lang]
		if !ok {
			dst = make(map[string]Bundle, len(namespaces))
			r[lang] = dst
		}
		for ns, bundle := range namespaces {
			dst[ns] = bundle
		}
	}
}

// Lookup returns the text for key in lang and namespace ns.
func (r Resources) Lookup(lang, ns, key string) (string, bool) {
	text, ok := r[lang][ns][key]
	return text, ok
}
