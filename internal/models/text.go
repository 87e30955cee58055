package models

import "encoding/json"

// DefaultLanguage is the language every piece of content must provide and the
// fallback for requests in languages the content does not cover.
const DefaultLanguage = "english"

// LocalizedText is a translation map (language -> text). Content files may
// write a bare string instead of an object; it decodes as the default
// language.
type LocalizedText map[string]string

// UnmarshalJSON accepts either a plain string or a language map.
func (t *LocalizedText) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = LocalizedText{DefaultLanguage: s}
		return nil
	}
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*t = LocalizedText(m)
	return nil
}

// Resolve returns the text for the requested language, falling back to the
// default language and then to any available translation.
func (t LocalizedText) Resolve(language string) string {
	if len(t) == 0 {
		return ""
	}
	if s, ok := t[language]; ok {
		return s
	}
	if s, ok := t[DefaultLanguage]; ok {
		return s
	}
	for _, s := range t {
		return s
	}
	return ""
}

// IsEmpty reports whether no translation is present.
func (t LocalizedText) IsEmpty() bool {
	for _, s := range t {
		if s != "" {
			return false
		}
	}
	return true
}
