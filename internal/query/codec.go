package query

import (
	"net/url"
	"strconv"
	"strings"
)

// URL parameter keys recognized by the codec. The URL is the single source
// of truth for discovery state; sort is deliberately UI-local and never
// written to the URL.
const (
	ParamSearch = "search"
	ParamAuthor = "author"
	ParamTags   = "tags"
	ParamPage   = "page"
)

// Decode reads a DiscoveryQuery from URL parameters. Mode precedence when
// several raw filter values are present: search > author > tags > none
// (first non-empty wins). Unrecognized or malformed parameters are ignored,
// never errors.
func Decode(values url.Values) DiscoveryQuery {
	q := Default()

	if page, err := strconv.Atoi(values.Get(ParamPage)); err == nil && page >= 1 {
		q.Page = page
	}

	if search := strings.TrimSpace(values.Get(ParamSearch)); search != "" {
		q.Mode = ModeSearch
		q.Search = search
		return q
	}
	if author := strings.TrimSpace(values.Get(ParamAuthor)); author != "" {
		q.Mode = ModeAuthor
		q.Author = author
		return q
	}
	if tags := splitTags(values.Get(ParamTags)); len(tags) > 0 {
		q.Mode = ModeTags
		q.Tags = tags
		return q
	}
	return q
}

// EncodeSearch builds a fresh parameter set for a title search. Any
// previously active filter keys are dropped; the page resets to 1. An empty
// term encodes the unfiltered listing.
func EncodeSearch(term string) url.Values {
	values := url.Values{}
	if term = strings.TrimSpace(term); term != "" {
		values.Set(ParamSearch, term)
	}
	values.Set(ParamPage, "1")
	return values
}

// EncodeFilter builds a fresh parameter set for the author/tags filter
// form. Both keys may be written; Decode's precedence picks the author.
// The page resets to 1.
func EncodeFilter(author string, tags []string) url.Values {
	values := url.Values{}
	if author = strings.TrimSpace(author); author != "" {
		values.Set(ParamAuthor, author)
	}
	if joined := joinTags(tags); joined != "" {
		values.Set(ParamTags, joined)
	}
	values.Set(ParamPage, "1")
	return values
}

// ClearKey removes exactly one filter key from the existing parameters,
// leaving other still-active keys untouched, and resets the page to 1.
func ClearKey(values url.Values, key string) url.Values {
	out := cloneValues(values)
	out.Del(key)
	out.Set(ParamPage, "1")
	return out
}

// ClearAll drops every recognized parameter, returning the bare listing.
func ClearAll() url.Values {
	return url.Values{}
}

// EncodePage keeps all existing parameters and overwrites only the page.
func EncodePage(values url.Values, page int) url.Values {
	if page < 1 {
		page = 1
	}
	out := cloneValues(values)
	out.Set(ParamPage, strconv.Itoa(page))
	return out
}

func cloneValues(values url.Values) url.Values {
	out := make(url.Values, len(values))
	for k, vs := range values {
		out[k] = append([]string(nil), vs...)
	}
	return out
}

// ParseTags parses a comma-joined tag list as entered in the filter form.
func ParseTags(raw string) []string {
	return splitTags(raw)
}

// splitTags parses a comma-joined tag list, trimming whitespace and
// dropping empties, preserving order.
func splitTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func joinTags(tags []string) string {
	cleaned := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			cleaned = append(cleaned, t)
		}
	}
	return strings.Join(cleaned, ",")
}
