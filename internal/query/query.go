package query

// Mode selects which discovery operation serves the listing. Exactly one
// mode is active at a time; filters never compose.
type Mode int

const (
	ModeNone Mode = iota
	ModeSearch
	ModeAuthor
	ModeTags
)

func (m Mode) String() string {
	switch m {
	case ModeSearch:
		return "search"
	case ModeAuthor:
		return "author"
	case ModeTags:
		return "tags"
	default:
		return "none"
	}
}

// Sort orders the default listing. Only meaningful when Mode is ModeNone.
type Sort string

const (
	SortNewest  Sort = "newest"
	SortOldest  Sort = "oldest"
	SortPopular Sort = "popular"
)

// ValidSort reports whether s is a recognized sort order.
func ValidSort(s Sort) bool {
	switch s {
	case SortNewest, SortOldest, SortPopular:
		return true
	default:
		return false
	}
}

// DefaultLimit is the fixed page size of the discovery listing.
const DefaultLimit = 6

// DiscoveryQuery is the structured representation of the active
// search/filter/sort/page request for the post listing.
//
// Invariant: changing Mode, the active value, or Sort resets Page to 1;
// changing only Page leaves everything else untouched. The codec's encode
// operations are the only way URL state changes, so the invariant holds for
// any state reachable through them.
type DiscoveryQuery struct {
	Mode   Mode
	Search string
	Author string
	Tags   []string
	Sort   Sort
	Page   int
	Limit  int
}

// Default returns the query for a bare listing URL.
func Default() DiscoveryQuery {
	return DiscoveryQuery{
		Mode:  ModeNone,
		Sort:  SortNewest,
		Page:  1,
		Limit: DefaultLimit,
	}
}

// Value returns the active filter value as a display string, or "" for the
// default listing.
func (q DiscoveryQuery) Value() string {
	switch q.Mode {
	case ModeSearch:
		return q.Search
	case ModeAuthor:
		return q.Author
	case ModeTags:
		return joinTags(q.Tags)
	default:
		return ""
	}
}

// Filtered reports whether any filter mode is active.
func (q DiscoveryQuery) Filtered() bool {
	return q.Mode != ModeNone
}

// WithSort returns a copy ordered by s, with the page reset. Unrecognized
// sorts fall back to newest.
func (q DiscoveryQuery) WithSort(s Sort) DiscoveryQuery {
	if !ValidSort(s) {
		s = SortNewest
	}
	q.Sort = s
	q.Page = 1
	return q
}
