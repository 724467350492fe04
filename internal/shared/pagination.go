package shared

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// Page contains metadata for offset/limit listings.
type Page struct {
	Total  int `json:"total"`
	Size   int `json:"size"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// ClampPage normalises caller-supplied limit/offset values.
func ClampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
