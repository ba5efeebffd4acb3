package entity

// DefaultPageSize is the page size a new view starts with.
const DefaultPageSize = 10

// MaxRemotePageSize is the largest page the collection service serves.
const MaxRemotePageSize = 100

// PageSizes lists the page sizes a user may pick.
var PageSizes = []int{5, 10, 20, 50}

// IsValidPageSize reports whether size is one of PageSizes.
func IsValidPageSize(size int) bool {
	for _, s := range PageSizes {
		if s == size {
			return true
		}
	}
	return false
}

// TotalPages returns ceil(count/size), never less than 1.
func TotalPages(count int64, size int) int {
	if size < 1 || count <= 0 {
		return 1
	}
	return int((count + int64(size) - 1) / int64(size))
}

// PageWindow is the current page cursor plus the server-reported filtered count.
type PageWindow struct {
	Number     int
	Size       int
	Count      int64
	CountKnown bool
}

// TotalPages returns the number of pages for the known count, or 0 while unknown.
func (w PageWindow) TotalPages() int {
	if !w.CountKnown {
		return 0
	}
	return TotalPages(w.Count, w.Size)
}
