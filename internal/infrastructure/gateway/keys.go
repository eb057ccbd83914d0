package gateway

// Collection keys. The bookshare prefix namespaces the application's
// entries inside a shared store.
const (
	KeyUsers    = "bookshare:users"
	KeyBooks    = "bookshare:books"
	KeyRequests = "bookshare:requests"

	// Session markers live under their own per-token keys so they can
	// expire individually.
	KeySessionPrefix = "bookshare:session:"
)
