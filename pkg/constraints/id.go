package constraints

// ID constrains the identifier types usable by generic models.
type ID interface {
	~string | ~int | ~int32 | ~int64 | ~uint | ~uint32 | ~uint64
}
