package menu

// Record exposes the scalar columns of a raw row by name.
type Record interface {
	Field(name string) string
}

// ListRecord additionally exposes list columns.
type ListRecord interface {
	Record
	List(name string) []string
}

// ResolveLocalizedField reads base in lang: the "<base>_<lang>" column if
// it is non-empty, else the unsuffixed legacy column, else "".
func ResolveLocalizedField(r Record, base string, lang Lang) string {
	if v := r.Field(localizedName(base, lang)); v != "" {
		return v
	}
	return r.Field(base)
}

// ResolveLocalizedList applies the same cascade to a list column.
func ResolveLocalizedList(r ListRecord, base string, lang Lang) []string {
	if v := r.List(localizedName(base, lang)); len(v) > 0 {
		return v
	}
	return r.List(base)
}

func localizedName(base string, lang Lang) string {
	return base + "_" + string(lang.Normalize())
}
