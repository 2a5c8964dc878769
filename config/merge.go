// Package config resolves overlay view configuration: a generic two-level
// merge of container values and per-view overrides over display-mode
// defaults, plus the on-disk TOML configuration with hot reload.
package config

// Merge resolves one configuration field. The view value wins outright
// when present, otherwise the container value applies, otherwise the
// default. Values are never blended; precedence is all-or-nothing per
// field.
func Merge[T any](containerValue, viewValue *T, def T) T {
	if viewValue != nil {
		return *viewValue
	}
	if containerValue != nil {
		return *containerValue
	}
	return def
}

// Ptr returns a pointer to v, a convenience for populating override
// fields in literals.
func Ptr[T any](v T) *T {
	return &v
}
