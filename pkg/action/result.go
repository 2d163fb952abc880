package action

// ResultAs returns the payload stored under key converted to T.
// It reports false when there is no result or it has a different type.
func ResultAs[T any](c *Controller, key string) (T, bool) {
	var zero T
	v, ok := c.Result(key)
	if !ok {
		return zero, false
	}
	typed, ok := v.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}
