package pdf

// ProgressFunc receives side-channel progress notifications during an
// operation. It never affects ordering or outcome; operations run to
// completion or fail regardless of what the callback does.
type ProgressFunc func(current, total int, message string)

// report invokes the callback if one is set.
func report(p ProgressFunc, current, total int, message string) {
	if p != nil {
		p(current, total, message)
	}
}
