package tool

// Timed wraps a free function so every invocation is recorded into log
// under the given name, on success, error and panic paths alike. Errors
// and panics propagate unchanged.
func Timed[A, R any](log *Log, name string, fn func(A) (R, error)) func(A) (R, error) {
	return func(arg A) (_ R, err error) {
		done := log.Start(name)
		defer func() {
			if p := recover(); p != nil {
				done(false)
				panic(p)
			}
			done(err == nil)
		}()
		return fn(arg)
	}
}
