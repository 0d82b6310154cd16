package config

// SetUserHomeDirForTest overrides the home directory resolver used for the
// default data directory. It returns a restore function.
func SetUserHomeDirForTest(fn func() (string, error)) func() {
	orig := userHomeDir
	userHomeDir = fn
	return func() {
		userHomeDir = orig
	}
}
