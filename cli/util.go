package cli

// MustGet is used with a [pflag.FlagSet] getter to panic if the flag is not defined, or is not the right type.
// Flags are defined by the same code that reads them, so a failure here is a programming mistake.
func MustGet[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
