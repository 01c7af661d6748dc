package common

// ConstError is an error type for declaring immutable sentinel errors,
// e.g. const ErrNotFound = ConstError("not found").
type ConstError string

func (e ConstError) Error() string {
	return string(e)
}
