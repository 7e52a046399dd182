package matrix

// InvalidJSON is the serialised form of every invalid Outcome.
const InvalidJSON = "[]"

// Outcome is the result of Parse: either valid, carrying a Matrix, or
// invalid, carrying the reason. The zero value is invalid.
type Outcome struct {
	matrix Matrix
	valid  bool
	err    error
}

// Valid wraps m in a valid Outcome.
func Valid(m Matrix) Outcome {
	return Outcome{matrix: m, valid: true}
}

// Invalid returns an invalid Outcome. A nil err is replaced by
// ErrMalformedField.
func Invalid(err error) Outcome {
	if err == nil {
		err = ErrMalformedField
	}
	return Outcome{err: err}
}

// IsValid reports whether the Outcome carries a Matrix.
func (o Outcome) IsValid() bool {
	return o.valid
}

// Matrix returns the carried Matrix and true, or the 0×0 matrix and false.
func (o Outcome) Matrix() (Matrix, bool) {
	if !o.IsValid() {
		return Matrix{}, false
	}
	return o.matrix, true
}

// Err returns nil for a valid Outcome and the invalidity reason otherwise.
func (o Outcome) Err() error {
	if o.IsValid() {
		return nil
	}
	if o.err == nil {
		return ErrMalformedField
	}
	return o.err
}

// Map applies fn to the carried Matrix. Invalid outcomes pass through
// unchanged and fn is not called.
func (o Outcome) Map(fn func(Matrix) Matrix) Outcome {
	if !o.IsValid() {
		return o
	}
	return Valid(fn(o.matrix))
}

// Unwrap serialises the Outcome: the flattened matrix as a JSON array
// literal and true, or InvalidJSON and false.
func (o Outcome) Unwrap() (json string, valid bool) {
	if !o.IsValid() {
		return InvalidJSON, false
	}
	return o.matrix.JSON(), true
}
