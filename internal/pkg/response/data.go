package response

// DataResponse wraps a single payload under a "data" key.
// Used by endpoints whose contract nests the result, such as the
// recurring-booking preview.
type DataResponse[T any] struct {
	Data T `json:"data"`
}

// NewDataResponse wraps the given payload.
func NewDataResponse[T any](data T) DataResponse[T] {
	return DataResponse[T]{Data: data}
}
