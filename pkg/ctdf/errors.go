package ctdf

import "errors"

// ErrNotImplementedInAPI is returned by accessors for data the vehicles API never provides
var ErrNotImplementedInAPI = errors.New("not implemented in this API")

// ErrDataInvalid is returned when an API sent a response that could not be parsed or is missing data
var ErrDataInvalid = errors.New("the API returned an invalid response")
