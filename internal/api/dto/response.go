package dto

// Response envelope of the admin API.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// Page paginated envelope of list endpoints.
type Page[T any] struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// Detail error body of the public API.
type Detail struct {
	Detail string `json:"detail"`
}
