package elasticsearch

import (
	"net/http"
)

// ElasticClient is the transport used to perform API requests. It is
// implemented by *elasticsearch.Client and satisfies esapi.Transport, so
// esapi request types can be executed against it directly.
type ElasticClient interface {
	Perform(*http.Request) (*http.Response, error)
}

// Model interface that all models must implement
type Model interface {
	GetID() string
	SetID(id string)
}
