package janussdk

import (
	"net/http"
	"strings"
	"time"
)

// SDKClient is a client for the Janus approval service, used both by relying
// parties raising requests and by devices answering them.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a client for the service at baseURL. The HTTP timeout
// leaves room for long polls of up to a minute.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 75 * time.Second,
		},
	}
}
