// pkg/registry/schema.go
package registry

// ActivityRegistry lists the remote calls a run performs and the contract of each.
type ActivityRegistry struct {
	Version     string     `json:"version"`
	LastUpdated string     `json:"lastUpdated"`
	Activities  []Activity `json:"activities"`
}

type Activity struct {
	ID           string                 `json:"id"`
	DisplayName  string                 `json:"displayName"`
	Description  string                 `json:"description"`
	Category     string                 `json:"category"`
	Version      string                 `json:"version"`
	TaskType     string                 `json:"taskType"`
	Method       string                 `json:"method"`
	InputSchema  map[string]interface{} `json:"inputSchema"`
	OutputSchema map[string]interface{} `json:"outputSchema"`
	ErrorCodes   []string               `json:"errorCodes"`
	Retries      int                    `json:"retries"`
	Tags         []string               `json:"tags"`
}
