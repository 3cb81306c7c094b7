package types

// AccountProfile records which user a device acts for on a given server.
type AccountProfile struct {
	ServerURL      string `json:"server_url"`
	UserID         string `json:"user_id"`
	RootDocumentID string `json:"root_document_id,omitempty"`
}
