package dto

// PassResponse reports the outcome of one sync pass over the pending queue.
type PassResponse struct {
	Processed int    `json:"processed"`
	Synced    int    `json:"synced"`
	Failed    int    `json:"failed"`
	Status    string `json:"status"` // success | partial | error
	LastError string `json:"last_error,omitempty"`
}

// SettingRequest writes one host-glue setting value.
type SettingRequest struct {
	Value string `json:"value" validate:"required"`
}
