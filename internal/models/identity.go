package models

// Identity is the acting identity resolved by the external identity
// collaborator. Every core operation takes one; the user table mirrors it
// lazily on first listing or request creation.
type Identity struct {
	Subject string `json:"subject"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	Role    string `json:"role,omitempty"`
}
