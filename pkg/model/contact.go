package model

// ContactLink is the pre-filled messaging hand-off for a product inquiry.
type ContactLink struct {
	URL     string `json:"url"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}
